package cmd

import (
	"fmt"
	"os"

	"github.com/sjzsdu/codeide/lang"
	"github.com/sjzsdu/codeide/project/tree"
	"github.com/spf13/cobra"
)

var (
	treeDepth   int
	treeNoFiles bool
	treeSize    bool
	treeStats   bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: lang.T("Show the project tree"),
	Long: `tree 命令导入项目后以树状结构显示其内容。

示例：
  codeide tree                     # 显示当前目录
  codeide tree -d ./src --depth 2  # 限制显示深度为2层
  codeide tree --no-files          # 只显示目录
  codeide tree -r https://github.com/user/repo.git --stats`,
	Args: cobra.NoArgs,
	Run:  runTree,
}

func init() {
	treeCmd.Flags().IntVar(&treeDepth, "depth", 0, lang.T("Maximum depth (0 means unlimited)"))
	treeCmd.Flags().BoolVar(&treeNoFiles, "no-files", false, lang.T("Show directories only"))
	treeCmd.Flags().BoolVar(&treeSize, "size", false, lang.T("Show file sizes"))
	treeCmd.Flags().BoolVarP(&treeStats, "stats", "s", false, lang.T("Show statistics"))
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := tree.DefaultOptions()
	opts.MaxDepth = treeDepth
	opts.ShowFiles = !treeNoFiles
	opts.ShowSize = treeSize
	out, err := ws.Tree(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(out)

	if treeStats {
		stats, _ := ws.Stats()
		fmt.Printf("\n%s\n", stats.String())
	}
}
