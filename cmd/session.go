package cmd

import (
	"fmt"
	"os"

	"github.com/c-bata/go-prompt"
	"github.com/sjzsdu/codeide/lang"
	"github.com/sjzsdu/codeide/share"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session [file...]",
	Short: lang.T("Start an interactive editing session"),
	Long: `session 命令导入项目后进入交互式会话，可以打开多个文件、编辑、撤销/重做、保存和导出。
输入 help 查看全部命令，Tab 补全命令和文件路径。

示例：
  codeide session                         # 在当前目录上开始会话
  codeide session codeide/README.md       # 开始时打开文件`,
	Run: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sh := newShell(cmd.Context(), ws, os.Stdout)
	for _, path := range args {
		sh.execute("open " + path)
	}
	fmt.Println(lang.T("Type help for available commands"))

	p := prompt.New(
		sh.execute,
		sh.completer,
		prompt.OptionPrefix(share.BUILDNAME+"> "),
		prompt.OptionTitle(share.BUILDNAME),
		prompt.OptionPrefixTextColor(prompt.Blue),
		prompt.OptionInputTextColor(prompt.DefaultColor),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && sh.quit
		}),
	)
	p.Run()
}
