package cmd

import (
	"fmt"
	"os"

	"github.com/sjzsdu/codeide/config"
	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/lang"
	"github.com/sjzsdu/codeide/project/output"
	"github.com/sjzsdu/codeide/share"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: lang.T("Export the project"),
	Long: `export 命令导入项目后把它导出为一个文件，格式由扩展名决定（zip、md、xml、yaml、pdf）。

示例：
  codeide export                      # 导出为 <目录名>.zip
  codeide export -o out/project.md    # 导出为 Markdown
  codeide export -f pdf               # 导出为 <目录名>.pdf`,
	Args: cobra.NoArgs,
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", lang.T("Output file name"))
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", lang.T("Export format when no output file is given"))
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	target := exportOutput
	if target == "" {
		format := exportFormat
		if format == "" {
			format = config.GetConfigWithDefault(config.KeyExportFormat, share.DEFAULT_EXPORT_FORMAT)
		}
		target = output.DefaultFileName(ws.Project(), format)
	}

	target, err = ws.ExportPath(target)
	if err != nil {
		fmt.Fprintln(os.Stderr, lang.T("Export failed")+": ", err)
		os.Exit(1)
	}
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		ok, err := helper.PromptYesNo(fmt.Sprintf("%s %s? [y/N] ", lang.T("Overwrite"), target), false)
		if err != nil || !ok {
			return
		}
	}

	path, err := ws.ExportFile(target)
	if err != nil {
		fmt.Fprintln(os.Stderr, lang.T("Export failed")+": ", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %s\n", lang.T("Exported to"), path)
}
