package cmd

import (
	"fmt"

	"github.com/sjzsdu/codeide/lang"
	"github.com/sjzsdu/codeide/share"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: lang.T("Print version information"),
	Long:  lang.T("Print detailed version information of codeide"),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s: %s\n", lang.T("codeide version"), share.VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
