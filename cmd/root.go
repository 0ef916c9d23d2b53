package cmd

import (
	"fmt"
	"os"

	"github.com/sjzsdu/codeide/lang"
	"github.com/sjzsdu/codeide/logging"
	"github.com/sjzsdu/codeide/share"
	"github.com/spf13/cobra"
)

var (
	workDir         string
	repoURL         string
	branch          string
	extensions      []string
	excludePatterns []string
	includeHidden   bool
	skipGitIgnore   bool
	debugMode       bool
	logLevel        string
)

var RootCmd = rootCmd

var rootCmd = &cobra.Command{
	Use:   share.BUILDNAME,
	Short: lang.T("In-memory code workspace"),
	Long:  lang.T("Import a project into memory, browse and edit its files, and export it as an archive"),
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
		fmt.Fprintln(os.Stderr, lang.T("Invalid arguments")+": ", args)
		os.Exit(1)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workDir, "directory", "d", "", lang.T("Work directory path"))
	rootCmd.PersistentFlags().StringVarP(&repoURL, "repository", "r", "", lang.T("Git repository URL to clone"))
	rootCmd.PersistentFlags().StringVarP(&branch, "branch", "b", "", lang.T("Git branch to clone"))
	rootCmd.PersistentFlags().StringSliceVarP(&extensions, "extensions", "e", []string{"*"}, lang.T("File extensions to include"))
	rootCmd.PersistentFlags().StringSliceVarP(&excludePatterns, "exclude", "x", []string{}, lang.T("Glob patterns to exclude"))
	rootCmd.PersistentFlags().BoolVarP(&includeHidden, "hidden", "a", false, lang.T("Include hidden files"))
	rootCmd.PersistentFlags().BoolVarP(&skipGitIgnore, "no-gitignore", "n", false, lang.T("Disable .gitignore rules"))
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "v", false, lang.T("Debug mode"))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", lang.T("Log level (debug, info, warn, error)"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// 未指定时使用配置文件中的 log_level
		if logLevel != "" {
			if err := logging.SetLevel(logLevel); err != nil {
				fmt.Fprintln(os.Stderr, lang.T("Invalid log level")+": ", logLevel)
			}
		}
		logging.SetDebug(debugMode)
	}
}
