package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sjzsdu/codeide/config"
	"github.com/sjzsdu/codeide/lang"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: lang.T("Set config"),
	Long:  lang.T("Set global configuration"),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: lang.T("Set a configuration value"),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := strings.ToLower(args[0])
		if err := config.ValidateValue(key, args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		config.SetConfig(key, args[1])
		saveConfig()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: lang.T("Show a configuration value"),
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfig(strings.ToLower(args[0])))
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: lang.T("List all configurations"),
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		keys := make([]string, 0, len(config.ConfigKeys))
		for key := range config.ConfigKeys {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Println(lang.T("Current configurations:"))
		for _, key := range keys {
			info := config.ConfigKeys[key]
			line := fmt.Sprintf("  %-14s = %-10s %s", key, config.GetConfig(key), lang.T(info.Description))
			if len(info.Options) > 0 {
				line += fmt.Sprintf(" [%s]", strings.Join(info.Options, "|"))
			}
			fmt.Println(line)
		}
	},
}

var configClearCmd = &cobra.Command{
	Use:   "clear [key]",
	Short: lang.T("Clear one or all configuration values"),
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			config.ClearAllConfig()
		} else {
			config.ClearConfig(strings.ToLower(args[0]))
		}
		saveConfig()
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd, configClearCmd)
	rootCmd.AddCommand(configCmd)
}

func saveConfig() {
	if err := config.SaveConfig(); err != nil {
		fmt.Fprintln(os.Stderr, lang.T("Error saving config")+": ", err)
		os.Exit(1)
	}
}
