package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/frege/pkg/core/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as TOML",
	Long: `Print the settings after defaults, config file and FREGE_* environment
variables are applied. The output is a valid frege.toml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return settings.Encode(cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the loaded config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if src := settings.Source(); src != "" {
			fmt.Fprintln(out, src)
			return
		}

		fmt.Fprintln(out, "No config file found; using defaults. Searched:")
		for _, dir := range config.SearchPaths() {
			fmt.Fprintf(out, "  %s/frege.{toml,yaml,yml}\n", dir)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd)
}
