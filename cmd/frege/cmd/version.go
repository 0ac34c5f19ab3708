package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/frege/pkg/core/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()

		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Fprintf(out, "frege v%s\n", info.Version)
		if info.Commit != "" {
			fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
		}
		if info.BuildDate != "" {
			fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		}
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
		fmt.Fprintf(out, "  Parser:     v%s\n", version.ComponentVersion("parser"))
		fmt.Fprintf(out, "  AST:        v%s\n", version.ComponentVersion("ast"))
		fmt.Fprintf(out, "  Cache:      v%s\n", version.ComponentVersion("cache"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
}
