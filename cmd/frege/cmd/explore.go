package cmd

import (
	"github.com/spf13/cobra"

	frerror "github.com/msto63/frege/foundation/core/error"
	frlog "github.com/msto63/frege/foundation/core/log"
	"github.com/msto63/frege/foundation/script"
	"github.com/msto63/frege/internal/tui/explorer"
)

var exploreCmd = &cobra.Command{
	Use:     "explore [file]",
	Aliases: []string{"ui"},
	Short:   "Edit a script and watch its syntax tree update",
	Long: `Start the interactive explorer: the script is edited on the left and
its syntax tree is shown on the right, refreshed as you type. Parse
errors appear in the status bar while the last good tree stays visible.

If file is given it is loaded, and Ctrl+S writes the editor back to it.
A file that does not exist yet is created on the first save.

Keys:
  Tab            switch between editor and tree
  Ctrl+F         cycle view: tree, sexpr, json, yaml, tokens
  Ctrl+S         save
  PgUp/PgDn      scroll the tree (when focused)
  Ctrl+C         quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg := explorer.Config{
		Format: settings.Output.Format,
		Color:  settings.Output.Color,
		// Log lines would corrupt the screen
		Engine: script.New(script.Options{
			Logger:         frlog.Discard(),
			MaxInputLength: settings.Parser.MaxInputLength,
		}),
	}

	if len(args) == 1 {
		cfg.Path = args[0]
		text, err := readFile(cfg.Path)
		if err != nil && !frerror.HasCode(err, frerror.CodeNotFound) {
			return err
		}
		cfg.Source = text
	}

	return explorer.Run(cfg)
}
