package cmd

import (
	"github.com/spf13/cobra"

	frerror "github.com/msto63/frege/foundation/core/error"
	"github.com/msto63/frege/foundation/script"
	"github.com/msto63/frege/internal/render"
)

var checkWorkers int

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Check that scripts parse",
	Long: `Parse scripts without printing their trees. Each input gets one line:
"ok" with statement, declaration and node counts, or "FAIL" with the
error. With --verbose the declared and called names are listed too.

The exit code is 1 if any script fails to parse.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 0, "parallel parses (default from config, 0 = CPU count)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	workers := settings.Workers
	if cmd.Flags().Changed("workers") {
		workers = checkWorkers
	}

	var results []script.FileResult
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		in := readInputs(cmd, nil)[0]
		if in.err != nil {
			report(cmd, in.src.Name, in.err)
			return errInputFailed
		}
		results = engine.ParseSources(cmd.Context(), []script.Source{in.src}, 1)
	} else {
		results = engine.ParseFiles(cmd.Context(), args, workers)
	}

	var readFailed, parseFailed bool
	st := styles()
	for _, r := range results {
		if err := render.Check(cmd.OutOrStdout(), r, verbose, st); err != nil {
			return err
		}
		switch {
		case r.Err == nil:
		case frerror.HasCode(r.Err, frerror.CodeNotFound), frerror.HasCode(r.Err, frerror.CodeIO):
			readFailed = true
		default:
			parseFailed = true
		}
	}

	return failure(readFailed, parseFailed)
}
