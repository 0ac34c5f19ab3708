package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	frerror "github.com/msto63/frege/foundation/core/error"
	frlog "github.com/msto63/frege/foundation/core/log"
	"github.com/msto63/frege/foundation/script"
	"github.com/msto63/frege/internal/render"
	"github.com/msto63/frege/pkg/core/cache"
	"github.com/msto63/frege/pkg/core/config"
)

var (
	parseFormat  string
	parseIndent  int
	parseCompact bool
	parseCache   bool
	parseWorkers int
)

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Parse scripts and print the syntax tree",
	Long: `Parse one or more scripts and print their syntax trees.

Without arguments, or with "-", the script is read from stdin. Several
files are parsed in parallel and printed in argument order. Failures are
reported on stderr; the remaining files are still printed.

Formats:
  json   the interchange format, "type" first on every node (default)
  yaml   the same document as block YAML
  tree   an indented, colored tree for reading
  sexpr  a one-line s-expression

With --cache, renderings are stored in a SQLite database keyed by the
script content and output options.`,
	Example: `  frege parse script.fr
  echo 'let x = 1 + 2;' | frege parse --format sexpr
  frege parse --format tree --workers 4 src/*.fr`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: json, yaml, tree, sexpr (default from config)")
	parseCmd.Flags().IntVar(&parseIndent, "indent", 0, "indentation for json and yaml (default from config)")
	parseCmd.Flags().BoolVar(&parseCompact, "compact", false, "single-line json")
	parseCmd.Flags().BoolVar(&parseCache, "cache", false, "use the rendering cache (also cache.enabled in config)")
	parseCmd.Flags().IntVarP(&parseWorkers, "workers", "w", 0, "parallel parses (default from config, 0 = CPU count)")
}

// renderOptions merges output settings with command flags
func renderOptions(cmd *cobra.Command) (render.Options, error) {
	opts := render.OptionsFromSettings(settings)
	if cmd.Flags().Changed("format") {
		opts.Format = parseFormat
	}
	if cmd.Flags().Changed("indent") {
		opts.Indent = parseIndent
	}
	opts.Compact = parseCompact

	valid := false
	for _, f := range config.OutputFormats {
		valid = valid || f == opts.Format
	}
	if !valid {
		return opts, frerror.Newf("unknown format %q", opts.Format).
			WithCode(frerror.CodeInvalidInput).
			WithOperation("cli.parse")
	}
	return opts, nil
}

// openStore opens the rendering cache when enabled. A cache that cannot
// be opened is logged and skipped.
func openStore(enabled bool) cache.Store {
	if !enabled && !settings.Cache.Enabled {
		return nil
	}

	store, err := cache.NewSQLiteStore(cache.SQLiteConfig{Path: settings.Cache.Path})
	if err != nil {
		logger.WarnWithErr("cache disabled", err)
		return nil
	}
	logger.Debug("cache opened", frlog.String("path", store.Path()))
	return store
}

func runParse(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions(cmd)
	if err != nil {
		return err
	}
	workers := settings.Workers
	if cmd.Flags().Changed("workers") {
		workers = parseWorkers
	}

	ctx := cmd.Context()
	inputs := readInputs(cmd, args)
	store := openStore(parseCache)
	if store != nil {
		defer store.Close()
	}

	outputs := make([][]byte, len(inputs))
	errs := make([]error, len(inputs))
	var readFailed, parseFailed bool

	// Serve cache hits first, parse the rest in parallel
	var misses []int
	for i, in := range inputs {
		if in.err != nil {
			errs[i] = in.err
			readFailed = true
			continue
		}
		if store != nil {
			entry, ok, err := store.Get(ctx, cache.KeyFor(in.src.Text, opts.CacheFormat()))
			if err != nil {
				logger.WarnWithErr("cache lookup failed", err)
			} else if ok {
				outputs[i] = entry.Output
				continue
			}
		}
		misses = append(misses, i)
	}

	sources := make([]script.Source, len(misses))
	for j, i := range misses {
		sources[j] = inputs[i].src
	}

	for j, r := range engine.ParseSources(ctx, sources, workers) {
		i := misses[j]
		if r.Err != nil {
			errs[i] = r.Err
			parseFailed = true
			continue
		}

		out, err := render.Bytes(r.Result.Program, opts)
		if err != nil {
			return err
		}
		outputs[i] = out

		if store != nil {
			entry := &cache.Entry{
				Key:    cache.KeyFor(sources[j].Text, opts.CacheFormat()),
				Name:   r.Path,
				Output: out,
			}
			if err := store.Put(ctx, entry); err != nil {
				logger.WarnWithErr("cache store failed", err)
			}
		}
	}

	w := cmd.OutOrStdout()
	for i, in := range inputs {
		if errs[i] != nil {
			report(cmd, in.src.Name, errs[i])
			continue
		}
		if len(inputs) > 1 {
			writeSeparator(w, opts.Format, in.src.Name, i == 0)
		}
		if _, err := w.Write(outputs[i]); err != nil {
			return err
		}
	}

	return failure(readFailed, parseFailed)
}

// writeSeparator introduces one of several outputs. JSON documents are
// written back to back so the output stays a valid JSON stream.
func writeSeparator(w io.Writer, format, name string, first bool) {
	switch format {
	case config.FormatJSON:
	case config.FormatYAML:
		fmt.Fprintf(w, "--- # %s\n", name)
	default:
		if !first {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "==> %s <==\n", name)
	}
}
