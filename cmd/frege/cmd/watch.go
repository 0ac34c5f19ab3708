package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	frconfig "github.com/msto63/frege/foundation/core/config"
	frlog "github.com/msto63/frege/foundation/core/log"
	"github.com/msto63/frege/internal/render"
	"github.com/msto63/frege/internal/watch"
	"github.com/msto63/frege/pkg/core/cache"
	"github.com/msto63/frege/pkg/core/config"
)

var (
	watchClear    bool
	watchCache    bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch file...",
	Short: "Re-parse scripts whenever they change",
	Long: `Parse the given scripts, print their trees, and print them again each
time a file is saved. Errors are printed in place of the tree and
watching continues.

When settings come from a config file, edits to that file apply to the
next rendering (for example switching output.format).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: json, yaml, tree, sexpr (default from config)")
	watchCmd.Flags().IntVar(&parseIndent, "indent", 0, "indentation for json and yaml (default from config)")
	watchCmd.Flags().BoolVar(&parseCompact, "compact", false, "single-line json")
	watchCmd.Flags().BoolVar(&watchClear, "clear", false, "clear the screen before each rendering")
	watchCmd.Flags().BoolVar(&watchCache, "cache", false, "use the rendering cache")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-parsing")
}

// watchSession renders files for the watch command. Renderings come from
// the file watcher and the config watcher, so output is serialized.
type watchSession struct {
	mu    sync.Mutex
	ctx   context.Context
	cmd   *cobra.Command
	opts  render.Options
	store cache.Store
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions(cmd)
	if err != nil {
		return err
	}

	w, err := watch.New(args, watch.Options{Debounce: watchDebounce, Logger: logger})
	if err != nil {
		return err
	}

	s := &watchSession{ctx: cmd.Context(), cmd: cmd, opts: opts, store: openStore(watchCache)}
	if s.store != nil {
		defer s.store.Close()
	}

	if rawConfig != nil && rawConfig.FilePath() != "" {
		rawConfig.OnChange(func(_, newConfig *frconfig.Config) {
			s.reload(newConfig, args)
		})
		if err := rawConfig.Watch(func(err error) {
			logger.WarnWithErr("config reload failed", err)
		}); err != nil {
			logger.WarnWithErr("config changes will not apply", err)
		} else {
			defer rawConfig.StopWatching()
		}
	}

	for _, path := range args {
		s.show(path)
	}
	logger.Info("watching for changes", frlog.Int("files", len(args)))

	return w.Run(cmd.Context(), s.show)
}

// show renders one file
func (s *watchSession) show(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.cmd.OutOrStdout()
	if watchClear {
		fmt.Fprint(out, "\033[H\033[2J")
	}
	st := render.NewStyles(s.opts.Color)
	fmt.Fprintln(out, st.Muted.Render(fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), path)))

	text, err := readFile(path)
	if err != nil {
		report(s.cmd, path, err)
		return
	}

	data, hit, err := s.render(path, text)
	if err != nil {
		report(s.cmd, path, err)
		return
	}
	if hit {
		logger.Debug("rendering served from cache", frlog.String("path", path))
	}
	writeAll(out, data)
}

// render parses and renders text, through the cache when one is open
func (s *watchSession) render(name, text string) ([]byte, bool, error) {
	compute := func() ([]byte, error) {
		res, err := engine.Parse(s.ctx, name, text)
		if err != nil {
			return nil, err
		}
		return render.Bytes(res.Program, s.opts)
	}

	if s.store == nil {
		data, err := compute()
		return data, false, err
	}
	return cache.Lookup(s.ctx, s.store, cache.KeyFor(text, s.opts.CacheFormat()), name, compute)
}

// reload applies changed output settings and renders all files again.
// Command line flags keep precedence.
func (s *watchSession) reload(cfg *frconfig.Config, paths []string) {
	next, err := config.FromConfig(cfg)
	if err != nil {
		logger.WarnWithErr("ignoring invalid config change", err)
		return
	}

	s.mu.Lock()
	flags := s.cmd.Flags()
	if !flags.Changed("format") {
		s.opts.Format = next.Output.Format
	}
	if !flags.Changed("indent") {
		s.opts.Indent = next.Output.Indent
	}
	if !noColor {
		s.opts.Color = next.Output.Color
	}
	format := s.opts.Format
	s.mu.Unlock()

	logger.Info("configuration reloaded", frlog.String("format", format))
	for _, path := range paths {
		s.show(path)
	}
}

func writeAll(w io.Writer, data []byte) {
	if _, err := w.Write(data); err != nil {
		logger.WarnWithErr("write failed", err)
	}
}
