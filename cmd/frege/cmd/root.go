package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	frconfig "github.com/msto63/frege/foundation/core/config"
	frerror "github.com/msto63/frege/foundation/core/error"
	frlog "github.com/msto63/frege/foundation/core/log"
	"github.com/msto63/frege/foundation/script"
	"github.com/msto63/frege/internal/render"
	"github.com/msto63/frege/pkg/core/config"
)

// Exit codes
const (
	ExitOK    = 0
	ExitParse = 1 // At least one input failed to parse
	ExitUsage = 2 // Bad flags, configuration or I/O
)

// exitError ends the program with code after the command already
// reported what went wrong
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var (
	errParseFailed = &exitError{code: ExitParse}
	errInputFailed = &exitError{code: ExitUsage}
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	verbose   bool
	noColor   bool

	settings  *config.Settings
	rawConfig *frconfig.Config
	logger    *frlog.Logger
	engine    *script.Engine
)

var rootCmd = &cobra.Command{
	Use:   "frege",
	Short: "Tokenizer and parser for a small C-like scripting language",
	Long: `frege tokenizes and parses scripts written in a small C-like language
and prints the abstract syntax tree.

The language has let declarations, if/while/do-while/for statements,
functions (def), classes with single inheritance, and the usual
assignment, logical, relational and arithmetic operators.

Configuration is read from frege.toml or frege.yaml in ., ./configs or
~/.config/frege; FREGE_* environment variables override file values
(FREGE_OUTPUT_FORMAT=yaml sets output.format).

Exit codes:
  0  success
  1  a script failed to parse
  2  usage, configuration or I/O error`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(os.Stderr, "error: %s\n", render.Diagnostic(err))
	return ExitUsage
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: discovered frege.toml/yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, text, json, logfmt")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// setup loads settings and builds the logger and engine shared by all
// commands. Flags take precedence over environment and config file.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	settings, rawConfig, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	switch {
	case cmd.Flags().Changed("log-level"):
		settings.Log.Level = logLevel
	case verbose:
		settings.Log.Level = "debug"
	}
	if cmd.Flags().Changed("log-format") {
		settings.Log.Format = logFormat
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		settings.Output.Color = false
	}

	level, err := frlog.ParseLevel(settings.Log.Level)
	if err != nil {
		return frerror.Wrap(err, "invalid log level").
			WithCode(frerror.CodeInvalidConfig).
			WithOperation("cli.setup")
	}
	format, err := frlog.ParseFormat(settings.Log.Format)
	if err != nil {
		return frerror.Wrap(err, "invalid log format").
			WithCode(frerror.CodeInvalidConfig).
			WithOperation("cli.setup")
	}

	logger = frlog.NewWithConfig(frlog.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
		Name:   "frege",
	})
	frlog.SetDefault(logger)

	engine = script.New(script.Options{
		Logger:         logger,
		MaxInputLength: settings.Parser.MaxInputLength,
	})

	if src := settings.Source(); src != "" {
		logger.Debug("configuration loaded", frlog.String("path", src))
	}
	return nil
}

// styles returns the output styles for the current settings
func styles() render.Styles {
	return render.NewStyles(settings.Output.Color)
}
