// File: script.go
// Title: Script Engine
// Description: High-level entry points around the script parser: size
//              limits, cancellation, file loading, parallel parsing and
//              structured errors with parse IDs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial high-level engine implementation
// - 2025-10-12 v0.2.0: Script engine with file and batch parsing

package script

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	frerror "github.com/msto63/frege/foundation/core/error"
	frlog "github.com/msto63/frege/foundation/core/log"
	"github.com/msto63/frege/foundation/script/ast"
	"github.com/msto63/frege/foundation/script/parser"
)

// DefaultMaxInputLength bounds source size in bytes unless configured
const DefaultMaxInputLength = 1 << 20

// Parse parses source into a Program. Errors are *parser.LexicalError or
// *parser.GrammarError.
func Parse(source string) (*ast.Program, error) {
	return parser.New(parser.Options{Logger: frlog.Discard()}).Parse(source)
}

// Options configures the engine
type Options struct {
	Logger *frlog.Logger
	// MaxInputLength in bytes; 0 selects DefaultMaxInputLength, a negative
	// value disables the limit
	MaxInputLength int
}

// Engine parses scripts with logging and structured errors. It holds no
// per-parse state and is safe for concurrent use.
type Engine struct {
	logger   *frlog.Logger
	maxInput int
}

// Result is one successful parse
type Result struct {
	Name     string
	ParseID  string
	Program  *ast.Program
	Bytes    int
	Duration time.Duration
}

// FileResult is the outcome for one file of ParseFiles. Exactly one of
// Result and Err is set.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// New creates a new engine with the given options
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = frlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	return &Engine{
		logger:   opts.Logger.WithField("component", "script-engine"),
		maxInput: opts.MaxInputLength,
	}
}

// MaxInputLength returns the effective size limit; negative means none
func (e *Engine) MaxInputLength() int {
	return e.maxInput
}

// NewParseID returns a short random identifier for log correlation
func NewParseID() string {
	return uuid.NewString()[:8]
}

// Parse parses source. name identifies the source in logs and errors,
// typically a file path.
func (e *Engine) Parse(ctx context.Context, name, source string) (*Result, error) {
	parseID := NewParseID()
	logger := e.logger.WithParseID(parseID).WithSource(name)

	if err := ctx.Err(); err != nil {
		return nil, frerror.Wrap(err, "parse cancelled").
			WithCode(frerror.CodeCancelled).
			WithOperation("script.parse").
			WithParseID(parseID).
			WithSource(name)
	}

	if e.maxInput >= 0 && len(source) > e.maxInput {
		err := frerror.Newf("input exceeds maximum length: %d > %d", len(source), e.maxInput).
			WithCode(frerror.CodeInputTooLarge).
			WithOperation("script.parse").
			WithParseID(parseID).
			WithSource(name).
			WithDetail("bytes", len(source)).
			WithDetail("limit", e.maxInput)
		logger.LogError(err)
		return nil, err
	}

	timer := logger.StartTimer("script.parse").
		WithField("bytes", len(source)).
		WithFailureLevel(frlog.LevelDebug)

	p := parser.New(parser.Options{Logger: logger})
	program, err := p.Parse(source)
	if err != nil {
		serr := wrapParseError(err, parseID, name)
		timer.StopWithError(serr)
		return nil, serr
	}

	elapsed := timer.WithField("statements", len(program.Body)).Stop()
	return &Result{
		Name:     name,
		ParseID:  parseID,
		Program:  program,
		Bytes:    len(source),
		Duration: elapsed,
	}, nil
}

// wrapParseError classifies a parser failure and attaches its position
func wrapParseError(err error, parseID, name string) *frerror.Error {
	var (
		lerr *parser.LexicalError
		gerr *parser.GrammarError
		serr *frerror.Error
	)

	switch {
	case errors.As(err, &lerr):
		serr = frerror.Wrap(err, "lexical error").
			WithCode(frerror.CodeLexical).
			WithDetail("line", lerr.Line).
			WithDetail("column", lerr.Column).
			WithDetail("offset", lerr.Offset)
	case errors.As(err, &gerr):
		serr = frerror.Wrap(err, "syntax error").
			WithCode(frerror.CodeGrammar).
			WithDetail("line", gerr.Line).
			WithDetail("column", gerr.Column)
		if gerr.Expected != "" {
			serr = serr.WithDetail("expected", gerr.Expected)
		}
		if gerr.EndOfInput() {
			serr = serr.WithDetail("end_of_input", true)
		}
	default:
		serr = frerror.Wrap(err, "parse failed").WithCode(frerror.CodeInternal)
	}

	return serr.WithOperation("script.parse").WithParseID(parseID).WithSource(name)
}

// ParseFile reads and parses one file
func (e *Engine) ParseFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := frerror.CodeIO
		if errors.Is(err, fs.ErrNotExist) {
			code = frerror.CodeNotFound
		}
		return nil, frerror.Wrap(err, "failed to read script").
			WithCode(code).
			WithOperation("script.read").
			WithSource(path)
	}
	return e.Parse(ctx, path, string(data))
}

// Source is script text with a name for logs and errors
type Source struct {
	Name string
	Text string
}

// ParseFiles parses independent files with up to workers goroutines and
// returns one FileResult per path in input order. A failing file does not
// stop the others. Once ctx is done no further files are started and the
// remaining ones report CANCELLED. workers <= 0 uses GOMAXPROCS.
func (e *Engine) ParseFiles(ctx context.Context, paths []string, workers int) []FileResult {
	return e.each(ctx, "script.parse_files", paths, workers, func(i int) (*Result, error) {
		return e.ParseFile(ctx, paths[i])
	})
}

// ParseSources is ParseFiles for text already in memory. FileResult.Path
// holds the source name.
func (e *Engine) ParseSources(ctx context.Context, sources []Source, workers int) []FileResult {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name
	}
	return e.each(ctx, "script.parse_sources", names, workers, func(i int) (*Result, error) {
		return e.Parse(ctx, sources[i].Name, sources[i].Text)
	})
}

// each runs parse for every name with bounded parallelism
func (e *Engine) each(ctx context.Context, op string, names []string, workers int, parse func(i int) (*Result, error)) []FileResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(names))
	timer := e.logger.StartTimer(op).
		WithField("files", len(names)).
		WithField("workers", workers)

	var g errgroup.Group
	g.SetLimit(workers)

	for i, name := range names {
		results[i].Path = name
		if err := ctx.Err(); err != nil {
			results[i].Err = frerror.Wrap(err, "parse cancelled").
				WithCode(frerror.CodeCancelled).
				WithOperation(op).
				WithSource(name)
			continue
		}

		g.Go(func() error {
			results[i].Result, results[i].Err = parse(i)
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	timer.WithField("failed", failed).Stop()

	return results
}
