// ============================================================================
// frege - Script Parser Toolkit
// ============================================================================
//
// Package:     render
// Description: AST output in JSON, YAML and s-expression form
// Author:      msto63
// Created:     2025-10-12
// License:     MIT
// ============================================================================

package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	frerror "github.com/msto63/frege/foundation/core/error"
	"github.com/msto63/frege/foundation/script/ast"
	"github.com/msto63/frege/pkg/core/config"
)

// Options controls AST rendering
type Options struct {
	Format  string // One of config.OutputFormats
	Indent  int    // Spaces per level for json and yaml
	Compact bool   // Single-line JSON
	Color   bool   // Styled tree output
}

// DefaultOptions returns options matching the default settings
func DefaultOptions() Options {
	return Options{Format: config.FormatJSON, Indent: 2}
}

// OptionsFromSettings derives render options from settings
func OptionsFromSettings(s *config.Settings) Options {
	return Options{
		Format: s.Output.Format,
		Indent: s.Output.Indent,
		Color:  s.Output.Color,
	}
}

// CacheFormat describes the options as a cache key component. Renderings
// with equal CacheFormat are byte-identical.
func (o Options) CacheFormat() string {
	switch o.Format {
	case config.FormatJSON:
		if o.Compact {
			return "json/compact"
		}
		return fmt.Sprintf("json/%d", o.Indent)
	case config.FormatYAML:
		return fmt.Sprintf("yaml/%d", o.Indent)
	case config.FormatTree:
		if o.Color {
			return "tree/color"
		}
		return "tree/plain"
	default:
		return o.Format
	}
}

// Render writes n in the configured format
func Render(w io.Writer, n ast.Node, opts Options) error {
	out, err := Bytes(n, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Bytes renders n in the configured format. Output ends with a newline.
func Bytes(n ast.Node, opts Options) ([]byte, error) {
	switch opts.Format {
	case config.FormatJSON, "":
		return JSON(n, opts.Indent, opts.Compact)
	case config.FormatYAML:
		return YAML(n, opts.Indent)
	case config.FormatSExpr:
		return []byte(SExpr(n) + "\n"), nil
	case config.FormatTree:
		return []byte(Tree(n, NewStyles(opts.Color)) + "\n"), nil
	default:
		return nil, frerror.Newf("unknown output format %q", opts.Format).
			WithCode(frerror.CodeInvalidInput).
			WithOperation("render").
			WithDetail("formats", strings.Join(config.OutputFormats, ", "))
	}
}

// JSON renders n as JSON. indent <= 0 or compact yields a single line.
func JSON(n ast.Node, indent int, compact bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if compact || indent <= 0 {
		out, err = ast.Marshal(n)
	} else {
		out, err = ast.MarshalIndent(n, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return nil, renderError(err, "json")
	}
	return append(out, '\n'), nil
}

// YAML renders n as a block-style YAML document with the JSON field order
func YAML(n ast.Node, indent int) ([]byte, error) {
	doc, err := document(n)
	if err != nil {
		return nil, err
	}
	if indent <= 0 {
		indent = 2
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(doc); err != nil {
		return nil, renderError(err, "yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, renderError(err, "yaml")
	}
	return buf.Bytes(), nil
}

// SExpr renders n as a single-line s-expression
func SExpr(n ast.Node) string {
	return ast.ToSExpr(n)
}

// document converts n into an ordered YAML node tree. JSON is valid YAML,
// so decoding the JSON encoding keeps both field order and value types.
func document(n ast.Node) (*yaml.Node, error) {
	data, err := ast.Marshal(n)
	if err != nil {
		return nil, renderError(err, "yaml")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, renderError(err, "yaml")
	}
	blockStyle(&doc)
	return &doc, nil
}

// blockStyle clears the flow and quoting styles taken over from JSON
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func renderError(err error, format string) error {
	return frerror.Wrap(err, "failed to render "+format).
		WithCode(frerror.CodeInternal).
		WithOperation("render").
		WithDetail("format", format)
}
