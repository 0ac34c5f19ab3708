// File: format.go
// Title: Log Format Definitions
// Description: Output formats for log entries: JSON, plain text, colored
//              console and logfmt.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with multiple output formats
// - 2025-10-12 v0.2.0: Sorted field output, parse context fields, lipgloss
//   console colors

package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Format represents the output format for log messages
type Format int

const (
	// FormatJSON outputs one JSON object per line
	FormatJSON Format = iota

	// FormatText outputs human-readable text logs
	FormatText

	// FormatConsole outputs colored text for terminals
	FormatConsole

	// FormatLogfmt outputs key=value pairs
	FormatLogfmt
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatConsole:
		return "console"
	case FormatLogfmt:
		return "logfmt"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a log format
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console":
		return FormatConsole, nil
	case "logfmt":
		return FormatLogfmt, nil
	default:
		return FormatJSON, &ParseError{
			Input: format,
			Type:  "format",
		}
	}
}

// Formatter defines the interface for log formatters
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+8)

	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}

	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.ParseID != "" {
		data["parse_id"] = entry.ParseID
	}
	if entry.Source != "" {
		data["source"] = entry.Source
	}

	if entry.Error != nil {
		data["error"] = entry.Error.Error()
		if m, ok := entry.Error.(json.Marshaler); ok {
			if raw, err := m.MarshalJSON(); err == nil {
				var details map[string]interface{}
				if json.Unmarshal(raw, &details) == nil {
					data["error_details"] = details
				}
			}
		}
	}

	if entry.Duration > 0 {
		data["duration_ms"] = float64(entry.Duration.Nanoseconds()) / 1e6
	}

	if entry.Caller != nil {
		data["caller"] = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "15:04:05"}
}

// Format formats a log entry as text
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var parts []string

	if !f.DisableTimestamp {
		parts = append(parts, entry.Timestamp.Format(f.TimestampFormat))
	}

	parts = append(parts, fmt.Sprintf("[%s]", entry.Level.ShortString()))

	if entry.Logger != "" {
		parts = append(parts, fmt.Sprintf("{%s}", entry.Logger))
	}

	var ctx []string
	if entry.Source != "" {
		ctx = append(ctx, "src="+entry.Source)
	}
	if entry.ParseID != "" {
		ctx = append(ctx, "parse="+entry.ParseID)
	}
	if len(ctx) > 0 {
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(ctx, ",")))
	}

	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		fieldParts := make([]string, 0, len(entry.Fields))
		for _, k := range entry.Fields.Keys() {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("[%s]", strings.Join(fieldParts, " ")))
	}

	if entry.Error != nil {
		parts = append(parts, fmt.Sprintf("error=%q", entry.Error.Error()))
	}

	if entry.Duration > 0 {
		parts = append(parts, fmt.Sprintf("duration=%s", entry.Duration))
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// ConsoleFormatter formats log entries for terminals with colors.
// Renderer decides the color profile; nil uses the lipgloss default
// renderer bound to stdout.
type ConsoleFormatter struct {
	DisableColors bool
	Renderer      *lipgloss.Renderer
	*TextFormatter
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{TextFormatter: NewTextFormatter()}
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *Entry) ([]byte, error) {
	data, err := f.TextFormatter.Format(entry)
	if err != nil {
		return nil, err
	}
	if f.DisableColors {
		return data, nil
	}

	r := f.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	line := r.NewStyle().Foreground(entry.Level.Color()).Render(strings.TrimSuffix(string(data), "\n"))
	return []byte(line + "\n"), nil
}

// LogfmtFormatter formats log entries in logfmt format
type LogfmtFormatter struct {
	TimestampFormat string
}

// NewLogfmtFormatter creates a new logfmt formatter
func NewLogfmtFormatter() *LogfmtFormatter {
	return &LogfmtFormatter{TimestampFormat: time.RFC3339}
}

// Format formats a log entry in logfmt format
func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	parts := []string{
		"timestamp=" + entry.Timestamp.Format(f.TimestampFormat),
		"level=" + entry.Level.String(),
		fmt.Sprintf("message=%q", entry.Message),
	}

	if entry.Logger != "" {
		parts = append(parts, "logger="+entry.Logger)
	}
	if entry.ParseID != "" {
		parts = append(parts, "parse_id="+entry.ParseID)
	}
	if entry.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%q", entry.Source))
	}

	for _, k := range entry.Fields.Keys() {
		switch v := entry.Fields[k].(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%s=%q", k, v))
		case error:
			parts = append(parts, fmt.Sprintf("%s=%q", k, v.Error()))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}

	if entry.Error != nil {
		parts = append(parts, fmt.Sprintf("error=%q", entry.Error.Error()))
	}

	if entry.Duration > 0 {
		parts = append(parts, fmt.Sprintf("duration_ms=%.3f", float64(entry.Duration.Nanoseconds())/1e6))
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// GetFormatter returns a formatter for the specified format
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatText:
		return NewTextFormatter()
	case FormatConsole:
		return NewConsoleFormatter()
	case FormatLogfmt:
		return NewLogfmtFormatter()
	default:
		return NewJSONFormatter()
	}
}
