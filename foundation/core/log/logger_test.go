// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, context and formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive logger tests
// - 2025-10-12 v0.2.0: Parse context and LogError severity mapping

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	frerror "github.com/msto63/frege/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf}), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNew(t *testing.T) {
	logger := New()
	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
	if logger.contextFields == nil {
		t.Error("New() should initialize context fields")
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatJSON)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "warn" || lines[1]["level"] != "error" {
		t.Errorf("unexpected levels: %v, %v", lines[0]["level"], lines[1]["level"])
	}
}

func TestContextIsCopied(t *testing.T) {
	base, buf := newBufferLogger(LevelDebug, FormatJSON)
	child := base.WithField("component", "script-engine").WithParseID("1a2b3c4d").WithSource("main.fg")

	base.Info("base")
	child.Info("child", Fields{"statements": 3})

	lines := decodeLines(t, buf)
	if _, ok := lines[0]["component"]; ok {
		t.Error("parent logger should not see child fields")
	}
	want := map[string]interface{}{
		"component":  "script-engine",
		"parse_id":   "1a2b3c4d",
		"source":     "main.fg",
		"statements": float64(3),
		"message":    "child",
	}
	for k, v := range want {
		if lines[1][k] != v {
			t.Errorf("%s = %v, want %v", k, lines[1][k], v)
		}
	}
}

func TestLogErrorSeverityMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCode  interface{}
	}{
		{
			name:      "grammar error is info",
			err:       frerror.New("unexpected token").WithCode(frerror.CodeGrammar),
			wantLevel: "info",
			wantCode:  "SCRIPT_GRAMMAR",
		},
		{
			name:      "cache error is error",
			err:       frerror.New("disk full").WithCode(frerror.CodeCache),
			wantLevel: "error",
			wantCode:  "CACHE_ERROR",
		},
		{
			name:      "plain error is error",
			err:       errors.New("plain"),
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatJSON)
			logger.LogError(tt.err)

			lines := decodeLines(t, buf)
			if len(lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(lines))
			}
			if lines[0]["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", lines[0]["level"], tt.wantLevel)
			}
			if lines[0]["error_code"] != tt.wantCode {
				t.Errorf("error_code = %v, want %v", lines[0]["error_code"], tt.wantCode)
			}
		})
	}
}

func TestTextAndLogfmtAreDeterministic(t *testing.T) {
	tests := []struct {
		format Format
		want   []string
	}{
		{FormatText, []string{"[INF]", "(src=a.fg)", "done", "[a=1 b=2]"}},
		{FormatLogfmt, []string{"level=info", `message="done"`, "a=1 b=2", `source="a.fg"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			logger, buf := newBufferLogger(LevelInfo, tt.format)
			logger.WithSource("a.fg").Info("done", Fields{"b": 2, "a": 1})
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestConsoleFormatterColors(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.ANSI)

	f := NewConsoleFormatter()
	f.Renderer = r
	out, _ := f.Format(NewEntry(LevelWarn, "careful"))
	if !strings.HasPrefix(string(out), "\x1b[") || !strings.Contains(string(out), "careful") {
		t.Errorf("console output should be colored: %q", out)
	}
	if !strings.HasSuffix(string(out), "\n") {
		t.Errorf("console output should end with a newline: %q", out)
	}

	f.DisableColors = true
	out, _ = f.Format(NewEntry(LevelWarn, "careful"))
	if strings.Contains(string(out), "\x1b[") {
		t.Errorf("colors should be disabled: %q", out)
	}
}

func TestConsoleLoggerPlainOutput(t *testing.T) {
	// A buffer is not a terminal, so no escape sequences are written
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatConsole, Output: &buf})
	logger.Warn("careful")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("console output to a buffer should be plain: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "careful") {
		t.Errorf("output %q missing message", buf.String())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if lvl, err := ParseLevel("WARNING"); err != nil || lvl != LevelWarn {
		t.Errorf("ParseLevel(WARNING) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
	if f, err := ParseFormat("logfmt"); err != nil || f != FormatLogfmt {
		t.Errorf("ParseFormat(logfmt) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	timer := logger.StartTimer("parse").WithField("statements", 4)
	if timer.Stop() < 0 {
		t.Error("Stop() should return elapsed time")
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return 0")
	}

	failing := logger.StartTimer("parse").WithFailureLevel(LevelWarn)
	failing.StopWithError(errors.New("unexpected end of input"))

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["message"] != "parse completed" || lines[0]["statements"] != float64(4) {
		t.Errorf("unexpected completion line: %v", lines[0])
	}
	if lines[1]["message"] != "parse failed" || lines[1]["level"] != "warn" || lines[1]["success"] != false {
		t.Errorf("unexpected failure line: %v", lines[1])
	}
}

func TestConcurrentLogging(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.WithField("worker", n).Info("tick")
		}(i)
	}
	wg.Wait()

	if got := len(decodeLines(t, buf)); got != 20 {
		t.Errorf("got %d lines, want 20", got)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard() should disable every level")
	}
	logger.Error("nothing")
}
