// File: level.go
// Title: Log Level Definitions
// Description: Defines log levels for filtering log output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2025-10-12 v0.2.0: Dropped the audit level, lipgloss colors

package log

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace logs every token and production; very noisy
	LevelTrace Level = iota

	// LevelDebug logs parse start and completion
	LevelDebug

	// LevelInfo represents general informational messages
	LevelInfo

	// LevelWarn indicates a failed parse or a degraded component
	LevelWarn

	// LevelError represents errors the user has to act on
	LevelError

	// LevelFatal terminates the program after logging
	LevelFatal
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ShortString returns a short string representation of the log level
func (l Level) ShortString() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	case LevelFatal:
		return "FTL"
	default:
		return "???"
	}
}

// Color returns the ANSI palette color used by the console format
func (l Level) Color() lipgloss.Color {
	switch l {
	case LevelTrace:
		return lipgloss.Color("8")
	case LevelDebug:
		return lipgloss.Color("6")
	case LevelInfo:
		return lipgloss.Color("2")
	case LevelWarn:
		return lipgloss.Color("3")
	case LevelError:
		return lipgloss.Color("1")
	case LevelFatal:
		return lipgloss.Color("5")
	default:
		return lipgloss.Color("7")
	}
}

// ShouldLog returns true if this level should be logged given the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel parses a string into a log level
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf", "information":
		return LevelInfo, nil
	case "warn", "wrn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "fatal", "ftl":
		return LevelFatal, nil
	default:
		return LevelInfo, &ParseError{
			Input: level,
			Type:  "level",
		}
	}
}

// ParseError represents an error parsing a log configuration value
type ParseError struct {
	Input string
	Type  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// DefaultLevel returns the default log level
func DefaultLevel() Level {
	return LevelInfo
}
