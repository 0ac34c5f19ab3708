// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type: leveled structured logging with
//              persistent context fields, parse context and integration
//              with the frege error type.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-10-12 v0.2.0: Parse context, stderr default, discard logger

package log

import (
	"errors"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	frerror "github.com/msto63/frege/foundation/core/error"
)

// Logger represents a structured logger with contextual information.
// The With* methods return modified copies; a Logger is safe for
// concurrent use.
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string

	contextFields Fields
	parseID       string
	source        string

	enableCaller     bool
	callerSkipFrames int

	mutex   sync.RWMutex
	writeMu *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level            Level
	Format           Format
	Output           io.Writer
	Name             string
	EnableCaller     bool
	CallerSkipFrames int
}

// New creates a new logger writing JSON at info level to stderr
func New() *Logger {
	return &Logger{
		level:         DefaultLevel(),
		formatter:     NewJSONFormatter(),
		output:        os.Stderr,
		contextFields: make(Fields),
		writeMu:       &sync.Mutex{},
	}
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	logger := &Logger{
		level:            config.Level,
		formatter:        GetFormatter(config.Format),
		output:           config.Output,
		name:             config.Name,
		contextFields:    make(Fields),
		enableCaller:     config.EnableCaller,
		callerSkipFrames: config.CallerSkipFrames,
		writeMu:          &sync.Mutex{},
	}
	if logger.output == nil {
		logger.output = os.Stderr
	}
	if console, ok := logger.formatter.(*ConsoleFormatter); ok {
		// Colors follow the terminal the log goes to, not stdout
		console.Renderer = lipgloss.NewRenderer(logger.output)
	}
	return logger
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelFatal + 1, Output: io.Discard})
}

// WithLevel sets the minimum log level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithFormat sets the log format
func (l *Logger) WithFormat(format Format) *Logger {
	clone := l.clone()
	clone.formatter = GetFormatter(format)
	return clone
}

// WithFormatter sets a custom formatter
func (l *Logger) WithFormatter(formatter Formatter) *Logger {
	clone := l.clone()
	clone.formatter = formatter
	return clone
}

// WithOutput sets the output destination
func (l *Logger) WithOutput(output io.Writer) *Logger {
	clone := l.clone()
	clone.output = output
	clone.writeMu = &sync.Mutex{}
	if console, ok := clone.formatter.(*ConsoleFormatter); ok {
		c := *console
		c.Renderer = lipgloss.NewRenderer(output)
		clone.formatter = &c
	}
	return clone
}

// WithName sets the logger name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField adds a persistent field to all log entries
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields adds persistent fields to all log entries
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// WithParseID ties all following entries to one parse run
func (l *Logger) WithParseID(parseID string) *Logger {
	clone := l.clone()
	clone.parseID = parseID
	return clone
}

// WithSource records the script name on all following entries
func (l *Logger) WithSource(source string) *Logger {
	clone := l.clone()
	clone.source = source
	return clone
}

// WithCaller enables caller information in log entries
func (l *Logger) WithCaller(skip int) *Logger {
	clone := l.clone()
	clone.enableCaller = true
	clone.callerSkipFrames = skip
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Fatal logs a fatal level message and exits the program
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields...)
	os.Exit(1)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs an error at a level derived from its severity. Script
// errors (low severity) are logged at info since they are the user's input.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var coded *frerror.Error
	if !errors.As(err, &coded) {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     coded.Code(),
		"error_severity": coded.Severity().String(),
	}
	if op := coded.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range coded.Details() {
		fields["error_"+k] = v
	}

	level := LevelError
	switch coded.Severity() {
	case frerror.SeverityLow:
		level = LevelInfo
	case frerror.SeverityMedium:
		level = LevelWarn
	}
	l.log(level, coded.Message(), err, fields)
}

// StartTimer creates and starts a new duration timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return level.ShouldLog(l.level)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.level
}

// SetLevel sets the log level in place
func (l *Logger) SetLevel(level Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.level = level
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	l.mutex.RLock()
	if !level.ShouldLog(l.level) {
		l.mutex.RUnlock()
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.ParseID = l.parseID
	entry.Source = l.source
	entry.Error = err

	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}

	if l.enableCaller {
		if function, file, line, ok := l.getCaller(); ok {
			entry.WithCaller(function, file, line)
		}
	}

	formatter := l.formatter
	output := l.output
	writeMu := l.writeMu
	l.mutex.RUnlock()

	formatted, formatErr := formatter.Format(entry)
	if formatErr != nil {
		return
	}
	writeMu.Lock()
	_, _ = output.Write(formatted)
	writeMu.Unlock()
}

// getCaller skips getCaller, log and the public method
func (l *Logger) getCaller() (function, file string, line int, ok bool) {
	pc, file, line, ok := runtime.Caller(3 + l.callerSkipFrames)
	if !ok {
		return "", "", 0, false
	}

	function = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if idx := strings.LastIndex(function, "."); idx != -1 {
			function = function[idx+1:]
		}
	}
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		file = file[idx+1:]
	}
	return function, file, line, true
}

func (l *Logger) clone() *Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return &Logger{
		level:            l.level,
		formatter:        l.formatter,
		output:           l.output,
		name:             l.name,
		contextFields:    l.contextFields.Clone(),
		parseID:          l.parseID,
		source:           l.source,
		enableCaller:     l.enableCaller,
		callerSkipFrames: l.callerSkipFrames,
		writeMu:          l.writeMu,
	}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Debug logs a debug message using the default logger
func Debug(message string, fields ...Fields) {
	GetDefault().Debug(message, fields...)
}

// Info logs an info message using the default logger
func Info(message string, fields ...Fields) {
	GetDefault().Info(message, fields...)
}

// Warn logs a warning message using the default logger
func Warn(message string, fields ...Fields) {
	GetDefault().Warn(message, fields...)
}

// Error logs an error message using the default logger
func Error(message string, fields ...Fields) {
	GetDefault().Error(message, fields...)
}
