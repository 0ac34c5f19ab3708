// File: error.go
// Title: Core Error Implementation
// Description: Implements the Error type with code, severity, details and a
//              cause chain. Compatible with errors.Is / errors.As through
//              Unwrap so typed parser errors stay reachable after wrapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2025-10-12 v0.2.0: Parse ID and source name replace user/request context

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"
)

// MaxStackFrames limits the number of stack frames captured
const MaxStackFrames = 16

// Error represents a structured error with context, codes, and metadata
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	timestamp time.Time

	details   map[string]interface{}
	operation string
	parseID   string
	source    string

	stackTrace []StackFrame
}

// StackFrame represents a single frame in the stack trace
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{
		message:    message,
		code:       CodeUnknown,
		severity:   SeverityMedium,
		timestamp:  time.Now(),
		details:    make(map[string]interface{}),
		stackTrace: captureStackTrace(2),
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	e := New(fmt.Sprintf(format, args...))
	e.stackTrace = captureStackTrace(2)
	return e
}

// Wrap wraps an existing error with additional context. Code, severity,
// details and parse context of a wrapped *Error are carried over.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{
		message:    message,
		cause:      err,
		code:       CodeUnknown,
		severity:   SeverityMedium,
		timestamp:  time.Now(),
		details:    make(map[string]interface{}),
		stackTrace: captureStackTrace(2),
	}

	var inner *Error
	if errors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
		wrapped.parseID = inner.parseID
		wrapped.source = inner.source
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}

	return wrapped
}

// Error implements the standard error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the underlying cause for error unwrapping
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the error code. The severity follows the code unless it
// was set explicitly before.
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	if e.severity == SeverityMedium {
		e.severity = GetSeverityFromCode(code)
	}
	return e
}

// WithSeverity sets the error severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithDetails adds multiple key-value details to the error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	for k, v := range details {
		e.details[k] = v
	}
	return e
}

// WithOperation sets the operation that caused the error
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithParseID ties the error to a single parse run
func (e *Error) WithParseID(parseID string) *Error {
	e.parseID = parseID
	return e
}

// WithSource records the name of the script the error belongs to
func (e *Error) WithSource(source string) *Error {
	e.source = source
	return e
}

// Message returns the error message without the cause
func (e *Error) Message() string {
	return e.message
}

// Code returns the error code
func (e *Error) Code() Code {
	return e.code
}

// Severity returns the error severity
func (e *Error) Severity() Severity {
	return e.severity
}

// Timestamp returns when the error occurred
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// Details returns a copy of the error details
func (e *Error) Details() map[string]interface{} {
	result := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		result[k] = v
	}
	return result
}

// Operation returns the operation that caused the error
func (e *Error) Operation() string {
	return e.operation
}

// ParseID returns the parse run the error belongs to
func (e *Error) ParseID() string {
	return e.parseID
}

// Source returns the script name the error belongs to
func (e *Error) Source() string {
	return e.source
}

// StackTrace returns the stack trace
func (e *Error) StackTrace() []StackFrame {
	result := make([]StackFrame, len(e.stackTrace))
	copy(result, e.stackTrace)
	return result
}

// RootCause returns the deepest error in the chain
func (e *Error) RootCause() error {
	var current error = e
	for {
		next := errors.Unwrap(current)
		if next == nil {
			return current
		}
		current = next
	}
}

// String returns a detailed multi-line representation of the error
func (e *Error) String() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Error: %s", e.message))
	parts = append(parts, fmt.Sprintf("Code: %s", e.code))
	parts = append(parts, fmt.Sprintf("Severity: %s", e.severity))
	parts = append(parts, fmt.Sprintf("Timestamp: %s", e.timestamp.Format(time.RFC3339)))

	if e.operation != "" {
		parts = append(parts, fmt.Sprintf("Operation: %s", e.operation))
	}
	if e.source != "" {
		parts = append(parts, fmt.Sprintf("Source: %s", e.source))
	}
	if e.parseID != "" {
		parts = append(parts, fmt.Sprintf("ParseID: %s", e.parseID))
	}

	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		detailStrs := make([]string, 0, len(keys))
		for _, k := range keys {
			detailStrs = append(detailStrs, fmt.Sprintf("%s=%v", k, e.details[k]))
		}
		parts = append(parts, fmt.Sprintf("Details: {%s}", strings.Join(detailStrs, ", ")))
	}

	if e.cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %s", e.cause.Error()))
	}

	return strings.Join(parts, "\n")
}

// MarshalJSON implements json.Marshaler for structured logging
func (e *Error) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{
		"message":   e.message,
		"code":      e.code,
		"severity":  e.severity.String(),
		"timestamp": e.timestamp.Format(time.RFC3339),
		"details":   e.details,
	}

	if e.operation != "" {
		data["operation"] = e.operation
	}
	if e.source != "" {
		data["source"] = e.source
	}
	if e.parseID != "" {
		data["parse_id"] = e.parseID
	}
	if e.cause != nil {
		data["cause"] = e.cause.Error()
	}

	return json.Marshal(data)
}

func captureStackTrace(skip int) []StackFrame {
	pcs := make([]uintptr, MaxStackFrames)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	result := make([]StackFrame, 0, n)
	for {
		frame, more := frames.Next()
		result = append(result, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return result
}

// HasCode checks if any error in the chain carries the given code
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.code == code
	}
	return false
}

// GetCode returns the code of the outermost *Error in the chain, or
// CodeUnknown
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeUnknown
}

// GetSeverity returns the severity of the outermost *Error in the chain, or
// SeverityMedium
func GetSeverity(err error) Severity {
	var e *Error
	if errors.As(err, &e) {
		return e.severity
	}
	return SeverityMedium
}
