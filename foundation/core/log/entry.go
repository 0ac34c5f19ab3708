// File: entry.go
// Title: Log Entry Structure
// Description: Defines the log entry that holds one log message together
//              with its parse context and custom fields.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive log entry structure
// - 2025-10-12 v0.2.0: ParseID and Source replace request context

package log

import (
	"sort"
	"time"
)

// Entry represents a single log entry with all its metadata
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string

	// Parse context
	ParseID string
	Source  string

	Fields Fields
	Error  error

	Duration time.Duration
	Caller   *CallerInfo
}

// CallerInfo contains information about where the log was called from
type CallerInfo struct {
	Function string
	File     string
	Line     int
}

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// Field creates a single field for logging
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an error field for logging
func Err(err error) Fields {
	return Fields{"error": err}
}

// Int creates an integer field for logging
func Int(key string, value int) Fields {
	return Fields{key: value}
}

// String creates a string field for logging
func String(key string, value string) Fields {
	return Fields{key: value}
}

// Merge combines two Fields into a new one; other wins on conflicts
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for k, v := range f {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Clone creates a copy of the Fields
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	result := make(Fields, len(f))
	for k, v := range f {
		result[k] = v
	}
	return result
}

// Keys returns the field names in sorted order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewEntry creates a new log entry with the given level and message
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// WithCaller adds caller information to the entry
func (e *Entry) WithCaller(function, file string, line int) *Entry {
	e.Caller = &CallerInfo{
		Function: function,
		File:     file,
		Line:     line,
	}
	return e
}
