// File: timer.go
// Title: Duration Timer
// Description: Measures an operation and logs its duration on completion.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-10-12 v0.2.0: Failure level configurable, removed checkpoints

package log

import (
	"time"
)

// Timer measures the duration of one operation
type Timer struct {
	logger       *Logger
	operation    string
	startTime    time.Time
	fields       Fields
	level        Level
	failureLevel Level
	stopped      bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:       logger,
		operation:    operation,
		startTime:    time.Now(),
		fields:       make(Fields),
		level:        LevelDebug,
		failureLevel: LevelError,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithFailureLevel sets the log level for StopWithError
func (t *Timer) WithFailureLevel(level Level) *Timer {
	t.failureLevel = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs "<operation> completed". A second call
// returns 0 and logs nothing.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		t.logger.log(t.level, t.operation+" completed", nil, t.durationFields(elapsed))
	}
	return elapsed
}

// StopWithError stops the timer and logs "<operation> failed" with err
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		fields := t.durationFields(elapsed)
		fields["success"] = false
		t.logger.log(t.failureLevel, t.operation+" failed", err, fields)
	}
	return elapsed
}

// Cancel stops the timer without logging
func (t *Timer) Cancel() {
	t.stopped = true
}

// IsRunning returns true if the timer is still running
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (t *Timer) durationFields(elapsed time.Duration) Fields {
	fields := t.fields.Clone()
	fields["operation"] = t.operation
	fields["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6
	return fields
}
