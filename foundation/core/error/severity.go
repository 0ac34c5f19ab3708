// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps them to
//              log levels when an error is reported.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-10-12 v0.2.0: Code mapping for script codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem with user supplied input
	// Examples: malformed script, unknown character
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects one operation
	SeverityMedium

	// SeverityHigh indicates a broken environment
	// Examples: unreadable config, cache database failure
	SeverityHigh

	// SeverityCritical indicates a programming error
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeCache, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh

	case CodeLexical, CodeGrammar, CodeInputTooLarge, CodeInvalidInput, CodeNotFound, CodeCancelled:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
