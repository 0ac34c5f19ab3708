// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the script front-end, the
//              parse cache and the command line tool.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-10-12 v0.2.0: Script lexical/grammar codes, cache and IO codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeCancelled    Code = "CANCELLED"
	CodeIO           Code = "IO_ERROR"

	// Script front-end
	CodeLexical       Code = "SCRIPT_LEXICAL"
	CodeGrammar       Code = "SCRIPT_GRAMMAR"
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"

	// Storage
	CodeCache Code = "CACHE_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeCancelled, CodeIO,
		CodeLexical, CodeGrammar, CodeInputTooLarge,
		CodeCache,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeGrammar, CodeInputTooLarge:
		return "script"
	case CodeCache:
		return "storage"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeIO, CodeNotFound:
		return "io"
	default:
		return "generic"
	}
}

// IsSourceError reports whether the code blames the script text rather
// than the environment. The CLI uses it to pick the exit status.
func (c Code) IsSourceError() bool {
	switch c {
	case CodeLexical, CodeGrammar, CodeInputTooLarge:
		return true
	default:
		return false
	}
}
