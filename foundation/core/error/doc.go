// Package error provides the coded error type used across frege.
//
// Package: error
// Title: frege Error Handling
// Description: Structured errors with codes, severities, details and a cause
//              chain. The script parser itself returns plain typed errors
//              (lexical and grammar errors); the engine facade and the CLI
//              wrap them here so callers can branch on a Code and logs carry
//              a consistent shape.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-10-12 v0.2.0: Reduced to the script front-end codes, parse IDs replace request IDs
//
// Usage:
//   import frerror "github.com/msto63/frege/foundation/core/error"
//
//   err := frerror.Wrap(grammarErr, "parse failed").
//     WithCode(frerror.CodeGrammar).
//     WithDetail("source", "main.fg")
//
//   if frerror.HasCode(err, frerror.CodeGrammar) {
//     // report the offending token
//   }
package error
