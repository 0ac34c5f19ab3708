// Package log provides structured logging for frege.
//
// Package: log
// Title: frege Structured Logging
// Description: Leveled, structured logging with persistent context fields,
//              four output formats and duration timers. Parse runs attach
//              their parse ID and source name so every line belonging to one
//              script can be grepped together.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-10-12 v0.2.0: Parse ID and source context, deterministic field order
//
// Usage:
//   import frlog "github.com/msto63/frege/foundation/core/log"
//
//   logger := frlog.New().
//     WithLevel(frlog.LevelDebug).
//     WithFormat(frlog.FormatConsole).
//     WithField("component", "script-engine")
//
//   timer := logger.WithParseID(id).StartTimer("parse")
//   program, err := parser.Parse(src)
//   if err != nil {
//     timer.StopWithError(err)
//   } else {
//     timer.WithField("statements", len(program.Body)).Stop()
//   }
package log
