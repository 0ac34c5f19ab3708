// ============================================================================
// frege - Script Parser Toolkit
// ============================================================================
//
// Package:     explorer
// Description: Message types for async operations in the AST explorer
// Author:      msto63
// Created:     2025-10-12
// License:     MIT
// ============================================================================

package explorer

import (
	"time"
)

// outcome is one rendering of the editor content
type outcome struct {
	output     string
	err        error
	duration   time.Duration
	statements int
}

// Message types for tea.Cmd async operations

// parseTickMsg fires when the editor has been idle for the debounce period
type parseTickMsg struct {
	seq int
}

// parsedMsg carries the result of a parse started for seq
type parsedMsg struct {
	seq    int
	result outcome
	cached bool
}

// savedMsg is sent when the editor content was written to disk
type savedMsg struct {
	path string
	err  error
}
