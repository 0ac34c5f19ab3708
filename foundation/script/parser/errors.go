// File: errors.go
// Title: Script Parse Errors
// Description: The two fatal error kinds of the front-end: lexical errors
//              raised by the tokenizer and grammar errors raised by the
//              parser. Neither is recovered; both end the parse.
// Author: msto63
// Version: v0.2.0
// Created: 2025-10-12
// Modified: 2025-10-12
//
// Change History:
// - 2025-10-12 v0.2.0: Initial implementation

package parser

import (
	"fmt"
	"strconv"
)

// LexicalError reports a character no tokenizer rule accepts
type LexicalError struct {
	Char   rune // Offending character
	Offset int  // Character offset in the input
	Line   int  // 1-based line
	Column int  // 1-based column
}

func newLexicalError(input []rune, offset int) *LexicalError {
	line, col := lineColumn(input, offset)
	return &LexicalError{Char: input[offset], Offset: offset, Line: line, Column: col}
}

// Error implements the error interface
func (e *LexicalError) Error() string {
	return fmt.Sprintf("unexpected character %s at line %d, column %d (offset %d)",
		strconv.QuoteRune(e.Char), e.Line, e.Column, e.Offset)
}

// GrammarError reports a token that does not fit the production being
// parsed, or an invalid assignment target
type GrammarError struct {
	Expected string // Expected token kind; empty for assignment target errors
	Found    Token  // Offending token; Type is TokenEOF at end of input
	Message  string // Set instead of Expected for non-token errors
	Line     int
	Column   int
}

// EndOfInput reports whether the parse failed because input ran out
func (e *GrammarError) EndOfInput() bool {
	return e.Found.Type == TokenEOF
}

// Error implements the error interface
func (e *GrammarError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
	}
	if e.EndOfInput() {
		return fmt.Sprintf("unexpected end of input: expected %q", e.Expected)
	}
	return fmt.Sprintf("unexpected token %q at line %d, column %d: expected %q",
		e.Found.Value, e.Line, e.Column, e.Expected)
}

// lineColumn converts a character offset into a 1-based line and column
func lineColumn(input []rune, offset int) (int, int) {
	line, col := 1, 1
	for i := 0; i < offset && i < len(input); i++ {
		if input[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
