// Package parser turns script source into an ast.Program.
//
// The Lexer scans the input with an ordered table of anchored patterns; the
// first pattern that matches at the cursor wins, which is why keywords are
// listed before identifiers and == before = and !. Whitespace and comments
// are dropped inside the lexer and never reach the parser.
//
// The Parser is a recursive descent parser with a single token of
// lookahead. Expression precedence, loosest first:
//
//	=  += -= *= /=        right associative
//	||
//	&&
//	== !=
//	> >= < <=
//	+ -
//	* /
//	- !                   prefix
//	.name [expr] (args)   member and call chains
//
// Parsing stops at the first problem. A *LexicalError reports a character
// no rule accepts, a *GrammarError reports a token that does not fit, and
// no partial tree is ever returned.
//
// Basic usage:
//
//	program, err := parser.Parse("let x = 2 + 3 * 4;")
//	if err != nil {
//		var gerr *parser.GrammarError
//		if errors.As(err, &gerr) && gerr.EndOfInput() {
//			// incomplete input
//		}
//	}
package parser
