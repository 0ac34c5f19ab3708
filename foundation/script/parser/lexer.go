// File: lexer.go
// Title: Script Lexical Analyzer (Tokenizer)
// Description: Converts script source into tokens on demand using an
//              ordered table of anchored regular expressions. Rules are tried
//              in table order and the first match wins, so keywords shadow
//              identifiers and two-character operators shadow their
//              one-character prefixes.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2025-10-12 v0.2.0: Rule table tokenizer for the script language

package parser

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// TokenEOF is returned once the input is exhausted
	TokenEOF TokenType = iota

	// Punctuation
	TokenSemicolon    // ;
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenComma        // ,
	TokenDot          // .
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Keywords
	TokenLet
	TokenIf
	TokenElse
	TokenTrue
	TokenFalse
	TokenNull
	TokenWhile
	TokenDo
	TokenFor
	TokenDef
	TokenReturn
	TokenClass
	TokenExtends
	TokenSuper
	TokenThis
	TokenNew

	// Literals and names
	TokenNumber
	TokenIdentifier
	TokenString

	// Operators
	TokenEqualityOperator       // == !=
	TokenLogicalAnd             // &&
	TokenLogicalOr              // ||
	TokenLogicalNot             // !
	TokenSimpleAssign           // =
	TokenComplexAssign          // += -= *= /=
	TokenRelationalOperator     // > >= < <=
	TokenAdditiveOperator       // + -
	TokenMultiplicativeOperator // * /
)

var tokenNames = map[TokenType]string{
	TokenEOF:                    "EOF",
	TokenSemicolon:              ";",
	TokenLeftBrace:              "{",
	TokenRightBrace:             "}",
	TokenLeftParen:              "(",
	TokenRightParen:             ")",
	TokenComma:                  ",",
	TokenDot:                    ".",
	TokenLeftBracket:            "[",
	TokenRightBracket:           "]",
	TokenLet:                    "let",
	TokenIf:                     "if",
	TokenElse:                   "else",
	TokenTrue:                   "true",
	TokenFalse:                  "false",
	TokenNull:                   "null",
	TokenWhile:                  "while",
	TokenDo:                     "do",
	TokenFor:                    "for",
	TokenDef:                    "def",
	TokenReturn:                 "return",
	TokenClass:                  "class",
	TokenExtends:                "extends",
	TokenSuper:                  "super",
	TokenThis:                   "this",
	TokenNew:                    "new",
	TokenNumber:                 "NUMBER",
	TokenIdentifier:             "IDENTIFIER",
	TokenString:                 "STRING",
	TokenEqualityOperator:       "EQUALITY_OPERATOR",
	TokenLogicalAnd:             "LOGICAL_AND",
	TokenLogicalOr:              "LOGICAL_OR",
	TokenLogicalNot:             "LOGICAL_NOT",
	TokenSimpleAssign:           "SIMPLE_ASSIGN",
	TokenComplexAssign:          "COMPLEX_ASSIGN",
	TokenRelationalOperator:     "RELATIONAL_OPERATOR",
	TokenAdditiveOperator:       "ADDITIVE_OPERATOR",
	TokenMultiplicativeOperator: "MULTIPLICATIVE_OPERATOR",
}

// String returns the token kind name used in error messages: the literal
// text for punctuation and keywords, an upper-case class name otherwise.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token represents a lexical token
type Token struct {
	Type   TokenType // Token kind
	Value  string    // Matched text
	Offset int       // Character offset of the first character in the input
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

// rule pairs an anchored pattern with a token kind. Discard rules produce
// no token.
type rule struct {
	pattern *regexp2.Regexp
	kind    TokenType
	discard bool
}

func tokenRule(pattern string, kind TokenType) rule {
	return rule{pattern: regexp2.MustCompile(pattern, regexp2.ECMAScript), kind: kind}
}

func skipRule(pattern string) rule {
	return rule{pattern: regexp2.MustCompile(pattern, regexp2.ECMAScript), discard: true}
}

// rules is the lexical grammar. Order is significant.
var rules = []rule{
	// Whitespace and comments
	skipRule(`^\s`),
	skipRule(`^\/\/.*`),
	skipRule(`^\/\*[\s\S]*?\*\/`),

	// Punctuation
	tokenRule(`^;`, TokenSemicolon),
	tokenRule(`^\{`, TokenLeftBrace),
	tokenRule(`^\}`, TokenRightBrace),
	tokenRule(`^\(`, TokenLeftParen),
	tokenRule(`^\)`, TokenRightParen),
	tokenRule(`^,`, TokenComma),
	tokenRule(`^\.`, TokenDot),
	tokenRule(`^\[`, TokenLeftBracket),
	tokenRule(`^\]`, TokenRightBracket),

	// Keywords, ahead of identifiers
	tokenRule(`^\blet\b`, TokenLet),
	tokenRule(`^\bif\b`, TokenIf),
	tokenRule(`^\belse\b`, TokenElse),
	tokenRule(`^\btrue\b`, TokenTrue),
	tokenRule(`^\bfalse\b`, TokenFalse),
	tokenRule(`^\bnull\b`, TokenNull),
	tokenRule(`^\bwhile\b`, TokenWhile),
	tokenRule(`^\bdo\b`, TokenDo),
	tokenRule(`^\bfor\b`, TokenFor),
	tokenRule(`^\bdef\b`, TokenDef),
	tokenRule(`^\breturn\b`, TokenReturn),
	tokenRule(`^\bclass\b`, TokenClass),
	tokenRule(`^\bextends\b`, TokenExtends),
	tokenRule(`^\bsuper\b`, TokenSuper),
	tokenRule(`^\bthis\b`, TokenThis),
	tokenRule(`^\bnew\b`, TokenNew),

	// Numbers, then identifiers
	tokenRule(`^\d+`, TokenNumber),
	tokenRule(`^\w+`, TokenIdentifier),

	// Two-character operators before their prefixes
	tokenRule(`^[=!]=`, TokenEqualityOperator),
	tokenRule(`^&&`, TokenLogicalAnd),
	tokenRule(`^\|\|`, TokenLogicalOr),
	tokenRule(`^!`, TokenLogicalNot),
	tokenRule(`^=`, TokenSimpleAssign),
	tokenRule(`^[*\/+\-]=`, TokenComplexAssign),
	tokenRule(`^[><]=?`, TokenRelationalOperator),
	tokenRule(`^[+\-]`, TokenAdditiveOperator),
	tokenRule(`^[*\/]`, TokenMultiplicativeOperator),

	// Strings, no escapes
	tokenRule(`^"[^"]*"`, TokenString),
	tokenRule(`^'[^']*'`, TokenString),
}

// Lexer produces tokens from script source one at a time. The cursor only
// moves forward; a Lexer is not safe for concurrent use.
type Lexer struct {
	input  []rune
	cursor int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// HasMoreTokens reports whether unread input remains. Remaining input may
// still consist only of whitespace and comments.
func (l *Lexer) HasMoreTokens() bool {
	return l.cursor < len(l.input)
}

// Cursor returns the current character offset
func (l *Lexer) Cursor() int {
	return l.cursor
}

// Next returns the next token. At end of input it returns a TokenEOF token,
// on every further call as well. When no rule matches it returns a
// *LexicalError and the cursor stays on the offending character.
func (l *Lexer) Next() (Token, error) {
scan:
	for l.cursor < len(l.input) {
		rest := l.input[l.cursor:]

		for _, r := range rules {
			m, err := r.pattern.FindRunesMatch(rest)
			if err != nil {
				return Token{}, fmt.Errorf("tokenizer rule %s: %w", r.pattern, err)
			}
			if m == nil || m.Length == 0 {
				continue
			}

			start := l.cursor
			l.cursor += m.Length
			if r.discard {
				continue scan
			}
			return Token{Type: r.kind, Value: m.String(), Offset: start}, nil
		}

		return Token{}, newLexicalError(l.input, l.cursor)
	}

	return Token{Type: TokenEOF, Offset: len(l.input)}, nil
}

// Tokenize drains the lexer and returns all remaining tokens, without the
// trailing EOF token
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Tokenize returns all tokens of input
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}
