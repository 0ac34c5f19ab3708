// File: parser.go
// Title: Script Recursive Descent Parser
// Description: Builds a Program syntax tree from script source with one
//              token of lookahead. Statements are dispatched on the current
//              token; expressions descend a fixed precedence ladder whose
//              binary tiers fold left iteratively.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2025-10-12 v0.2.0: Script grammar with statements, classes and
//                      precedence climbing

package parser

import (
	"fmt"
	"strconv"

	frlog "github.com/msto63/frege/foundation/core/log"
	"github.com/msto63/frege/foundation/script/ast"
)

// Parser implements recursive descent parsing for the script language.
// A Parser may be reused for several inputs but not concurrently.
type Parser struct {
	lexer   *Lexer
	current Token // Lookahead token
	logger  *frlog.Logger
}

// Options configures parser behavior
type Options struct {
	Logger *frlog.Logger
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = frlog.GetDefault()
	}
	return &Parser{
		logger: opts.Logger.WithField("component", "script-parser"),
	}
}

// Parse parses input with a fresh parser
func Parse(input string) (*ast.Program, error) {
	return New(Options{}).Parse(input)
}

// Parse parses a complete program. It returns either a tree or a
// *LexicalError / *GrammarError, never both.
func (p *Parser) Parse(input string) (*ast.Program, error) {
	p.lexer = NewLexer(input)

	p.logger.Trace("Starting script parsing", frlog.Fields{
		"length": len(input),
	})

	if err := p.advance(); err != nil {
		return nil, err
	}

	program, err := p.program()
	if err != nil {
		p.logger.Trace("Script parsing failed", frlog.Fields{
			"error": err.Error(),
		})
		return nil, err
	}

	p.logger.Trace("Script parsing completed", frlog.Fields{
		"statements": len(program.Body),
	})
	return program, nil
}

// advance loads the next token into the lookahead slot
func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// eat consumes the lookahead token if it has the expected kind
func (p *Parser) eat(kind TokenType) (Token, error) {
	tok := p.current
	if tok.Type != kind {
		return tok, p.unexpected(kind.String())
	}
	if err := p.advance(); err != nil {
		return tok, err
	}
	return tok, nil
}

// unexpected reports the lookahead token as not matching expected
func (p *Parser) unexpected(expected string) *GrammarError {
	line, col := lineColumn(p.lexer.input, p.current.Offset)
	return &GrammarError{Expected: expected, Found: p.current, Line: line, Column: col}
}

// failAt reports a non-token error positioned at tok
func (p *Parser) failAt(tok Token, message string) *GrammarError {
	line, col := lineColumn(p.lexer.input, tok.Offset)
	return &GrammarError{Found: tok, Message: message, Line: line, Column: col}
}

// Program
//
//	: StatementList
//	;
func (p *Parser) program() (*ast.Program, error) {
	body, err := p.statementList(TokenEOF)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Body: body}, nil
}

// StatementList
//
//	: Statement
//	| StatementList Statement
//	;
//
// Stops at end of input or at stop; the result is never nil.
func (p *Parser) statementList(stop TokenType) ([]ast.Statement, error) {
	list := []ast.Statement{}
	for p.current.Type != TokenEOF && p.current.Type != stop {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		list = append(list, stmt)
	}
	return list, nil
}

// Statement dispatches on the lookahead token. Anything not starting a
// dedicated statement form is an ExpressionStatement.
func (p *Parser) statement() (ast.Statement, error) {
	switch p.current.Type {
	case TokenSemicolon:
		return p.emptyStatement()
	case TokenLeftBrace:
		return p.blockStatement()
	case TokenLet:
		return p.variableStatement()
	case TokenIf:
		return p.ifStatement()
	case TokenWhile:
		return p.whileStatement()
	case TokenDo:
		return p.doWhileStatement()
	case TokenFor:
		return p.forStatement()
	case TokenDef:
		return p.functionDeclaration()
	case TokenReturn:
		return p.returnStatement()
	case TokenClass:
		return p.classDeclaration()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) emptyStatement() (*ast.EmptyStatement, error) {
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.EmptyStatement{}, nil
}

// BlockStatement
//
//	: '{' OptStatementList '}'
//	;
func (p *Parser) blockStatement() (*ast.BlockStatement, error) {
	if _, err := p.eat(TokenLeftBrace); err != nil {
		return nil, err
	}

	body := []ast.Statement{}
	if p.current.Type != TokenRightBrace {
		var err error
		if body, err = p.statementList(TokenRightBrace); err != nil {
			return nil, err
		}
	}

	if _, err := p.eat(TokenRightBrace); err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Body: body}, nil
}

// VariableStatement
//
//	: 'let' VariableDeclarationList ';'
//	;
func (p *Parser) variableStatement() (*ast.VariableStatement, error) {
	stmt, err := p.variableStatementInit()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// variableStatementInit parses a let list without the trailing ';', as
// used by for-loop initializers
func (p *Parser) variableStatementInit() (*ast.VariableStatement, error) {
	if _, err := p.eat(TokenLet); err != nil {
		return nil, err
	}

	var decls []*ast.VariableDeclaration
	for {
		decl, err := p.variableDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)

		if p.current.Type != TokenComma {
			break
		}
		if _, err := p.eat(TokenComma); err != nil {
			return nil, err
		}
	}
	return &ast.VariableStatement{Declarations: decls}, nil
}

// VariableDeclaration
//
//	: Identifier OptVariableInitializer
//	;
func (p *Parser) variableDeclaration() (*ast.VariableDeclaration, error) {
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}

	decl := &ast.VariableDeclaration{ID: id}
	if p.current.Type != TokenSemicolon && p.current.Type != TokenComma {
		if _, err := p.eat(TokenSimpleAssign); err != nil {
			return nil, err
		}
		if decl.Init, err = p.assignmentExpression(); err != nil {
			return nil, err
		}
	}
	return decl, nil
}

// IfStatement
//
//	: 'if' '(' Expression ')' Statement
//	| 'if' '(' Expression ')' Statement 'else' Statement
//	;
//
// An else binds to the nearest if.
func (p *Parser) ifStatement() (*ast.IfStatement, error) {
	if _, err := p.eat(TokenIf); err != nil {
		return nil, err
	}
	test, err := p.parenthesized()
	if err != nil {
		return nil, err
	}
	consequent, err := p.statement()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Test: test, Consequent: consequent}
	if p.current.Type == TokenElse {
		if _, err := p.eat(TokenElse); err != nil {
			return nil, err
		}
		if stmt.Alternate, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) whileStatement() (*ast.WhileStatement, error) {
	if _, err := p.eat(TokenWhile); err != nil {
		return nil, err
	}
	test, err := p.parenthesized()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Test: test, Body: body}, nil
}

// DoWhileStatement
//
//	: 'do' Statement 'while' '(' Expression ')' ';'
//	;
func (p *Parser) doWhileStatement() (*ast.DoWhileStatement, error) {
	if _, err := p.eat(TokenDo); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenWhile); err != nil {
		return nil, err
	}
	test, err := p.parenthesized()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{Body: body, Test: test}, nil
}

// ForStatement
//
//	: 'for' '(' OptForInit ';' OptExpression ';' OptExpression ')' Statement
//	;
func (p *Parser) forStatement() (*ast.ForStatement, error) {
	if _, err := p.eat(TokenFor); err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenLeftParen); err != nil {
		return nil, err
	}

	stmt := &ast.ForStatement{}
	var err error

	switch p.current.Type {
	case TokenSemicolon:
	case TokenLet:
		if stmt.Init, err = p.variableStatementInit(); err != nil {
			return nil, err
		}
	default:
		if stmt.Init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}

	if p.current.Type != TokenSemicolon {
		if stmt.Test, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}

	if p.current.Type != TokenRightParen {
		if stmt.Update, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(TokenRightParen); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.statement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// FunctionDeclaration
//
//	: 'def' Identifier '(' OptFormalParameterList ')' BlockStatement
//	;
func (p *Parser) functionDeclaration() (*ast.FunctionDeclaration, error) {
	if _, err := p.eat(TokenDef); err != nil {
		return nil, err
	}
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenLeftParen); err != nil {
		return nil, err
	}

	params := []*ast.Identifier{}
	if p.current.Type != TokenRightParen {
		for {
			param, err := p.identifier()
			if err != nil {
				return nil, err
			}
			params = append(params, param)

			if p.current.Type != TokenComma {
				break
			}
			if _, err := p.eat(TokenComma); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.eat(TokenRightParen); err != nil {
		return nil, err
	}
	body, err := p.blockStatement()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) returnStatement() (*ast.ReturnStatement, error) {
	if _, err := p.eat(TokenReturn); err != nil {
		return nil, err
	}

	stmt := &ast.ReturnStatement{}
	if p.current.Type != TokenSemicolon {
		var err error
		if stmt.Argument, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ClassDeclaration
//
//	: 'class' Identifier OptClassExtends '{' FunctionDeclaration* '}'
//	;
func (p *Parser) classDeclaration() (*ast.ClassDeclaration, error) {
	if _, err := p.eat(TokenClass); err != nil {
		return nil, err
	}
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}

	class := &ast.ClassDeclaration{ID: id, Body: []*ast.FunctionDeclaration{}}
	if p.current.Type == TokenExtends {
		if _, err := p.eat(TokenExtends); err != nil {
			return nil, err
		}
		if class.SuperClass, err = p.identifier(); err != nil {
			return nil, err
		}
	}

	if _, err := p.eat(TokenLeftBrace); err != nil {
		return nil, err
	}
	for p.current.Type != TokenRightBrace && p.current.Type != TokenEOF {
		method, err := p.functionDeclaration()
		if err != nil {
			return nil, err
		}
		class.Body = append(class.Body, method)
	}
	if _, err := p.eat(TokenRightBrace); err != nil {
		return nil, err
	}
	return class, nil
}

func (p *Parser) expressionStatement() (*ast.ExpressionStatement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

// parenthesized parses '(' Expression ')'
func (p *Parser) parenthesized() (ast.Expression, error) {
	if _, err := p.eat(TokenLeftParen); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenRightParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignmentExpression()
}

// AssignmentExpression
//
//	: LogicalORExpression
//	| LeftHandSideExpression AssignmentOperator AssignmentExpression
//	;
func (p *Parser) assignmentExpression() (ast.Expression, error) {
	left, err := p.logicalOrExpression()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenSimpleAssign && p.current.Type != TokenComplexAssign {
		return left, nil
	}

	op := p.current
	if !ast.IsAssignable(left) {
		return nil, p.failAt(op, "invalid assignment target: "+left.Type())
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	right, err := p.assignmentExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Operator: op.Value, Left: left, Right: right}, nil
}

type operandFunc func() (ast.Expression, error)

type combineFunc func(op string, left, right ast.Expression) ast.Expression

func binary(op string, left, right ast.Expression) ast.Expression {
	return &ast.BinaryExpression{Operator: op, Left: left, Right: right}
}

func logical(op string, left, right ast.Expression) ast.Expression {
	return &ast.LogicalExpression{Operator: op, Left: left, Right: right}
}

// foldLeft parses operand (op operand)* and folds the chain to the left,
// so 1 - 2 - 3 becomes (1 - 2) - 3
func (p *Parser) foldLeft(op TokenType, operand operandFunc, combine combineFunc) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.current.Type == op {
		tok, err := p.eat(op)
		if err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = combine(tok.Value, left, right)
	}
	return left, nil
}

func (p *Parser) logicalOrExpression() (ast.Expression, error) {
	return p.foldLeft(TokenLogicalOr, p.logicalAndExpression, logical)
}

func (p *Parser) logicalAndExpression() (ast.Expression, error) {
	return p.foldLeft(TokenLogicalAnd, p.equalityExpression, logical)
}

func (p *Parser) equalityExpression() (ast.Expression, error) {
	return p.foldLeft(TokenEqualityOperator, p.relationalExpression, binary)
}

func (p *Parser) relationalExpression() (ast.Expression, error) {
	return p.foldLeft(TokenRelationalOperator, p.additiveExpression, binary)
}

func (p *Parser) additiveExpression() (ast.Expression, error) {
	return p.foldLeft(TokenAdditiveOperator, p.multiplicativeExpression, binary)
}

func (p *Parser) multiplicativeExpression() (ast.Expression, error) {
	return p.foldLeft(TokenMultiplicativeOperator, p.unaryExpression, binary)
}

// UnaryExpression
//
//	: LeftHandSideExpression
//	| '-' UnaryExpression
//	| '!' UnaryExpression
//	;
func (p *Parser) unaryExpression() (ast.Expression, error) {
	isUnary := p.current.Type == TokenLogicalNot ||
		(p.current.Type == TokenAdditiveOperator && p.current.Value == "-")
	if !isUnary {
		return p.leftHandSideExpression()
	}

	op := p.current.Value
	if err := p.advance(); err != nil {
		return nil, err
	}
	arg, err := p.unaryExpression()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{Operator: op, Argument: arg}, nil
}

// LeftHandSideExpression is a primary expression followed by any chain of
// .name, [expr] and (args) suffixes
func (p *Parser) leftHandSideExpression() (ast.Expression, error) {
	expr, err := p.primaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TokenDot, TokenLeftBracket:
			if expr, err = p.member(expr); err != nil {
				return nil, err
			}
		case TokenLeftParen:
			args, err := p.arguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Callee: expr, Arguments: args}
		default:
			return expr, nil
		}
	}
}

// member parses one .name or [expr] suffix applied to object
func (p *Parser) member(object ast.Expression) (ast.Expression, error) {
	if p.current.Type == TokenDot {
		if _, err := p.eat(TokenDot); err != nil {
			return nil, err
		}
		prop, err := p.identifier()
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{Object: object, Property: prop}, nil
	}

	if _, err := p.eat(TokenLeftBracket); err != nil {
		return nil, err
	}
	prop, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(TokenRightBracket); err != nil {
		return nil, err
	}
	return &ast.MemberExpression{Object: object, Property: prop, Computed: true}, nil
}

// arguments parses '(' OptArgumentList ')'
func (p *Parser) arguments() ([]ast.Expression, error) {
	if _, err := p.eat(TokenLeftParen); err != nil {
		return nil, err
	}

	args := []ast.Expression{}
	if p.current.Type != TokenRightParen {
		for {
			arg, err := p.assignmentExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.current.Type != TokenComma {
				break
			}
			if _, err := p.eat(TokenComma); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.eat(TokenRightParen); err != nil {
		return nil, err
	}
	return args, nil
}

// PrimaryExpression
//
//	: Literal
//	| Identifier
//	| 'this'
//	| 'super'
//	| NewExpression
//	| '(' Expression ')'
//	;
func (p *Parser) primaryExpression() (ast.Expression, error) {
	switch p.current.Type {
	case TokenNumber:
		return p.numericLiteral()
	case TokenString:
		return p.stringLiteral()
	case TokenTrue, TokenFalse:
		tok, err := p.eat(p.current.Type)
		if err != nil {
			return nil, err
		}
		return &ast.BooleanLiteral{Value: tok.Type == TokenTrue}, nil
	case TokenNull:
		if _, err := p.eat(TokenNull); err != nil {
			return nil, err
		}
		return &ast.NullLiteral{}, nil
	case TokenIdentifier:
		return p.identifier()
	case TokenThis:
		if _, err := p.eat(TokenThis); err != nil {
			return nil, err
		}
		return &ast.ThisExpression{}, nil
	case TokenSuper:
		if _, err := p.eat(TokenSuper); err != nil {
			return nil, err
		}
		return &ast.SuperExpression{}, nil
	case TokenNew:
		return p.newExpression()
	case TokenLeftParen:
		return p.parenthesized()
	default:
		return nil, p.unexpected("expression")
	}
}

// NewExpression
//
//	: 'new' MemberExpression Arguments
//	;
//
// The callee takes member suffixes only; the first '(' starts the
// mandatory argument list.
func (p *Parser) newExpression() (*ast.NewExpression, error) {
	if _, err := p.eat(TokenNew); err != nil {
		return nil, err
	}

	callee, err := p.primaryExpression()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TokenDot || p.current.Type == TokenLeftBracket {
		if callee, err = p.member(callee); err != nil {
			return nil, err
		}
	}

	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	return &ast.NewExpression{Callee: callee, Arguments: args}, nil
}

func (p *Parser) identifier() (*ast.Identifier, error) {
	tok, err := p.eat(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Name: tok.Value}, nil
}

func (p *Parser) numericLiteral() (*ast.NumericLiteral, error) {
	tok, err := p.eat(TokenNumber)
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, p.failAt(tok, fmt.Sprintf("numeric literal %s out of range", tok.Value))
	}
	return &ast.NumericLiteral{Value: value}, nil
}

// stringLiteral strips the delimiting quotes; the body has no escapes
func (p *Parser) stringLiteral() (*ast.StringLiteral, error) {
	tok, err := p.eat(TokenString)
	if err != nil {
		return nil, err
	}
	return &ast.StringLiteral{Value: tok.Value[1 : len(tok.Value)-1]}, nil
}
