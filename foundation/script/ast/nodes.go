// File: nodes.go
// Title: Script AST Node Definitions
// Description: Node types for programs, statements, declarations and
//              expressions of the script language.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2025-10-12 v0.2.0: Script language nodes

package ast

// Node is implemented by every syntax tree node
type Node interface {
	// Type returns the node kind, e.g. "BinaryExpression"
	Type() string
	// Accept dispatches to the matching Visit method of v
	Accept(v Visitor) interface{}
	// String returns the s-expression form of the subtree
	String() string
}

// Statement is a node that can appear in a statement list
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value
type Expression interface {
	Node
	expressionNode()
}

// Node kind names
const (
	TypeProgram             = "Program"
	TypeBlockStatement      = "BlockStatement"
	TypeEmptyStatement      = "EmptyStatement"
	TypeExpressionStatement = "ExpressionStatement"
	TypeVariableStatement   = "VariableStatement"
	TypeVariableDeclaration = "VariableDeclaration"
	TypeIfStatement         = "IfStatement"
	TypeWhileStatement      = "WhileStatement"
	TypeDoWhileStatement    = "DoWhileStatement"
	TypeForStatement        = "ForStatement"
	TypeFunctionDeclaration = "FunctionDeclaration"
	TypeReturnStatement     = "ReturnStatement"
	TypeClassDeclaration    = "ClassDeclaration"

	TypeAssignmentExpression = "AssignmentExpression"
	TypeLogicalExpression    = "LogicalExpression"
	TypeBinaryExpression     = "BinaryExpression"
	TypeUnaryExpression      = "UnaryExpression"
	TypeMemberExpression     = "MemberExpression"
	TypeCallExpression       = "CallExpression"
	TypeIdentifier           = "Identifier"
	TypeThisExpression       = "ThisExpression"
	TypeSuperExpression      = "SuperExpression"
	TypeNewExpression        = "NewExpression"
	TypeNumericLiteral       = "NumericLiteral"
	TypeStringLiteral        = "StringLiteral"
	TypeBooleanLiteral       = "BooleanLiteral"
	TypeNullLiteral          = "NullLiteral"
)

// Program is the root of every parse
type Program struct {
	Body []Statement
}

// BlockStatement is a braced statement list
type BlockStatement struct {
	Body []Statement
}

// EmptyStatement is a lone semicolon
type EmptyStatement struct{}

// ExpressionStatement is an expression terminated by a semicolon
type ExpressionStatement struct {
	Expression Expression
}

// VariableStatement is a let statement with one or more declarations
type VariableStatement struct {
	Declarations []*VariableDeclaration
}

// VariableDeclaration declares one name. Init is nil without initializer.
type VariableDeclaration struct {
	ID   *Identifier
	Init Expression
}

// IfStatement is a conditional. Alternate is nil without else branch.
type IfStatement struct {
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

// WhileStatement is a pre-tested loop
type WhileStatement struct {
	Test Expression
	Body Statement
}

// DoWhileStatement is a post-tested loop
type DoWhileStatement struct {
	Body Statement
	Test Expression
}

// ForStatement is a C-style loop. Init is nil, a *VariableStatement or an
// Expression; Test and Update may be nil.
type ForStatement struct {
	Init   Node
	Test   Expression
	Update Expression
	Body   Statement
}

// FunctionDeclaration is a named function or class method
type FunctionDeclaration struct {
	Name   *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

// ReturnStatement returns from a function. Argument may be nil.
type ReturnStatement struct {
	Argument Expression
}

// ClassDeclaration declares a class. SuperClass is nil without extends.
type ClassDeclaration struct {
	ID         *Identifier
	SuperClass *Identifier
	Body       []*FunctionDeclaration
}

// AssignmentExpression assigns to an Identifier or MemberExpression.
// Operator is one of = += -= *= /=.
type AssignmentExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

// LogicalExpression is a && or || expression
type LogicalExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

// BinaryExpression is an arithmetic, equality or relational expression
type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

// UnaryExpression is a prefix - or ! expression
type UnaryExpression struct {
	Operator string
	Argument Expression
}

// MemberExpression is obj.prop (Computed false) or obj[expr] (Computed true)
type MemberExpression struct {
	Object   Expression
	Property Expression
	Computed bool
}

// CallExpression is a function or method call
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

// Identifier is a name reference
type Identifier struct {
	Name string
}

// ThisExpression is the this keyword
type ThisExpression struct{}

// SuperExpression is the super keyword
type SuperExpression struct{}

// NewExpression is an instantiation, new Callee(Arguments)
type NewExpression struct {
	Callee    Expression
	Arguments []Expression
}

// NumericLiteral is a decimal number
type NumericLiteral struct {
	Value float64
}

// StringLiteral holds the text between the quotes
type StringLiteral struct {
	Value string
}

// BooleanLiteral is true or false
type BooleanLiteral struct {
	Value bool
}

// NullLiteral is the null keyword
type NullLiteral struct{}

func (*Program) Type() string             { return TypeProgram }
func (*BlockStatement) Type() string      { return TypeBlockStatement }
func (*EmptyStatement) Type() string      { return TypeEmptyStatement }
func (*ExpressionStatement) Type() string { return TypeExpressionStatement }
func (*VariableStatement) Type() string   { return TypeVariableStatement }
func (*VariableDeclaration) Type() string { return TypeVariableDeclaration }
func (*IfStatement) Type() string         { return TypeIfStatement }
func (*WhileStatement) Type() string      { return TypeWhileStatement }
func (*DoWhileStatement) Type() string    { return TypeDoWhileStatement }
func (*ForStatement) Type() string        { return TypeForStatement }
func (*FunctionDeclaration) Type() string { return TypeFunctionDeclaration }
func (*ReturnStatement) Type() string     { return TypeReturnStatement }
func (*ClassDeclaration) Type() string    { return TypeClassDeclaration }

func (*AssignmentExpression) Type() string { return TypeAssignmentExpression }
func (*LogicalExpression) Type() string    { return TypeLogicalExpression }
func (*BinaryExpression) Type() string     { return TypeBinaryExpression }
func (*UnaryExpression) Type() string      { return TypeUnaryExpression }
func (*MemberExpression) Type() string     { return TypeMemberExpression }
func (*CallExpression) Type() string       { return TypeCallExpression }
func (*Identifier) Type() string           { return TypeIdentifier }
func (*ThisExpression) Type() string       { return TypeThisExpression }
func (*SuperExpression) Type() string      { return TypeSuperExpression }
func (*NewExpression) Type() string        { return TypeNewExpression }
func (*NumericLiteral) Type() string       { return TypeNumericLiteral }
func (*StringLiteral) Type() string        { return TypeStringLiteral }
func (*BooleanLiteral) Type() string       { return TypeBooleanLiteral }
func (*NullLiteral) Type() string          { return TypeNullLiteral }

func (n *Program) Accept(v Visitor) interface{}             { return v.VisitProgram(n) }
func (n *BlockStatement) Accept(v Visitor) interface{}      { return v.VisitBlockStatement(n) }
func (n *EmptyStatement) Accept(v Visitor) interface{}      { return v.VisitEmptyStatement(n) }
func (n *ExpressionStatement) Accept(v Visitor) interface{} { return v.VisitExpressionStatement(n) }
func (n *VariableStatement) Accept(v Visitor) interface{}   { return v.VisitVariableStatement(n) }
func (n *VariableDeclaration) Accept(v Visitor) interface{} { return v.VisitVariableDeclaration(n) }
func (n *IfStatement) Accept(v Visitor) interface{}         { return v.VisitIfStatement(n) }
func (n *WhileStatement) Accept(v Visitor) interface{}      { return v.VisitWhileStatement(n) }
func (n *DoWhileStatement) Accept(v Visitor) interface{}    { return v.VisitDoWhileStatement(n) }
func (n *ForStatement) Accept(v Visitor) interface{}        { return v.VisitForStatement(n) }
func (n *FunctionDeclaration) Accept(v Visitor) interface{} { return v.VisitFunctionDeclaration(n) }
func (n *ReturnStatement) Accept(v Visitor) interface{}     { return v.VisitReturnStatement(n) }
func (n *ClassDeclaration) Accept(v Visitor) interface{}    { return v.VisitClassDeclaration(n) }

func (n *AssignmentExpression) Accept(v Visitor) interface{} { return v.VisitAssignmentExpression(n) }
func (n *LogicalExpression) Accept(v Visitor) interface{}    { return v.VisitLogicalExpression(n) }
func (n *BinaryExpression) Accept(v Visitor) interface{}     { return v.VisitBinaryExpression(n) }
func (n *UnaryExpression) Accept(v Visitor) interface{}      { return v.VisitUnaryExpression(n) }
func (n *MemberExpression) Accept(v Visitor) interface{}     { return v.VisitMemberExpression(n) }
func (n *CallExpression) Accept(v Visitor) interface{}       { return v.VisitCallExpression(n) }
func (n *Identifier) Accept(v Visitor) interface{}           { return v.VisitIdentifier(n) }
func (n *ThisExpression) Accept(v Visitor) interface{}       { return v.VisitThisExpression(n) }
func (n *SuperExpression) Accept(v Visitor) interface{}      { return v.VisitSuperExpression(n) }
func (n *NewExpression) Accept(v Visitor) interface{}        { return v.VisitNewExpression(n) }
func (n *NumericLiteral) Accept(v Visitor) interface{}       { return v.VisitNumericLiteral(n) }
func (n *StringLiteral) Accept(v Visitor) interface{}        { return v.VisitStringLiteral(n) }
func (n *BooleanLiteral) Accept(v Visitor) interface{}       { return v.VisitBooleanLiteral(n) }
func (n *NullLiteral) Accept(v Visitor) interface{}          { return v.VisitNullLiteral(n) }

func (n *Program) String() string             { return ToSExpr(n) }
func (n *BlockStatement) String() string      { return ToSExpr(n) }
func (n *EmptyStatement) String() string      { return ToSExpr(n) }
func (n *ExpressionStatement) String() string { return ToSExpr(n) }
func (n *VariableStatement) String() string   { return ToSExpr(n) }
func (n *VariableDeclaration) String() string { return ToSExpr(n) }
func (n *IfStatement) String() string         { return ToSExpr(n) }
func (n *WhileStatement) String() string      { return ToSExpr(n) }
func (n *DoWhileStatement) String() string    { return ToSExpr(n) }
func (n *ForStatement) String() string        { return ToSExpr(n) }
func (n *FunctionDeclaration) String() string { return ToSExpr(n) }
func (n *ReturnStatement) String() string     { return ToSExpr(n) }
func (n *ClassDeclaration) String() string    { return ToSExpr(n) }

func (n *AssignmentExpression) String() string { return ToSExpr(n) }
func (n *LogicalExpression) String() string    { return ToSExpr(n) }
func (n *BinaryExpression) String() string     { return ToSExpr(n) }
func (n *UnaryExpression) String() string      { return ToSExpr(n) }
func (n *MemberExpression) String() string     { return ToSExpr(n) }
func (n *CallExpression) String() string       { return ToSExpr(n) }
func (n *Identifier) String() string           { return ToSExpr(n) }
func (n *ThisExpression) String() string       { return ToSExpr(n) }
func (n *SuperExpression) String() string      { return ToSExpr(n) }
func (n *NewExpression) String() string        { return ToSExpr(n) }
func (n *NumericLiteral) String() string       { return ToSExpr(n) }
func (n *StringLiteral) String() string        { return ToSExpr(n) }
func (n *BooleanLiteral) String() string       { return ToSExpr(n) }
func (n *NullLiteral) String() string          { return ToSExpr(n) }

func (*BlockStatement) statementNode()      {}
func (*EmptyStatement) statementNode()      {}
func (*ExpressionStatement) statementNode() {}
func (*VariableStatement) statementNode()   {}
func (*IfStatement) statementNode()         {}
func (*WhileStatement) statementNode()      {}
func (*DoWhileStatement) statementNode()    {}
func (*ForStatement) statementNode()        {}
func (*FunctionDeclaration) statementNode() {}
func (*ReturnStatement) statementNode()     {}
func (*ClassDeclaration) statementNode()    {}

func (*AssignmentExpression) expressionNode() {}
func (*LogicalExpression) expressionNode()    {}
func (*BinaryExpression) expressionNode()     {}
func (*UnaryExpression) expressionNode()      {}
func (*MemberExpression) expressionNode()     {}
func (*CallExpression) expressionNode()       {}
func (*Identifier) expressionNode()           {}
func (*ThisExpression) expressionNode()       {}
func (*SuperExpression) expressionNode()      {}
func (*NewExpression) expressionNode()        {}
func (*NumericLiteral) expressionNode()       {}
func (*StringLiteral) expressionNode()        {}
func (*BooleanLiteral) expressionNode()       {}
func (*NullLiteral) expressionNode()          {}
