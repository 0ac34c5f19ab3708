// File: visitor.go
// Title: Script AST Visitor Pattern Implementation
// Description: Visitor interface, a no-op base visitor, generic traversal
//              helpers and the s-expression printer.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2025-10-12 v0.2.0: Script nodes, Children/Inspect traversal

package ast

import (
	"reflect"
	"strconv"
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitProgram(n *Program) interface{}
	VisitBlockStatement(n *BlockStatement) interface{}
	VisitEmptyStatement(n *EmptyStatement) interface{}
	VisitExpressionStatement(n *ExpressionStatement) interface{}
	VisitVariableStatement(n *VariableStatement) interface{}
	VisitVariableDeclaration(n *VariableDeclaration) interface{}
	VisitIfStatement(n *IfStatement) interface{}
	VisitWhileStatement(n *WhileStatement) interface{}
	VisitDoWhileStatement(n *DoWhileStatement) interface{}
	VisitForStatement(n *ForStatement) interface{}
	VisitFunctionDeclaration(n *FunctionDeclaration) interface{}
	VisitReturnStatement(n *ReturnStatement) interface{}
	VisitClassDeclaration(n *ClassDeclaration) interface{}

	VisitAssignmentExpression(n *AssignmentExpression) interface{}
	VisitLogicalExpression(n *LogicalExpression) interface{}
	VisitBinaryExpression(n *BinaryExpression) interface{}
	VisitUnaryExpression(n *UnaryExpression) interface{}
	VisitMemberExpression(n *MemberExpression) interface{}
	VisitCallExpression(n *CallExpression) interface{}
	VisitIdentifier(n *Identifier) interface{}
	VisitThisExpression(n *ThisExpression) interface{}
	VisitSuperExpression(n *SuperExpression) interface{}
	VisitNewExpression(n *NewExpression) interface{}
	VisitNumericLiteral(n *NumericLiteral) interface{}
	VisitStringLiteral(n *StringLiteral) interface{}
	VisitBooleanLiteral(n *BooleanLiteral) interface{}
	VisitNullLiteral(n *NullLiteral) interface{}
}

// BaseVisitor returns nil for every node. Embed it in visitors that only
// care about a few node kinds; it does not descend into children, use
// Inspect for whole-tree walks.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program) interface{}                         { return nil }
func (BaseVisitor) VisitBlockStatement(*BlockStatement) interface{}           { return nil }
func (BaseVisitor) VisitEmptyStatement(*EmptyStatement) interface{}           { return nil }
func (BaseVisitor) VisitExpressionStatement(*ExpressionStatement) interface{} { return nil }
func (BaseVisitor) VisitVariableStatement(*VariableStatement) interface{}     { return nil }
func (BaseVisitor) VisitVariableDeclaration(*VariableDeclaration) interface{} { return nil }
func (BaseVisitor) VisitIfStatement(*IfStatement) interface{}                 { return nil }
func (BaseVisitor) VisitWhileStatement(*WhileStatement) interface{}           { return nil }
func (BaseVisitor) VisitDoWhileStatement(*DoWhileStatement) interface{}       { return nil }
func (BaseVisitor) VisitForStatement(*ForStatement) interface{}               { return nil }
func (BaseVisitor) VisitFunctionDeclaration(*FunctionDeclaration) interface{} { return nil }
func (BaseVisitor) VisitReturnStatement(*ReturnStatement) interface{}         { return nil }
func (BaseVisitor) VisitClassDeclaration(*ClassDeclaration) interface{}       { return nil }

func (BaseVisitor) VisitAssignmentExpression(*AssignmentExpression) interface{} { return nil }
func (BaseVisitor) VisitLogicalExpression(*LogicalExpression) interface{}       { return nil }
func (BaseVisitor) VisitBinaryExpression(*BinaryExpression) interface{}         { return nil }
func (BaseVisitor) VisitUnaryExpression(*UnaryExpression) interface{}           { return nil }
func (BaseVisitor) VisitMemberExpression(*MemberExpression) interface{}         { return nil }
func (BaseVisitor) VisitCallExpression(*CallExpression) interface{}             { return nil }
func (BaseVisitor) VisitIdentifier(*Identifier) interface{}                     { return nil }
func (BaseVisitor) VisitThisExpression(*ThisExpression) interface{}             { return nil }
func (BaseVisitor) VisitSuperExpression(*SuperExpression) interface{}           { return nil }
func (BaseVisitor) VisitNewExpression(*NewExpression) interface{}               { return nil }
func (BaseVisitor) VisitNumericLiteral(*NumericLiteral) interface{}             { return nil }
func (BaseVisitor) VisitStringLiteral(*StringLiteral) interface{}               { return nil }
func (BaseVisitor) VisitBooleanLiteral(*BooleanLiteral) interface{}             { return nil }
func (BaseVisitor) VisitNullLiteral(*NullLiteral) interface{}                   { return nil }

// isNil reports whether n is nil or a typed nil pointer
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Children returns the direct children of n in source order, skipping
// absent optional children
func Children(n Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if !isNil(c) {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *BlockStatement:
		for _, s := range n.Body {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *VariableStatement:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclaration:
		add(n.ID, n.Init)
	case *IfStatement:
		add(n.Test, n.Consequent, n.Alternate)
	case *WhileStatement:
		add(n.Test, n.Body)
	case *DoWhileStatement:
		add(n.Body, n.Test)
	case *ForStatement:
		add(n.Init, n.Test, n.Update, n.Body)
	case *FunctionDeclaration:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ReturnStatement:
		add(n.Argument)
	case *ClassDeclaration:
		add(n.ID, n.SuperClass)
		for _, m := range n.Body {
			add(m)
		}
	case *AssignmentExpression:
		add(n.Left, n.Right)
	case *LogicalExpression:
		add(n.Left, n.Right)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *UnaryExpression:
		add(n.Argument)
	case *MemberExpression:
		add(n.Object, n.Property)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *NewExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	}
	return out
}

// Inspect walks the tree depth-first in source order. fn is called for
// every node; returning false skips that node's children.
func Inspect(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Equal reports whether two trees have identical structure and values
func Equal(a, b Node) bool {
	return reflect.DeepEqual(a, b)
}

// StringVisitor renders nodes as s-expressions, e.g. (+ 2 (* 3 4)).
// Absent optional children print as _.
type StringVisitor struct{}

// NewStringVisitor creates a new string visitor
func NewStringVisitor() *StringVisitor {
	return &StringVisitor{}
}

// ToSExpr renders n as an s-expression
func ToSExpr(n Node) string {
	return NewStringVisitor().render(n)
}

func (sv *StringVisitor) render(n Node) string {
	if isNil(n) {
		return "_"
	}
	s, _ := n.Accept(sv).(string)
	return s
}

func (sv *StringVisitor) list(head string, parts ...string) string {
	if len(parts) == 0 {
		return "(" + head + ")"
	}
	return "(" + head + " " + strings.Join(parts, " ") + ")"
}

func (sv *StringVisitor) statements(body []Statement) []string {
	parts := make([]string, 0, len(body))
	for _, s := range body {
		parts = append(parts, sv.render(s))
	}
	return parts
}

func (sv *StringVisitor) expressions(list []Expression) []string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, sv.render(e))
	}
	return parts
}

func (sv *StringVisitor) VisitProgram(n *Program) interface{} {
	return sv.list("program", sv.statements(n.Body)...)
}

func (sv *StringVisitor) VisitBlockStatement(n *BlockStatement) interface{} {
	return sv.list("block", sv.statements(n.Body)...)
}

func (sv *StringVisitor) VisitEmptyStatement(*EmptyStatement) interface{} {
	return "(empty)"
}

func (sv *StringVisitor) VisitExpressionStatement(n *ExpressionStatement) interface{} {
	return sv.render(n.Expression)
}

func (sv *StringVisitor) VisitVariableStatement(n *VariableStatement) interface{} {
	parts := make([]string, 0, len(n.Declarations))
	for _, d := range n.Declarations {
		parts = append(parts, sv.render(d))
	}
	return sv.list("let", parts...)
}

func (sv *StringVisitor) VisitVariableDeclaration(n *VariableDeclaration) interface{} {
	if isNil(n.Init) {
		return sv.list(sv.render(n.ID))
	}
	return sv.list(sv.render(n.ID), sv.render(n.Init))
}

func (sv *StringVisitor) VisitIfStatement(n *IfStatement) interface{} {
	if isNil(n.Alternate) {
		return sv.list("if", sv.render(n.Test), sv.render(n.Consequent))
	}
	return sv.list("if", sv.render(n.Test), sv.render(n.Consequent), sv.render(n.Alternate))
}

func (sv *StringVisitor) VisitWhileStatement(n *WhileStatement) interface{} {
	return sv.list("while", sv.render(n.Test), sv.render(n.Body))
}

func (sv *StringVisitor) VisitDoWhileStatement(n *DoWhileStatement) interface{} {
	return sv.list("do", sv.render(n.Body), sv.render(n.Test))
}

func (sv *StringVisitor) VisitForStatement(n *ForStatement) interface{} {
	return sv.list("for", sv.render(n.Init), sv.render(n.Test), sv.render(n.Update), sv.render(n.Body))
}

func (sv *StringVisitor) VisitFunctionDeclaration(n *FunctionDeclaration) interface{} {
	params := make([]string, 0, len(n.Params))
	for _, p := range n.Params {
		params = append(params, sv.render(p))
	}
	return sv.list("def", sv.render(n.Name), "("+strings.Join(params, " ")+")", sv.render(n.Body))
}

func (sv *StringVisitor) VisitReturnStatement(n *ReturnStatement) interface{} {
	if isNil(n.Argument) {
		return "(return)"
	}
	return sv.list("return", sv.render(n.Argument))
}

func (sv *StringVisitor) VisitClassDeclaration(n *ClassDeclaration) interface{} {
	parts := []string{sv.render(n.ID), sv.render(n.SuperClass)}
	for _, m := range n.Body {
		parts = append(parts, sv.render(m))
	}
	return sv.list("class", parts...)
}

func (sv *StringVisitor) VisitAssignmentExpression(n *AssignmentExpression) interface{} {
	return sv.list(n.Operator, sv.render(n.Left), sv.render(n.Right))
}

func (sv *StringVisitor) VisitLogicalExpression(n *LogicalExpression) interface{} {
	return sv.list(n.Operator, sv.render(n.Left), sv.render(n.Right))
}

func (sv *StringVisitor) VisitBinaryExpression(n *BinaryExpression) interface{} {
	return sv.list(n.Operator, sv.render(n.Left), sv.render(n.Right))
}

func (sv *StringVisitor) VisitUnaryExpression(n *UnaryExpression) interface{} {
	return sv.list(n.Operator, sv.render(n.Argument))
}

func (sv *StringVisitor) VisitMemberExpression(n *MemberExpression) interface{} {
	if n.Computed {
		return sv.list("[]", sv.render(n.Object), sv.render(n.Property))
	}
	return sv.list(".", sv.render(n.Object), sv.render(n.Property))
}

func (sv *StringVisitor) VisitCallExpression(n *CallExpression) interface{} {
	return sv.list("call", append([]string{sv.render(n.Callee)}, sv.expressions(n.Arguments)...)...)
}

func (sv *StringVisitor) VisitIdentifier(n *Identifier) interface{} {
	return n.Name
}

func (sv *StringVisitor) VisitThisExpression(*ThisExpression) interface{} {
	return "this"
}

func (sv *StringVisitor) VisitSuperExpression(*SuperExpression) interface{} {
	return "super"
}

func (sv *StringVisitor) VisitNewExpression(n *NewExpression) interface{} {
	return sv.list("new", append([]string{sv.render(n.Callee)}, sv.expressions(n.Arguments)...)...)
}

func (sv *StringVisitor) VisitNumericLiteral(n *NumericLiteral) interface{} {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (sv *StringVisitor) VisitStringLiteral(n *StringLiteral) interface{} {
	return strconv.Quote(n.Value)
}

func (sv *StringVisitor) VisitBooleanLiteral(n *BooleanLiteral) interface{} {
	return strconv.FormatBool(n.Value)
}

func (sv *StringVisitor) VisitNullLiteral(*NullLiteral) interface{} {
	return "null"
}
