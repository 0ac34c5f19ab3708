// File: json.go
// Title: Script AST JSON Encoding
// Description: Encodes nodes into the interchange shape: "type" first, then
//              the node fields in declaration order, optional children as
//              null and lists as [].
// Author: msto63
// Version: v0.2.0
// Created: 2025-10-12
// Modified: 2025-10-12
//
// Change History:
// - 2025-10-12 v0.2.0: Initial implementation

package ast

import (
	"bytes"
	"encoding/json"
)

type field struct {
	key   string
	value interface{}
}

// marshal encodes v without HTML escaping so operators such as < and &&
// stay readable
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Marshal encodes a tree in its interchange shape. Unlike json.Marshal it
// leaves <, > and & unescaped.
func Marshal(n Node) ([]byte, error) {
	return marshal(n)
}

// MarshalIndent is like Marshal but indents the output
func MarshalIndent(n Node, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeNode(kind string, fields ...field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	typ, err := marshal(kind)
	if err != nil {
		return nil, err
	}
	buf.Write(typ)

	for _, f := range fields {
		key, err := marshal(f.key)
		if err != nil {
			return nil, err
		}
		value, err := marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func statementList(list []Statement) []Statement {
	if list == nil {
		return []Statement{}
	}
	return list
}

func expressionList(list []Expression) []Expression {
	if list == nil {
		return []Expression{}
	}
	return list
}

func identifierList(list []*Identifier) []*Identifier {
	if list == nil {
		return []*Identifier{}
	}
	return list
}

// MarshalJSON implements json.Marshaler
func (n *Program) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeProgram, field{"body", statementList(n.Body)})
}

// MarshalJSON implements json.Marshaler
func (n *BlockStatement) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeBlockStatement, field{"body", statementList(n.Body)})
}

// MarshalJSON implements json.Marshaler
func (n *EmptyStatement) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeEmptyStatement)
}

// MarshalJSON implements json.Marshaler
func (n *ExpressionStatement) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeExpressionStatement, field{"expression", n.Expression})
}

// MarshalJSON implements json.Marshaler
func (n *VariableStatement) MarshalJSON() ([]byte, error) {
	decls := n.Declarations
	if decls == nil {
		decls = []*VariableDeclaration{}
	}
	return encodeNode(TypeVariableStatement, field{"declarations", decls})
}

// MarshalJSON implements json.Marshaler
func (n *VariableDeclaration) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeVariableDeclaration,
		field{"id", n.ID},
		field{"init", n.Init},
	)
}

// MarshalJSON implements json.Marshaler
func (n *IfStatement) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeIfStatement,
		field{"test", n.Test},
		field{"consequent", n.Consequent},
		field{"alternate", n.Alternate},
	)
}

// MarshalJSON implements json.Marshaler
func (n *WhileStatement) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeWhileStatement,
		field{"test", n.Test},
		field{"body", n.Body},
	)
}

// MarshalJSON implements json.Marshaler
func (n *DoWhileStatement) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeDoWhileStatement,
		field{"body", n.Body},
		field{"test", n.Test},
	)
}

// MarshalJSON implements json.Marshaler
func (n *ForStatement) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeForStatement,
		field{"init", n.Init},
		field{"test", n.Test},
		field{"update", n.Update},
		field{"body", n.Body},
	)
}

// MarshalJSON implements json.Marshaler
func (n *FunctionDeclaration) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeFunctionDeclaration,
		field{"name", n.Name},
		field{"params", identifierList(n.Params)},
		field{"body", n.Body},
	)
}

// MarshalJSON implements json.Marshaler
func (n *ReturnStatement) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeReturnStatement, field{"argument", n.Argument})
}

// MarshalJSON implements json.Marshaler
func (n *ClassDeclaration) MarshalJSON() ([]byte, error) {
	body := n.Body
	if body == nil {
		body = []*FunctionDeclaration{}
	}
	return encodeNode(TypeClassDeclaration,
		field{"id", n.ID},
		field{"superClass", n.SuperClass},
		field{"body", body},
	)
}

// MarshalJSON implements json.Marshaler
func (n *AssignmentExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeAssignmentExpression,
		field{"operator", n.Operator},
		field{"left", n.Left},
		field{"right", n.Right},
	)
}

// MarshalJSON implements json.Marshaler
func (n *LogicalExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeLogicalExpression,
		field{"operator", n.Operator},
		field{"left", n.Left},
		field{"right", n.Right},
	)
}

// MarshalJSON implements json.Marshaler
func (n *BinaryExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeBinaryExpression,
		field{"operator", n.Operator},
		field{"left", n.Left},
		field{"right", n.Right},
	)
}

// MarshalJSON implements json.Marshaler
func (n *UnaryExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeUnaryExpression,
		field{"operator", n.Operator},
		field{"argument", n.Argument},
	)
}

// MarshalJSON implements json.Marshaler
func (n *MemberExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeMemberExpression,
		field{"object", n.Object},
		field{"property", n.Property},
		field{"computed", n.Computed},
	)
}

// MarshalJSON implements json.Marshaler
func (n *CallExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeCallExpression,
		field{"callee", n.Callee},
		field{"arguments", expressionList(n.Arguments)},
	)
}

// MarshalJSON implements json.Marshaler
func (n *Identifier) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeIdentifier, field{"name", n.Name})
}

// MarshalJSON implements json.Marshaler
func (n *ThisExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeThisExpression)
}

// MarshalJSON implements json.Marshaler
func (n *SuperExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeSuperExpression)
}

// MarshalJSON implements json.Marshaler
func (n *NewExpression) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeNewExpression,
		field{"callee", n.Callee},
		field{"arguments", expressionList(n.Arguments)},
	)
}

// MarshalJSON implements json.Marshaler
func (n *NumericLiteral) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeNumericLiteral, field{"value", n.Value})
}

// MarshalJSON implements json.Marshaler
func (n *StringLiteral) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeStringLiteral, field{"value", n.Value})
}

// MarshalJSON implements json.Marshaler
func (n *BooleanLiteral) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeBooleanLiteral, field{"value", n.Value})
}

// MarshalJSON implements json.Marshaler
func (n *NullLiteral) MarshalJSON() ([]byte, error) {
	return encodeNode(TypeNullLiteral)
}
