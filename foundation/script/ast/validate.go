// File: validate.go
// Title: Script AST Structural Checks
// Description: Validates tree invariants and collects declaration and
//              reference summaries over a tree.
// Author: msto63
// Version: v0.2.0
// Created: 2025-10-12
// Modified: 2025-10-12
//
// Change History:
// - 2025-10-12 v0.2.0: Initial implementation

package ast

import (
	"fmt"
	"sort"
)

// Operator sets per node kind
var (
	AssignmentOperators = []string{"=", "+=", "-=", "*=", "/="}
	LogicalOperators    = []string{"&&", "||"}
	BinaryOperators     = []string{"+", "-", "*", "/", "==", "!=", ">", ">=", "<", "<="}
	UnaryOperators      = []string{"-", "!"}
)

// ValidationError reports the first node that breaks a tree invariant
type ValidationError struct {
	Node    Node
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Node.Type(), e.Message)
}

func contains(set []string, op string) bool {
	for _, s := range set {
		if s == op {
			return true
		}
	}
	return false
}

// IsAssignable reports whether e may appear on the left of an assignment
func IsAssignable(e Expression) bool {
	switch e.(type) {
	case *Identifier, *MemberExpression:
		return !isNil(e)
	}
	return false
}

// Validate checks a tree built by hand or decoded from elsewhere against the
// invariants the parser guarantees: required children are present,
// operators belong to their node kind and assignment targets are
// identifiers or member expressions.
func Validate(root Node) error {
	var err error
	fail := func(n Node, format string, args ...interface{}) bool {
		err = &ValidationError{Node: n, Message: fmt.Sprintf(format, args...)}
		return false
	}

	Inspect(root, func(n Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ExpressionStatement:
			if isNil(n.Expression) {
				return fail(n, "missing expression")
			}
		case *VariableStatement:
			if len(n.Declarations) == 0 {
				return fail(n, "no declarations")
			}
		case *VariableDeclaration:
			if n.ID == nil {
				return fail(n, "missing id")
			}
		case *IfStatement:
			if isNil(n.Test) || isNil(n.Consequent) {
				return fail(n, "missing test or consequent")
			}
		case *WhileStatement:
			if isNil(n.Test) || isNil(n.Body) {
				return fail(n, "missing test or body")
			}
		case *DoWhileStatement:
			if isNil(n.Test) || isNil(n.Body) {
				return fail(n, "missing test or body")
			}
		case *ForStatement:
			if isNil(n.Body) {
				return fail(n, "missing body")
			}
			switch n.Init.(type) {
			case nil, *VariableStatement, Expression:
			default:
				return fail(n, "init must be a let statement or an expression, got %s", n.Init.Type())
			}
		case *FunctionDeclaration:
			if n.Name == nil || n.Body == nil {
				return fail(n, "missing name or body")
			}
		case *ClassDeclaration:
			if n.ID == nil {
				return fail(n, "missing id")
			}
		case *AssignmentExpression:
			if !contains(AssignmentOperators, n.Operator) {
				return fail(n, "operator %q", n.Operator)
			}
			if !IsAssignable(n.Left) {
				return fail(n, "invalid assignment target")
			}
			if isNil(n.Right) {
				return fail(n, "missing right operand")
			}
		case *LogicalExpression:
			if !contains(LogicalOperators, n.Operator) {
				return fail(n, "operator %q", n.Operator)
			}
			if isNil(n.Left) || isNil(n.Right) {
				return fail(n, "missing operand")
			}
		case *BinaryExpression:
			if !contains(BinaryOperators, n.Operator) {
				return fail(n, "operator %q", n.Operator)
			}
			if isNil(n.Left) || isNil(n.Right) {
				return fail(n, "missing operand")
			}
		case *UnaryExpression:
			if !contains(UnaryOperators, n.Operator) {
				return fail(n, "operator %q", n.Operator)
			}
			if isNil(n.Argument) {
				return fail(n, "missing argument")
			}
		case *MemberExpression:
			if isNil(n.Object) || isNil(n.Property) {
				return fail(n, "missing object or property")
			}
			if _, ok := n.Property.(*Identifier); !n.Computed && !ok {
				return fail(n, "non-computed property must be an identifier")
			}
		case *CallExpression:
			if isNil(n.Callee) {
				return fail(n, "missing callee")
			}
		case *NewExpression:
			if isNil(n.Callee) {
				return fail(n, "missing callee")
			}
		}
		return true
	})
	return err
}

// Summary lists the names a tree declares and references. All slices are
// sorted and free of duplicates.
type Summary struct {
	Functions  []string `json:"functions" yaml:"functions"`
	Classes    []string `json:"classes" yaml:"classes"`
	Variables  []string `json:"variables" yaml:"variables"`
	References []string `json:"references" yaml:"references"`
	Calls      []string `json:"calls" yaml:"calls"`
	Nodes      int      `json:"nodes" yaml:"nodes"`
}

// Summarize walks root and fills a Summary. Methods count as functions.
// Declared names and non-computed property names are not references;
// Calls records callees that are plain identifiers.
func Summarize(root Node) Summary {
	functions := map[string]struct{}{}
	classes := map[string]struct{}{}
	variables := map[string]struct{}{}
	references := map[string]struct{}{}
	calls := map[string]struct{}{}
	var nodes int

	var visit func(Node) bool
	descend := func(n Node) {
		Inspect(n, visit)
	}
	visit = func(n Node) bool {
		nodes++
		switch n := n.(type) {
		case *FunctionDeclaration:
			functions[n.Name.Name] = struct{}{}
			nodes++
			for _, p := range n.Params {
				variables[p.Name] = struct{}{}
				nodes++
			}
			descend(n.Body)
			return false
		case *ClassDeclaration:
			classes[n.ID.Name] = struct{}{}
			nodes++
			if n.SuperClass != nil {
				descend(n.SuperClass)
			}
			for _, m := range n.Body {
				descend(m)
			}
			return false
		case *VariableDeclaration:
			variables[n.ID.Name] = struct{}{}
			nodes++
			if !isNil(n.Init) {
				descend(n.Init)
			}
			return false
		case *MemberExpression:
			descend(n.Object)
			if n.Computed {
				descend(n.Property)
			} else {
				nodes++
			}
			return false
		case *CallExpression:
			if id, ok := n.Callee.(*Identifier); ok {
				calls[id.Name] = struct{}{}
			}
		case *Identifier:
			references[n.Name] = struct{}{}
		}
		return true
	}
	descend(root)

	return Summary{
		Functions:  sortedKeys(functions),
		Classes:    sortedKeys(classes),
		Variables:  sortedKeys(variables),
		References: sortedKeys(references),
		Calls:      sortedKeys(calls),
		Nodes:      nodes,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
