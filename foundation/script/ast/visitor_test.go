// File: visitor_test.go
// Title: Script AST Visitor Tests
// Description: Tests for s-expression printing, traversal, validation and
//              summaries
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor tests
// - 2025-10-12 v0.2.0: Script nodes

package ast

import (
	"errors"
	"reflect"
	"testing"
)

func id(name string) *Identifier { return &Identifier{Name: name} }

func num(v float64) *NumericLiteral { return &NumericLiteral{Value: v} }

func exprStmt(e Expression) *ExpressionStatement { return &ExpressionStatement{Expression: e} }

func TestToSExpr(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"number", num(42), "42"},
		{"fraction", num(0.25), "0.25"},
		{"string", &StringLiteral{Value: "hi"}, `"hi"`},
		{"keywords", &Program{Body: []Statement{
			exprStmt(&BooleanLiteral{Value: true}),
			exprStmt(&NullLiteral{}),
			exprStmt(&ThisExpression{}),
		}}, "(program true null this)"},
		{"precedence", &BinaryExpression{
			Operator: "+",
			Left:     num(2),
			Right:    &BinaryExpression{Operator: "*", Left: num(3), Right: num(4)},
		}, "(+ 2 (* 3 4))"},
		{"unary", &UnaryExpression{Operator: "-", Argument: id("x")}, "(- x)"},
		{"assignment", &AssignmentExpression{Operator: "=", Left: id("a"), Right: num(1)}, "(= a 1)"},
		{"member", &MemberExpression{Object: id("a"), Property: id("b")}, "(. a b)"},
		{"computed member", &MemberExpression{Object: id("a"), Property: num(0), Computed: true}, "([] a 0)"},
		{"call", &CallExpression{Callee: id("f"), Arguments: []Expression{num(1), id("y")}}, "(call f 1 y)"},
		{"call without args", &CallExpression{Callee: &SuperExpression{}}, "(call super)"},
		{"new", &NewExpression{Callee: id("P"), Arguments: []Expression{num(1)}}, "(new P 1)"},
		{"let", &VariableStatement{Declarations: []*VariableDeclaration{
			{ID: id("x"), Init: num(1)},
			{ID: id("y")},
		}}, "(let (x 1) (y))"},
		{"if else", &IfStatement{Test: id("c"), Consequent: &EmptyStatement{}, Alternate: &BlockStatement{}},
			"(if c (empty) (block))"},
		{"if", &IfStatement{Test: id("c"), Consequent: &EmptyStatement{}}, "(if c (empty))"},
		{"while", &WhileStatement{Test: id("c"), Body: &EmptyStatement{}}, "(while c (empty))"},
		{"do while", &DoWhileStatement{Body: &EmptyStatement{}, Test: id("c")}, "(do (empty) c)"},
		{"for empty", &ForStatement{Body: &EmptyStatement{}}, "(for _ _ _ (empty))"},
		{"function", &FunctionDeclaration{
			Name:   id("sq"),
			Params: []*Identifier{id("x")},
			Body: &BlockStatement{Body: []Statement{
				&ReturnStatement{Argument: &BinaryExpression{Operator: "*", Left: id("x"), Right: id("x")}},
			}},
		}, "(def sq (x) (block (return (* x x))))"},
		{"return", &ReturnStatement{}, "(return)"},
		{"class", &ClassDeclaration{
			ID:         id("B"),
			SuperClass: id("A"),
			Body:       []*FunctionDeclaration{{Name: id("m"), Body: &BlockStatement{}}},
		}, "(class B A (def m () (block)))"},
		{"class without super", &ClassDeclaration{ID: id("A")}, "(class A _)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSExpr(tt.node); got != tt.want {
				t.Errorf("ToSExpr() = %s, want %s", got, tt.want)
			}
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

// identCounter counts identifier visits through BaseVisitor embedding
type identCounter struct {
	BaseVisitor
	count int
}

func (c *identCounter) VisitIdentifier(*Identifier) interface{} {
	c.count++
	return c.count
}

func TestBaseVisitorEmbedding(t *testing.T) {
	counter := &identCounter{}
	program := &Program{Body: []Statement{
		exprStmt(&BinaryExpression{Operator: "+", Left: id("a"), Right: &CallExpression{Callee: id("f"), Arguments: []Expression{id("b")}}}),
	}}

	Inspect(program, func(n Node) bool {
		n.Accept(counter)
		return true
	})

	if counter.count != 3 {
		t.Errorf("identifier visits = %d, want 3", counter.count)
	}
	if got := (&NumericLiteral{Value: 1}).Accept(counter); got != nil {
		t.Errorf("base visitor result = %v, want nil", got)
	}
}

func TestInspectOrder(t *testing.T) {
	stmt := &ForStatement{
		Init:   &VariableStatement{Declarations: []*VariableDeclaration{{ID: id("i"), Init: num(0)}}},
		Test:   &BinaryExpression{Operator: "<", Left: id("i"), Right: num(3)},
		Update: &AssignmentExpression{Operator: "+=", Left: id("i"), Right: num(1)},
		Body:   &EmptyStatement{},
	}

	var kinds []string
	Inspect(stmt, func(n Node) bool {
		kinds = append(kinds, n.Type())
		return true
	})

	want := []string{
		TypeForStatement,
		TypeVariableStatement, TypeVariableDeclaration, TypeIdentifier, TypeNumericLiteral,
		TypeBinaryExpression, TypeIdentifier, TypeNumericLiteral,
		TypeAssignmentExpression, TypeIdentifier, TypeNumericLiteral,
		TypeEmptyStatement,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("Inspect order = %v, want %v", kinds, want)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	node := &CallExpression{Callee: id("f"), Arguments: []Expression{&CallExpression{Callee: id("g")}}}

	var count int
	Inspect(node, func(n Node) bool {
		count++
		_, isCall := n.(*CallExpression)
		return !isCall || n == node
	})

	// f, the inner call, but not g
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}

func TestChildrenSkipsAbsent(t *testing.T) {
	node := &ClassDeclaration{ID: id("A")}
	if got := len(Children(node)); got != 1 {
		t.Errorf("Children() returned %d nodes, want 1", got)
	}
	if got := Children(&NullLiteral{}); len(got) != 0 {
		t.Errorf("leaf has %d children", len(got))
	}
}

func TestEqual(t *testing.T) {
	a := &BinaryExpression{Operator: "-", Left: num(1), Right: num(2)}
	b := &BinaryExpression{Operator: "-", Left: num(1), Right: num(2)}
	c := &BinaryExpression{Operator: "-", Left: num(2), Right: num(1)}

	if !Equal(a, b) {
		t.Error("identical trees reported unequal")
	}
	if Equal(a, c) {
		t.Error("different trees reported equal")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr bool
	}{
		{"valid assignment to member", exprStmt(&AssignmentExpression{
			Operator: "=", Left: &MemberExpression{Object: &ThisExpression{}, Property: id("x")}, Right: num(1),
		}), false},
		{"assignment to literal", exprStmt(&AssignmentExpression{
			Operator: "=", Left: num(1), Right: num(2),
		}), true},
		{"unknown binary operator", &BinaryExpression{Operator: "%", Left: num(1), Right: num(2)}, true},
		{"unary plus", &UnaryExpression{Operator: "+", Argument: num(1)}, true},
		{"logical with binary operator", &LogicalExpression{Operator: "+", Left: num(1), Right: num(2)}, true},
		{"empty let", &VariableStatement{}, true},
		{"non computed literal property", &MemberExpression{Object: id("a"), Property: num(1)}, true},
		{"nested failure", &Program{Body: []Statement{
			&WhileStatement{Test: id("x"), Body: exprStmt(&CallExpression{})},
		}}, true},
		{"for with expression init", &ForStatement{Init: &AssignmentExpression{
			Operator: "=", Left: id("i"), Right: num(0),
		}, Body: &EmptyStatement{}}, false},
		{"for with statement init", &ForStatement{Init: &EmptyStatement{}, Body: &EmptyStatement{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("error type = %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	// class Sq extends Base { def area() { return this.s * this.s; } }
	// let s = new Sq(2);
	// print(s.area());
	program := &Program{Body: []Statement{
		&ClassDeclaration{
			ID:         id("Sq"),
			SuperClass: id("Base"),
			Body: []*FunctionDeclaration{{
				Name: id("area"),
				Body: &BlockStatement{Body: []Statement{
					&ReturnStatement{Argument: &BinaryExpression{
						Operator: "*",
						Left:     &MemberExpression{Object: &ThisExpression{}, Property: id("s")},
						Right:    &MemberExpression{Object: &ThisExpression{}, Property: id("s")},
					}},
				}},
			}},
		},
		&VariableStatement{Declarations: []*VariableDeclaration{
			{ID: id("s"), Init: &NewExpression{Callee: id("Sq"), Arguments: []Expression{num(2)}}},
		}},
		exprStmt(&CallExpression{Callee: id("print"), Arguments: []Expression{
			&CallExpression{Callee: &MemberExpression{Object: id("s"), Property: id("area")}},
		}}),
	}}

	got := Summarize(program)

	check := func(field string, got, want []string) {
		t.Helper()
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s = %v, want %v", field, got, want)
		}
	}
	check("Functions", got.Functions, []string{"area"})
	check("Classes", got.Classes, []string{"Sq"})
	check("Variables", got.Variables, []string{"s"})
	check("References", got.References, []string{"Base", "Sq", "print", "s"})
	check("Calls", got.Calls, []string{"print"})

	var total int
	Inspect(program, func(Node) bool {
		total++
		return true
	})
	if got.Nodes != total {
		t.Errorf("Nodes = %d, want %d", got.Nodes, total)
	}
}
