// Package ast defines the syntax tree produced by the script parser.
//
// Every node is a pointer to a plain struct and reports its kind through
// Type(). Statements implement Statement, expressions implement Expression;
// VariableDeclaration is neither and only appears inside VariableStatement.
//
// Encoding a node with encoding/json yields the interchange shape consumed by
// interpreters and printers: an object whose first key is "type" followed by
// the node's fields. Optional children are written as null and lists as [],
// never omitted.
//
//	{"type":"ExpressionStatement","expression":{"type":"NumericLiteral","value":42}}
//
// Trees are built once by the parser and not modified afterwards; children
// are owned by exactly one parent.
package ast
