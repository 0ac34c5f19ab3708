// Package render turns parse results into text: indented JSON, YAML,
// s-expressions, a styled tree, a token table and check summaries.
//
// JSON and YAML keep the field order of the AST encoding, with "type"
// first on every node. Tree output is meant for terminals and is not a
// stable format.
package render
