package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"gopkg.in/yaml.v3"

	"github.com/msto63/frege/foundation/script/ast"
)

// Tree renders n as an indented tree. Each node shows its type and scalar
// fields; child nodes hang below under their field name. Absent optional
// children are omitted.
func Tree(n ast.Node, st Styles) string {
	doc, err := document(n)
	if err != nil {
		return st.Fail.Render(err.Error())
	}

	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}

	t := nodeTree(st, "", root).
		Enumerator(tree.DefaultEnumerator).
		EnumeratorStyle(st.Branch)
	return strings.TrimRight(t.String(), "\n")
}

// nodeTree builds the subtree for one encoded AST node
func nodeTree(st Styles, field string, n *yaml.Node) *tree.Tree {
	t := tree.Root(label(st, field, n))
	if n.Kind != yaml.MappingNode {
		return t
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		switch val.Kind {
		case yaml.MappingNode:
			t.Child(nodeTree(st, key, val))
		case yaml.SequenceNode:
			t.Child(listTree(st, key, val))
		}
	}
	return t
}

// listTree renders a sequence field; empty lists become a leaf
func listTree(st Styles, field string, n *yaml.Node) any {
	head := st.Field.Render(fmt.Sprintf("%s [%d]", field, len(n.Content)))
	if len(n.Content) == 0 {
		return head
	}

	t := tree.Root(head)
	for _, item := range n.Content {
		t.Child(nodeTree(st, "", item))
	}
	return t
}

// label formats "field: Type attr=value ..." for a node
func label(st Styles, field string, n *yaml.Node) string {
	var b strings.Builder
	if field != "" {
		b.WriteString(st.Field.Render(field + ":"))
		b.WriteByte(' ')
	}

	if n.Kind != yaml.MappingNode {
		b.WriteString(scalar(st, n))
		return b.String()
	}

	var attrs []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			continue
		}
		if key == "type" {
			b.WriteString(st.NodeType.Render(val.Value))
			continue
		}
		if val.Tag == "!!null" {
			continue
		}
		attrs = append(attrs, st.Attribute.Render(key+"=")+scalar(st, val))
	}
	if len(attrs) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(attrs, " "))
	}
	return b.String()
}

func scalar(st Styles, n *yaml.Node) string {
	if n.Tag == "!!str" {
		return st.Literal.Render(strconv.Quote(n.Value))
	}
	return st.Literal.Render(n.Value)
}
