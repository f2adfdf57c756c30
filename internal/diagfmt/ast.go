package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"mermaidlint/internal/ast"
)

// FormatASTJSON writes the tree as indented JSON.
func FormatASTJSON(w io.Writer, tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("no ast")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

// FormatASTYAML writes the tree as YAML.
func FormatASTYAML(w io.Writer, tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("no ast")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return err
	}
	return enc.Close()
}

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(format string, args ...any) *treeNode {
	child := &treeNode{label: fmt.Sprintf(format, args...)}
	n.children = append(n.children, child)
	return child
}

// FormatASTPretty печатает дерево с ветками ├─ └─.
func FormatASTPretty(w io.Writer, tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("no ast")
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", tree.Tag, tree.Span)}
	switch {
	case tree.Flowchart != nil:
		buildFlowTree(root, tree.Flowchart)
	case tree.Pie != nil:
		buildPieTree(root, tree.Pie)
	case tree.Outline != nil:
		buildOutlineTree(root, tree.Outline)
	}
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	renderChildren(&sb, root, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderChildren(sb *strings.Builder, n *treeNode, prefix string) {
	for i, child := range n.children {
		branch, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + child.label + "\n")
		renderChildren(sb, child, prefix+next)
	}
}

func buildFlowTree(root *treeNode, g *ast.FlowGraph) {
	root.add("Header: %s %s (span: %s)", g.Header.Keyword, g.Direction, g.Header.Span)
	if len(g.Nodes) > 0 {
		nodes := root.add("Nodes")
		for _, n := range g.Nodes {
			label := fmt.Sprintf("%s %s", n.ID, n.Shape)
			if n.Label != "" {
				label += fmt.Sprintf(" %q", n.Label)
			}
			if len(n.Classes) > 0 {
				label += " :::" + strings.Join(n.Classes, ",")
			}
			nodes.add("%s (span: %s)", label, n.Span)
		}
	}
	if len(g.Edges) > 0 {
		edges := root.add("Edges")
		for _, e := range g.Edges {
			label := fmt.Sprintf("%s -[%s %s]-> %s", e.From, e.Arrow.Stroke, e.Arrow.Head, e.To)
			if e.Label != "" {
				label += fmt.Sprintf(" %q", e.Label)
			}
			edges.add("%s (span: %s)", label, e.Span)
		}
	}
	for _, s := range g.Subgraphs {
		buildSubgraphTree(root, s)
	}
	for _, s := range g.Stmts {
		root.add("%s %s %s (span: %s)", s.Keyword, s.Target, s.Payload, s.Span)
	}
}

func buildSubgraphTree(parent *treeNode, s *ast.Subgraph) {
	node := parent.add("Subgraph %s %q (span: %s)", s.ID, s.Title, s.Span)
	if s.Direction != "" {
		node.add("Direction: %s", s.Direction)
	}
	if len(s.Nodes) > 0 {
		node.add("Nodes: %s", strings.Join(s.Nodes, ", "))
	}
	for _, child := range s.Subgraphs {
		buildSubgraphTree(node, child)
	}
}

func buildPieTree(root *treeNode, p *ast.PieChart) {
	root.add("Header: %s showData=%t (span: %s)", p.Header.Keyword, p.ShowData, p.Header.Span)
	texts := []struct {
		name string
		t    *ast.Text
	}{{"Title", p.Title}, {"AccTitle", p.AccTitle}, {"AccDescr", p.AccDescr}}
	for _, tx := range texts {
		if tx.t != nil {
			root.add("%s: %q (span: %s)", tx.name, tx.t.Value, tx.t.Span)
		}
	}
	if len(p.Slices) > 0 {
		slices := root.add("Slices")
		for _, s := range p.Slices {
			slices.add("%q = %g (span: %s)", s.Label, s.Value, s.Span)
		}
	}
}

func buildOutlineTree(root *treeNode, o *ast.Outline) {
	root.add("Header: %s (span: %s)", o.Header.Keyword, o.Header.Span)
	for _, st := range o.Statements {
		root.add("%s%q (span: %s)", strings.Repeat(" ", st.Depth), st.Text, st.Span)
	}
}
