package flowchart

import (
	"fmt"
	"slices"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

// parseNode parses `id [shape label] [:::class]` and declares the node.
func (p *Parser) parseNode() (ref, bool) {
	if !p.AtAny(Ident, Number) {
		if !p.At(Invalid) {
			p.Err(diag.SynExpectedToken, fmt.Sprintf("expected a node id, found %s", describe(p.Peek())))
		}
		return ref{}, false
	}
	id := p.Advance()
	span := id.Span
	shape, label := ast.ShapeDefault, ""
	if p.At(ShapeOpen) {
		var shapeSpan source.Span
		shape, label, shapeSpan = p.parseShape()
		span = span.Cover(shapeSpan)
	}
	var classes []string
	if p.Eat(ClassShorthand) {
		if cls, ok := p.Expect(Ident, diag.SynExpectedToken, "expected a class name after `:::`"); ok {
			classes = append(classes, cls.Text)
			span = span.Cover(cls.Span)
		}
	}
	p.declare(id.Text, shape, label, classes, span)
	return ref{id: id.Text, span: span}, true
}

// parseShape parses an opener, the label and its closer.
func (p *Parser) parseShape() (ast.Shape, string, source.Span) {
	open := p.Advance()
	sp := open.Span
	label, parts := p.collectLabel()
	if len(parts) > 0 {
		sp = sp.Cover(parts[len(parts)-1].Span)
	}
	if !p.At(ShapeClose) {
		p.Report(diag.SynUnbalancedDelimiter, diag.SevError, p.DiagnosticSpan(),
			fmt.Sprintf("missing closing delimiter for %q", open.Text),
			diag.Note{Span: open.Span, Msg: "opened here"})
		return shapeOf(open.Text, ""), label, sp
	}
	closer := p.Advance()
	sp = sp.Cover(closer.Span)
	if len(parts) == 0 {
		p.Report(diag.SynEmptyLabel, diag.SevError, sp, "empty node label")
	}
	return shapeOf(open.Text, closer.Text), label, sp
}

// collectLabel reads the String / LabelText tokens of a label. Only one
// part is allowed; the text of the first one is returned.
func (p *Parser) collectLabel() (string, []token.Token[Kind]) {
	var parts []token.Token[Kind]
	for p.AtAny(String, LabelText) {
		parts = append(parts, p.Advance())
	}
	if len(parts) == 0 {
		return "", nil
	}
	if len(parts) > 1 {
		p.Report(diag.SynUnexpectedToken, diag.SevError, parts[1].Span,
			fmt.Sprintf("unexpected %q after the label", parts[1].Text))
	}
	return labelText(parts[0]), parts
}

func labelText(tok token.Token[Kind]) string {
	if tok.Kind != String {
		return tok.Text
	}
	return unquote(tok.Text)
}

// unquote strips the quotes of a possibly unterminated string.
func unquote(s string) string {
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
		if len(s) > 0 && s[len(s)-1] == '"' {
			s = s[:len(s)-1]
		}
	}
	return s
}

func shapeOf(open, closer string) ast.Shape {
	switch open {
	case "(((":
		return ast.ShapeDoubleCircle
	case "((":
		return ast.ShapeCircle
	case "([":
		return ast.ShapeStadium
	case "(":
		return ast.ShapeRound
	case "[[":
		return ast.ShapeSubroutine
	case "[(":
		return ast.ShapeCylinder
	case "[/":
		if closer == `\]` {
			return ast.ShapeTrapezoid
		}
		return ast.ShapeParallelogram
	case `[\`:
		if closer == "/]" {
			return ast.ShapeTrapezoidAlt
		}
		return ast.ShapeParallelogramAlt
	case "{{":
		return ast.ShapeHexagon
	case "{":
		return ast.ShapeRhombus
	case ">":
		return ast.ShapeAsymmetric
	}
	return ast.ShapeRect
}

// declare records a node occurrence. The first occurrence fixes the node's
// position in Nodes; the first shaped occurrence fixes its shape and label.
func (p *Parser) declare(id string, shape ast.Shape, label string, classes []string, span source.Span) {
	n, seen := p.nodes[id]
	switch {
	case !seen:
		n = &ast.FlowNode{ID: id, Shape: shape, Label: label, Span: span}
		p.nodes[id] = n
		p.g.Nodes = append(p.g.Nodes, n)
		if len(p.open) > 0 {
			sg := p.open[len(p.open)-1].sg
			sg.Nodes = append(sg.Nodes, id)
		}
		if shape != ast.ShapeDefault {
			p.shaped[id] = span
		}
	case shape == ast.ShapeDefault:
	default:
		first, shaped := p.shaped[id]
		if !shaped {
			n.Shape, n.Label = shape, label
			p.shaped[id] = span
		} else if n.Shape != shape {
			p.Report(diag.SemaConflictingNodeShape, diag.SevWarning, span,
				fmt.Sprintf("node %q redeclared as %s, keeping %s", id, shape, n.Shape),
				diag.Note{Span: first, Msg: "first declared here"})
		}
	}
	for _, c := range classes {
		if !slices.Contains(n.Classes, c) {
			n.Classes = append(n.Classes, c)
		}
	}
}
