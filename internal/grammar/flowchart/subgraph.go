package flowchart

import (
	"fmt"
	"strings"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

func (p *Parser) parseSubgraph() {
	kw := p.Advance()
	rest, ok := p.Expect(Rest, diag.SynExpectedToken, "expected a subgraph id or title")
	sg := &ast.Subgraph{}
	if ok {
		sg = p.subgraphHeader(rest)
	}
	sg.Span = kw.Span.Cover(p.Last)

	if sg.ID != "" {
		if first, dup := p.subgraphs[sg.ID]; dup {
			p.Report(diag.SemaDuplicateSubgraph, diag.SevWarning, sg.Span,
				fmt.Sprintf("subgraph %q is already defined", sg.ID),
				diag.Note{Span: first.Span, Msg: "first defined here"})
		} else {
			p.subgraphs[sg.ID] = sg
		}
	}
	if n := len(p.open); n > 0 {
		parent := p.open[n-1].sg
		parent.Subgraphs = append(parent.Subgraphs, sg)
	} else {
		p.g.Subgraphs = append(p.g.Subgraphs, sg)
	}
	p.open = append(p.open, openSubgraph{sg: sg, kw: kw.Span})
	p.endStatement()
}

// subgraphHeader decodes `id`, `id [title]`, `id["title"]`, `"title"` or a
// bare multi-word title.
func (p *Parser) subgraphHeader(rest token.Token[Kind]) *ast.Subgraph {
	text := rest.Text
	if i := strings.IndexByte(text, '['); i > 0 {
		id := strings.TrimSpace(text[:i])
		if !strings.HasSuffix(text, "]") {
			p.Report(diag.SynUnbalancedDelimiter, diag.SevError, p.restSpan(rest, i, i+1),
				"missing closing `]` of the subgraph title")
			return &ast.Subgraph{ID: id, Title: id}
		}
		title := p.unquoteChecked(rest, strings.TrimSpace(text[i+1:len(text)-1]))
		return &ast.Subgraph{ID: id, Title: title}
	}
	if strings.HasPrefix(text, `"`) {
		title := p.unquoteChecked(rest, text)
		return &ast.Subgraph{ID: title, Title: title}
	}
	return &ast.Subgraph{ID: text, Title: text}
}

func (p *Parser) unquoteChecked(rest token.Token[Kind], s string) string {
	if strings.HasPrefix(s, `"`) && (len(s) < 2 || !strings.HasSuffix(s, `"`)) {
		p.Report(diag.LexUnterminatedString, diag.SevError, rest.Span, "unterminated string")
	}
	return unquote(s)
}

// restSpan maps a byte range of a Rest token back to the original text.
func (p *Parser) restSpan(rest token.Token[Kind], lo, hi int) source.Span {
	return p.loc.Span(rest.Lo+uint32(lo), rest.Lo+uint32(hi))
}

func (p *Parser) parseEnd() {
	kw := p.Advance()
	if n := len(p.open); n == 0 {
		p.Report(diag.SynUnexpectedEnd, diag.SevError, kw.Span, "`end` without an open subgraph")
	} else {
		top := p.open[n-1]
		top.sg.Span = top.sg.Span.Cover(kw.Span)
		p.open = p.open[:n-1]
	}
	p.endStatement()
}

// closeSubgraphs reports every subgraph still open at the end of input.
func (p *Parser) closeSubgraphs() {
	for i := len(p.open) - 1; i >= 0; i-- {
		o := p.open[i]
		o.sg.Span = o.sg.Span.Cover(p.Last)
		p.Report(diag.SynUnclosedSubgraph, diag.SevError, o.kw,
			fmt.Sprintf("subgraph %q is missing `end`", o.sg.ID),
			diag.Note{Span: source.PointSpan(p.Last.End), Msg: "input ends here"})
	}
	p.open = nil
}

func (p *Parser) parseDirection() {
	p.Advance()
	d, ok := p.Expect(Ident, diag.SynInvalidDirection, "expected a direction after `direction`")
	if !ok {
		p.ResyncUntil(Newline, Semi)
		return
	}
	dir, valid := ast.ParseDirection(d.Text, false)
	switch {
	case !valid:
		p.Report(diag.SynInvalidDirection, diag.SevError, d.Span,
			fmt.Sprintf("unknown direction %q, expected TB, TD, BT, LR or RL", d.Text))
	case len(p.open) > 0:
		p.open[len(p.open)-1].sg.Direction = dir
	default:
		p.g.Direction = dir
	}
	p.endStatement()
}

// parseStyle keeps `style`, `classDef`, `class`, `click` and `linkStyle`
// with their raw payload.
func (p *Parser) parseStyle() {
	kw := p.Advance()
	rest, ok := p.Expect(Rest, diag.SynExpectedToken, fmt.Sprintf("expected operands after %q", kw.Text))
	if !ok {
		return
	}
	target, payload := rest.Text, ""
	if i := strings.IndexAny(rest.Text, " \t"); i >= 0 {
		target, payload = rest.Text[:i], strings.TrimSpace(rest.Text[i:])
	}
	p.g.Stmts = append(p.g.Stmts, &ast.StyleStmt{
		Keyword: kw.Text,
		Target:  target,
		Payload: payload,
		Span:    kw.Span.Cover(rest.Span),
	})
	p.endStatement()
}
