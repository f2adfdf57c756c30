package flowchart

import (
	"fmt"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
)

// parseLink consumes one arrow with its optional label. On false the
// caller resyncs to the end of the statement.
func (p *Parser) parseLink() (ast.Arrow, string, bool) {
	tok := p.Advance()
	switch tok.Kind {
	case Link:
		arrow, _ := classifyArrow(tok.Text)
		arrow.Span = tok.Span
		if !p.At(Pipe) {
			return arrow, "", true
		}
		label, ok := p.parsePipeLabel()
		return arrow, label, ok

	case LinkOpen:
		opener, _ := classifyArrow(tok.Text)
		label, parts := p.collectLabel()
		if len(parts) == 0 && !p.At(Invalid) {
			p.Err(diag.SynEmptyLabel, fmt.Sprintf("expected label text after %q", tok.Text))
		}
		if !p.AtAny(Link, LinkClose) {
			p.Err(diag.SynExpectedToken, fmt.Sprintf("expected an arrow closing the label opened by %q", tok.Text))
			return ast.Arrow{}, "", false
		}
		end := p.Advance()
		closer, cls := classifyArrow(end.Text)
		if !closesLabel(opener, closer, cls) || (opener.Tail != ast.HeadNone && closer.Head == ast.HeadNone) {
			p.Report(diag.SynInvalidArrow, diag.SevError, end.Span,
				fmt.Sprintf("%q cannot close a label opened by %q", end.Text, tok.Text),
				diag.Note{Span: tok.Span, Msg: "label opened here"})
			return ast.Arrow{}, "", false
		}
		return ast.Arrow{
			Stroke: opener.Stroke,
			Tail:   opener.Tail,
			Head:   closer.Head,
			Length: max(closer.Length, 1),
			Span:   tok.Span.Cover(end.Span),
		}, label, true
	}

	p.Report(diag.SynInvalidArrow, diag.SevError, tok.Span, fmt.Sprintf("invalid arrow %q", tok.Text))
	return ast.Arrow{}, "", false
}

// parsePipeLabel parses `|text|` after an arrow.
func (p *Parser) parsePipeLabel() (string, bool) {
	open := p.Advance()
	label, _ := p.collectLabel()
	if !p.At(Pipe) {
		p.Report(diag.SynUnbalancedDelimiter, diag.SevError, p.DiagnosticSpan(),
			"missing closing `|` of the edge label",
			diag.Note{Span: open.Span, Msg: "opened here"})
		return label, false
	}
	p.Advance()
	return label, true
}
