package pie

import (
	"fmt"
	"strconv"
	"strings"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/parser"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

type Parser struct {
	parser.Base[Kind]
	chart  *ast.PieChart
	labels map[string]source.Span
}

// Parse builds a pie chart from preprocessed text.
func Parse(text string, loc *source.Locator, opts parser.Options) *ast.PieChart {
	opts = opts.Shared()
	p := &Parser{
		Base:   parser.NewBase[Kind](NewLexer(text, loc, opts.Lexer()), Kinds, opts),
		labels: make(map[string]source.Span),
	}
	return p.parse()
}

func (p *Parser) parse() *ast.PieChart {
	p.chart = &ast.PieChart{Slices: []*ast.Slice{}}
	p.skipNewlines()
	start := p.Peek().Span

	if tok, ok := p.Expect(KwPie, diag.SynMissingHeader, "expected `pie` header"); ok {
		p.chart.Header = ast.Header{Keyword: tok.Text, Span: tok.Span}
		if p.Eat(KwShowData) {
			p.chart.ShowData = true
		}
		if p.At(KwTitle) {
			p.chart.Title = p.parseText()
		}
		p.endLine()
	}

	for !p.AtEOF() {
		if p.skipNewlines() {
			continue
		}
		p.parseStatement()
	}
	p.chart.Span = start.Cover(p.Last)
	return p.chart
}

func (p *Parser) skipNewlines() bool {
	moved := false
	for p.At(Newline) {
		p.Advance()
		moved = true
	}
	return moved
}

func (p *Parser) endLine() {
	if p.AtLineEnd() {
		return
	}
	p.unexpected("expected end of line")
}

func (p *Parser) unexpected(context string) {
	if !p.At(Invalid) {
		p.Err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %s, %s", describe(p.Peek()), context))
	}
	p.ResyncUntil(Newline)
}

func describe(tok token.Token[Kind]) string {
	switch tok.Kind {
	case EOF:
		return "end of input"
	case Newline:
		return "end of line"
	}
	return fmt.Sprintf("%q", tok.Text)
}

func (p *Parser) parseStatement() {
	switch p.Peek().Kind {
	case KwTitle:
		p.chart.Title = p.parseText()
	case KwAccTitle:
		p.chart.AccTitle = p.parseAcc()
	case KwAccDescr:
		p.chart.AccDescr = p.parseAcc()
	case String:
		p.parseSlice()
		return
	case Ident, Number:
		p.Err(diag.SynExpectedToken, "expected a quoted slice label")
		p.ResyncUntil(Newline)
		return
	default:
		p.unexpected("expected a slice or a title")
		return
	}
	p.endLine()
}

// parseText reads `title <rest of line>`.
func (p *Parser) parseText() *ast.Text {
	kw := p.Advance()
	if !p.At(Rest) {
		return &ast.Text{Span: kw.Span}
	}
	rest := p.Advance()
	return &ast.Text{Value: strings.TrimSpace(rest.Text), Span: rest.Span}
}

// parseAcc reads `accTitle: text`, `accDescr: text` or `accDescr { ... }`.
func (p *Parser) parseAcc() *ast.Text {
	kw := p.Advance()
	switch {
	case p.Eat(Colon):
		if !p.At(Rest) {
			p.Err(diag.SynExpectedToken, fmt.Sprintf("expected text after `%s:`", kw.Text))
			return nil
		}
		rest := p.Advance()
		return &ast.Text{Value: strings.TrimSpace(rest.Text), Span: rest.Span}
	case p.At(LBrace):
		open := p.Advance()
		t := &ast.Text{Span: open.Span}
		if p.At(Rest) {
			rest := p.Advance()
			t.Value = strings.TrimSpace(rest.Text)
			t.Span = t.Span.Cover(rest.Span)
		}
		if _, ok := p.Expect(RBrace, diag.SynUnbalancedDelimiter, "missing closing `}`"); ok {
			t.Span = t.Span.Cover(p.Last)
		}
		return t
	}
	p.Err(diag.SynExpectedToken, fmt.Sprintf("expected `:` after %q", kw.Text))
	p.ResyncUntil(Newline)
	return nil
}

// parseSlice reads `"label" : value`.
func (p *Parser) parseSlice() {
	lbl := p.Advance()
	label := strings.TrimSuffix(strings.TrimPrefix(lbl.Text, `"`), `"`)
	if _, ok := p.Expect(Colon, diag.SynExpectedToken, "expected `:` after the slice label"); !ok {
		p.ResyncUntil(Newline)
		return
	}
	if p.AtLineEnd() {
		p.Err(diag.SynExpectedToken, "expected a slice value")
		return
	}
	val := p.Advance()
	if val.Kind == Invalid {
		p.ResyncUntil(Newline)
		return
	}
	value, err := strconv.ParseFloat(val.Text, 64)
	switch {
	case val.Kind != Number || err != nil:
		p.Report(diag.SemaInvalidValue, diag.SevError, val.Span, fmt.Sprintf("slice value %q is not a number", val.Text))
		p.ResyncUntil(Newline)
		return
	case value < 0:
		p.Report(diag.SemaInvalidValue, diag.SevError, val.Span, fmt.Sprintf("slice value %s is negative", val.Text))
	}

	sp := lbl.Span.Cover(val.Span)
	if first, dup := p.labels[label]; dup {
		p.Report(diag.SemaDuplicateSlice, diag.SevWarning, lbl.Span,
			fmt.Sprintf("slice %q is already defined", label),
			diag.Note{Span: first, Msg: "first defined here"})
	} else {
		p.labels[label] = lbl.Span
	}
	p.chart.Slices = append(p.chart.Slices, &ast.Slice{Label: label, Value: value, Span: sp})
	p.endLine()
}
