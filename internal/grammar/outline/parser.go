package outline

import (
	"fmt"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/parser"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

type Parser struct {
	parser.Base[Kind]
	text   string
	out    *ast.Outline
	opened []token.Token[Kind]
	header bool
}

// Parse builds an outline of preprocessed text.
func Parse(text string, loc *source.Locator, opts parser.Options) *ast.Outline {
	opts = opts.Shared()
	p := &Parser{
		Base: parser.NewBase[Kind](NewLexer(text, loc, opts.Lexer()), Kinds, opts),
		text: text,
	}
	return p.parse()
}

func (p *Parser) parse() *ast.Outline {
	p.out = &ast.Outline{Statements: []*ast.Statement{}}
	var start source.Span
	for !p.AtEOF() {
		if p.Eat(Newline) {
			continue
		}
		st := p.parseLine()
		if !p.header {
			p.header = true
			start = st.Span
			p.out.Header = ast.Header{Keyword: st.Keyword, Span: st.Span}
			continue
		}
		p.out.Statements = append(p.out.Statements, st)
	}
	for _, o := range p.opened {
		p.Report(diag.SynUnbalancedDelimiter, diag.SevError, o.Span, fmt.Sprintf("unclosed %q", o.Text))
	}
	p.out.Span = start.Cover(p.Last)
	return p.out
}

func (p *Parser) parseLine() *ast.Statement {
	first := p.Peek()
	last := first
	for !p.AtLineEnd() {
		tok := p.Advance()
		last = tok
		switch tok.Kind {
		case Open:
			p.opened = append(p.opened, tok)
		case Close:
			p.close(tok)
		}
	}
	// ( и [ должны закрыться на своей строке
	kept := p.opened[:0]
	for _, o := range p.opened {
		if o.Text == "{" {
			kept = append(kept, o)
			continue
		}
		p.Report(diag.SynUnbalancedDelimiter, diag.SevError, o.Span, fmt.Sprintf("unclosed %q on this line", o.Text))
	}
	p.opened = kept

	st := &ast.Statement{
		Text:  p.text[first.Lo:last.Hi],
		Depth: int(first.Span.Start.Col) - 1,
		Span:  first.Span.Cover(last.Span),
	}
	if first.Kind == Word {
		st.Keyword = first.Text
	}
	return st
}

var pairs = map[string]string{")": "(", "]": "[", "}": "{"}

// close matches a closer against the innermost opener of its kind;
// openers skipped on the way are reported.
func (p *Parser) close(tok token.Token[Kind]) {
	want := pairs[tok.Text]
	for i := len(p.opened) - 1; i >= 0; i-- {
		if p.opened[i].Text != want {
			continue
		}
		for _, o := range p.opened[i+1:] {
			p.Report(diag.SynUnbalancedDelimiter, diag.SevError, o.Span,
				fmt.Sprintf("unclosed %q", o.Text),
				diag.Note{Span: tok.Span, Msg: fmt.Sprintf("%q closes an outer delimiter here", tok.Text)})
		}
		p.opened = p.opened[:i]
		return
	}
	p.Report(diag.SynUnbalancedDelimiter, diag.SevError, tok.Span, fmt.Sprintf("unmatched %q", tok.Text))
}
