package flowchart

import (
	"fmt"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/parser"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

// Parser - состояние разбора одного flowchart документа
type Parser struct {
	parser.Base[Kind]
	loc *source.Locator
	g   *ast.FlowGraph

	nodes     map[string]*ast.FlowNode
	shaped    map[string]source.Span // где узлу впервые задали фигуру
	subgraphs map[string]*ast.Subgraph
	open      []openSubgraph
}

type openSubgraph struct {
	sg *ast.Subgraph
	kw source.Span
}

// ref is one node occurrence inside an edge chain.
type ref struct {
	id   string
	span source.Span
}

// Parse builds a flow graph from preprocessed text. It never fails:
// problems are reported through opts.Reporter and the returned graph holds
// everything that could be recovered.
func Parse(text string, loc *source.Locator, opts parser.Options) *ast.FlowGraph {
	opts = opts.Shared()
	lx := NewLexer(text, loc, opts.Lexer())
	p := &Parser{
		Base:      parser.NewBase[Kind](lx, Kinds, opts),
		loc:       loc,
		nodes:     make(map[string]*ast.FlowNode),
		shaped:    make(map[string]source.Span),
		subgraphs: make(map[string]*ast.Subgraph),
	}
	return p.parse()
}

func (p *Parser) parse() *ast.FlowGraph {
	p.g = &ast.FlowGraph{
		Direction: ast.DirTB,
		Nodes:     []*ast.FlowNode{},
		Edges:     []*ast.Edge{},
	}
	p.skipSeparators()
	start := p.Peek().Span
	p.parseHeader()

	for !p.AtEOF() {
		if p.skipSeparators() {
			continue
		}
		p.parseStatement()
	}
	p.closeSubgraphs()

	p.g.Span = start.Cover(p.Last)
	return p.g
}

// skipSeparators eats newlines and `;` and reports whether it moved.
func (p *Parser) skipSeparators() bool {
	moved := false
	for p.AtAny(Newline, Semi) {
		p.Advance()
		moved = true
	}
	return moved
}

func (p *Parser) atStmtEnd() bool {
	return p.AtAny(Newline, Semi, EOF)
}

// endStatement requires a separator and resyncs to it otherwise.
func (p *Parser) endStatement() {
	if p.atStmtEnd() {
		return
	}
	p.unexpected("expected end of statement")
}

// unexpected reports the current token and skips to the next separator.
// Invalid tokens were already reported by the lexer.
func (p *Parser) unexpected(context string) {
	if !p.At(Invalid) {
		p.Err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %s, %s", describe(p.Peek()), context))
	}
	p.ResyncUntil(Newline, Semi)
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

func (p *Parser) parseHeader() {
	tok := p.Peek()
	if !p.AtAny(KwGraph, KwFlowchart) {
		p.Err(diag.SynMissingHeader, "expected `graph` or `flowchart` header")
		return
	}
	p.Advance()
	p.g.Header = ast.Header{Keyword: tok.Text, Span: tok.Span}

	switch {
	case p.atStmtEnd():
	case p.AtAny(Ident, Punct):
		d := p.Advance()
		if dir, ok := ast.ParseDirection(d.Text, true); ok {
			p.g.Direction = dir
		} else {
			p.Report(diag.SynInvalidDirection, diag.SevError, d.Span,
				fmt.Sprintf("unknown direction %q, expected TB, TD, BT, LR or RL", d.Text))
		}
	default:
		p.Err(diag.SynInvalidDirection, fmt.Sprintf("expected a direction, found %s", describe(p.Peek())))
		p.ResyncUntil(Newline, Semi)
		return
	}
	p.endStatement()
}

func (p *Parser) parseStatement() {
	tok := p.Peek()
	switch tok.Kind {
	case KwSubgraph:
		p.parseSubgraph()
	case KwEnd:
		p.parseEnd()
	case KwDirection:
		p.parseDirection()
	case KwStyle, KwClassDef, KwClass, KwClick, KwLinkStyle:
		p.parseStyle()
	case KwGraph, KwFlowchart:
		p.Report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "the diagram header may appear only once")
		p.Advance()
		p.ResyncUntil(Newline, Semi)
	case Ident, Number:
		p.parseChain()
	case ShapeClose:
		p.Report(diag.SynUnbalancedDelimiter, diag.SevError, tok.Span, fmt.Sprintf("unmatched %q", tok.Text))
		p.Advance()
		p.ResyncUntil(Newline, Semi)
	case Link, LinkOpen, LinkClose, BadArrow:
		p.Err(diag.SynExpectedToken, "expected a node before the arrow")
		p.ResyncUntil(Newline, Semi)
	default:
		p.unexpected("expected a statement")
	}
}

// parseChain handles `group (arrow group)*`; each hop becomes one edge per
// source × target pair.
func (p *Parser) parseChain() {
	sources := p.parseGroup()
	if sources == nil {
		p.ResyncUntil(Newline, Semi)
		return
	}
	for p.AtAny(Link, LinkOpen, LinkClose, BadArrow) {
		arrow, label, ok := p.parseLink()
		if !ok {
			p.ResyncUntil(Newline, Semi)
			return
		}
		if p.atStmtEnd() {
			p.Err(diag.SynExpectedToken, "expected a node after the arrow")
			return
		}
		targets := p.parseGroup()
		if targets == nil {
			p.ResyncUntil(Newline, Semi)
			return
		}
		for _, s := range sources {
			for _, t := range targets {
				p.g.Edges = append(p.g.Edges, &ast.Edge{
					From:  s.id,
					To:    t.id,
					Arrow: arrow,
					Label: label,
					Span:  s.span.Cover(t.span),
				})
			}
		}
		sources = targets
	}
	p.endStatement()
}

// parseGroup parses `node (& node)*`; nil means a node was missing.
func (p *Parser) parseGroup() []ref {
	var out []ref
	for {
		r, ok := p.parseNode()
		if !ok {
			return nil
		}
		out = append(out, r)
		if !p.Eat(Amp) {
			return out
		}
	}
}
