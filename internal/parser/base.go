package parser

import (
	"slices"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/lexer"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
	"mermaidlint/internal/trace"
)

// Base - общее состояние парсера на один документ
type Base[K token.Kind] struct {
	Stream *lexer.Stream[K]
	Kinds  token.Set[K]
	// Last is the span of the last consumed token.
	Last   source.Span
	opts   Options
	budget *Budget
	eaten  bool
}

// NewBase wraps s. When opts came from Options.Shared the parser spends
// the budget the lexer already reports through.
func NewBase[K token.Kind](s lexer.Scanner[K], kinds token.Set[K], opts Options) Base[K] {
	opts = opts.Shared()
	budget, _ := opts.Reporter.(*Budget)
	if budget == nil {
		budget = NewBudget(nil, opts.MaxErrors)
	}
	return Base[K]{
		Stream: lexer.NewStream(s),
		Kinds:  kinds,
		opts:   opts,
		budget: budget,
	}
}

func (p *Base[K]) Peek() token.Token[K] { return p.Stream.Peek() }

func (p *Base[K]) At(k K) bool { return p.Stream.Peek().Kind == k }

func (p *Base[K]) AtAny(kinds ...K) bool {
	return slices.Contains(kinds, p.Stream.Peek().Kind)
}

func (p *Base[K]) AtEOF() bool { return p.At(p.Kinds.EOF) }

// AtLineEnd reports newline or EOF.
func (p *Base[K]) AtLineEnd() bool { return p.AtAny(p.Kinds.Newline, p.Kinds.EOF) }

// Advance - съедает следующий токен и обновляет Last
func (p *Base[K]) Advance() token.Token[K] {
	tok := p.Stream.Next()
	if tok.Kind != p.Kinds.EOF {
		p.Last = tok.Span
		p.eaten = true
	}
	return tok
}

// DiagnosticSpan - лучший span для диагностики.
// На конце строки или файла это пустая позиция сразу после последнего токена.
func (p *Base[K]) DiagnosticSpan() source.Span {
	peek := p.Stream.Peek()
	if p.eaten && (peek.Kind == p.Kinds.EOF || peek.Kind == p.Kinds.Newline) {
		return p.Last.ZeroideToEnd()
	}
	return peek.Span
}

// Expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (peek, false), не съедая.
func (p *Base[K]) Expect(k K, code diag.Code, msg string) (token.Token[K], bool) {
	if p.At(k) {
		return p.Advance(), true
	}
	p.Err(code, msg)
	return p.Stream.Peek(), false
}

// Eat consumes the next token if it is of kind k.
func (p *Base[K]) Eat(k K) bool {
	if p.At(k) {
		p.Advance()
		return true
	}
	return false
}

// репортует ошибку на текущем спане
func (p *Base[K]) Err(code diag.Code, msg string) bool {
	return p.Report(code, diag.SevError, p.DiagnosticSpan(), msg)
}

// Report sends a diagnostic unless the error budget is spent. It reports
// whether the diagnostic was delivered.
func (p *Base[K]) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes ...diag.Note) bool {
	d := diag.New(sev, code, sp, msg)
	d.Notes = notes
	return p.budget.Deliver(d)
}

// Enough - бюджет ошибок (общий с лексером) исчерпан
func (p *Base[K]) Enough() bool { return p.budget.Spent() }

// Errors returns the number of delivered errors, lexer errors included.
func (p *Base[K]) Errors() int { return p.budget.errors }

// ResyncUntil skips tokens up to (not including) one of stop or EOF. It
// consumes at least one token unless already there, so a caller looping
// on it always makes progress.
func (p *Base[K]) ResyncUntil(stop ...K) {
	start := p.Stream.Peek()
	skipped := 0
	for !p.AtEOF() && !p.AtAny(stop...) {
		p.Advance()
		skipped++
	}
	if skipped > 0 {
		trace.Point(p.opts.Tracer, trace.ScopeNode, "resync", start.Span.String(), 0)
	}
}
