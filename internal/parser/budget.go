package parser

import "mermaidlint/internal/diag"

// Budget is a diag.Reporter that stops forwarding once max errors went
// through. A dialect hands the same Budget to its lexer and its parser so
// both draw on one per-document limit.
type Budget struct {
	next   diag.Reporter
	max    int // 0 - без лимита
	errors int
}

func NewBudget(next diag.Reporter, maxErrors int) *Budget {
	return &Budget{next: next, max: maxErrors}
}

// Spent reports whether the error limit is reached.
func (b *Budget) Spent() bool { return b.max > 0 && b.errors >= b.max }

// Deliver forwards d unless the budget is spent or there is no reporter.
func (b *Budget) Deliver(d diag.Diagnostic) bool {
	if b.next == nil || b.Spent() {
		return false
	}
	if d.Severity >= diag.SevError {
		b.errors++
	}
	b.next.Report(d)
	return true
}

func (b *Budget) Report(d diag.Diagnostic) { b.Deliver(d) }

// Shared returns options whose Reporter is a Budget built from o, or o
// itself when it already carries one. Lexer and parser built from the
// result share the error limit.
func (o Options) Shared() Options {
	if _, ok := o.Reporter.(*Budget); ok || o.Reporter == nil {
		return o
	}
	o.Reporter = NewBudget(o.Reporter, o.MaxErrors)
	return o
}
