package preprocess

import (
	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

// stage carries what a rewriting step needs to report against the
// original document: a locator for its input text and a reporter.
type stage struct {
	loc *source.Locator
	rep diag.Reporter
}

func (s stage) span(lo, hi int) source.Span {
	return s.loc.Span(u32(lo), u32(hi))
}

func (s stage) warn(code diag.Code, lo, hi int, msg string) {
	diag.ReportWarning(s.rep, code, s.span(lo, hi), msg).Emit()
}
