package diag

import "mermaidlint/internal/source"

// Note points at a secondary location, e.g. an earlier definition.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding. Primary is always a span of the original
// document text.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
