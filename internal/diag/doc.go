// Package diag defines the diagnostic model shared by every lint stage.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go). A document is ok iff
//     it has no Error.
//   - Code: compact numeric identifier (codes.go) with a short ID such as
//     SYN4002 and a dotted name such as Syntax.ExpectedToken. Codes are
//     grouped by stage: Config 1000, Detect 2000, Lex 3000, Syntax 4000,
//     Semantic 5000, IO 6000.
//   - Message: human oriented text; keep it short and actionable.
//   - Primary: a source.Span in ORIGINAL document coordinates.
//   - Notes: optional secondary locations ("first declared here").
//
// # Emitting diagnostics
//
// Stages emit through a Reporter. Lexers and the preprocessor build
// diagnostics with ReportError/ReportWarning, chain WithNote and call Emit.
// BagReporter aggregates into a Bag, which supports stable sorting by
// position; the grammar parsers report through a DedupReporter so recovery
// never repeats an identical diagnostic.
//
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
