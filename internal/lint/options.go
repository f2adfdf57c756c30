package lint

import (
	"mermaidlint/internal/ast"
	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/dialect"
	"mermaidlint/internal/observ"
	"mermaidlint/internal/preprocess"
	"mermaidlint/internal/trace"
)

// Options control a single Parse call. The zero value is usable.
type Options struct {
	// Config is layered over the defaults; frontmatter and directives
	// of the document still override it.
	Config *config.Config
	// MaxErrors caps lexer and parser errors per document; 0 means no cap.
	MaxErrors int
	// MaxTokenLen bounds one lexeme in bytes (Lex.TokenTooLong above it);
	// 0 keeps lexer.DefaultMaxTokenLen, < 0 disables the check.
	MaxTokenLen int
	Tracer      trace.Tracer
	// TraceParent nests the pipeline spans under a caller span.
	TraceParent uint64
	Timer       *observ.Timer
	// SkipAST drops the tree after parsing; diagnostics are unaffected.
	SkipAST bool
}

// ParseResult is everything known about one document.
type ParseResult struct {
	OK          bool
	DiagramType *dialect.Tag
	Config      config.Config
	AST         *ast.Tree
	Diagnostics []diag.Diagnostic
	Title       *string
	Directives  []preprocess.Directive
}

// Errors returns the number of error diagnostics.
func (r *ParseResult) Errors() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}

// Warnings returns the number of warning diagnostics.
func (r *ParseResult) Warnings() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevWarning {
			n++
		}
	}
	return n
}
