// Package mermaidlint checks Mermaid diagram text for syntax errors and
// reports diagnostics positioned in the original input.
//
//	res := mermaidlint.Parse("graph TD\nA-->B", mermaidlint.Options{})
//	if !res.OK {
//		for _, d := range res.Diagnostics { ... }
//	}
package mermaidlint

import (
	"mermaidlint/internal/ast"
	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/dialect"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/source"
)

type (
	Options     = lint.Options
	ParseResult = lint.ParseResult
	Config      = config.Config
	DiagramType = dialect.Tag
	Diagnostic  = diag.Diagnostic
	Severity    = diag.Severity
	Code        = diag.Code
	Span        = source.Span
	Position    = source.Position
	Tree        = ast.Tree
)

const (
	SevInfo    = diag.SevInfo
	SevWarning = diag.SevWarning
	SevError   = diag.SevError
)

// Parse runs the full pipeline over text.
func Parse(text string, opts Options) *ParseResult { return lint.Parse(text, opts) }

// Validate reports whether text has no error diagnostics.
func Validate(text string, opts Options) bool { return lint.Validate(text, opts) }

// DetectType returns the diagram type of text.
func DetectType(text string) (DiagramType, bool) { return lint.DetectType(text) }

// DefaultConfig returns the configuration every document starts from.
func DefaultConfig() Config { return config.Default() }
