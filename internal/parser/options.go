package parser

import (
	"mermaidlint/internal/diag"
	"mermaidlint/internal/lexer"
	"mermaidlint/internal/trace"
)

type Options struct {
	MaxErrors int // 0 - без лимита
	// MaxTokenLen is passed to the lexer: 0 uses lexer.DefaultMaxTokenLen,
	// < 0 disables the check.
	MaxTokenLen int
	Reporter    diag.Reporter
	Tracer      trace.Tracer
}

// Lexer returns the lexer options matching o. Call Shared first so the
// lexer reports into the parser's error budget.
func (o Options) Lexer() lexer.Options {
	return lexer.Options{Reporter: o.Reporter, MaxTokenLen: o.MaxTokenLen}
}
