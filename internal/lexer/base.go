package lexer

import (
	"fmt"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

// Scanner is a lazy, finite token source. After the end of input Next
// keeps returning the EOF token.
type Scanner[K token.Kind] interface {
	Next() token.Token[K]
}

// Base is embedded by dialect lexers.
type Base[K token.Kind] struct {
	Cursor Cursor
	Kinds  token.Set[K]
	opts   Options
}

// NewBase prepares a lexer scaffold over preprocessed text.
func NewBase[K token.Kind](text string, loc *source.Locator, kinds token.Set[K], opts Options) Base[K] {
	return Base[K]{
		Cursor: NewCursor(text, loc),
		Kinds:  kinds,
		opts:   opts,
	}
}

// Emit builds a token of kind from the mark to the cursor.
func (b *Base[K]) Emit(kind K, m Mark) token.Token[K] {
	lo, hi := uint32(m), b.Cursor.Off
	tok := token.Token[K]{
		Kind: kind,
		Text: b.Cursor.Text[lo:hi],
		Span: b.Cursor.SpanFrom(m),
		Lo:   lo,
		Hi:   hi,
	}
	if limit := b.opts.maxTokenLen(); limit > 0 && int(hi-lo) > limit {
		b.Report(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token is %d bytes long, the limit is %d", hi-lo, limit))
	}
	return tok
}

// EOF returns the empty end-of-input token.
func (b *Base[K]) EOF() token.Token[K] {
	end := b.Cursor.Limit
	return token.Token[K]{
		Kind: b.Kinds.EOF,
		Span: b.Cursor.Span(end, end),
		Lo:   end,
		Hi:   end,
	}
}

// Invalid consumes one rune, reports it and returns an Invalid token.
func (b *Base[K]) Invalid() token.Token[K] {
	m := b.Cursor.Mark()
	r, _ := b.Cursor.PeekRune()
	b.Cursor.BumpRune()
	tok := b.Emit(b.Kinds.Invalid, m)
	b.Report(diag.LexInvalidCharacter, tok.Span, fmt.Sprintf("unexpected character %q", r))
	return tok
}

// String scans a quoted string starting at the cursor. An unterminated
// string is reported and still returned as kind, ending at the line end.
func (b *Base[K]) String(kind K, quote byte) token.Token[K] {
	m := b.Cursor.Mark()
	closed := ScanQuoted(&b.Cursor, quote)
	tok := b.Emit(kind, m)
	if !closed {
		b.Report(diag.LexUnterminatedString, tok.Span, "unterminated string")
	}
	return tok
}

// Report sends a lexical error to the reporter, if any.
func (b *Base[K]) Report(code diag.Code, sp source.Span, msg string) {
	if b.opts.Reporter != nil {
		diag.ReportError(b.opts.Reporter, code, sp, msg).Emit()
	}
}

// All drains a scanner up to and including its EOF token.
func All[K token.Kind](s Scanner[K], eof K) []token.Token[K] {
	var out []token.Token[K]
	for {
		tok := s.Next()
		out = append(out, tok)
		if tok.Kind == eof {
			return out
		}
	}
}
