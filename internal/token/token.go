package token

import (
	"fmt"

	"mermaidlint/internal/source"
)

// Token represents a single source token with its location.
type Token[K Kind] struct {
	Kind K
	Text string
	Span source.Span
	Lo   uint32 // offset in preprocessed text
	Hi   uint32
}

// Is reports whether the token is of kind k.
func (t Token[K]) Is(k K) bool { return t.Kind == k }

// Len returns the length of the lexeme in bytes.
func (t Token[K]) Len() uint32 { return t.Hi - t.Lo }

func (t Token[K]) String() string {
	if t.Text == "" {
		return fmt.Sprintf("%s@%s", t.Kind, t.Span)
	}
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Span)
}

// Info is a dialect-neutral view of a token, for dumps.
type Info struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// Erase drops the dialect kind type, keeping its name.
func Erase[K Kind](toks []Token[K]) []Info {
	out := make([]Info, len(toks))
	for i, t := range toks {
		out[i] = Info{Kind: t.Kind.String(), Text: t.Text, Span: t.Span}
	}
	return out
}
