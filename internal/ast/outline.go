package ast

import "mermaidlint/internal/source"

// Outline is the shallow tree built for dialects without a dedicated
// grammar: the header plus one statement per non-blank line.
type Outline struct {
	Header     Header       `json:"header" yaml:"header"`
	Statements []*Statement `json:"statements" yaml:"statements"`
	Span       source.Span  `json:"span" yaml:"span"`
}

func (o *Outline) Pos() source.Span { return o.Span }

type Statement struct {
	Keyword string      `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Text    string      `json:"text" yaml:"text"`
	Depth   int         `json:"depth" yaml:"depth"` // отступ в колонках
	Span    source.Span `json:"span" yaml:"span"`
}

func (s *Statement) Pos() source.Span { return s.Span }
