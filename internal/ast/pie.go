package ast

import "mermaidlint/internal/source"

type PieChart struct {
	Header   Header      `json:"header" yaml:"header"`
	ShowData bool        `json:"showData" yaml:"showData"`
	Title    *Text       `json:"title,omitempty" yaml:"title,omitempty"`
	AccTitle *Text       `json:"accTitle,omitempty" yaml:"accTitle,omitempty"`
	AccDescr *Text       `json:"accDescr,omitempty" yaml:"accDescr,omitempty"`
	Slices   []*Slice    `json:"slices" yaml:"slices"`
	Span     source.Span `json:"span" yaml:"span"`
}

func (p *PieChart) Pos() source.Span { return p.Span }

// Text is a free-form value with its span.
type Text struct {
	Value string      `json:"value" yaml:"value"`
	Span  source.Span `json:"span" yaml:"span"`
}

func (t *Text) Pos() source.Span { return t.Span }

type Slice struct {
	Label string      `json:"label" yaml:"label"`
	Value float64     `json:"value" yaml:"value"`
	Span  source.Span `json:"span" yaml:"span"`
}

func (s *Slice) Pos() source.Span { return s.Span }
