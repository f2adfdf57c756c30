package ast

import (
	"mermaidlint/internal/dialect"
	"mermaidlint/internal/source"
)

// Tree is the root of a parsed document.
type Tree struct {
	Tag       dialect.Tag `json:"type" yaml:"type"`
	Span      source.Span `json:"span" yaml:"span"`
	Flowchart *FlowGraph  `json:"flowchart,omitempty" yaml:"flowchart,omitempty"`
	Pie       *PieChart   `json:"pie,omitempty" yaml:"pie,omitempty"`
	Outline   *Outline    `json:"outline,omitempty" yaml:"outline,omitempty"`
}

// Node is implemented by every spanned AST node.
type Node interface {
	Pos() source.Span
}

func (t *Tree) Pos() source.Span { return t.Span }

// Root returns the dialect root that is set, or nil.
func (t *Tree) Root() Node {
	switch {
	case t == nil:
		return nil
	case t.Flowchart != nil:
		return t.Flowchart
	case t.Pie != nil:
		return t.Pie
	case t.Outline != nil:
		return t.Outline
	}
	return nil
}

// Header is the diagram declaration line (`graph LR`, `pie showData`, ...).
type Header struct {
	Keyword string      `json:"keyword" yaml:"keyword"`
	Span    source.Span `json:"span" yaml:"span"`
}

func (h *Header) Pos() source.Span { return h.Span }
