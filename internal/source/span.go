package source

import (
	"fmt"
)

// Position is a point in the original document.
type Position struct {
	Offset uint32 `json:"offset" yaml:"offset"` // в байтах от начала исходного текста
	Line   uint32 `json:"line" yaml:"line"`     // 1-based
	Col    uint32 `json:"col" yaml:"col"`       // 1-based, в рунах
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p precedes other in the document.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span is a half-open range of the original document.
// Both ends always refer to the text passed to the linter, never to
// preprocessed text.
type Span struct {
	Start Position `json:"start" yaml:"start"` // включительно
	End   Position `json:"end" yaml:"end"`     // не включительно
}

// PointSpan returns an empty span located at p.
func PointSpan(p Position) Span {
	return Span{Start: p, End: p}
}

func (s Span) Empty() bool {
	return s.Start.Offset == s.End.Offset
}

func (s Span) Len() uint32 {
	if s.End.Offset < s.Start.Offset {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Col, s.End.Line, s.End.Col)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start.Before(s.Start) {
		s.Start = other.Start
	}
	if s.End.Before(other.End) {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start.Offset >= s.Start.Offset && other.End.Offset <= s.End.Offset
}

// ZeroideToEnd collapses the span to an empty span at its end.
func (s Span) ZeroideToEnd() Span {
	return Span{Start: s.End, End: s.End}
}
