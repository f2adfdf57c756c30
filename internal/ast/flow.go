package ast

import "mermaidlint/internal/source"

// Direction of a flow graph or subgraph.
type Direction string

const (
	DirTB Direction = "TB"
	DirTD Direction = "TD"
	DirBT Direction = "BT"
	DirLR Direction = "LR"
	DirRL Direction = "RL"
)

// ParseDirection accepts the header and `direction` values. The single
// character forms (`>`, `<`, `^`, `v`) are only valid in the header and
// map to LR, RL, BT and TB.
func ParseDirection(s string, header bool) (Direction, bool) {
	switch s {
	case "TB", "TD", "BT", "LR", "RL":
		return Direction(s), true
	}
	if header {
		switch s {
		case ">":
			return DirLR, true
		case "<":
			return DirRL, true
		case "^":
			return DirBT, true
		case "v":
			return DirTB, true
		}
	}
	return "", false
}

type Shape uint8

const (
	ShapeDefault          Shape = iota // bare id
	ShapeRect                          // [..]
	ShapeRound                         // (..)
	ShapeStadium                       // ([..])
	ShapeSubroutine                    // [[..]]
	ShapeCylinder                      // [(..)]
	ShapeCircle                        // ((..))
	ShapeDoubleCircle                  // (((..)))
	ShapeAsymmetric                    // >..]
	ShapeRhombus                       // {..}
	ShapeHexagon                       // {{..}}
	ShapeParallelogram                 // [/../]
	ShapeParallelogramAlt              // [\..\]
	ShapeTrapezoid                     // [/..\]
	ShapeTrapezoidAlt                  // [\../]
)

var shapeNames = [...]string{
	ShapeDefault:          "default",
	ShapeRect:             "rect",
	ShapeRound:            "round",
	ShapeStadium:          "stadium",
	ShapeSubroutine:       "subroutine",
	ShapeCylinder:         "cylinder",
	ShapeCircle:           "circle",
	ShapeDoubleCircle:     "double-circle",
	ShapeAsymmetric:       "asymmetric",
	ShapeRhombus:          "rhombus",
	ShapeHexagon:          "hexagon",
	ShapeParallelogram:    "parallelogram",
	ShapeParallelogramAlt: "parallelogram-alt",
	ShapeTrapezoid:        "trapezoid",
	ShapeTrapezoidAlt:     "trapezoid-alt",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "shape?"
}

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Stroke is the line style of an edge.
type Stroke uint8

const (
	StrokeSolid Stroke = iota
	StrokeDotted
	StrokeThick
	StrokeInvisible
)

func (s Stroke) String() string {
	switch s {
	case StrokeSolid:
		return "solid"
	case StrokeDotted:
		return "dotted"
	case StrokeThick:
		return "thick"
	case StrokeInvisible:
		return "invisible"
	}
	return "stroke?"
}

func (s Stroke) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Head is an edge end marker.
type Head uint8

const (
	HeadNone Head = iota
	HeadArrow
	HeadCircle
	HeadCross
)

func (h Head) String() string {
	switch h {
	case HeadNone:
		return "none"
	case HeadArrow:
		return "arrow"
	case HeadCircle:
		return "circle"
	case HeadCross:
		return "cross"
	}
	return "head?"
}

func (h Head) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// Arrow describes a link operator.
type Arrow struct {
	Stroke Stroke `json:"stroke" yaml:"stroke"`
	Head   Head   `json:"head" yaml:"head"`
	Tail   Head   `json:"tail" yaml:"tail"`
	// Length is 1 for the shortest form, +1 per extra dash or equals sign.
	Length int         `json:"length" yaml:"length"`
	Span   source.Span `json:"span" yaml:"span"`
}

func (a *Arrow) Pos() source.Span { return a.Span }

// FlowGraph - корень flowchart/graph диаграммы
type FlowGraph struct {
	Header    Header       `json:"header" yaml:"header"`
	Direction Direction    `json:"direction" yaml:"direction"`
	Nodes     []*FlowNode  `json:"nodes" yaml:"nodes"` // в порядке первого объявления
	Edges     []*Edge      `json:"edges" yaml:"edges"`
	Subgraphs []*Subgraph  `json:"subgraphs,omitempty" yaml:"subgraphs,omitempty"`
	Stmts     []*StyleStmt `json:"styles,omitempty" yaml:"styles,omitempty"`
	Span      source.Span  `json:"span" yaml:"span"`
}

func (g *FlowGraph) Pos() source.Span { return g.Span }

// Node returns the node with id, or nil.
func (g *FlowGraph) Node(id string) *FlowNode {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

type FlowNode struct {
	ID      string      `json:"id" yaml:"id"`
	Shape   Shape       `json:"shape" yaml:"shape"`
	Label   string      `json:"label,omitempty" yaml:"label,omitempty"`
	Classes []string    `json:"classes,omitempty" yaml:"classes,omitempty"`
	Span    source.Span `json:"span" yaml:"span"`
}

func (n *FlowNode) Pos() source.Span { return n.Span }

type Edge struct {
	From  string      `json:"from" yaml:"from"`
	To    string      `json:"to" yaml:"to"`
	Arrow Arrow       `json:"arrow" yaml:"arrow"`
	Label string      `json:"label,omitempty" yaml:"label,omitempty"`
	Span  source.Span `json:"span" yaml:"span"`
}

func (e *Edge) Pos() source.Span { return e.Span }

type Subgraph struct {
	ID        string      `json:"id" yaml:"id"`
	Title     string      `json:"title,omitempty" yaml:"title,omitempty"`
	Direction Direction   `json:"direction,omitempty" yaml:"direction,omitempty"`
	Nodes     []string    `json:"nodes,omitempty" yaml:"nodes,omitempty"` // ids, объявленные внутри
	Subgraphs []*Subgraph `json:"subgraphs,omitempty" yaml:"subgraphs,omitempty"`
	Span      source.Span `json:"span" yaml:"span"`
}

func (s *Subgraph) Pos() source.Span { return s.Span }

// StyleStmt keeps `style`, `classDef`, `class`, `click` and `linkStyle`
// lines. Target is the first operand; Payload the rest of the line.
type StyleStmt struct {
	Keyword string      `json:"keyword" yaml:"keyword"`
	Target  string      `json:"target" yaml:"target"`
	Payload string      `json:"payload,omitempty" yaml:"payload,omitempty"`
	Span    source.Span `json:"span" yaml:"span"`
}

func (s *StyleStmt) Pos() source.Span { return s.Span }
