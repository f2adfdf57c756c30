package flowchart

import (
	"sync"

	"mermaidlint/internal/token"
)

// Kind is a flowchart token kind.
type Kind uint8

const (
	EOF Kind = iota
	Invalid
	Newline
	Semi
	Ident
	Number
	String
	LabelText  // raw label text inside a shape, pipes or `-- ... -->`
	ShapeOpen  // [ ( { (( ([ [[ [( {{ [/ [\ ((( and > after an id
	ShapeClose // matching closer
	Pipe
	Link      // complete arrow: --> --- -.-> ==> ~~~ <--> --o ...
	LinkOpen  // label opener: -- -. == (optionally with a leading <)
	LinkClose // dotted label closer: .-> .-
	BadArrow  // arrow-like run outside the closed set
	Amp
	Comma
	Colon
	ClassShorthand // :::
	Punct          // > < ^ outside arrows and shapes
	Rest           // raw rest-of-line payload after style-like keywords

	KwGraph
	KwFlowchart
	KwSubgraph
	KwEnd
	KwDirection
	KwStyle
	KwClassDef
	KwClass
	KwClick
	KwLinkStyle
)

var kindNames = [...]string{
	EOF:            "EOF",
	Invalid:        "Invalid",
	Newline:        "Newline",
	Semi:           "Semi",
	Ident:          "Ident",
	Number:         "Number",
	String:         "String",
	LabelText:      "LabelText",
	ShapeOpen:      "ShapeOpen",
	ShapeClose:     "ShapeClose",
	Pipe:           "Pipe",
	Link:           "Link",
	LinkOpen:       "LinkOpen",
	LinkClose:      "LinkClose",
	BadArrow:       "BadArrow",
	Amp:            "Amp",
	Comma:          "Comma",
	Colon:          "Colon",
	ClassShorthand: "ClassShorthand",
	Punct:          "Punct",
	Rest:           "Rest",
	KwGraph:        "KwGraph",
	KwFlowchart:    "KwFlowchart",
	KwSubgraph:     "KwSubgraph",
	KwEnd:          "KwEnd",
	KwDirection:    "KwDirection",
	KwStyle:        "KwStyle",
	KwClassDef:     "KwClassDef",
	KwClass:        "KwClass",
	KwClick:        "KwClick",
	KwLinkStyle:    "KwLinkStyle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind?"
}

// takesRest reports keywords whose operands are kept as one raw payload.
func (k Kind) takesRest() bool {
	switch k {
	case KwSubgraph, KwStyle, KwClassDef, KwClass, KwClick, KwLinkStyle:
		return true
	}
	return false
}

// Kinds is the set the shared lexer and parser scaffolding needs.
var Kinds = token.Set[Kind]{EOF: EOF, Invalid: Invalid, Newline: Newline}

var keywords = sync.OnceValue(func() map[string]Kind {
	return map[string]Kind{
		"graph":     KwGraph,
		"flowchart": KwFlowchart,
		"subgraph":  KwSubgraph,
		"end":       KwEnd,
		"direction": KwDirection,
		"style":     KwStyle,
		"classDef":  KwClassDef,
		"class":     KwClass,
		"click":     KwClick,
		"linkStyle": KwLinkStyle,
	}
})

// LookupKeyword maps a word at statement start to its keyword kind.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := keywords()[word]
	return k, ok
}
