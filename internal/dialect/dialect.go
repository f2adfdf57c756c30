package dialect

import "fmt"

// Tag identifies the diagram grammar a document is written in.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagFlowchart
	TagFlowchartV2
	TagFlowchartElk
	TagSequence
	TagClass
	TagClassDiagram
	TagState
	TagStateDiagram
	TagER
	TagGantt
	TagPie
	TagJourney
	TagGitGraph
	TagRequirement
	TagMindmap
	TagTimeline
	TagC4
	TagQuadrantChart
	TagXYChart
	TagSankey
	TagPacket
	TagBlock
	TagArchitecture
	TagKanban
	TagRadar
	TagTreemap
	TagInfo

	tagCount
)

var tagNames = [tagCount]string{
	TagUnknown:       "unknown",
	TagFlowchart:     "flowchart",
	TagFlowchartV2:   "flowchart-v2",
	TagFlowchartElk:  "flowchart-elk",
	TagSequence:      "sequence",
	TagClass:         "class",
	TagClassDiagram:  "classDiagram",
	TagState:         "state",
	TagStateDiagram:  "stateDiagram",
	TagER:            "er",
	TagGantt:         "gantt",
	TagPie:           "pie",
	TagJourney:       "journey",
	TagGitGraph:      "gitGraph",
	TagRequirement:   "requirement",
	TagMindmap:       "mindmap",
	TagTimeline:      "timeline",
	TagC4:            "c4",
	TagQuadrantChart: "quadrantChart",
	TagXYChart:       "xychart",
	TagSankey:        "sankey",
	TagPacket:        "packet",
	TagBlock:         "block",
	TagArchitecture:  "architecture",
	TagKanban:        "kanban",
	TagRadar:         "radar",
	TagTreemap:       "treemap",
	TagInfo:          "info",
}

func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return tagNames[TagUnknown]
}

func (t Tag) GoString() string {
	return fmt.Sprintf("Tag(%s)", t.String())
}

// MarshalText renders the stable tag name.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts any name produced by String.
func (t *Tag) UnmarshalText(b []byte) error {
	tag, ok := ParseTag(string(b))
	if !ok {
		return fmt.Errorf("unknown diagram type %q", string(b))
	}
	*t = tag
	return nil
}

// ParseTag resolves a stable tag name.
func ParseTag(s string) (Tag, bool) {
	for t := TagFlowchart; t < tagCount; t++ {
		if tagNames[t] == s {
			return t, true
		}
	}
	return TagUnknown, false
}

// Tags returns every known tag in declaration order.
func Tags() []Tag {
	out := make([]Tag, 0, tagCount-1)
	for t := TagFlowchart; t < tagCount; t++ {
		out = append(out, t)
	}
	return out
}

// Family groups tags by the grammar that parses them.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyFlow
	FamilyPie
	FamilyOutline
)

func (f Family) String() string {
	switch f {
	case FamilyFlow:
		return "flow"
	case FamilyPie:
		return "pie"
	case FamilyOutline:
		return "outline"
	default:
		return "none"
	}
}

// Family reports which grammar handles t.
func (t Tag) Family() Family {
	switch t {
	case TagFlowchart, TagFlowchartV2, TagFlowchartElk:
		return FamilyFlow
	case TagPie:
		return FamilyPie
	case TagUnknown:
		return FamilyNone
	default:
		if t < tagCount {
			return FamilyOutline
		}
		return FamilyNone
	}
}
