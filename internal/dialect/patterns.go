package dialect

import (
	"regexp"
	"sync"

	"mermaidlint/internal/config"
)

// rule is one entry of the ordered detection table. resolve picks the
// final tag once the keyword matched; configuration may refine it.
type rule struct {
	re      *regexp.Regexp
	resolve func(cfg config.Config) Tag
}

func fixed(t Tag) func(config.Config) Tag {
	return func(config.Config) Tag { return t }
}

func keyword(alternatives string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + alternatives + `)\b`)
}

// rules is compiled once and shared read-only between goroutines.
// The order matters: the first matching keyword wins.
var rules = sync.OnceValue(func() []rule {
	return []rule{
		{keyword(`flowchart-elk`), fixed(TagFlowchartElk)},
		{keyword(`mindmap`), fixed(TagMindmap)},
		{keyword(`architecture(?:-beta)?`), fixed(TagArchitecture)},
		{keyword(`C4Context|C4Container|C4Component|C4Dynamic|C4Deployment`), fixed(TagC4)},
		{keyword(`kanban`), fixed(TagKanban)},
		{keyword(`classDiagram-v2`), fixed(TagClassDiagram)},
		{keyword(`classDiagram`), resolveClass},
		{keyword(`erDiagram`), fixed(TagER)},
		{keyword(`gantt`), fixed(TagGantt)},
		{keyword(`info`), fixed(TagInfo)},
		{keyword(`pie`), fixed(TagPie)},
		{keyword(`requirement(?:Diagram)?`), fixed(TagRequirement)},
		{keyword(`sequenceDiagram`), fixed(TagSequence)},
		{keyword(`flowchart`), resolveFlowchart},
		{keyword(`graph`), resolveGraph},
		{keyword(`timeline`), fixed(TagTimeline)},
		{keyword(`gitGraph`), fixed(TagGitGraph)},
		{keyword(`stateDiagram-v2`), fixed(TagStateDiagram)},
		{keyword(`stateDiagram`), resolveState},
		{keyword(`journey`), fixed(TagJourney)},
		{keyword(`quadrantChart`), fixed(TagQuadrantChart)},
		{keyword(`sankey(?:-beta)?`), fixed(TagSankey)},
		{keyword(`packet(?:-beta)?`), fixed(TagPacket)},
		{keyword(`xychart(?:-beta)?`), fixed(TagXYChart)},
		{keyword(`block(?:-beta)?`), fixed(TagBlock)},
		{keyword(`radar(?:-beta)?`), fixed(TagRadar)},
		{keyword(`treemap`), fixed(TagTreemap)},
	}
})

const (
	rendererElk          = "elk"
	rendererDagreWrapper = "dagre-wrapper"
)

func resolveFlowchart(cfg config.Config) Tag {
	if cfg.Flowchart.DefaultRenderer == rendererElk || cfg.Layout == rendererElk {
		return TagFlowchartElk
	}
	return TagFlowchartV2
}

func resolveGraph(cfg config.Config) Tag {
	switch {
	case cfg.Flowchart.DefaultRenderer == rendererElk:
		return TagFlowchartElk
	case cfg.Flowchart.DefaultRenderer == rendererDagreWrapper:
		return TagFlowchartV2
	default:
		return TagFlowchart
	}
}

func resolveClass(cfg config.Config) Tag {
	if cfg.Class.DefaultRenderer == rendererDagreWrapper {
		return TagClassDiagram
	}
	return TagClass
}

func resolveState(cfg config.Config) Tag {
	if cfg.State.DefaultRenderer == rendererDagreWrapper {
		return TagStateDiagram
	}
	return TagState
}
