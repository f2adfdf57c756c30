package dialect

import (
	"testing"

	"golang.org/x/sync/errgroup"

	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
)

func TestDetectOrder(t *testing.T) {
	tests := []struct {
		text string
		want Tag
	}{
		{"graph TD\nA-->B", TagFlowchart},
		{"  \n\tflowchart LR", TagFlowchartV2},
		{"flowchart-elk TB", TagFlowchartElk},
		{"classDiagram-v2\n", TagClassDiagram},
		{"classDiagram", TagClass},
		{"stateDiagram-v2", TagStateDiagram},
		{"stateDiagram", TagState},
		{"sequenceDiagram\nA->>B: hi", TagSequence},
		{"erDiagram", TagER},
		{"gantt", TagGantt},
		{"pie showData", TagPie},
		{"journey", TagJourney},
		{"gitGraph", TagGitGraph},
		{"requirementDiagram", TagRequirement},
		{"requirement", TagRequirement},
		{"mindmap", TagMindmap},
		{"timeline", TagTimeline},
		{"C4Deployment", TagC4},
		{"quadrantChart", TagQuadrantChart},
		{"xychart-beta", TagXYChart},
		{"sankey-beta", TagSankey},
		{"packet-beta", TagPacket},
		{"block-beta", TagBlock},
		{"architecture-beta", TagArchitecture},
		{"kanban", TagKanban},
		{"radar-beta", TagRadar},
		{"treemap", TagTreemap},
		{"info", TagInfo},
	}
	for _, tt := range tests {
		got, ok := Detect(tt.text, config.Default())
		if !ok || got != tt.want {
			t.Errorf("Detect(%q) = %v, %v; want %v", tt.text, got, ok, tt.want)
		}
	}
}

func TestDetectIsCaseSensitiveAndBounded(t *testing.T) {
	for _, text := range []string{"", "   \n", "Graph TD", "graphs", "pies", "hello world", "GANTT"} {
		if tag, ok := Detect(text, config.Default()); ok {
			t.Errorf("Detect(%q) = %v, want no match", text, tag)
		}
	}
}

func TestClassifyFailures(t *testing.T) {
	m := Classify("\n---\ntitle: x", config.Default())
	if m.OK || m.Failure != diag.DetBadFrontmatter {
		t.Fatalf("match = %+v", m)
	}
	if m.Start != 1 || m.End != 4 {
		t.Fatalf("bad frontmatter span = %d..%d", m.Start, m.End)
	}

	m = Classify("  sequence diagram", config.Default())
	if m.OK || m.Failure != diag.DetUnknownDiagramType || m.Keyword != "sequence" {
		t.Fatalf("match = %+v", m)
	}
	if m.Start != 2 || m.End != 10 {
		t.Fatalf("unknown span = %d..%d", m.Start, m.End)
	}
}

func TestConfigSensitiveResolution(t *testing.T) {
	elk := config.Config{Layout: "elk"}
	wrapper := config.Config{}
	wrapper.Flowchart.DefaultRenderer = "dagre-wrapper"
	wrapper.Class.DefaultRenderer = "dagre-wrapper"
	wrapper.State.DefaultRenderer = "dagre-wrapper"
	elkRenderer := config.Config{}
	elkRenderer.Flowchart.DefaultRenderer = "elk"

	tests := []struct {
		text string
		cfg  config.Config
		want Tag
	}{
		{"flowchart TD", elk, TagFlowchartElk},
		// layout only switches the flowchart keyword
		{"graph TD", elk, TagFlowchart},
		{"graph TD", elkRenderer, TagFlowchartElk},
		{"flowchart TD", elkRenderer, TagFlowchartElk},
		{"graph TD", wrapper, TagFlowchartV2},
		{"classDiagram", wrapper, TagClassDiagram},
		{"stateDiagram", wrapper, TagStateDiagram},
	}
	for _, tt := range tests {
		if got, _ := Detect(tt.text, tt.cfg); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestTagNamesRoundTrip(t *testing.T) {
	for _, tag := range Tags() {
		got, ok := ParseTag(tag.String())
		if !ok || got != tag {
			t.Errorf("ParseTag(%s) = %v, %v", tag, got, ok)
		}
		if tag.Family() == FamilyNone {
			t.Errorf("%s has no family", tag)
		}
	}
	if TagFlowchartV2.Family() != FamilyFlow || TagPie.Family() != FamilyPie || TagGantt.Family() != FamilyOutline {
		t.Fatal("unexpected family mapping")
	}
}

func TestDetectConcurrent(t *testing.T) {
	var g errgroup.Group
	for i := range 32 {
		text := "graph TD"
		want := TagFlowchart
		if i%2 == 1 {
			text, want = "pie", TagPie
		}
		g.Go(func() error {
			if got, _ := Detect(text, config.Default()); got != want {
				t.Errorf("Detect(%q) = %v", text, got)
			}
			return nil
		})
	}
	_ = g.Wait()
}
