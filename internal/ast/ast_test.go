package ast

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"mermaidlint/internal/dialect"
)

func sampleFlow() *Tree {
	return &Tree{
		Tag: dialect.TagFlowchart,
		Flowchart: &FlowGraph{
			Header:    Header{Keyword: "graph"},
			Direction: DirLR,
			Nodes:     []*FlowNode{{ID: "A", Shape: ShapeRect, Label: "Start"}, {ID: "B"}},
			Edges:     []*Edge{{From: "A", To: "B", Arrow: Arrow{Head: HeadArrow, Length: 1}}},
			Subgraphs: []*Subgraph{{ID: "s1", Subgraphs: []*Subgraph{{ID: "s2"}}}},
		},
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	var visited []string
	Walk(sampleFlow(), func(n Node) bool {
		switch n := n.(type) {
		case *FlowNode:
			visited = append(visited, "node:"+n.ID)
		case *Edge:
			visited = append(visited, "edge")
		case *Arrow:
			visited = append(visited, "arrow")
		case *Subgraph:
			visited = append(visited, "sub:"+n.ID)
		}
		return true
	})
	assert.Equal(t, []string{"node:A", "node:B", "edge", "arrow", "sub:s1", "sub:s2"}, visited)
}

func TestWalkSkipChildren(t *testing.T) {
	count := 0
	Walk(sampleFlow(), func(n Node) bool {
		count++
		_, isGraph := n.(*FlowGraph)
		return !isGraph
	})
	assert.Equal(t, 2, count) // Tree + FlowGraph
}

func TestTreeJSONShape(t *testing.T) {
	data, err := json.Marshal(sampleFlow())
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"type":"flowchart"`)
	assert.Contains(t, s, `"shape":"rect"`)
	assert.Contains(t, s, `"head":"arrow"`)
	assert.NotContains(t, s, `"pie"`)
}

func TestTreeYAML(t *testing.T) {
	data, err := yaml.Marshal(&Tree{Tag: dialect.TagPie, Pie: &PieChart{ShowData: true, Slices: []*Slice{{Label: "a", Value: 1.5}}}})
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, "type: pie\n"), s)
	assert.Contains(t, s, "showData: true")
	assert.Contains(t, s, "value: 1.5")
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection(">", true)
	assert.True(t, ok)
	assert.Equal(t, DirLR, d)
	_, ok = ParseDirection(">", false)
	assert.False(t, ok)
	_, ok = ParseDirection("lr", true)
	assert.False(t, ok)
}
