package lsp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mermaidlint/internal/source"
)

func TestUTF16Positions(t *testing.T) {
	text := "pie\n\"é🙂\": 1\nend"

	// 🙂 занимает две UTF-16 единицы и четыре байта
	emoji := len("pie\n\"é")
	require.Equal(t, position{Line: 1, Character: 2}, positionForOffset(text, emoji))
	require.Equal(t, position{Line: 1, Character: 4}, positionForOffset(text, emoji+4))
	require.Equal(t, position{Line: 1, Character: 2}, positionForOffset(text, emoji+2), "mid-rune offsets resolve to the rune start")

	require.Equal(t, emoji, offsetForPosition(text, position{Line: 1, Character: 2}))
	require.Equal(t, emoji+4, offsetForPosition(text, position{Line: 1, Character: 4}))
	require.Equal(t, emoji, offsetForPosition(text, position{Line: 1, Character: 3}), "half a surrogate pair stays before the rune")
}

func TestPositionClamping(t *testing.T) {
	text := "graph TD\r\nA\n"
	require.Equal(t, 8, offsetForPosition(text, position{Line: 0, Character: 100}))
	require.Equal(t, len(text), offsetForPosition(text, position{Line: 9, Character: 0}))
	require.Equal(t, 0, offsetForPosition(text, position{Line: -1, Character: 2}))
	require.Equal(t, position{Line: 2, Character: 0}, positionForOffset(text, 1000))
	require.Equal(t, position{}, positionForOffset(text, -5))
}

func TestRangeForSpan(t *testing.T) {
	text := "graph TD\nA-->B\n"
	sp := source.Span{
		Start: source.Position{Offset: 10, Line: 2, Col: 2},
		End:   source.Position{Offset: 13, Line: 2, Col: 5},
	}
	require.Equal(t, lspRange{
		Start: position{Line: 1, Character: 1},
		End:   position{Line: 1, Character: 4},
	}, rangeForSpan(text, sp))
}

func TestApplyChanges(t *testing.T) {
	text := "graph TD\nA-->B\n"
	text = applyChanges(text, []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{Line: 1, Character: 0}, End: position{Line: 1, Character: 1}}, Text: "Start"},
		{Range: &lspRange{Start: position{Line: 2, Character: 0}, End: position{Line: 2, Character: 0}}, Text: "B-->C\n"},
	})
	require.Equal(t, "graph TD\nStart-->B\nB-->C\n", text)

	require.Equal(t, "pie", applyChanges(text, []textDocumentContentChangeEvent{{Text: "pie"}}))
	require.Equal(t, "pie", applyChanges("pie", nil))
}

func TestCanonicalURI(t *testing.T) {
	require.Equal(t, "file:///work/a.mmd", canonicalURI("file:///work/./x/../a.mmd"))
	require.Equal(t, "untitled:Untitled-1", canonicalURI("untitled:Untitled-1"))
	require.Equal(t, "", uriToPath("untitled:Untitled-1"))
	require.Equal(t, "untitled:Untitled-1", documentName("untitled:Untitled-1"))
}
