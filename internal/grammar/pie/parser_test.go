package pie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/parser"
	"mermaidlint/internal/source"
)

func parse(t *testing.T, src string) (*ast.PieChart, []diag.Diagnostic) {
	t.Helper()
	bag := diag.NewBag(0)
	chart := Parse(src, source.NewLocator(src, nil), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	return chart, bag.Items()
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestParsePie(t *testing.T) {
	src := "pie showData title Key elements\n" +
		"    accTitle: Pets\n" +
		"    accDescr {\n      multi\n      line\n    }\n" +
		"    \"Dogs\" : 386\n" +
		"    \"Cats\" : 85.5\n"
	chart, diags := parse(t, src)
	require.Empty(t, diags)
	assert.True(t, chart.ShowData)
	require.NotNil(t, chart.Title)
	assert.Equal(t, "Key elements", chart.Title.Value)
	require.NotNil(t, chart.AccTitle)
	assert.Equal(t, "Pets", chart.AccTitle.Value)
	require.NotNil(t, chart.AccDescr)
	assert.Equal(t, "multi\n      line", chart.AccDescr.Value)
	require.Len(t, chart.Slices, 2)
	assert.Equal(t, "Dogs", chart.Slices[0].Label)
	assert.Equal(t, 386.0, chart.Slices[0].Value)
	assert.Equal(t, 85.5, chart.Slices[1].Value)
	assert.Equal(t, uint32(7), chart.Slices[0].Span.Start.Line)
}

func TestInvalidValues(t *testing.T) {
	chart, diags := parse(t, "pie\n\"a\" : -1\n\"b\" : lots\n\"c\" :\n\"d\" : 2")
	assert.Equal(t, []diag.Code{diag.SemaInvalidValue, diag.SemaInvalidValue, diag.SynExpectedToken}, codes(diags))
	// отрицательное значение остаётся в AST, нечисловое - нет
	require.Len(t, chart.Slices, 2)
	assert.Equal(t, "a", chart.Slices[0].Label)
	assert.Equal(t, "d", chart.Slices[1].Label)
}

func TestDuplicateSlice(t *testing.T) {
	_, diags := parse(t, "pie\n\"a\" : 1\n\"a\" : 2")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SemaDuplicateSlice, diags[0].Code)
	assert.Equal(t, diag.SevWarning, diags[0].Severity)
	require.Len(t, diags[0].Notes, 1)
	assert.Equal(t, uint32(2), diags[0].Notes[0].Span.Start.Line)
}

func TestUnquotedLabelAndRecovery(t *testing.T) {
	chart, diags := parse(t, "pie\nDogs : 3\n\"Cats\" 4\n\"Fish\" : 1")
	assert.Equal(t, []diag.Code{diag.SynExpectedToken, diag.SynExpectedToken}, codes(diags))
	require.Len(t, chart.Slices, 1)
	assert.Equal(t, "Fish", chart.Slices[0].Label)
}

func TestUnclosedAccDescr(t *testing.T) {
	_, diags := parse(t, "pie\naccDescr {\n text")
	assert.Equal(t, []diag.Code{diag.SynUnbalancedDelimiter}, codes(diags))
}

func TestMissingHeader(t *testing.T) {
	_, diags := parse(t, "\"a\" : 1")
	assert.Equal(t, []diag.Code{diag.SynMissingHeader}, codes(diags))
}
