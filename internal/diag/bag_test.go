package diag

import (
	"testing"

	"mermaidlint/internal/source"
)

func spanAt(off uint32) source.Span {
	p := source.Position{Offset: off, Line: 1, Col: off + 1}
	return source.PointSpan(p)
}

func TestBagSortIsStable(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SynExpectedToken, spanAt(7), "second at 7"))
	b.Add(NewWarning(CfgUnknownDirective, spanAt(0), "at 0"))
	b.Add(NewError(SynInvalidArrow, spanAt(7), "third at 7"))
	b.Add(NewError(LexInvalidCharacter, spanAt(3), "at 3"))
	b.Sort()

	want := []string{"at 0", "at 3", "second at 7", "third at 7"}
	for i, d := range b.Items() {
		if d.Message != want[i] {
			t.Fatalf("item %d = %q, want %q", i, d.Message, want[i])
		}
	}
}

func TestBagLimitAndSeverity(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewWarning(SemaDuplicateSlice, spanAt(0), "w")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatal("severity flags wrong after warning")
	}
	b.Add(NewError(SynUnexpectedToken, spanAt(1), "e"))
	if b.Add(NewError(SynUnexpectedToken, spanAt(2), "dropped")) {
		t.Fatal("limit not enforced")
	}
	if !b.HasErrors() || b.Len() != 2 {
		t.Fatalf("len=%d errors=%v", b.Len(), b.HasErrors())
	}
}

func TestDedup(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	for range 3 {
		ReportError(r, SynExpectedToken, spanAt(4), "expected node").Emit()
	}
	ReportError(r, SynExpectedToken, spanAt(5), "expected node").Emit()
	if b.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", b.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	var got []Diagnostic
	r := ReporterFunc(func(d Diagnostic) { got = append(got, d) })
	b := ReportWarning(r, SemaDuplicateSlice, spanAt(8), "duplicate slice").
		WithNote(spanAt(1), "first defined here")
	b.Emit()
	b.Emit()
	if len(got) != 1 || got[0].Severity != SevWarning || len(got[0].Notes) != 1 {
		t.Fatalf("got %+v", got)
	}
	ReportError(nil, SynExpectedToken, spanAt(0), "dropped").Emit()
}

func TestCodeNames(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		name string
	}{
		{CfgInvalidFrontmatter, "CFG1001", "Config.InvalidFrontmatter"},
		{DetUnknownDiagramType, "DET2001", "Detect.UnknownDiagramType"},
		{LexUnterminatedString, "LEX3002", "Lex.UnterminatedString"},
		{SynExpectedToken, "SYN4002", "Syntax.ExpectedToken"},
		{SemaConflictingNodeShape, "SEM5001", "Semantic.ConflictingNodeShape"},
		{IOReadFailed, "IO6001", "IO.ReadFailed"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %s, want %s", tt.code, got, tt.id)
		}
		if got := tt.code.Name(); got != tt.name {
			t.Errorf("%d.Name() = %s, want %s", tt.code, got, tt.name)
		}
		if c, ok := LookupCode(tt.name); !ok || c != tt.code {
			t.Errorf("LookupCode(%s) = %d, %v", tt.name, c, ok)
		}
		if c, ok := LookupCode(tt.id); !ok || c != tt.code {
			t.Errorf("LookupCode(%s) = %d, %v", tt.id, c, ok)
		}
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	first := source.Span{
		Start: source.Position{Offset: 0, Line: 1, Col: 1},
		End:   source.Position{Offset: 1, Line: 1, Col: 2},
	}
	second := source.Span{
		Start: source.Position{Offset: 2, Line: 2, Col: 1},
		End:   source.Position{Offset: 3, Line: 2, Col: 2},
	}
	diags := []Diagnostic{
		NewError(SynUnexpectedToken, first, "first line\nsecond").WithNote(second, "note line"),
		NewWarning(SemaDuplicateSubgraph, second, "another"),
	}

	expected := "error SYN4001 testdata/sample.mmd:1:1 first line second\n" +
		"note SYN4001 testdata/sample.mmd:2:1 note line\n" +
		"warning SEM5002 testdata/sample.mmd:2:1 another"

	if got := FormatShortDiagnostics("./testdata/sample.mmd", diags, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestExtendKeepsEverything(t *testing.T) {
	b := NewBag(1)
	b.Add(NewError(SynUnexpectedToken, spanAt(9), "parser"))
	b.Extend([]Diagnostic{NewWarning(CfgUnknownDirective, spanAt(0), "pre 1"), NewWarning(CfgUnknownDirective, spanAt(1), "pre 2")})
	if b.Len() != 3 || b.Add(NewError(SynUnexpectedToken, spanAt(10), "over")) {
		t.Fatalf("len=%d", b.Len())
	}
}
