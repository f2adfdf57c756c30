package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	docs := []Document{
		lintDoc(t, fs, "a.mmd", "graph TD\nA-->B"),
		lintDoc(t, fs, "b.mmd", "graph TD\nA-->"),
		lintDoc(t, fs, "c.mmd", ""),
	}

	var buf bytes.Buffer
	if err := JSON(&buf, docs, "", JSONOpts{IncludeAST: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"severity": "error"`) {
		t.Errorf("severity not rendered as text:\n%s", buf.String())
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if out.OK || out.Count != 2 || len(out.Files) != 3 {
		t.Fatalf("unexpected root: ok=%t count=%d files=%d", out.OK, out.Count, len(out.Files))
	}

	a := out.Files[0]
	if !a.OK || a.DiagramType == nil || *a.DiagramType != "flowchart" || a.AST == nil {
		t.Errorf("a.mmd: %+v", a)
	}

	b := out.Files[1]
	if b.OK || len(b.Diagnostics) != 1 {
		t.Fatalf("b.mmd: %+v", b)
	}
	d := b.Diagnostics[0]
	if d.Code != "SYN4002" || d.Name != "Syntax.ExpectedToken" || d.Severity != diag.SevError {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Range.Start.Line != 2 || d.Range.Start.Col != 5 || d.Range.Start.Offset != 13 {
		t.Errorf("range = %+v", d.Range)
	}

	c := out.Files[2]
	if c.DiagramType != nil || c.AST != nil || c.Diagnostics[0].Code != "DET2001" {
		t.Errorf("c.mmd: %+v", c)
	}
}

func TestJSONMaxAndRawKeys(t *testing.T) {
	fs := source.NewFileSet()
	doc := lintDoc(t, fs, "m.mmd", "graph TD\nA-->\nB-->\nC-->")

	out := BuildDiagnosticsOutput([]Document{doc}, "", JSONOpts{Max: 2})
	if got := len(out.Files[0].Diagnostics); got != 2 {
		t.Fatalf("diagnostics = %d, want 2", got)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, []Document{doc}, "", JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	file := raw["files"].([]any)[0].(map[string]any)
	if _, ok := file["diagram_type"]; !ok {
		t.Errorf("diagram_type key missing: %v", file)
	}
	if _, ok := file["ast"]; ok {
		t.Errorf("ast must be omitted without IncludeAST")
	}
}
