package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	doc := lintDoc(t, fs, "/home/user/project/src/test.mmd", "graph TD\nA-->")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.mmd:2:5"},
		{"Relative path", PathModeRelative, "src/test.mmd:2:5"},
		{"Basename only", PathModeBasename, "test.mmd:2:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, []Document{doc}, "/home/user/project", PrettyOpts{PathMode: tt.mode}); err != nil {
				t.Fatal(err)
			}
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR SYN4002") {
				t.Errorf("Expected ERROR SYN4002 in output, got:\n%s", output)
			}
			if !strings.Contains(output, ": FAIL\n") {
				t.Errorf("Expected FAIL status, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	doc := lintDoc(t, fs, "x.mmd", "graph TD\nA-->")

	var buf bytes.Buffer
	if err := Pretty(&buf, []Document{doc}, "", PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "x.mmd: FAIL\n" +
		"x.mmd:2:5: ERROR SYN4002: expected a node after the arrow\n" +
		" 2 | A-->\n" +
		"   |     ^\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	doc := lintDoc(t, fs, "p.mmd", "pie\n\"日本\" : x")

	var buf bytes.Buffer
	if err := Pretty(&buf, []Document{doc}, "", PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	// "日本" занимает четыре колонки терминала
	if want := "  | " + strings.Repeat(" ", 9) + "^\n"; !strings.Contains(buf.String(), want) {
		t.Errorf("caret misaligned:\n%s", buf.String())
	}
}

func TestPrettySummaryAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	ok := lintDoc(t, fs, "ok.mmd", "---\ntitle: Hello\n---\npie\n\"a\" : 1")
	warn := lintDoc(t, fs, "w.mmd", "graph TD\nA[x]\nA(y)")

	var buf bytes.Buffer
	if err := Pretty(&buf, []Document{ok, warn}, "", PrettyOpts{Summary: true, ShowNotes: true, Context: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"ok.mmd: OK\n  Type: pie\n  Title: Hello\n",
		"w.mmd: OK\n",
		"WARNING SEM5001",
		"note: w.mmd:2:1: first declared here",
		" 2 | A[x]\n 3 | A(y)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

// Нечитаемый файл: позиция 1:1, без сниппета.
func TestUnreadableFileRendersAtFileStart(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.Add("m.mmd", nil, 0))
	doc := Document{File: f, Result: &lint.ParseResult{Diagnostics: []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.IOReadFailed,
		Message:  "cannot read file: no such file or directory",
		Primary:  source.PointSpan(source.Position{Line: 1, Col: 1}),
	}}}}

	var buf bytes.Buffer
	if err := Pretty(&buf, []Document{doc}, "", PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "m.mmd:1:1: ERROR IO6001") {
		t.Errorf("pretty output lacks 1:1 position:\n%s", out)
	}
	if strings.Contains(out, " | ") {
		t.Errorf("empty file must not get a snippet:\n%s", out)
	}

	buf.Reset()
	if err := Short(&buf, []Document{doc}, "", PathModeBasename, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "m.mmd:1:1") || strings.Contains(buf.String(), ":0:0") {
		t.Errorf("short output = %q", buf.String())
	}
}
