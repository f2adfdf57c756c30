package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"mermaidlint/internal/grammar/flowchart"
	"mermaidlint/internal/lexer"
	"mermaidlint/internal/lint"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

func TestFormatASTPretty(t *testing.T) {
	res := lint.Parse("graph LR\nA[Start] -->|go| B((End))\nsubgraph s1 [Group]\nC\nend", lint.Options{})
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.AST); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"flowchart (span: 1:1-5:4)\n",
		"├─ Header: graph LR",
		"│  ├─ A rect \"Start\"",
		"│  ├─ B circle \"End\"",
		"│  └─ C default",
		"A -[solid arrow]-> B \"go\"",
		"Subgraph s1 \"Group\"",
		"Nodes: C",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty AST lacks %q:\n%s", want, out)
		}
	}
}

func TestFormatASTYAML(t *testing.T) {
	res := lint.Parse("pie showData\ntitle Pets\n\"Dogs\" : 3", lint.Options{})
	var buf bytes.Buffer
	if err := FormatASTYAML(&buf, res.AST); err != nil {
		t.Fatal(err)
	}
	var back struct {
		Type string `yaml:"type"`
		Pie  struct {
			ShowData bool `yaml:"showData"`
			Title    struct {
				Value string `yaml:"value"`
			} `yaml:"title"`
			Slices []struct {
				Label string  `yaml:"label"`
				Value float64 `yaml:"value"`
			} `yaml:"slices"`
		} `yaml:"pie"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml: %v\n%s", err, buf.String())
	}
	if back.Type != "pie" || !back.Pie.ShowData || back.Pie.Title.Value != "Pets" ||
		len(back.Pie.Slices) != 1 || back.Pie.Slices[0].Value != 3 {
		t.Errorf("round trip = %+v\n%s", back, buf.String())
	}
}

func TestFormatASTNil(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, nil); err == nil {
		t.Fatal("expected an error for a nil tree")
	}
}

func TestFormatTokens(t *testing.T) {
	text := "graph TD\nA-->B"
	toks := token.Erase(flowchart.Tokenize(text, source.NewLocator(text, nil), lexer.Options{}))

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("lines = %d, tokens = %d", len(lines), len(toks))
	}
	if !strings.Contains(buf.String(), `"-->" at 2:2-2:5`) {
		t.Errorf("arrow token missing:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"kind": "Link"`) {
		t.Errorf("json tokens:\n%s", buf.String())
	}
}
