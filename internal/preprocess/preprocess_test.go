package preprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
)

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"line1\r\nline2\r\nline3", "line1\nline2\nline3"},
		{"line1\rline2\rline3", "line1\nline2\nline3"},
		{"\ufeffgraph TD", "graph TD"},
		{`<div class="foo" id="bar">content</div>`, `<div class='foo' id='bar'>content</div>`},
		{`A["x = "y" ok"]`, `A["x = "y" ok"]`},
		{`a<br/>b`, `a<br/>b`},
		{"<span title=\"a\r\nb\">", "<span title='a\nb'>"},
	}
	for _, tt := range tests {
		got, m := Normalize(tt.in)
		assert.Equal(t, tt.want, got, "Normalize(%q)", tt.in)
		assert.Equal(t, uint32(len(got)), m.OutputLen())
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"graph TD\r\n  A-->B\r",
		"\ufeff\ufeff<b class=\"x\">\r\r\n",
		"plain text",
		"",
	}
	for _, in := range inputs {
		once, _ := Normalize(in)
		twice, _ := Normalize(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestRunFrontmatter(t *testing.T) {
	res := Run("---\ntitle: X\nconfig:\n  theme: dark\n---\ngraph TD\nA-->B", config.Default())
	require.Empty(t, res.Diagnostics)
	require.NotNil(t, res.Title)
	assert.Equal(t, "X", *res.Title)
	assert.Equal(t, "dark", res.Config.Theme)
	assert.Equal(t, "graph TD\nA-->B", res.Text)
	assert.True(t, res.HasFrontmatter)

	// "graph" maps to line 6 of the original.
	sp := res.Locator.Span(0, 5)
	assert.Equal(t, uint32(6), sp.Start.Line)
	assert.Equal(t, uint32(1), sp.Start.Col)
}

func TestRunFrontmatterDisplayMode(t *testing.T) {
	res := Run("---\ndisplayMode: compact\n---\ngantt", config.Default())
	assert.Equal(t, "compact", res.Config.Gantt.DisplayMode)
}

func TestRunInvalidFrontmatter(t *testing.T) {
	res := Run("---\ntitle: [oops\n---\ngraph TD", config.Default())
	require.Equal(t, []diag.Code{diag.CfgInvalidFrontmatter}, codes(res.Diagnostics))
	assert.Equal(t, diag.SevWarning, res.Diagnostics[0].Severity)
	assert.Equal(t, "graph TD", res.Text, "block is removed even when invalid")
	assert.Nil(t, res.Title)
}

func TestRunFrontmatterNotMapping(t *testing.T) {
	res := Run("---\n- a\n- b\n---\npie", config.Default())
	require.Equal(t, []diag.Code{diag.CfgFrontmatterNotMapping}, codes(res.Diagnostics))
	assert.Equal(t, uint32(2), res.Diagnostics[0].Primary.Start.Line)
}

func TestRunUnclosedFrontmatter(t *testing.T) {
	res := Run("---\ntitle: X\ngraph TD", config.Default())
	require.Equal(t, []diag.Code{diag.CfgUnclosedFrontmatter}, codes(res.Diagnostics))
	assert.True(t, strings.HasPrefix(res.Text, "---"), "unclosed block stays in the text")
}

func TestRunConfigValueError(t *testing.T) {
	res := Run("---\nconfig:\n  fontSize: big\n  theme: forest\n---\npie", config.Default())
	require.Equal(t, []diag.Code{diag.CfgInvalidConfigValue}, codes(res.Diagnostics))
	d := res.Diagnostics[0]
	assert.Equal(t, uint32(3), d.Primary.Start.Line)
	assert.Equal(t, uint32(13), d.Primary.Start.Col)
	assert.Equal(t, "forest", res.Config.Theme)
}

func TestRunDirectives(t *testing.T) {
	text := "---\nconfig:\n  theme: base\n---\n" +
		`%%{init: {"theme": "dark", "flowchart": {"defaultRenderer": "elk"}}}%%` + "\n" +
		"%%{wrap}%%\n" +
		"graph TD\n  A-->B\n"
	res := Run(text, config.Default())
	require.Empty(t, res.Diagnostics)
	assert.True(t, res.Config.Wrap)
	assert.Equal(t, "dark", res.Config.Theme, "directive wins over frontmatter")
	assert.Equal(t, "elk", res.Config.Flowchart.DefaultRenderer)
	require.Len(t, res.Directives, 2)
	assert.Equal(t, DirectiveInit, res.Directives[0].Kind)
	assert.Equal(t, DirectiveWrap, res.Directives[1].Kind)
	assert.Equal(t, uint32(5), res.Directives[0].Span.Start.Line)
	assert.NotContains(t, res.Text, "%%")
}

func TestRunDirectiveSingleQuotedPayload(t *testing.T) {
	res := Run("%%{ initialize: { 'theme': 'forest' } }%%\npie", config.Default())
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, "forest", res.Config.Theme)
}

func TestRunDirectiveOrderAndCallerConfig(t *testing.T) {
	base := config.Default().Merge(config.Config{Theme: "caller", Layout: "dagre"})
	res := Run("%%{init: {theme: one}}%%\n%%{init: {theme: two}}%%\npie", base)
	assert.Equal(t, "two", res.Config.Theme)
	assert.Equal(t, "dagre", res.Config.Layout, "caller values survive where the document is silent")
}

func TestRunDirectiveWarnings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want diag.Code
	}{
		{"unknown", "%%{themeCSS: x}%%\npie", diag.CfgUnknownDirective},
		{"empty", "%%{}%%\npie", diag.CfgUnknownDirective},
		{"bad payload", "%%{init: {theme: [}}%%\npie", diag.CfgInvalidDirectivePayload},
		{"not mapping", "%%{init: 42}%%\npie", diag.CfgInvalidDirectivePayload},
		{"missing payload", "%%{init}%%\npie", diag.CfgInvalidDirectivePayload},
		{"no colon", "%%{init {}}%%\npie", diag.CfgInvalidDirectivePayload},
		{"unterminated", "%%{init: {}\npie", diag.CfgUnterminatedDirective},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(tt.text, config.Default())
			require.Equal(t, []diag.Code{tt.want}, codes(res.Diagnostics))
			assert.Equal(t, diag.SevWarning, res.Diagnostics[0].Severity)
			assert.Equal(t, "pie", strings.TrimSpace(res.Text))
		})
	}
}

func TestRunComments(t *testing.T) {
	res := Run("%% head\ngraph TD\n   %% inner\n  A-->B %% not a comment\n", config.Default())
	assert.Equal(t, "graph TD\n  A-->B %% not a comment\n", res.Text)

	// "A" sits on original line 4, column 3.
	i := strings.Index(res.Text, "A")
	sp := res.Locator.Span(uint32(i), uint32(i+1))
	assert.Equal(t, "4:3-4:4", sp.String())
}

// Every byte that survives preprocessing must map back to the same byte of
// the original input, at the line and column a reader would count.
func TestRunSpanRoundTrip(t *testing.T) {
	original := "\ufeff---\r\ntitle: T\r\n---\r\n%% c\r\n%%{wrap}%%\r\nflowchart LR\r\n  <b x=\"1\">A</b> --> B\r\n"
	res := Run(original, config.Default())
	require.Empty(t, res.Diagnostics)

	for i := 0; i < len(res.Text); i++ {
		sp := res.Locator.Span(uint32(i), uint32(i+1))
		got := res.Text[i]
		src := original[sp.Start.Offset]
		if got != src && !(got == '\'' && src == '"') {
			t.Fatalf("offset %d: %q maps to %q at %s", i, got, src, sp)
		}
	}
	i := strings.Index(res.Text, "B")
	sp := res.Locator.Span(uint32(i), uint32(i+1))
	assert.Equal(t, uint32(7), sp.Start.Line)
	assert.Equal(t, uint32(len(`  <b x="1">A</b> --> `)+1), sp.Start.Col)
}

func TestSkipPreamble(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"graph TD", "graph TD"},
		{"---\ntitle: x\n---\n\npie", "pie"},
		{"%% c\n%%{init: {}}%%\n  gantt", "  gantt"},
		{"%%{wrap}%% sequenceDiagram", " sequenceDiagram"},
		{"---\nunclosed\ngraph", "---\nunclosed\ngraph"},
		{"%%{broken\nclassDiagram", "classDiagram"},
		{"\n\n", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SkipPreamble(tt.in), "SkipPreamble(%q)", tt.in)
	}
}
