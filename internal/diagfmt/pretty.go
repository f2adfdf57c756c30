package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, path, gutter, caret, ok *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed),
		ok:     color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.caret, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого документа печатает строку `<path>: OK|FAIL`, затем каждую
// диагностику:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
// Диагностики ожидаются уже отсортированными.
func Pretty(w io.Writer, docs []Document, baseDir string, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, doc := range docs {
		path := doc.path(opts.PathMode, baseDir)
		res := doc.Result
		if res == nil {
			continue
		}
		status := pal.ok.Sprint("OK")
		if !res.OK {
			status = pal.err.Sprint("FAIL")
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", pal.path.Sprint(path), status); err != nil {
			return err
		}
		if opts.Summary && res.OK {
			if res.DiagramType != nil {
				fmt.Fprintf(w, "  Type: %s\n", *res.DiagramType)
			}
			if res.Title != nil {
				fmt.Fprintf(w, "  Title: %s\n", *res.Title)
			}
		}
		for _, d := range res.Diagnostics {
			if err := prettyDiagnostic(w, doc, path, d, pal, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyDiagnostic(w io.Writer, doc Document, path string, d diag.Diagnostic, pal palette, opts PrettyOpts) error {
	sev := pal.severity(d.Severity)
	_, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, d.Primary.Start.Line, d.Primary.Start.Col,
		sev.Sprint(strings.ToUpper(d.Severity.String())), d.Code.ID(), d.Message)
	if err != nil {
		return err
	}
	writeSnippet(w, doc, d.Primary, pal, opts)
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), path, n.Span.Start.Line, n.Span.Start.Col, n.Msg)
		writeSnippet(w, doc, n.Span, pal, PrettyOpts{Width: opts.Width})
	}
	return nil
}

// writeSnippet prints the first line of sp with a caret underline.
func writeSnippet(w io.Writer, doc Document, sp source.Span, pal palette, opts PrettyOpts) {
	if doc.File == nil || len(doc.File.Content) == 0 || sp.Start.Line == 0 {
		return
	}
	line := sp.Start.Line
	gutterWidth := len(fmt.Sprint(line))
	first := uint32(1)
	if ctx := uint32(max(opts.Context, 0)); ctx < line {
		first = line - ctx
	}
	for n := first; n <= line; n++ {
		text := expandTabs(doc.line(n))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, n), text)
	}

	raw := []rune(doc.line(line))
	startCol := min(int(sp.Start.Col)-1, len(raw))
	endCol := len(raw)
	if sp.End.Line == sp.Start.Line {
		endCol = min(int(sp.End.Col)-1, len(raw))
	}
	pad := runewidth.StringWidth(expandTabs(string(raw[:startCol])))
	width := 1
	if endCol > startCol {
		width = max(runewidth.StringWidth(expandTabs(string(raw[startCol:endCol]))), 1)
	}
	fmt.Fprintf(w, " %s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
