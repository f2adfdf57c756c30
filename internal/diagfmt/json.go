package diagfmt

import (
	"encoding/json"
	"io"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message string      `json:"message"`
	Range   source.Span `json:"range"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity diag.Severity `json:"severity"`
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	Message  string        `json:"message"`
	Range    source.Span   `json:"range"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DocumentJSON is the outcome for one input.
type DocumentJSON struct {
	File        string           `json:"file"`
	OK          bool             `json:"ok"`
	DiagramType *string          `json:"diagram_type"`
	Title       *string          `json:"title,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	AST         *ast.Tree        `json:"ast,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Files []DocumentJSON `json:"files"`
	OK    bool           `json:"ok"`
	Count int            `json:"count"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(docs []Document, baseDir string, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]DocumentJSON, 0, len(docs)), OK: allOK(docs)}
	for _, doc := range docs {
		res := doc.Result
		if res == nil {
			continue
		}
		dj := DocumentJSON{
			File:        doc.path(opts.PathMode, baseDir),
			OK:          res.OK,
			Title:       res.Title,
			Diagnostics: make([]DiagnosticJSON, 0, len(res.Diagnostics)),
		}
		if res.DiagramType != nil {
			name := res.DiagramType.String()
			dj.DiagramType = &name
		}
		if opts.IncludeAST {
			dj.AST = res.AST
		}

		items := res.Diagnostics
		if opts.Max > 0 && opts.Max < len(items) {
			items = items[:opts.Max]
		}
		for _, d := range items {
			dj.Diagnostics = append(dj.Diagnostics, diagnosticJSON(d, opts.IncludeNotes))
		}
		out.Count += len(dj.Diagnostics)
		out.Files = append(out.Files, dj)
	}
	return out
}

func diagnosticJSON(d diag.Diagnostic, notes bool) DiagnosticJSON {
	dj := DiagnosticJSON{
		Severity: d.Severity,
		Code:     d.Code.ID(),
		Name:     d.Code.Name(),
		Message:  d.Message,
		Range:    d.Primary,
	}
	if notes && len(d.Notes) > 0 {
		dj.Notes = make([]NoteJSON, len(d.Notes))
		for j, note := range d.Notes {
			dj.Notes[j] = NoteJSON{Message: note.Msg, Range: note.Span}
		}
	}
	return dj
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, docs []Document, baseDir string, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(docs, baseDir, opts))
}
