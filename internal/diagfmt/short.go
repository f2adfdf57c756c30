package diagfmt

import (
	"fmt"
	"io"

	"mermaidlint/internal/diag"
)

// Short prints one line per diagnostic, see diag.FormatShortDiagnostics.
func Short(w io.Writer, docs []Document, baseDir string, mode PathMode, notes bool) error {
	for _, doc := range docs {
		if doc.Result == nil || len(doc.Result.Diagnostics) == 0 {
			continue
		}
		text := diag.FormatShortDiagnostics(doc.path(mode, baseDir), doc.Result.Diagnostics, notes)
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}
