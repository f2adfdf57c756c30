package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShortDiagnostics renders diagnostics of one document into a stable,
// single-line-per-entry representation: "error SYN4002 path:3:5 message".
// It is used by golden tests and by the short CLI format. Input order is
// kept; callers sort beforehand.
func FormatShortDiagnostics(path string, diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	path = normalizePath(path)

	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s",
			d.Severity, d.Code.ID(), path, d.Primary.Start.Line, d.Primary.Start.Col, sanitizeMessage(d.Message)))
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			lines = append(lines, fmt.Sprintf("note %s %s:%d:%d %s",
				d.Code.ID(), path, note.Span.Start.Line, note.Span.Start.Col, sanitizeMessage(note.Msg)))
		}
	}
	return strings.Join(lines, "\n")
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
