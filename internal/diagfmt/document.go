package diagfmt

import (
	"mermaidlint/internal/lint"
	"mermaidlint/internal/source"
)

// Document is one linted input as the formatters see it.
type Document struct {
	// Path is used when File is nil (e.g. the file could not be read).
	Path   string
	File   *source.File
	Result *lint.ParseResult
}

func (d Document) path(mode PathMode, baseDir string) string {
	if d.File == nil {
		return d.Path
	}
	return d.File.FormatPath(mode.String(), baseDir)
}

// line returns the text of a 1-based line without its terminator.
func (d Document) line(n uint32) string {
	if d.File == nil {
		return ""
	}
	return d.File.GetLine(n)
}

func allOK(docs []Document) bool {
	for _, d := range docs {
		if d.Result == nil || !d.Result.OK {
			return false
		}
	}
	return true
}
