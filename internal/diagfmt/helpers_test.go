package diagfmt

import (
	"testing"

	"mermaidlint/internal/lint"
	"mermaidlint/internal/source"
)

func lintDoc(t *testing.T, fs *source.FileSet, path, text string) Document {
	t.Helper()
	id := fs.Add(path, []byte(text), 0)
	f := fs.Get(id)
	return Document{File: f, Result: lint.Parse(f.Text(), lint.Options{})}
}
