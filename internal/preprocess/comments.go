package preprocess

import (
	"strings"

	"mermaidlint/internal/source"
)

const commentMarker = "%%"

// removeComments drops every line whose first non-blank characters are
// %%, newline included. A %% later in a line is ordinary text.
func removeComments(text string) (string, *source.Map) {
	b := source.NewBuilder(text)
	for pos := 0; pos < len(text); {
		next := nextLine(text, pos)
		if isCommentLine(text[pos:lineEnd(text, pos)]) {
			b.Copy(u32(pos))
			b.Skip(u32(next))
		}
		pos = next
	}
	return b.Finish()
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), commentMarker)
}
