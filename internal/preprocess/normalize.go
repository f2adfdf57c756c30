package preprocess

import (
	"strings"

	"mermaidlint/internal/source"
)

const bom = "\ufeff"

// Normalize strips leading byte order marks, turns CRLF and lone CR into
// LF and rewrites double-quoted attribute values inside HTML-like tags to
// single quotes. Applying it twice gives the same text.
func Normalize(text string) (string, *source.Map) {
	n := normalizer{b: source.NewBuilder(text), text: text}
	pos := 0
	for strings.HasPrefix(text[pos:], bom) {
		pos += len(bom)
	}
	n.b.Skip(u32(pos))

	for pos < len(text) {
		lt, gt := nextTag(text, pos)
		if lt < 0 {
			break
		}
		n.quoteAttributes(lt, gt)
		n.emit(gt + 1)
		pos = gt + 1
	}
	n.emit(len(text))
	return n.b.Finish()
}

type normalizer struct {
	b    *source.Builder
	text string
}

// emit copies input up to `to`, normalizing line endings on the way.
func (n *normalizer) emit(to int) {
	from := int(n.b.Pos())
	for i := from; i < to; i++ {
		if n.text[i] != '\r' {
			continue
		}
		n.b.Copy(u32(i))
		if i+1 < len(n.text) && n.text[i+1] == '\n' {
			n.b.Skip(u32(i + 1))
		} else {
			n.b.Replace(u32(i+1), "\n")
		}
	}
	n.b.Copy(u32(to))
}

// quoteAttributes rewrites every ="value" inside text[lt:gt] to ='value'.
func (n *normalizer) quoteAttributes(lt, gt int) {
	i := lt
	for {
		eq := strings.Index(n.text[i:gt], `="`)
		if eq < 0 {
			return
		}
		open := i + eq + 1
		rel := strings.IndexByte(n.text[open+1:gt], '"')
		if rel < 0 {
			return
		}
		closing := open + 1 + rel
		n.emit(open)
		n.b.Replace(u32(open+1), "'")
		n.emit(closing)
		n.b.Replace(u32(closing+1), "'")
		i = closing + 1
	}
}

// nextTag finds `<word ...>` at or after pos.
func nextTag(text string, pos int) (lt, gt int) {
	for pos < len(text) {
		rel := strings.IndexByte(text[pos:], '<')
		if rel < 0 {
			return -1, -1
		}
		lt = pos + rel
		if lt+1 < len(text) && isWordByte(text[lt+1]) {
			if end := strings.IndexByte(text[lt+1:], '>'); end >= 0 {
				return lt, lt + 1 + end
			}
			return -1, -1
		}
		pos = lt + 1
	}
	return -1, -1
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
