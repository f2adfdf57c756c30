package lsp

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"mermaidlint/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// offsetForPosition maps an LSP position to a byte offset in text.
// Positions past the end of a line clamp to the line end; positions past
// the last line clamp to len(text).
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	line := 0
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	units := 0
	for i < len(text) && units < pos.Character {
		if text[i] == '\n' || (text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n') {
			break
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

// positionForOffset maps a byte offset in text to an LSP position.
// An offset inside a multi-byte rune resolves to the rune start.
func positionForOffset(text string, offset int) position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	var pos position
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			pos.Line++
			lineStart = i + 1
		}
	}
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRuneInString(text[off:])
		if off+size > offset {
			break
		}
		if r > 0xFFFF {
			pos.Character += 2
		} else {
			pos.Character++
		}
		off += size
	}
	return pos
}

func rangeForSpan(text string, span source.Span) lspRange {
	start := int(span.Start.Offset)
	end := int(span.End.Offset)
	if end < start {
		end = start
	}
	return lspRange{
		Start: positionForOffset(text, start),
		End:   positionForOffset(text, end),
	}
}

// applyChanges applies didChange events in order. An event without a range
// replaces the whole document.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}
