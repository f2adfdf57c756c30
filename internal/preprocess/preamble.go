package preprocess

import "strings"

// SkipPreamble returns the part of normalized text where the diagram
// header is expected: a closed frontmatter block and any leading blank,
// comment or directive lines are skipped. Payloads are not parsed.
func SkipPreamble(text string) string {
	pos := 0
	if isFence(text[:lineEnd(text, 0)]) {
		for p := nextLine(text, 0); p < len(text); p = nextLine(text, p) {
			if isFence(text[p:lineEnd(text, p)]) {
				pos = nextLine(text, p)
				break
			}
		}
	}
	for pos < len(text) {
		line := text[pos:lineEnd(text, pos)]
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case isBlankLine(line):
			pos = nextLine(text, pos)
		case strings.HasPrefix(trimmed, directiveOpen):
			open := pos + len(line) - len(trimmed)
			end := strings.Index(text[open:], directiveClose)
			if end < 0 {
				pos = nextLine(text, pos)
				continue
			}
			pos = open + end + len(directiveClose)
		case strings.HasPrefix(trimmed, commentMarker):
			pos = nextLine(text, pos)
		default:
			return text[pos:]
		}
	}
	return ""
}
