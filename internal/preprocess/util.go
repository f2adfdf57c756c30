package preprocess

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

// lineEnd returns the offset of the '\n' ending the line at pos, or
// len(text).
func lineEnd(text string, pos int) int {
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(text)
}

// nextLine returns the offset just past the line at pos.
func nextLine(text string, pos int) int {
	end := lineEnd(text, pos)
	if end < len(text) {
		return end + 1
	}
	return end
}

func isBlankLine(s string) bool {
	return strings.TrimSpace(s) == ""
}
