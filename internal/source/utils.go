package source

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fortio.org/safecast"
)

// LineIndex resolves byte offsets of one text into line/column positions.
type LineIndex struct {
	text  string
	lines []uint32 // позиции '\n'
}

// NewLineIndex builds an index over text.
func NewLineIndex(text string) LineIndex {
	return LineIndex{text: text, lines: buildLineIndex(text)}
}

// Len returns the length of the indexed text in bytes.
func (idx LineIndex) Len() uint32 {
	return mustU32(len(idx.text))
}

// Lines returns the number of lines; an empty text has one line.
func (idx LineIndex) Lines() int {
	return len(idx.lines) + 1
}

// Position resolves off into a Position. Offsets past the end clamp to
// the end of the text.
func (idx LineIndex) Position(off uint32) Position {
	if n := idx.Len(); off > n {
		off = n
	}
	line, start := idx.lineOf(off)
	prefix := idx.text[start:off]
	col := mustU32(utf8.RuneCountInString(prefix)) + 1
	return Position{Offset: off, Line: line, Col: col}
}

// LineText returns the text of the 1-based line without its terminator
// (a trailing '\r' of a CRLF pair is dropped as well).
func (idx LineIndex) LineText(line uint32) string {
	if line == 0 || int(line) > idx.Lines() {
		return ""
	}
	var start uint32
	if line > 1 {
		start = idx.lines[line-2] + 1
	}
	end := idx.Len()
	if int(line-1) < len(idx.lines) {
		end = idx.lines[line-1]
	}
	s := idx.text[start:end]
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

// lineOf возвращает номер строки (1-based) и смещение её начала.
func (idx LineIndex) lineOf(off uint32) (line, start uint32) {
	// бинпоиск: находим количество '\n' строго левее off
	lo, hi := 0, len(idx.lines)
	for lo < hi {
		mid := (lo + hi) >> 1
		if idx.lines[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 1, 0
	}
	return mustU32(lo) + 1, idx.lines[lo-1] + 1
}

func buildLineIndex(text string) []uint32 {
	out := make([]uint32, 0, len(text)/32+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, mustU32(i))
		}
	}
	return out
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the absolute, slash-separated form of p.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// RelativePath returns p relative to base, slash-separated.
func RelativePath(p, base string) (string, error) {
	absP, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absP)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
