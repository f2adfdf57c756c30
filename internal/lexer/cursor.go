package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"mermaidlint/internal/source"
)

// Cursor представляет собой позицию в предобработанном тексте
type Cursor struct {
	Text string
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(Text).
	Limit uint32
	Loc   *source.Locator
}

// NewCursor creates a new cursor over preprocessed text.
func NewCursor(text string, loc *source.Locator) Cursor {
	limit, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("len text overflow: %w", err))
	}
	return Cursor{
		Text:  text,
		Off:   0,
		Limit: limit,
		Loc:   loc,
	}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Text[c.Off]
}

// PeekAt читает байт со смещением n от текущей позиции
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.Text[c.Off+n]
}

// Peek2 returns the two bytes at the cursor; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.Text[c.Off], c.Text[c.Off+1], true
}

// HasPrefix reports whether the remaining text starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.Text[c.Off:c.Limit]
	return len(rest) >= len(s) && rest[:len(s)] == s
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Text[c.Off]
	c.Off++
	return b
}

// BumpN перемещает курсор на n байт вперед
func (c *Cursor) BumpN(n int) {
	for range n {
		c.Bump()
	}
}

// PeekRune decodes the rune at the cursor.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.Text[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Text[c.Off:c.Limit])
}

// BumpRune moves past the rune at the cursor.
func (c *Cursor) BumpRune() {
	_, sz := c.PeekRune()
	c.BumpN(sz)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Text[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Slice returns the text read since m.
func (c *Cursor) Slice(m Mark) string {
	return c.Text[m:c.Off]
}

// SpanFrom maps the text read since m to an original span.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return c.Span(uint32(m), c.Off)
}

// Span converts a preprocessed range to an original span.
func (c *Cursor) Span(lo, hi uint32) source.Span {
	if c.Loc == nil {
		return source.Span{
			Start: source.Position{Offset: lo},
			End:   source.Position{Offset: hi},
		}
	}
	return c.Loc.Span(lo, hi)
}
