package lexer

import "unicode"

// ScanQuoted consumes a string opened by quote at the cursor. It stops
// after the closing quote, or before a newline or the end of input, in
// which case it reports false.
func ScanQuoted(c *Cursor, quote byte) bool {
	c.Bump() // открывающая кавычка
	for !c.EOF() {
		switch c.Peek() {
		case quote:
			c.Bump()
			return true
		case '\n':
			return false
		}
		c.Bump()
	}
	return false
}

// SkipBlanks skips spaces and tabs and reports whether it moved.
func SkipBlanks(c *Cursor) bool {
	start := c.Off
	for !c.EOF() {
		if b := c.Peek(); b != ' ' && b != '\t' {
			break
		}
		c.Bump()
	}
	return c.Off != start
}

// ScanUntil consumes bytes up to (not including) any byte of stop or a
// newline.
func ScanUntil(c *Cursor, stop string) {
	for !c.EOF() {
		b := c.Peek()
		if b == '\n' {
			return
		}
		for i := 0; i < len(stop); i++ {
			if b == stop[i] {
				return
			}
		}
		c.Bump()
	}
}

// ASCII fast-path для идентификаторов; Unicode - через IsIdentStart/Continue.
func IsIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func IsIdentContinueByte(b byte) bool {
	return IsIdentStartByte(b) || IsDigit(b)
}

func IsIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func IsIdentContinue(r rune) bool {
	return IsIdentStart(r) || unicode.IsDigit(r)
}

func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
