package outline

import (
	"mermaidlint/internal/lexer"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

type Kind uint8

const (
	EOF Kind = iota
	Invalid
	Newline
	Word
	String
	Open  // ( [ {
	Close // ) ] }
	Text  // любая другая последовательность непробельных символов
)

var kindNames = [...]string{
	EOF: "EOF", Invalid: "Invalid", Newline: "Newline", Word: "Word",
	String: "String", Open: "Open", Close: "Close", Text: "Text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind?"
}

var Kinds = token.Set[Kind]{EOF: EOF, Invalid: Invalid, Newline: Newline}

type Lexer struct {
	lexer.Base[Kind]
}

func NewLexer(text string, loc *source.Locator, opts lexer.Options) *Lexer {
	return &Lexer{Base: lexer.NewBase(text, loc, Kinds, opts)}
}

func Tokenize(text string, loc *source.Locator, opts lexer.Options) []token.Token[Kind] {
	return lexer.All[Kind](NewLexer(text, loc, opts), EOF)
}

func (lx *Lexer) Next() token.Token[Kind] {
	c := &lx.Cursor
	lexer.SkipBlanks(c)
	if c.EOF() {
		return lx.EOF()
	}
	m := c.Mark()
	switch b := c.Peek(); b {
	case '\n':
		c.Bump()
		return lx.Emit(Newline, m)
	case '"':
		return lx.String(String, '"')
	case '(', '[', '{':
		c.Bump()
		return lx.Emit(Open, m)
	case ')', ']', '}':
		c.Bump()
		return lx.Emit(Close, m)
	}
	if r, _ := c.PeekRune(); lexer.IsIdentContinue(r) {
		lx.scanWord()
		return lx.Emit(Word, m)
	}
	for !c.EOF() {
		r, _ := c.PeekRune()
		if isSpecial(c.Peek()) || lexer.IsIdentContinue(r) {
			break
		}
		c.BumpRune()
	}
	return lx.Emit(Text, m)
}

// scanWord reads identifier runes with inner dashes (`stateDiagram-v2`).
func (lx *Lexer) scanWord() {
	c := &lx.Cursor
	for !c.EOF() {
		if c.Peek() == '-' {
			if r := c.PeekAt(1); lexer.IsIdentContinueByte(r) {
				c.Bump()
				continue
			}
			return
		}
		r, _ := c.PeekRune()
		if !lexer.IsIdentContinue(r) {
			return
		}
		c.BumpRune()
	}
}

func isSpecial(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '"', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}
