package pie

import (
	"sync"

	"mermaidlint/internal/lexer"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

type Kind uint8

const (
	EOF Kind = iota
	Invalid
	Newline
	Ident
	Number
	String
	Colon
	LBrace
	RBrace
	Rest

	KwPie
	KwShowData
	KwTitle
	KwAccTitle
	KwAccDescr
)

var kindNames = [...]string{
	EOF: "EOF", Invalid: "Invalid", Newline: "Newline", Ident: "Ident",
	Number: "Number", String: "String", Colon: "Colon", LBrace: "LBrace",
	RBrace: "RBrace", Rest: "Rest", KwPie: "KwPie", KwShowData: "KwShowData",
	KwTitle: "KwTitle", KwAccTitle: "KwAccTitle", KwAccDescr: "KwAccDescr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind?"
}

var Kinds = token.Set[Kind]{EOF: EOF, Invalid: Invalid, Newline: Newline}

var keywords = sync.OnceValue(func() map[string]Kind {
	return map[string]Kind{
		"pie":      KwPie,
		"showData": KwShowData,
		"title":    KwTitle,
		"accTitle": KwAccTitle,
		"accDescr": KwAccDescr,
	}
})

type mode uint8

const (
	modeNormal mode = iota
	modeRest        // до конца строки
	modeAcc         // после accTitle/accDescr: ждём ':' или '{'
	modeBlock       // accDescr { ... } до '}'
)

// Lexer tokenizes pie text.
type Lexer struct {
	lexer.Base[Kind]
	mode mode
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
		lx.mode = modeNormal
		return lx.EOF()
	}
	m := c.Mark()

	switch lx.mode {
	case modeRest:
		lx.mode = modeNormal
		if c.Peek() != '\n' {
			lexer.ScanUntil(c, "")
			return lx.Emit(Rest, m)
		}
	case modeAcc:
		lx.mode = modeNormal
		switch c.Peek() {
		case ':':
			c.Bump()
			lx.mode = modeRest
			return lx.Emit(Colon, m)
		case '{':
			c.Bump()
			lx.mode = modeBlock
			return lx.Emit(LBrace, m)
		}
	case modeBlock:
		if c.Peek() == '}' {
			c.Bump()
			lx.mode = modeNormal
			return lx.Emit(RBrace, m)
		}
		for !c.EOF() && c.Peek() != '}' {
			c.Bump()
		}
		return lx.Emit(Rest, m)
	}

	b := c.Peek()
	switch {
	case b == '\n':
		c.Bump()
		return lx.Emit(Newline, m)
	case b == '"':
		return lx.String(String, '"')
	case b == ':':
		c.Bump()
		return lx.Emit(Colon, m)
	case b == '{':
		c.Bump()
		return lx.Emit(LBrace, m)
	case b == '}':
		c.Bump()
		return lx.Emit(RBrace, m)
	case lexer.IsDigit(b) || (b == '-' || b == '.') && lexer.IsDigit(c.PeekAt(1)):
		return lx.scanNumber(m)
	}
	if r, _ := c.PeekRune(); lexer.IsIdentStart(r) {
		for !c.EOF() {
			r, _ := c.PeekRune()
			if !lexer.IsIdentContinue(r) {
				break
			}
			c.BumpRune()
		}
		kw, ok := keywords()[c.Slice(m)]
		if !ok {
			return lx.Emit(Ident, m)
		}
		switch kw {
		case KwTitle:
			lx.mode = modeRest
		case KwAccTitle, KwAccDescr:
			lx.mode = modeAcc
		}
		return lx.Emit(kw, m)
	}
	return lx.Invalid()
}

func (lx *Lexer) scanNumber(m lexer.Mark) token.Token[Kind] {
	c := &lx.Cursor
	c.Eat('-')
	for lexer.IsDigit(c.Peek()) {
		c.Bump()
	}
	if c.Peek() == '.' && lexer.IsDigit(c.PeekAt(1)) {
		c.Bump()
		for lexer.IsDigit(c.Peek()) {
			c.Bump()
		}
	}
	return lx.Emit(Number, m)
}
