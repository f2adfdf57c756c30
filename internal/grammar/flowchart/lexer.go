package flowchart

import (
	"strings"

	"mermaidlint/internal/lexer"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

type mode uint8

const (
	modeNormal   mode = iota
	modeLabel         // внутри фигуры или |...| до одного из closers
	modeEdgeText      // после LinkOpen до закрывающей стрелки
	modeRest          // после style/classDef/... до конца оператора
)

// Lexer tokenizes flowchart text. It implements lexer.Scanner[Kind].
type Lexer struct {
	lexer.Base[Kind]
	mode      mode
	closers   []string
	stmtStart bool
}

// NewLexer creates a lexer over preprocessed text.
func NewLexer(text string, loc *source.Locator, opts lexer.Options) *Lexer {
	return &Lexer{
		Base:      lexer.NewBase(text, loc, Kinds, opts),
		stmtStart: true,
	}
}

// Tokenize drains a fresh lexer over text, EOF included.
func Tokenize(text string, loc *source.Locator, opts lexer.Options) []token.Token[Kind] {
	return lexer.All[Kind](NewLexer(text, loc, opts), EOF)
}

func (lx *Lexer) Next() token.Token[Kind] {
	tok := lx.next()
	lx.stmtStart = tok.Kind == Newline || tok.Kind == Semi
	return tok
}

func (lx *Lexer) next() token.Token[Kind] {
	c := &lx.Cursor
	switch lx.mode {
	case modeLabel:
		if tok, ok := lx.scanLabel(); ok {
			return tok
		}
	case modeEdgeText:
		lx.mode = modeNormal
		if tok, ok := lx.scanEdgeText(); ok {
			return tok
		}
	case modeRest:
		lx.mode = modeNormal
		lexer.SkipBlanks(c)
		if !c.EOF() && c.Peek() != '\n' && c.Peek() != ';' {
			m := c.Mark()
			lexer.ScanUntil(c, ";")
			lx.trimBack(m)
			return lx.Emit(Rest, m)
		}
	}

	lexer.SkipBlanks(c)
	if c.EOF() {
		return lx.EOF()
	}
	m := c.Mark()
	b := c.Peek()
	switch {
	case b == '\n':
		c.Bump()
		return lx.Emit(Newline, m)
	case b == ';':
		c.Bump()
		return lx.Emit(Semi, m)
	case b == '"':
		return lx.String(String, '"')
	case b == '&':
		c.Bump()
		return lx.Emit(Amp, m)
	case b == ',':
		c.Bump()
		return lx.Emit(Comma, m)
	case b == '|':
		c.Bump()
		lx.enterLabel("|")
		return lx.Emit(Pipe, m)
	case b == ':':
		if c.HasPrefix(":::") {
			c.BumpN(3)
			return lx.Emit(ClassShorthand, m)
		}
		c.Bump()
		return lx.Emit(Colon, m)
	case b == '[' || b == '(' || b == '{':
		return lx.scanShapeOpen(m)
	case b == ']' || b == ')' || b == '}':
		// закрывающая скобка без пары - это решает парсер
		c.Bump()
		return lx.Emit(ShapeClose, m)
	case b == '>' && c.Off > 0 && lexer.IsIdentContinueByte(c.Text[c.Off-1]):
		// A>label] - асимметричная фигура сразу после id
		c.Bump()
		lx.enterLabel("]")
		return lx.Emit(ShapeOpen, m)
	case lx.atArrowStart():
		return lx.scanArrow(m)
	case b == '>' || b == '<' || b == '^':
		c.Bump()
		return lx.Emit(Punct, m)
	case lexer.IsDigit(b):
		return lx.scanWord(m)
	}
	if r, _ := c.PeekRune(); lexer.IsIdentStart(r) {
		return lx.scanWord(m)
	}
	return lx.Invalid()
}

func (lx *Lexer) scanWord(m lexer.Mark) token.Token[Kind] {
	c := &lx.Cursor
	digits := true
	for !c.EOF() {
		r, _ := c.PeekRune()
		if !lexer.IsIdentContinue(r) {
			break
		}
		if r < '0' || r > '9' {
			digits = false
		}
		c.BumpRune()
	}
	word := c.Slice(m)
	if digits {
		return lx.Emit(Number, m)
	}
	if !lx.stmtStart {
		return lx.Emit(Ident, m)
	}
	kw, ok := LookupKeyword(word)
	if !ok {
		return lx.Emit(Ident, m)
	}
	if kw == KwFlowchart {
		// flowchart-elk / flowchart-v2 - один заголовочный токен
		for _, suffix := range []string{"-elk", "-v2"} {
			if c.HasPrefix(suffix) && !lexer.IsIdentContinueByte(c.PeekAt(uint32(len(suffix)))) {
				c.BumpN(len(suffix))
				break
			}
		}
	}
	if kw.takesRest() {
		lx.mode = modeRest
	}
	return lx.Emit(kw, m)
}

// shapeOpeners lists openers longest first with their accepted closers.
var shapeOpeners = []struct {
	open    string
	closers []string
}{
	{"(((", []string{")))"}},
	{"((", []string{"))"}},
	{"([", []string{"])"}},
	{"(", []string{")"}},
	{"[[", []string{"]]"}},
	{"[(", []string{")]"}},
	{"[/", []string{"/]", `\]`}},
	{`[\`, []string{`\]`, "/]"}},
	{"[", []string{"]"}},
	{"{{", []string{"}}"}},
	{"{", []string{"}"}},
}

func (lx *Lexer) scanShapeOpen(m lexer.Mark) token.Token[Kind] {
	c := &lx.Cursor
	for _, so := range shapeOpeners {
		if c.HasPrefix(so.open) {
			c.BumpN(len(so.open))
			lx.enterLabel(so.closers...)
			break
		}
	}
	return lx.Emit(ShapeOpen, m)
}

func (lx *Lexer) enterLabel(closers ...string) {
	lx.mode = modeLabel
	lx.closers = closers
}

// scanLabel produces String, LabelText or the closer while in label mode.
// At a newline or EOF the mode is dropped and normal scanning resumes.
func (lx *Lexer) scanLabel() (token.Token[Kind], bool) {
	c := &lx.Cursor
	lexer.SkipBlanks(c)
	if c.EOF() || c.Peek() == '\n' {
		lx.mode = modeNormal
		return token.Token[Kind]{}, false
	}
	m := c.Mark()
	if closer, ok := lx.atCloser(); ok {
		c.BumpN(len(closer))
		lx.mode = modeNormal
		if closer == "|" {
			return lx.Emit(Pipe, m), true
		}
		return lx.Emit(ShapeClose, m), true
	}
	if c.Peek() == '"' {
		return lx.String(String, '"'), true
	}
	for !c.EOF() && c.Peek() != '\n' {
		if _, ok := lx.atCloser(); ok {
			break
		}
		c.BumpRune()
	}
	lx.trimBack(m)
	return lx.Emit(LabelText, m), true
}

func (lx *Lexer) atCloser() (string, bool) {
	for _, cl := range lx.closers {
		if lx.Cursor.HasPrefix(cl) {
			return cl, true
		}
	}
	return "", false
}

// scanEdgeText reads the label of `-- text -->` up to the closing arrow.
func (lx *Lexer) scanEdgeText() (token.Token[Kind], bool) {
	c := &lx.Cursor
	lexer.SkipBlanks(c)
	if c.EOF() || c.Peek() == '\n' {
		return token.Token[Kind]{}, false
	}
	m := c.Mark()
	if c.Peek() == '"' {
		return lx.String(String, '"'), true
	}
	for !c.EOF() && c.Peek() != '\n' {
		if lx.atArrowStart() {
			save := c.Mark()
			run := lx.arrowRun()
			c.Reset(save)
			if _, cls := classifyArrow(run); cls == arrowLink || cls == arrowClose {
				break
			}
		}
		c.BumpRune()
	}
	if c.Off == uint32(m) {
		return token.Token[Kind]{}, false
	}
	lx.trimBack(m)
	return lx.Emit(LabelText, m), true
}

func (lx *Lexer) atArrowStart() bool {
	c := &lx.Cursor
	b0, b1, two := c.Peek2()
	if !two {
		b0 = c.Peek()
	}
	switch b0 {
	case '-', '=', '~':
		return true
	case '<':
		return b1 == '-' || b1 == '=' || b1 == '.'
	case '.':
		return b1 == '-'
	}
	return false
}

// arrowRun consumes the maximal arrow-like run, plus a trailing `o`/`x`
// head when it is not the start of a word.
func (lx *Lexer) arrowRun() string {
	c := &lx.Cursor
	m := c.Mark()
	for !c.EOF() && isArrowByte(c.Peek()) {
		c.Bump()
	}
	run := c.Slice(m)
	if last := run[len(run)-1]; last == '-' || last == '=' {
		if h := c.Peek(); (h == 'o' || h == 'x') && !lexer.IsIdentContinueByte(c.PeekAt(1)) {
			c.Bump()
			run = c.Slice(m)
		}
	}
	return run
}

func (lx *Lexer) scanArrow(m lexer.Mark) token.Token[Kind] {
	run := lx.arrowRun()
	switch _, cls := classifyArrow(run); cls {
	case arrowLink:
		return lx.Emit(Link, m)
	case arrowOpen:
		lx.mode = modeEdgeText
		return lx.Emit(LinkOpen, m)
	case arrowClose:
		return lx.Emit(LinkClose, m)
	}
	return lx.Emit(BadArrow, m)
}

// trimBack moves the cursor back over trailing blanks so the token ends at
// its last visible byte.
func (lx *Lexer) trimBack(m lexer.Mark) {
	c := &lx.Cursor
	text := strings.TrimRight(c.Slice(m), " \t")
	c.Reset(m)
	c.BumpN(len(text))
}
