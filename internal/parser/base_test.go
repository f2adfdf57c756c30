package parser

import (
	"testing"

	"mermaidlint/internal/diag"
	"mermaidlint/internal/lexer"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

type kind uint8

const (
	kEOF kind = iota
	kInvalid
	kNewline
	kWord
	kSemi
)

func (k kind) String() string {
	return [...]string{"EOF", "Invalid", "Newline", "Word", "Semi"}[k]
}

var kinds = token.Set[kind]{EOF: kEOF, Invalid: kInvalid, Newline: kNewline}

// words: буквы → Word, ';' → Semi, '\n' → Newline.
type words struct{ lexer.Base[kind] }

func (w *words) Next() token.Token[kind] {
	c := &w.Cursor
	lexer.SkipBlanks(c)
	if c.EOF() {
		return w.EOF()
	}
	m := c.Mark()
	switch b := c.Peek(); {
	case b == '\n':
		c.Bump()
		return w.Emit(kNewline, m)
	case b == ';':
		c.Bump()
		return w.Emit(kSemi, m)
	case lexer.IsIdentStartByte(b):
		for !c.EOF() && lexer.IsIdentContinueByte(c.Peek()) {
			c.Bump()
		}
		return w.Emit(kWord, m)
	}
	return w.Invalid()
}

func newBase(text string, opts Options) Base[kind] {
	loc := source.NewLocator(text, nil)
	w := &words{Base: lexer.NewBase(text, loc, kinds, lexer.Options{})}
	return NewBase[kind](w, kinds, opts)
}

func TestExpectAtEndOfLinePointsAfterLastToken(t *testing.T) {
	bag := diag.NewBag(0)
	p := newBase("abc\nx", Options{Reporter: diag.BagReporter{Bag: bag}})

	if _, ok := p.Expect(kWord, diag.SynExpectedToken, "word"); !ok {
		t.Fatal("first word expected")
	}
	tok, ok := p.Expect(kWord, diag.SynExpectedToken, "another word")
	if ok {
		t.Fatalf("unexpected success: %v", tok)
	}
	if tok.Kind != kNewline {
		t.Fatalf("Expect must not consume on failure, peek = %v", tok)
	}
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d", bag.Len())
	}
	sp := bag.Items()[0].Primary
	if !sp.Empty() || sp.Start.Offset != 3 {
		t.Fatalf("span = %+v, want empty at offset 3", sp)
	}
}

func TestExpectMidLineUsesPeekSpan(t *testing.T) {
	bag := diag.NewBag(0)
	p := newBase("a ; b", Options{Reporter: diag.BagReporter{Bag: bag}})
	p.Advance()
	p.Expect(kWord, diag.SynExpectedToken, "word")
	sp := bag.Items()[0].Primary
	if sp.Start.Offset != 2 || sp.End.Offset != 3 {
		t.Fatalf("span = %+v", sp)
	}
}

func TestWarnDoesNotSpendBudget(t *testing.T) {
	bag := diag.NewBag(0)
	p := newBase(";", Options{MaxErrors: 1, Reporter: diag.BagReporter{Bag: bag}})
	warn := func(msg string) bool {
		return p.Report(diag.SynExpectedToken, diag.SevWarning, p.DiagnosticSpan(), msg)
	}
	if !warn("word") || !warn("again") {
		t.Fatal("warnings must be delivered")
	}
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("want warnings only, got %+v", bag.Items())
	}
	if p.Errors() != 0 {
		t.Fatalf("warnings must not count as errors")
	}
}

func TestMaxErrors(t *testing.T) {
	bag := diag.NewBag(0)
	p := newBase(";;;;", Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})
	for !p.AtEOF() {
		p.Expect(kWord, diag.SynExpectedToken, "word")
		p.Advance()
	}
	if bag.Len() != 2 || !p.Enough() {
		t.Fatalf("diagnostics = %d, enough = %v", bag.Len(), p.Enough())
	}
}

func TestResyncUntil(t *testing.T) {
	p := newBase("a b ; c\nd", Options{})
	p.ResyncUntil(kSemi)
	if !p.At(kSemi) {
		t.Fatalf("peek = %v", p.Peek())
	}
	// уже на стоп-токене - ничего не съедаем
	p.ResyncUntil(kSemi)
	if !p.At(kSemi) {
		t.Fatal("resync must not move at a stop token")
	}
	p.Advance()
	p.ResyncUntil(kNewline)
	if !p.At(kNewline) || p.Last.Start.Offset != 6 {
		t.Fatalf("peek = %v, last = %v", p.Peek(), p.Last)
	}
	p.ResyncUntil()
	if !p.AtEOF() {
		t.Fatal("resync without stops runs to EOF")
	}
	p.ResyncUntil()
	if !p.AtEOF() {
		t.Fatal("resync at EOF is a no-op")
	}
}

func TestNilReporter(t *testing.T) {
	p := newBase("", Options{})
	if p.Err(diag.SynUnexpectedEOF, "x") {
		t.Fatal("nothing to deliver without reporter")
	}
	if p.DiagnosticSpan().Start.Offset != 0 {
		t.Fatal("span at empty input")
	}
}
