package source

// Locator turns offsets in preprocessed text into positions of the
// original document.
type Locator struct {
	index LineIndex
	chain Chain
}

// NewLocator binds the original text to the maps of every rewriting stage
// applied to it.
func NewLocator(original string, chain Chain) *Locator {
	return &Locator{index: NewLineIndex(original), chain: chain}
}

// Index exposes the line index of the original text.
func (l *Locator) Index() LineIndex { return l.index }

// Original returns the untouched input text.
func (l *Locator) Original() string { return l.index.text }

// Position resolves the start-biased original position of off.
func (l *Locator) Position(off uint32) Position {
	return l.index.Position(l.chain.Source(off))
}

// EndPosition resolves the end-biased original position of off.
func (l *Locator) EndPosition(off uint32) Position {
	return l.index.Position(l.chain.SourceEnd(off))
}

// Span converts the preprocessed range [lo, hi) into an original span.
func (l *Locator) Span(lo, hi uint32) Span {
	start := l.Position(lo)
	if hi <= lo {
		return PointSpan(start)
	}
	end := l.EndPosition(hi)
	if end.Offset < start.Offset {
		end = start
	}
	return Span{Start: start, End: end}
}

// Whole returns the span of the entire original document.
func (l *Locator) Whole() Span {
	return Span{Start: l.index.Position(0), End: l.index.Position(l.index.Len())}
}

// WithChain returns a locator over the same original text for an
// intermediate stage whose output is described by chain.
func (l *Locator) WithChain(chain Chain) *Locator {
	return &Locator{index: l.index, chain: chain}
}

// Chain returns the maps the locator applies.
func (l *Locator) Chain() Chain { return l.chain }
