package source

import (
	"sort"
	"strings"
)

// segment связывает непрерывный кусок выхода стадии с куском её входа.
type segment struct {
	dst    uint32 // начало в выходе
	dstLen uint32
	src    uint32 // начало во входе
	srcLen uint32
}

func (s segment) exact() bool { return s.dstLen == s.srcLen }

// Map translates offsets in the output of one rewriting stage back to
// offsets in that stage's input. Output bytes are covered by contiguous
// segments; input bytes dropped by the stage are simply not referenced.
type Map struct {
	segs   []segment
	outLen uint32
	inLen  uint32
}

// IdentityMap returns a map for a stage that did not change its input.
func IdentityMap(n uint32) *Map {
	m := &Map{outLen: n, inLen: n}
	if n > 0 {
		m.segs = []segment{{dst: 0, dstLen: n, src: 0, srcLen: n}}
	}
	return m
}

// Source maps an output offset to the input. Offsets that fall on a
// boundary with dropped input resolve to the input after the gap, which is
// what a span start wants.
func (m *Map) Source(off uint32) uint32 {
	if m == nil {
		return off
	}
	if off >= m.outLen || len(m.segs) == 0 {
		return m.inLen
	}
	i := sort.Search(len(m.segs), func(i int) bool { return m.segs[i].dst > off }) - 1
	seg := m.segs[i]
	rel := off - seg.dst
	if !seg.exact() && rel >= seg.srcLen {
		return seg.src + seg.srcLen
	}
	return seg.src + rel
}

// SourceEnd maps an output offset used as an exclusive end. On a boundary
// with dropped input it resolves to the input before the gap, so a span
// never grows over removed text.
func (m *Map) SourceEnd(off uint32) uint32 {
	if m == nil {
		return off
	}
	if off == 0 || len(m.segs) == 0 {
		return m.Source(off)
	}
	if off > m.outLen {
		off = m.outLen
	}
	i := sort.Search(len(m.segs), func(i int) bool { return m.segs[i].dst >= off }) - 1
	if i < 0 {
		return m.Source(off)
	}
	seg := m.segs[i]
	rel := off - seg.dst
	if rel > seg.srcLen {
		rel = seg.srcLen
	}
	return seg.src + rel
}

// OutputLen returns the length of the stage output.
func (m *Map) OutputLen() uint32 { return m.outLen }

// InputLen returns the length of the stage input.
func (m *Map) InputLen() uint32 { return m.inLen }

// Builder produces rewritten text together with its Map. The input is
// consumed strictly left to right: every call handles the input from the
// current position up to the given offset.
type Builder struct {
	in  string
	out strings.Builder
	m   Map
	pos uint32
}

// NewBuilder starts rewriting in.
func NewBuilder(in string) *Builder {
	b := &Builder{in: in}
	b.m.inLen = mustU32(len(in))
	b.out.Grow(len(in))
	return b
}

// Pos returns the current input position.
func (b *Builder) Pos() uint32 { return b.pos }

// Copy keeps input [Pos, to) unchanged.
func (b *Builder) Copy(to uint32) {
	to = b.clamp(to)
	if to <= b.pos {
		return
	}
	n := to - b.pos
	b.out.WriteString(b.in[b.pos:to])
	b.push(segment{dst: b.outPos() - n, dstLen: n, src: b.pos, srcLen: n})
	b.pos = to
}

// Replace substitutes input [Pos, to) with repl.
func (b *Builder) Replace(to uint32, repl string) {
	to = b.clamp(to)
	if repl == "" {
		b.Skip(to)
		return
	}
	n := mustU32(len(repl))
	b.out.WriteString(repl)
	b.push(segment{dst: b.outPos() - n, dstLen: n, src: b.pos, srcLen: to - b.pos})
	b.pos = to
}

// Skip drops input [Pos, to).
func (b *Builder) Skip(to uint32) {
	b.pos = b.clamp(to)
}

// Finish copies the remaining input and returns the text and its map.
func (b *Builder) Finish() (string, *Map) {
	b.Copy(b.m.inLen)
	b.m.outLen = b.outPos()
	m := b.m
	return b.out.String(), &m
}

func (b *Builder) outPos() uint32 {
	return mustU32(b.out.Len())
}

func (b *Builder) clamp(to uint32) uint32 {
	if to > b.m.inLen {
		to = b.m.inLen
	}
	if to < b.pos {
		to = b.pos
	}
	return to
}

func (b *Builder) push(s segment) {
	if n := len(b.m.segs); n > 0 {
		last := &b.m.segs[n-1]
		// склеиваем соседние точные копии
		if last.exact() && s.exact() && last.dst+last.dstLen == s.dst && last.src+last.srcLen == s.src {
			last.dstLen += s.dstLen
			last.srcLen += s.srcLen
			return
		}
	}
	b.m.segs = append(b.m.segs, s)
}

// Chain composes the maps of consecutive stages, first stage first.
type Chain []*Map

// Source maps an offset in the final text to the original input.
func (c Chain) Source(off uint32) uint32 {
	for i := len(c) - 1; i >= 0; i-- {
		off = c[i].Source(off)
	}
	return off
}

// SourceEnd is the end-biased counterpart of Source.
func (c Chain) SourceEnd(off uint32) uint32 {
	for i := len(c) - 1; i >= 0; i-- {
		off = c[i].SourceEnd(off)
	}
	return off
}
