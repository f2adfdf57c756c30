package lexer

import "mermaidlint/internal/token"

// Stream buffers lookahead over a Scanner.
type Stream[K token.Kind] struct {
	src Scanner[K]
	buf []token.Token[K]
}

func NewStream[K token.Kind](src Scanner[K]) *Stream[K] {
	return &Stream[K]{src: src}
}

// Peek returns the next token without consuming it.
func (s *Stream[K]) Peek() token.Token[K] {
	return s.PeekN(0)
}

// PeekN returns the token n positions ahead (0 is the next one).
func (s *Stream[K]) PeekN(n int) token.Token[K] {
	for len(s.buf) <= n {
		s.buf = append(s.buf, s.src.Next())
	}
	return s.buf[n]
}

// Next consumes and returns the next token.
func (s *Stream[K]) Next() token.Token[K] {
	if len(s.buf) > 0 {
		tok := s.buf[0]
		s.buf = s.buf[1:]
		return tok
	}
	return s.src.Next()
}
