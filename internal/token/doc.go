// Package token defines the token shape shared by every dialect lexer.
// Invariants:
//   - Token.Text is a slice of the preprocessed text (no copies).
//   - Lo/Hi are offsets of Text in the preprocessed text.
//   - Token.Span is the same range in ORIGINAL document coordinates.
//   - Each dialect declares its own Kind enum; the shared machinery only
//     needs to know which of its kinds mean EOF, Invalid and Newline.
package token
