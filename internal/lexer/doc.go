// Package lexer holds the pieces every dialect tokenizer is built from:
// a byte Cursor over preprocessed text, the Base scaffold that turns
// cursor ranges into tokens with original spans, shared scanning helpers
// and a lookahead Stream.
//
// Tokenizers never fail. An unrecognized character becomes an Invalid
// token plus a Lex.InvalidCharacter diagnostic and scanning continues.
// After the end of input Next returns EOF forever; to restart, build a new
// scanner over the same text.
package lexer
