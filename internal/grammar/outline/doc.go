// Package outline is the shallow grammar used for every detected dialect
// that has no dedicated parser. It records the header and one statement
// per non-blank line, and checks that quotes, parentheses and brackets
// close on their line and braces close before the end of input.
package outline
