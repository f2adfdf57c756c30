// Package ast holds the diagram syntax trees produced by the dialect
// grammars. A Tree is a tagged variant: exactly one of its dialect roots is
// set, and every node carries a span in original document coordinates.
package ast
