// Package dialect decides which diagram grammar a document uses.
//
// Detection runs an ordered table of anchored, case-sensitive keyword
// patterns over the preprocessed text; the first match wins. Variants that
// share a prefix (classDiagram-v2 and classDiagram) are listed most
// specific first. Some keywords resolve to a different tag depending on
// the renderer configured for the document.
package dialect
