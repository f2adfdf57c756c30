// Package parser provides Base, the recursive-descent scaffold embedded by
// every dialect parser: token lookahead through a lexer.Stream, expect/want
// helpers, diagnostics with a MaxErrors budget and panic-mode resync.
//
// Dialect parsers never fail: they return a best-effort tree plus the
// diagnostics reported through Options.Reporter.
package parser
