// Package preprocess rewrites raw diagram text into the form the grammars
// consume: normalized line endings, frontmatter and directives extracted,
// full-line comments removed.
//
// Each rewriting stage records a source.Map. The maps are chained into a
// source.Locator, so every later span refers to the untouched input.
// Stages never fail; malformed metadata becomes a Config diagnostic and
// the document continues with defaults.
package preprocess
