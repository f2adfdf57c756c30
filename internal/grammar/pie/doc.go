// Package pie implements the `pie` dialect: an optional showData flag,
// title and accessibility statements, and `"label" : value` slices.
package pie
