// Package lint runs the whole pipeline over one document: preprocessing,
// dialect detection and the dialect grammar. It never returns errors;
// every problem ends up as a diagnostic in the result.
package lint
