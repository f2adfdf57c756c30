// Package flowchart implements the `graph` / `flowchart` dialect: a modal
// lexer (shape labels, pipe labels and `-- text -->` labels are scanned as
// raw text) and a recursive-descent parser that builds an ast.FlowGraph.
//
// Statements are separated by newlines or `;`. After a syntax error the
// parser resyncs to the next separator, so one bad line never hides the
// problems of the following ones.
package flowchart
