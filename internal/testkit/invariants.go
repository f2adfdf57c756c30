// Package testkit holds invariant checks shared by grammar and pipeline
// tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

// CheckSpanInvariants verifies every span a document produced:
// 1) start <= end and both lie within the original text
// 2) line/col of each end agrees with its offset
// 3) every AST node lies inside the tree span, which covers the document
func CheckSpanInvariants(original string, diags []diag.Diagnostic, tree *ast.Tree) error {
	idx := source.NewLocator(original, nil).Index()
	size, err := safecast.Conv[uint32](len(original))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	check := func(what string, sp source.Span) error {
		if sp.End.Offset < sp.Start.Offset {
			return fmt.Errorf("%s: inverted span %v (%d > %d)", what, sp, sp.Start.Offset, sp.End.Offset)
		}
		if sp.End.Offset > size {
			return fmt.Errorf("%s: span end %d beyond content %d", what, sp.End.Offset, size)
		}
		for _, p := range []source.Position{sp.Start, sp.End} {
			if want := idx.Position(p.Offset); want.Line != p.Line || want.Col != p.Col {
				return fmt.Errorf("%s: offset %d is at %v, span says %v", what, p.Offset, want, p)
			}
		}
		return nil
	}

	for i, d := range diags {
		if err := check(fmt.Sprintf("diagnostic #%d %s", i, d.Code.ID()), d.Primary); err != nil {
			return err
		}
		for _, n := range d.Notes {
			if err := check(fmt.Sprintf("note of #%d", i), n.Span); err != nil {
				return err
			}
		}
	}

	if tree == nil {
		return nil
	}
	if tree.Span.Start.Offset != 0 || tree.Span.End.Offset != size {
		return fmt.Errorf("tree span %v does not cover the document", tree.Span)
	}
	var walkErr error
	ast.Walk(tree, func(n ast.Node) bool {
		if walkErr != nil {
			return false
		}
		sp := n.Pos()
		if err := check(fmt.Sprintf("%T", n), sp); err != nil {
			walkErr = err
			return false
		}
		if sp.Start.Offset < tree.Span.Start.Offset || sp.End.Offset > tree.Span.End.Offset {
			walkErr = fmt.Errorf("%T span %v is outside tree span %v", n, sp, tree.Span)
			return false
		}
		return true
	})
	return walkErr
}

// CheckOK verifies that ok is set exactly when no error was reported.
func CheckOK(ok bool, diags []diag.Diagnostic) error {
	if want := diag.OK(diags); ok != want {
		return fmt.Errorf("ok=%t but diagnostics say %t: %s", ok, want, diag.FormatShortDiagnostics("input", diags, false))
	}
	return nil
}

// CheckSorted verifies diagnostics are ordered by original start offset.
func CheckSorted(diags []diag.Diagnostic) error {
	for i := 1; i < len(diags); i++ {
		if diags[i].Primary.Start.Offset < diags[i-1].Primary.Start.Offset {
			return fmt.Errorf("diagnostic #%d at %v precedes #%d at %v", i, diags[i].Primary, i-1, diags[i-1].Primary)
		}
	}
	return nil
}
