package mermaidlint_test

import (
	"testing"

	"mermaidlint"
)

func TestFacade(t *testing.T) {
	res := mermaidlint.Parse("graph TD\nA-->B", mermaidlint.Options{})
	if !res.OK || res.AST == nil || res.AST.Flowchart == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !mermaidlint.Validate("pie\n\"a\" : 1", mermaidlint.Options{}) {
		t.Fatalf("pie should validate")
	}
	if tag, ok := mermaidlint.DetectType("gantt\ntitle x"); !ok || tag.String() != "gantt" {
		t.Fatalf("DetectType = %v, %t", tag, ok)
	}
	if mermaidlint.Validate("", mermaidlint.Options{}) {
		t.Fatalf("empty input must fail")
	}
}
