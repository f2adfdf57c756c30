package lsp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/lint"
)

// currentResult returns the lint result for the document text as it is now,
// reusing the published one when nothing changed since.
func (s *Server) currentResult(uri string) (*lint.ParseResult, string, bool) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil, "", false
	}
	text := doc.text
	if doc.result != nil && doc.linted == doc.seq {
		res := doc.result
		s.mu.Unlock()
		return res, text, true
	}
	cfg := s.config
	s.mu.Unlock()
	return lint.Parse(text, lint.Options{Config: cfg, Tracer: s.tracer}), text, true
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	res, text, ok := s.currentResult(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	h := buildHover(res, text, params.Position)
	if h == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, h)
}

// buildHover describes the innermost AST node under pos.
func buildHover(res *lint.ParseResult, text string, pos position) *hover {
	if res == nil || res.AST == nil {
		return nil
	}
	offset := safeUint32(offsetForPosition(text, pos))
	var (
		best  ast.Node
		value string
	)
	ast.Walk(res.AST, func(n ast.Node) bool {
		sp := n.Pos()
		if offset < sp.Start.Offset || offset >= sp.End.Offset {
			return true
		}
		if best != nil && sp.Len() > best.Pos().Len() {
			return true
		}
		if v := describeNode(res, n); v != "" {
			best, value = n, v
		}
		return true
	})
	if best == nil {
		return nil
	}
	r := rangeForSpan(text, best.Pos())
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: value},
		Range:    &r,
	}
}

func describeNode(res *lint.ParseResult, n ast.Node) string {
	var b strings.Builder
	switch n := n.(type) {
	case *ast.Header:
		fmt.Fprintf(&b, "**diagram** `%s`", res.AST.Tag)
		if res.Title != nil {
			fmt.Fprintf(&b, "\n\ntitle: %s", *res.Title)
		}
	case *ast.FlowNode:
		fmt.Fprintf(&b, "**node** `%s`\n\nshape: %s", n.ID, n.Shape)
		if n.Label != "" {
			fmt.Fprintf(&b, "\n\nlabel: %s", n.Label)
		}
		if len(n.Classes) > 0 {
			fmt.Fprintf(&b, "\n\nclasses: %s", strings.Join(n.Classes, ", "))
		}
	case *ast.Edge:
		fmt.Fprintf(&b, "**edge** `%s` → `%s`", n.From, n.To)
		if n.Label != "" {
			fmt.Fprintf(&b, "\n\nlabel: %s", n.Label)
		}
	case *ast.Subgraph:
		fmt.Fprintf(&b, "**subgraph** `%s`", n.ID)
		if n.Title != "" {
			fmt.Fprintf(&b, "\n\ntitle: %s", n.Title)
		}
		if len(n.Nodes) > 0 {
			fmt.Fprintf(&b, "\n\nnodes: %s", strings.Join(n.Nodes, ", "))
		}
	case *ast.Slice:
		fmt.Fprintf(&b, "**slice** %q\n\nvalue: %g", n.Label, n.Value)
	default:
		return ""
	}
	return b.String()
}

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	res, text, ok := s.currentResult(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, buildFoldingRanges(res, text))
}

// buildFoldingRanges folds the frontmatter block, subgraphs and nested
// outline statements (mindmap children and the like).
func buildFoldingRanges(res *lint.ParseResult, text string) []foldingRange {
	ranges := []foldingRange{}
	if fr, ok := frontmatterRange(text); ok {
		ranges = append(ranges, fr)
	}
	if res == nil || res.AST == nil {
		return ranges
	}
	line := func(offset uint32) int { return positionForOffset(text, int(offset)).Line }
	ast.Walk(res.AST, func(n ast.Node) bool {
		if sg, ok := n.(*ast.Subgraph); ok {
			start, end := line(sg.Span.Start.Offset), line(sg.Span.End.Offset)
			if end > start {
				ranges = append(ranges, foldingRange{StartLine: start, EndLine: end, Kind: "region"})
			}
		}
		return true
	})
	if o := res.AST.Outline; o != nil {
		stmts := o.Statements
		for i, st := range stmts {
			last := -1
			for j := i + 1; j < len(stmts) && stmts[j].Depth > st.Depth; j++ {
				last = j
			}
			if last < 0 {
				continue
			}
			start, end := line(st.Span.Start.Offset), line(stmts[last].Span.Start.Offset)
			if end > start {
				ranges = append(ranges, foldingRange{StartLine: start, EndLine: end})
			}
		}
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].StartLine < ranges[j].StartLine })
	return ranges
}

func frontmatterRange(text string) (foldingRange, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(strings.TrimPrefix(lines[0], "\ufeff")) != "---" {
		return foldingRange{}, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return foldingRange{StartLine: 0, EndLine: i, Kind: "comment"}, true
		}
	}
	return foldingRange{}, false
}
