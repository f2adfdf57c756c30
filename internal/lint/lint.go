package lint

import (
	"fmt"

	"mermaidlint/internal/ast"
	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/dialect"
	"mermaidlint/internal/grammar/flowchart"
	"mermaidlint/internal/grammar/outline"
	"mermaidlint/internal/grammar/pie"
	"mermaidlint/internal/parser"
	"mermaidlint/internal/preprocess"
	"mermaidlint/internal/source"
	"mermaidlint/internal/trace"
)

// Parse lints text and returns the result. It does not panic.
func Parse(text string, opts Options) (res *ParseResult) {
	span := trace.Begin(opts.Tracer, trace.ScopeFile, "lint", opts.TraceParent)
	res = &ParseResult{}
	defer func() {
		if r := recover(); r != nil {
			res = crashed(text, res, r)
		}
		span.End(fmt.Sprintf("ok=%t diags=%d", res.OK, len(res.Diagnostics)))
	}()

	base := config.Default()
	if opts.Config != nil {
		base = base.Merge(*opts.Config)
	}

	pre := stage(opts, span, "preprocess", func() *preprocess.Result {
		return preprocess.Run(text, base)
	})
	res.Config = pre.Config
	res.Title = pre.Title
	res.Directives = pre.Directives

	bag := diag.NewBag(0)
	bag.Extend(pre.Diagnostics)

	m := stage(opts, span, "detect", func() dialect.Match {
		return dialect.Classify(pre.Text, pre.Config)
	})
	if !m.OK {
		bag.Add(detectFailure(m, pre.Locator))
		finish(res, bag)
		return res
	}
	tag := m.Tag
	res.DiagramType = &tag

	tree := stage(opts, span, "parse", func() *ast.Tree {
		return parseDialect(tag, pre, bag, opts, span.ID())
	})
	if !opts.SkipAST {
		res.AST = tree
	}
	finish(res, bag)
	return res
}

// Validate reports whether text lints without errors.
func Validate(text string, opts Options) bool {
	opts.SkipAST = true
	return Parse(text, opts).OK
}

// DetectType finds the dialect of text without parsing configuration
// payloads. The default configuration drives renderer-sensitive tags.
func DetectType(text string) (dialect.Tag, bool) {
	normalized, _ := preprocess.Normalize(text)
	return dialect.Detect(preprocess.SkipPreamble(normalized), config.Default())
}

func parseDialect(tag dialect.Tag, pre *preprocess.Result, bag *diag.Bag, opts Options, parent uint64) *ast.Tree {
	popts := parser.Options{
		MaxErrors:   opts.MaxErrors,
		MaxTokenLen: opts.MaxTokenLen,
		Reporter:    diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		Tracer:      opts.Tracer,
	}
	tree := &ast.Tree{Tag: tag, Span: pre.Locator.Whole()}
	sp := trace.Begin(opts.Tracer, trace.ScopeStage, tag.Family().String(), parent)
	defer sp.End(tag.String())

	switch tag.Family() {
	case dialect.FamilyFlow:
		tree.Flowchart = flowchart.Parse(pre.Text, pre.Locator, popts)
	case dialect.FamilyPie:
		tree.Pie = pie.Parse(pre.Text, pre.Locator, popts)
	case dialect.FamilyOutline:
		tree.Outline = outline.Parse(pre.Text, pre.Locator, popts)
	default:
		// Classify never yields such a tag
		panic(fmt.Sprintf("no grammar for %s", tag))
	}
	return tree
}

func detectFailure(m dialect.Match, loc *source.Locator) diag.Diagnostic {
	sp := loc.Span(m.Start, m.End)
	switch {
	case m.Failure == diag.DetBadFrontmatter:
		return diag.NewError(m.Failure, sp, "frontmatter is not closed, so the diagram type cannot be detected")
	case m.Keyword == "":
		return diag.NewError(diag.DetUnknownDiagramType, sp, "no diagram found: the document is empty")
	default:
		return diag.NewError(diag.DetUnknownDiagramType, sp, fmt.Sprintf("unknown diagram type %q", m.Keyword))
	}
}

func finish(res *ParseResult, bag *diag.Bag) {
	bag.Sort()
	res.Diagnostics = bag.Items()
	res.OK = diag.OK(res.Diagnostics)
}

// stage runs fn as one timed and traced pipeline step.
func stage[T any](opts Options, parent *trace.Span, name string, fn func() T) T {
	idx := opts.Timer.Begin(name)
	sp := trace.Begin(opts.Tracer, trace.ScopeStage, name, parent.ID())
	out := fn()
	sp.End("")
	opts.Timer.End(idx, "")
	return out
}

func crashed(text string, res *ParseResult, r any) *ParseResult {
	loc := source.NewLocator(text, nil)
	d := diag.NewError(diag.UnknownCode, source.PointSpan(loc.Whole().Start),
		fmt.Sprintf("internal error: %v", r))
	out := &ParseResult{
		Config:      res.Config,
		DiagramType: res.DiagramType,
		Title:       res.Title,
		Directives:  res.Directives,
	}
	out.Diagnostics = append(append(out.Diagnostics, res.Diagnostics...), d)
	out.OK = false
	return out
}
