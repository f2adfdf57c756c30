package driver

import (
	"fmt"

	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/dialect"
	"mermaidlint/internal/grammar/flowchart"
	"mermaidlint/internal/grammar/outline"
	"mermaidlint/internal/grammar/pie"
	"mermaidlint/internal/lexer"
	"mermaidlint/internal/preprocess"
	"mermaidlint/internal/source"
	"mermaidlint/internal/token"
)

// TokenizeResult holds the lexemes of one document.
type TokenizeResult struct {
	Tag    dialect.Tag
	Tokens []token.Info
	Bag    *diag.Bag
}

// Tokenize runs the preprocessor and the lexer of the detected dialect.
// Documents whose type cannot be detected are an error.
func Tokenize(file *source.File, cfg *config.Config, maxDiagnostics int) (*TokenizeResult, error) {
	base := config.Default()
	if cfg != nil {
		base = base.Merge(*cfg)
	}
	pre := preprocess.Run(file.Text(), base)

	// Создаём диагностический пакет
	bag := diag.NewBag(maxDiagnostics)
	bag.Extend(pre.Diagnostics)

	m := dialect.Classify(pre.Text, pre.Config)
	if !m.OK {
		return nil, fmt.Errorf("%s: cannot detect diagram type", file.Path)
	}
	opts := lexer.Options{Reporter: diag.BagReporter{Bag: bag}}

	res := &TokenizeResult{Tag: m.Tag, Bag: bag}
	switch m.Tag.Family() {
	case dialect.FamilyFlow:
		res.Tokens = token.Erase(flowchart.Tokenize(pre.Text, pre.Locator, opts))
	case dialect.FamilyPie:
		res.Tokens = token.Erase(pie.Tokenize(pre.Text, pre.Locator, opts))
	default:
		res.Tokens = token.Erase(outline.Tokenize(pre.Text, pre.Locator, opts))
	}
	bag.Sort()
	return res, nil
}
