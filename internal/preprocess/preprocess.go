package preprocess

import (
	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

// Result is the preprocessed document.
type Result struct {
	// Text is what the detector and grammars see.
	Text string
	// Locator maps offsets in Text back to the original input.
	Locator *source.Locator
	// Config is base overridden by frontmatter, then by each directive.
	Config      config.Config
	Title       *string
	Directives  []Directive
	Diagnostics []diag.Diagnostic
	// HasFrontmatter is set when a closed frontmatter block was removed.
	HasFrontmatter bool
}

// Run applies every stage to text. base is the configuration the
// document starts from; content of the document wins over it.
func Run(text string, base config.Config) *Result {
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	root := source.NewLocator(text, nil)

	normalized, mNorm := Normalize(text)

	chain := source.Chain{mNorm}
	stripped, mFront, fm := extractFrontmatter(normalized, stage{loc: root.WithChain(chain), rep: rep})

	chain = append(chain, mFront)
	undirected, mDir, dirs, overrides := extractDirectives(stripped, stage{loc: root.WithChain(chain), rep: rep})

	chain = append(chain, mDir)
	final, mComments := removeComments(undirected)
	chain = append(chain, mComments)

	cfg := base.Merge(fm.config)
	for _, o := range overrides {
		cfg = cfg.Merge(o)
	}

	return &Result{
		Text:           final,
		Locator:        root.WithChain(chain),
		Config:         cfg,
		Title:          fm.title,
		Directives:     dirs,
		Diagnostics:    bag.Items(),
		HasFrontmatter: fm.present,
	}
}
