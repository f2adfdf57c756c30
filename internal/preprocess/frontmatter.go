package preprocess

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

const fence = "---"

type frontmatter struct {
	present bool
	title   *string
	config  config.Config
}

func isFence(line string) bool {
	return strings.TrimRight(line, " \t") == fence
}

// extractFrontmatter removes a leading `---` fenced block and interprets
// its YAML body. An unclosed block is reported and left in place.
func extractFrontmatter(text string, st stage) (string, *source.Map, frontmatter) {
	var fm frontmatter
	firstEnd := lineEnd(text, 0)
	if !isFence(text[:firstEnd]) {
		return text, source.IdentityMap(u32(len(text))), fm
	}

	bodyStart := nextLine(text, 0)
	closeStart := -1
	for pos := bodyStart; pos < len(text); pos = nextLine(text, pos) {
		if isFence(text[pos:lineEnd(text, pos)]) {
			closeStart = pos
			break
		}
	}
	if closeStart < 0 {
		st.warn(diag.CfgUnclosedFrontmatter, 0, firstEnd, "frontmatter is opened but never closed with '---'")
		return text, source.IdentityMap(u32(len(text))), fm
	}

	fm.present = true
	block := yamlBlock{text: text[bodyStart:closeStart], base: bodyStart}
	interpretFrontmatter(block, st, &fm)

	b := source.NewBuilder(text)
	b.Skip(u32(nextLine(text, closeStart)))
	out, m := b.Finish()
	return out, m, fm
}

func interpretFrontmatter(block yamlBlock, st stage, fm *frontmatter) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block.text), &doc); err != nil {
		lo, hi := block.errorRange(err)
		st.warn(diag.CfgInvalidFrontmatter, lo, hi, "invalid frontmatter: "+yamlMessage(err))
		return
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == 0 || root.Kind == yaml.DocumentNode || isNullNode(root) {
		return
	}
	if root.Kind != yaml.MappingNode {
		lo, hi := block.nodeRange(root)
		st.warn(diag.CfgFrontmatterNotMapping, lo, hi, "frontmatter must be a mapping of keys to values")
		return
	}

	var displayMode string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "title":
			if s, ok := scalarString(val); ok {
				fm.title = &s
			} else {
				lo, hi := block.nodeRange(val)
				st.warn(diag.CfgInvalidConfigValue, lo, hi, "frontmatter title must be a string")
			}
		case "displayMode":
			if s, ok := scalarString(val); ok {
				displayMode = s
			} else {
				lo, hi := block.nodeRange(val)
				st.warn(diag.CfgInvalidConfigValue, lo, hi, "displayMode must be a string")
			}
		case "config":
			cfg, errs := config.Decode(val)
			reportConfigErrors(block, st, errs)
			fm.config = cfg
		}
	}
	if displayMode != "" {
		fm.config.Gantt.DisplayMode = displayMode
	}
}

func reportConfigErrors(block yamlBlock, st stage, errs []error) {
	for _, err := range errs {
		var ve *config.ValueError
		if !errors.As(err, &ve) {
			st.warn(diag.CfgInvalidConfigValue, block.base, block.base+len(block.text), err.Error())
			continue
		}
		lo, hi := block.nodeRange(ve.Node)
		st.warn(diag.CfgInvalidConfigValue, lo, hi, ve.Error())
	}
}

func scalarString(n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode || isNullNode(n) {
		return "", false
	}
	return n.Value, true
}

func isNullNode(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
