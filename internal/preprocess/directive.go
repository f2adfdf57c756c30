package preprocess

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
	"mermaidlint/internal/source"
)

const (
	directiveOpen  = "%%{"
	directiveClose = "}%%"
)

type DirectiveKind uint8

const (
	DirectiveUnknown DirectiveKind = iota
	DirectiveInit
	DirectiveWrap
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveInit:
		return "init"
	case DirectiveWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

func (k DirectiveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Directive is one `%%{ name: payload }%%` block found in the document.
type Directive struct {
	Kind    DirectiveKind `json:"kind" yaml:"kind"`
	Name    string        `json:"name" yaml:"name"`
	Payload string        `json:"payload,omitempty" yaml:"payload,omitempty"`
	Span    source.Span   `json:"span" yaml:"span"`
}

func directiveKind(name string) DirectiveKind {
	switch strings.ToLower(name) {
	case "init", "initialize":
		return DirectiveInit
	case "wrap":
		return DirectiveWrap
	default:
		return DirectiveUnknown
	}
}

// extractDirectives removes every closed directive and returns the
// configuration overrides they carry, in document order.
func extractDirectives(text string, st stage) (string, *source.Map, []Directive, []config.Config) {
	var (
		dirs      []Directive
		overrides []config.Config
	)
	b := source.NewBuilder(text)
	pos := 0
	for {
		rel := strings.Index(text[pos:], directiveOpen)
		if rel < 0 {
			break
		}
		start := pos + rel
		closeRel := strings.Index(text[start+len(directiveOpen):], directiveClose)
		if closeRel < 0 {
			st.warn(diag.CfgUnterminatedDirective, start, lineEnd(text, start),
				"directive is not closed with '}%%'")
			break
		}
		bodyStart := start + len(directiveOpen)
		bodyEnd := bodyStart + closeRel
		end := bodyEnd + len(directiveClose)

		d, cfg, ok := parseDirective(text, bodyStart, bodyEnd, st)
		d.Span = st.span(start, end)
		dirs = append(dirs, d)
		if ok {
			overrides = append(overrides, cfg)
		}

		b.Copy(u32(start))
		b.Skip(u32(end))
		pos = end
	}
	out, m := b.Finish()
	return out, m, dirs, overrides
}

// parseDirective interprets text[lo:hi], the body between the markers.
func parseDirective(text string, lo, hi int, st stage) (Directive, config.Config, bool) {
	var cfg config.Config
	body := text[lo:hi]
	nameStart := lo + len(body) - len(strings.TrimLeft(body, " \t\n"))
	nameEnd := nameStart
	for nameEnd < hi && isWordByte(text[nameEnd]) {
		nameEnd++
	}
	name := text[nameStart:nameEnd]
	d := Directive{Kind: directiveKind(name), Name: name}

	if name == "" {
		st.warn(diag.CfgUnknownDirective, lo, hi, "directive has no name")
		return d, cfg, false
	}

	rest := text[nameEnd:hi]
	restTrim := strings.TrimSpace(rest)
	payloadStart := -1
	if restTrim != "" {
		colon := nameEnd + strings.Index(rest, restTrim)
		if text[colon] != ':' {
			st.warn(diag.CfgInvalidDirectivePayload, colon, hi,
				fmt.Sprintf("expected ':' after directive name %q", name))
			return d, cfg, false
		}
		after := text[colon+1 : hi]
		payload := strings.TrimSpace(after)
		if payload != "" {
			payloadStart = colon + 1 + strings.Index(after, payload)
			d.Payload = payload
		}
	}

	switch d.Kind {
	case DirectiveWrap:
		cfg.Wrap = true
		return d, cfg, true

	case DirectiveInit:
		if payloadStart < 0 {
			st.warn(diag.CfgInvalidDirectivePayload, nameStart, nameEnd,
				fmt.Sprintf("%s directive requires a configuration object", name))
			return d, cfg, false
		}
		block := yamlBlock{text: d.Payload, base: payloadStart}
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(d.Payload), &doc); err != nil {
			lo, hi := block.errorRange(err)
			st.warn(diag.CfgInvalidDirectivePayload, lo, hi, "invalid directive payload: "+yamlMessage(err))
			return d, cfg, false
		}
		root := &doc
		if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
			root = root.Content[0]
		}
		if root.Kind != yaml.MappingNode {
			lo, hi := block.nodeRange(root)
			st.warn(diag.CfgInvalidDirectivePayload, lo, hi, "directive payload must be a mapping")
			return d, cfg, false
		}
		decoded, errs := config.Decode(root)
		reportConfigErrors(block, st, errs)
		return d, decoded, true

	default:
		st.warn(diag.CfgUnknownDirective, nameStart, nameEnd, fmt.Sprintf("unknown directive %q", name))
		return d, cfg, false
	}
}
