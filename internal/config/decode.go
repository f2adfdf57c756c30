package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrNotMapping = errors.New("configuration is not a mapping")

// ValueError reports a field whose value has the wrong type. Node points
// into the decoded YAML so callers can map it back to a document span.
type ValueError struct {
	Path string
	Node *yaml.Node
	Err  error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value for %q: %v", e.Path, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

type setter[T any] func(dst *T, n *yaml.Node, path string) []error

type fieldTable[T any] map[string]setter[T]

// Decode reads a YAML (or JSON) mapping node into a Config. Unknown keys
// are ignored. Each mistyped field yields a *ValueError; the remaining
// fields are still applied.
func Decode(node *yaml.Node) (Config, []error) {
	var cfg Config
	if node == nil {
		return cfg, nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return cfg, nil
		}
		node = node.Content[0]
	}
	if isNull(node) {
		return cfg, nil
	}
	if node.Kind != yaml.MappingNode {
		return cfg, []error{&ValueError{Path: "config", Node: node, Err: ErrNotMapping}}
	}
	return cfg, decodeMapping(&cfg, node, "", rootFields)
}

var rootFields = fieldTable[Config]{
	"theme":     scalar(func(c *Config) *string { return &c.Theme }),
	"wrap":      scalar(func(c *Config) *bool { return &c.Wrap }),
	"layout":    scalar(func(c *Config) *string { return &c.Layout }),
	"fontSize":  optional(func(c *Config) **float64 { return &c.FontSize }),
	"flowchart": section(func(c *Config) *FlowchartConfig { return &c.Flowchart }, flowchartFields),
	"sequence":  section(func(c *Config) *SequenceConfig { return &c.Sequence }, sequenceFields),
	"class":     section(func(c *Config) *RendererConfig { return &c.Class }, rendererFields),
	"state":     section(func(c *Config) *RendererConfig { return &c.State }, rendererFields),
	"gantt":     section(func(c *Config) *GanttConfig { return &c.Gantt }, ganttFields),
	"pie":       section(func(c *Config) *PieConfig { return &c.Pie }, pieFields),
}

var flowchartFields = fieldTable[FlowchartConfig]{
	"defaultRenderer": scalar(func(c *FlowchartConfig) *string { return &c.DefaultRenderer }),
	"curve":           scalar(func(c *FlowchartConfig) *string { return &c.Curve }),
	"htmlLabels":      optional(func(c *FlowchartConfig) **bool { return &c.HTMLLabels }),
	"padding":         optional(func(c *FlowchartConfig) **float64 { return &c.Padding }),
}

var sequenceFields = fieldTable[SequenceConfig]{
	"showSequenceNumbers": optional(func(c *SequenceConfig) **bool { return &c.ShowSequenceNumbers }),
	"mirrorActors":        optional(func(c *SequenceConfig) **bool { return &c.MirrorActors }),
}

var rendererFields = fieldTable[RendererConfig]{
	"defaultRenderer": scalar(func(c *RendererConfig) *string { return &c.DefaultRenderer }),
}

var ganttFields = fieldTable[GanttConfig]{
	"displayMode": scalar(func(c *GanttConfig) *string { return &c.DisplayMode }),
	"barHeight":   optional(func(c *GanttConfig) **float64 { return &c.BarHeight }),
}

var pieFields = fieldTable[PieConfig]{
	"textPosition": optional(func(c *PieConfig) **float64 { return &c.TextPosition }),
}

func decodeMapping[T any](dst *T, node *yaml.Node, prefix string, table fieldTable[T]) []error {
	var errs []error
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		set, ok := table[key.Value]
		if !ok {
			continue
		}
		path := key.Value
		if prefix != "" {
			path = prefix + "." + key.Value
		}
		errs = append(errs, set(dst, val, path)...)
	}
	return errs
}

func scalar[T, V any](field func(*T) *V) setter[T] {
	return func(dst *T, n *yaml.Node, path string) []error {
		if n.Kind != yaml.ScalarNode || isNull(n) {
			return []error{&ValueError{Path: path, Node: n, Err: errors.New("expected a scalar")}}
		}
		var v V
		if err := n.Decode(&v); err != nil {
			return []error{&ValueError{Path: path, Node: n, Err: err}}
		}
		*field(dst) = v
		return nil
	}
}

func optional[T, V any](field func(*T) **V) setter[T] {
	return func(dst *T, n *yaml.Node, path string) []error {
		if isNull(n) {
			return nil
		}
		if n.Kind != yaml.ScalarNode {
			return []error{&ValueError{Path: path, Node: n, Err: errors.New("expected a scalar")}}
		}
		var v V
		if err := n.Decode(&v); err != nil {
			return []error{&ValueError{Path: path, Node: n, Err: err}}
		}
		*field(dst) = &v
		return nil
	}
}

func section[T, S any](field func(*T) *S, table fieldTable[S]) setter[T] {
	return func(dst *T, n *yaml.Node, path string) []error {
		if isNull(n) {
			return nil
		}
		if n.Kind != yaml.MappingNode {
			return []error{&ValueError{Path: path, Node: n, Err: ErrNotMapping}}
		}
		return decodeMapping(field(dst), n, path, table)
	}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
