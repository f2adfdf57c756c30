package config

// Config is the typed subset of diagram configuration the linter
// understands. Zero values mean "not set"; see Merge.
type Config struct {
	Theme    string   `yaml:"theme,omitempty" json:"theme,omitempty" toml:"theme" msgpack:"theme"`
	Wrap     bool     `yaml:"wrap,omitempty" json:"wrap,omitempty" toml:"wrap" msgpack:"wrap"`
	Layout   string   `yaml:"layout,omitempty" json:"layout,omitempty" toml:"layout" msgpack:"layout"`
	FontSize *float64 `yaml:"fontSize,omitempty" json:"fontSize,omitempty" toml:"fontSize" msgpack:"fontSize"`

	Flowchart FlowchartConfig `yaml:"flowchart,omitempty" json:"flowchart,omitzero" toml:"flowchart" msgpack:"flowchart"`
	Sequence  SequenceConfig  `yaml:"sequence,omitempty" json:"sequence,omitzero" toml:"sequence" msgpack:"sequence"`
	Class     RendererConfig  `yaml:"class,omitempty" json:"class,omitzero" toml:"class" msgpack:"class"`
	State     RendererConfig  `yaml:"state,omitempty" json:"state,omitzero" toml:"state" msgpack:"state"`
	Gantt     GanttConfig     `yaml:"gantt,omitempty" json:"gantt,omitzero" toml:"gantt" msgpack:"gantt"`
	Pie       PieConfig       `yaml:"pie,omitempty" json:"pie,omitzero" toml:"pie" msgpack:"pie"`
}

type FlowchartConfig struct {
	DefaultRenderer string   `yaml:"defaultRenderer,omitempty" json:"defaultRenderer,omitempty" toml:"defaultRenderer" msgpack:"defaultRenderer"`
	Curve           string   `yaml:"curve,omitempty" json:"curve,omitempty" toml:"curve" msgpack:"curve"`
	HTMLLabels      *bool    `yaml:"htmlLabels,omitempty" json:"htmlLabels,omitempty" toml:"htmlLabels" msgpack:"htmlLabels"`
	Padding         *float64 `yaml:"padding,omitempty" json:"padding,omitempty" toml:"padding" msgpack:"padding"`
}

type SequenceConfig struct {
	ShowSequenceNumbers *bool `yaml:"showSequenceNumbers,omitempty" json:"showSequenceNumbers,omitempty" toml:"showSequenceNumbers" msgpack:"showSequenceNumbers"`
	MirrorActors        *bool `yaml:"mirrorActors,omitempty" json:"mirrorActors,omitempty" toml:"mirrorActors" msgpack:"mirrorActors"`
}

// RendererConfig is shared by the class and state sections.
type RendererConfig struct {
	DefaultRenderer string `yaml:"defaultRenderer,omitempty" json:"defaultRenderer,omitempty" toml:"defaultRenderer" msgpack:"defaultRenderer"`
}

type GanttConfig struct {
	DisplayMode string   `yaml:"displayMode,omitempty" json:"displayMode,omitempty" toml:"displayMode" msgpack:"displayMode"`
	BarHeight   *float64 `yaml:"barHeight,omitempty" json:"barHeight,omitempty" toml:"barHeight" msgpack:"barHeight"`
}

type PieConfig struct {
	TextPosition *float64 `yaml:"textPosition,omitempty" json:"textPosition,omitempty" toml:"textPosition" msgpack:"textPosition"`
}

// Default returns the configuration every document starts from.
func Default() Config {
	return Config{Theme: "default"}
}

// Merge returns c overridden by every field set in over. Strings override
// when non-empty, pointers when non-nil; Wrap only ever turns on.
func (c Config) Merge(over Config) Config {
	str(&c.Theme, over.Theme)
	str(&c.Layout, over.Layout)
	ptr(&c.FontSize, over.FontSize)
	c.Wrap = c.Wrap || over.Wrap

	str(&c.Flowchart.DefaultRenderer, over.Flowchart.DefaultRenderer)
	str(&c.Flowchart.Curve, over.Flowchart.Curve)
	ptr(&c.Flowchart.HTMLLabels, over.Flowchart.HTMLLabels)
	ptr(&c.Flowchart.Padding, over.Flowchart.Padding)

	ptr(&c.Sequence.ShowSequenceNumbers, over.Sequence.ShowSequenceNumbers)
	ptr(&c.Sequence.MirrorActors, over.Sequence.MirrorActors)

	str(&c.Class.DefaultRenderer, over.Class.DefaultRenderer)
	str(&c.State.DefaultRenderer, over.State.DefaultRenderer)

	str(&c.Gantt.DisplayMode, over.Gantt.DisplayMode)
	ptr(&c.Gantt.BarHeight, over.Gantt.BarHeight)

	ptr(&c.Pie.TextPosition, over.Pie.TextPosition)
	return c
}

func str(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func ptr[T any](dst **T, v *T) {
	if v != nil {
		cp := *v
		*dst = &cp
	}
}
