package diagfmt

// PathMode selects how file paths are printed. The names match
// source.File.FormatPath modes.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // as given; long absolute paths shortened
	PathModeAbsolute                 // --fullpath
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{"auto", "absolute", "relative", "basename"}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathModeAuto]
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста до строки диагностики
	PathMode  PathMode
	Width     uint8 // обрезка строк исходника, 0 - без ограничения
	ShowNotes bool
	// Summary prints Type/Title under documents without errors.
	Summary bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Max          int // обрезка вывода на документ, не Bag
	IncludeNotes bool
	IncludeAST   bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	// GUID identifies the run; a random one is generated when empty.
	GUID string
}
