package dialect

import (
	"strings"

	"fortio.org/safecast"

	"mermaidlint/internal/config"
	"mermaidlint/internal/diag"
)

// Match is the outcome of detection over preprocessed text.
type Match struct {
	Tag Tag
	OK  bool
	// Keyword is the matched header keyword; Start/End are its offsets in
	// the text handed to Classify. On failure they cover the first word.
	Keyword    string
	Start, End uint32
	// Failure is DetUnknownDiagramType or DetBadFrontmatter when !OK.
	Failure diag.Code
}

const blanks = " \t\n\r\f\v"

// Classify trims leading blank space and matches the ordered keyword
// table against the rest. It never returns more than one tag.
func Classify(text string, cfg config.Config) Match {
	trimmed := strings.TrimLeft(text, blanks)
	lead := len(text) - len(trimmed)
	trimmed = strings.TrimRight(trimmed, blanks)

	if strings.HasPrefix(trimmed, "---") {
		return Match{
			Start:   offset(lead),
			End:     offset(lead + lineLen(trimmed)),
			Failure: diag.DetBadFrontmatter,
		}
	}

	for _, r := range rules() {
		loc := r.re.FindStringIndex(trimmed)
		if loc == nil {
			continue
		}
		return Match{
			Tag:     r.resolve(cfg),
			OK:      true,
			Keyword: trimmed[:loc[1]],
			Start:   offset(lead),
			End:     offset(lead + loc[1]),
		}
	}

	word := strings.IndexAny(trimmed, blanks)
	if word < 0 {
		word = len(trimmed)
	}
	return Match{
		Keyword: trimmed[:word],
		Start:   offset(lead),
		End:     offset(lead + word),
		Failure: diag.DetUnknownDiagramType,
	}
}

// Detect returns the dialect of text, if any.
func Detect(text string, cfg config.Config) (Tag, bool) {
	m := Classify(text, cfg)
	return m.Tag, m.OK
}

func lineLen(s string) int {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return i
	}
	return len(s)
}

func offset(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0
	}
	return v
}
