package flowchart

import (
	"strings"

	"mermaidlint/internal/ast"
)

// arrowClass says how an arrow-like run may be used.
type arrowClass uint8

const (
	arrowBad   arrowClass = iota
	arrowLink             // complete link
	arrowOpen             // opens a `-- text -->` label
	arrowClose            // closes a dotted label
)

// isArrowRune reports bytes that may continue an arrow run.
func isArrowByte(b byte) bool {
	switch b {
	case '-', '=', '.', '~', '<', '>':
		return true
	}
	return false
}

// classifyArrow decodes an arrow-like run such as `-->`, `<-.->`, `===`,
// `--o`. Anything outside the closed set is arrowBad.
func classifyArrow(run string) (ast.Arrow, arrowClass) {
	var a ast.Arrow
	s := run
	if strings.HasPrefix(s, "<") {
		a.Tail = ast.HeadArrow
		s = s[1:]
	}
	if s == "" {
		return a, arrowBad
	}
	switch s[len(s)-1] {
	case '>':
		a.Head = ast.HeadArrow
	case 'o':
		a.Head = ast.HeadCircle
	case 'x':
		a.Head = ast.HeadCross
	}
	if a.Head != ast.HeadNone {
		s = s[:len(s)-1]
	}
	if s == "" {
		return a, arrowBad
	}

	switch {
	case only(s, '-'):
		a.Stroke = ast.StrokeSolid
		return lined(a, len(s))
	case only(s, '='):
		a.Stroke = ast.StrokeThick
		return lined(a, len(s))
	case only(s, '~'):
		a.Stroke = ast.StrokeInvisible
		if a.Head != ast.HeadNone || a.Tail != ast.HeadNone || len(s) < 3 {
			return a, arrowBad
		}
		a.Length = len(s) - 2
		return a, arrowLink
	}

	a.Stroke = ast.StrokeDotted
	dots := strings.Count(s, ".")
	switch {
	case s[0] == '-' && s[len(s)-1] == '-' && len(s) >= 3 && only(s[1:len(s)-1], '.'):
		// -.- / -.-> / -..->
		if a.Tail != ast.HeadNone && a.Head == ast.HeadNone {
			return a, arrowBad
		}
		a.Length = dots
		return a, arrowLink
	case s[0] == '-' && only(s[1:], '.'):
		// -. открывает подпись
		if a.Head != ast.HeadNone {
			return a, arrowBad
		}
		return a, arrowOpen
	case s[len(s)-1] == '-' && only(s[:len(s)-1], '.'):
		// .-> / .- закрывает подпись
		if a.Tail != ast.HeadNone {
			return a, arrowBad
		}
		a.Length = dots
		return a, arrowClose
	}
	return a, arrowBad
}

// lined handles solid and thick bodies of n characters.
func lined(a ast.Arrow, n int) (ast.Arrow, arrowClass) {
	switch {
	case a.Head != ast.HeadNone:
		if n < 2 {
			return a, arrowBad
		}
		a.Length = n - 1
		return a, arrowLink
	case n == 2:
		return a, arrowOpen
	case n >= 3 && a.Tail == ast.HeadNone:
		a.Length = n - 2
		return a, arrowLink
	}
	return a, arrowBad
}

func only(s string, b byte) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != b {
			return false
		}
	}
	return true
}

// closesLabel reports whether the closer c ends a label opened with o.
func closesLabel(o, c ast.Arrow, cls arrowClass) bool {
	if cls == arrowClose {
		return o.Stroke == ast.StrokeDotted
	}
	return cls == arrowLink && c.Stroke == o.Stroke && c.Tail == ast.HeadNone
}
