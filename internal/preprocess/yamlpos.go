package preprocess

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// yamlBlock is a YAML fragment embedded in the stage text at base.
type yamlBlock struct {
	text string
	base int
}

// lineStart returns the stage offset of the 1-based line of the block.
func (y yamlBlock) lineStart(line int) (int, bool) {
	off := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(y.text[off:], '\n')
		if i < 0 {
			return 0, false
		}
		off += i + 1
	}
	return off, true
}

// nodeRange locates a node reported by yaml.v3 (1-based line, column in
// characters) as a stage range. Scalars cover their value; other nodes
// cover the rest of their first line.
func (y yamlBlock) nodeRange(n *yaml.Node) (lo, hi int) {
	if n == nil || n.Line == 0 {
		return y.base, y.base + len(y.text)
	}
	start, ok := y.lineStart(n.Line)
	if !ok {
		return y.base, y.base + len(y.text)
	}
	end := start + strings.IndexByte(y.text[start:]+"\n", '\n')
	off := start
	for col := 1; col < n.Column && off < end; col++ {
		_, size := utf8.DecodeRuneInString(y.text[off:])
		off += size
	}
	hi = end
	if n.Kind == yaml.ScalarNode && n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0 {
		if v := off + len(n.Value); v < end {
			hi = v
		}
	}
	for hi > off && (y.text[hi-1] == ' ' || y.text[hi-1] == '\t') {
		hi--
	}
	return y.base + off, y.base + hi
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// errorRange narrows a yaml syntax error to the line it names.
func (y yamlBlock) errorRange(err error) (lo, hi int) {
	var te *yaml.TypeError
	msg := err.Error()
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg = te.Errors[0]
	}
	m := yamlLineRe.FindStringSubmatch(msg)
	if m == nil {
		return y.base, y.base + len(y.text)
	}
	line, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return y.base, y.base + len(y.text)
	}
	start, ok := y.lineStart(line)
	if !ok {
		return y.base, y.base + len(y.text)
	}
	end := start + strings.IndexByte(y.text[start:]+"\n", '\n')
	return y.base + start, y.base + end
}

// yamlMessage strips the library prefix from yaml errors.
func yamlMessage(err error) string {
	return strings.TrimPrefix(err.Error(), "yaml: ")
}
