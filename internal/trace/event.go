package trace

import "time"

// Kind tells begin, end and instant events apart.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

// Scope is the granularity of an event, coarsest first. Level decides
// which scopes reach the output.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole batch or CLI command
	ScopeFile                    // one document
	ScopeStage                   // preprocess, detect, parse
	ScopeNode                    // grammar-level, e.g. error recovery
)

var (
	kindNames  = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}
	scopeNames = [...]string{ScopeDriver: "driver", ScopeFile: "file", ScopeStage: "stage", ScopeNode: "node"}
)

func lookupName(names []string, i int) string {
	if i > 0 && i < len(names) {
		return names[i]
	}
	return "unknown"
}

func (k Kind) String() string  { return lookupName(kindNames[:], int(k)) }
func (s Scope) String() string { return lookupName(scopeNames[:], int(s)) }

// Event is one trace record. Seq is assigned by the tracer on Emit.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	Name     string // "lint-files", "parse:flowchart", ...
	Detail   string
	Extra    map[string]string
}
