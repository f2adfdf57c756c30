package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Format selects how events are serialized.
type Format uint8

const (
	FormatAuto   Format = iota // by output path extension
	FormatText                 // indented, one line per event
	FormatNDJSON               // one JSON object per line
)

// ParseFormat reads a --trace-format value; "json" is an alias of ndjson.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent renders ev as one newline-terminated line. Text output shows
// time relative to since.
func FormatEvent(ev *Event, format Format, since time.Time) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(nil, ev)
	}
	return appendText(nil, ev, since)
}

type wireEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func appendNDJSON(buf []byte, ev *Event) []byte {
	data, err := json.Marshal(wireEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		return buf
	}
	return append(append(buf, data...), '\n')
}

var kindMarks = [...]string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• "}

// appendText: "[  1.234ms]     → parse (detail) {k=v, ...}", indented by scope.
func appendText(buf []byte, ev *Event, since time.Time) []byte {
	ms := float64(ev.Time.Sub(since).Microseconds()) / 1000
	buf = fmt.Appendf(buf, "[%9.3fms] ", ms)
	for range max(int(ev.Scope)-1, 0) {
		buf = append(buf, "  "...)
	}
	if int(ev.Kind) < len(kindMarks) {
		buf = append(buf, kindMarks[ev.Kind]...)
	}
	buf = append(buf, ev.Name...)
	if ev.Detail != "" {
		buf = fmt.Appendf(buf, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		buf = append(buf, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				buf = append(buf, ", "...)
			}
			buf = append(buf, k...)
			buf = append(buf, '=')
			buf = append(buf, ev.Extra[k]...)
		}
		buf = append(buf, '}')
	}
	return append(buf, '\n')
}
