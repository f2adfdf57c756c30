package trace

import (
	"sync/atomic"
	"time"
)

var seqCounter, spanCounter atomic.Uint64

// NextSeq numbers events in emission order across all tracers.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID hands out process-unique span IDs; 0 means "no span".
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open begin/end pair. A span obtained from a disabled tracer
// is inert: End and WithExtra do nothing and ID is 0.
type Span struct {
	tracer  Tracer
	head    Event
	started time.Time
}

var inert = &Span{tracer: Nop}

func accepts(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !accepts(t, scope) {
		return inert
	}
	s := &Span{
		tracer:  t,
		started: time.Now(),
		head: Event{
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			Name:     name,
		},
	}
	begin := s.head
	begin.Time, begin.Kind = s.started, KindSpanBegin
	t.Emit(&begin)
	return s
}

func (s *Span) live() bool {
	return s != nil && s.head.SpanID != 0
}

// End closes the span with an optional detail and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	dur := time.Since(s.started)
	end := s.head
	end.Time, end.Kind, end.Detail = time.Now(), KindSpanEnd, detail
	s.tracer.Emit(&end)
	return dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.head.Extra == nil {
		s.head.Extra = map[string]string{}
	}
	s.head.Extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.head.SpanID
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !accepts(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
