package trace

import (
	"io"
	"sync"
	"time"
)

// StreamTracer formats each event as it arrives and writes it to w.
type StreamTracer struct {
	level   Level
	format  Format
	started time.Time

	mu     sync.Mutex
	w      io.Writer
	closed bool
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format, started: time.Now()}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	line := FormatEvent(ev, t.format, t.started)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	// ошибки записи трейса не должны ронять линтер
	_, _ = t.w.Write(line)
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *StreamTracer) flushLocked() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close closes w when it is an io.Closer and flushes it otherwise.
// Events after Close are dropped.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return t.flushLocked()
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
