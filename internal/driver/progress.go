package driver

import "time"

// Stage is the part of the per-file work an Event refers to.
type Stage string

const (
	StageRead Stage = "read" // load and decode
	StageLint Stage = "lint"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached" // served from the disk cache
	StatusDone    Status = "done"   // linted, no errors
	StatusError   Status = "error"  // lint errors or unreadable input
)

// Event is a progress update for File.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives Events from worker goroutines concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink sends every event to Ch, blocking when it is full.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
