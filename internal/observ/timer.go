package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed stage. Count > 1 after Merge folded several runs of
// the same stage together.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Count int
}

// Timer records stage durations in start order. The nil *Timer records
// nothing, so library code calls it unconditionally. Safe for concurrent
// use; batch runs merge per-file timers into one.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	byName map[string]int // used by Merge only
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns a handle for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now(), Count: 1})
	idx := len(t.phases) - 1
	if _, ok := t.byName[name]; !ok && t.byName != nil {
		t.byName[name] = idx
	}
	return idx
}

// End closes the phase opened by Begin. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx >= 0 && idx < len(t.phases) {
		t.phases[idx].Dur = time.Since(t.phases[idx].Start)
		t.phases[idx].Note = note
	}
}

// Merge folds other into t: phases with a known name add up, new names are
// appended in the order other saw them.
func (t *Timer) Merge(other *Timer) {
	if t == nil || other == nil || t == other {
		return
	}
	other.mu.Lock()
	incoming := append([]Phase(nil), other.phases...)
	other.mu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.byName == nil {
		t.byName = make(map[string]int, len(t.phases))
		for i, p := range t.phases {
			if _, seen := t.byName[p.Name]; !seen {
				t.byName[p.Name] = i
			}
		}
	}
	for _, p := range incoming {
		if i, ok := t.byName[p.Name]; ok {
			t.phases[i].Dur += p.Dur
			t.phases[i].Count += p.Count
			continue
		}
		t.byName[p.Name] = len(t.phases)
		t.phases = append(t.phases, p)
	}
}

// PhaseReport is the serializable view of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func ms(d time.Duration) float64 { return d.Seconds() * 1000 }

// Report snapshots the phases; the total is the sum of phase durations.
func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms(p.Dur), Count: p.Count, Note: p.Note})
	}
	r.TotalMS = ms(total)
	return r
}

// Summary renders Report as an aligned table headed "timings:".
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, v float64, suffix string) {
		fmt.Fprintf(&sb, "  %-20s %9.3f ms%s\n", name, v, suffix)
	}
	for _, p := range r.Phases {
		var suffix string
		if p.Count > 1 {
			suffix += fmt.Sprintf("  x%d", p.Count)
		}
		if p.Note != "" {
			suffix += "  // " + p.Note
		}
		row(p.Name, p.DurationMS, suffix)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}
