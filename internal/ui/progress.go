// Package ui renders interactive lint progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mermaidlint/internal/driver"
)

type fileState uint8

const (
	stateQueued fileState = iota
	stateReading
	stateLinting
	stateOK
	stateCached
	stateFailed
)

// weight is the share of a file counted towards the progress bar.
var states = [...]struct {
	label  string
	color  lipgloss.Color
	weight float64
}{
	stateQueued:  {"queued", "7", 0},
	stateReading: {"reading", "6", 0},
	stateLinting: {"linting", "6", 0.5},
	stateOK:      {"ok", "2", 1},
	stateCached:  {"cached", "2", 1},
	stateFailed:  {"error", "1", 1},
}

func (s fileState) String() string { return states[s].label }

func (s fileState) render() string {
	return lipgloss.NewStyle().Foreground(states[s].color).Render(fmt.Sprintf("%8s", states[s].label))
}

// stateFor maps a driver event to a row state; ok is false for events that
// do not change the row.
func stateFor(ev driver.Event) (fileState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusDone:
		return stateOK, true
	case driver.StatusCached:
		return stateCached, true
	case driver.StatusError:
		return stateFailed, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageRead:
			return stateReading, true
		case driver.StageLint:
			return stateLinting, true
		}
	}
	return 0, false
}

type fileRow struct {
	path  string
	state fileState
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	rowOf   map[string]int
	width   int
	done    bool
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

// NewProgressModel returns a Bubble Tea model showing one row per file and
// an overall bar. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("6")))),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:    make([]fileRow, len(files)),
		rowOf:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f}
		m.rowOf[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for the following driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, known := m.rowOf[ev.File]
	st, ok := stateFor(ev)
	if !known || !ok {
		return nil
	}
	m.rows[i].state = st
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += states[r.state].weight
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) footer() string {
	var n [len(states)]int
	for _, r := range m.rows {
		n[r.state]++
	}
	return fmt.Sprintf("%d ok, %d cached, %d failed, %d total",
		n[stateOK], n[stateCached], n[stateFailed], len(m.rows))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	if m.done {
		b.WriteString(titleStyle.Render("done: " + m.title))
	} else {
		b.WriteString(titleStyle.Render(m.spinner.View() + " " + m.title))
	}
	b.WriteString("\n\n")

	nameWidth := max(m.width-12, 20)
	for _, r := range m.rows {
		fmt.Fprintf(&b, "  %s %s\n", r.state.render(), truncate(r.path, nameWidth))
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, "\n%s\n", m.footer())
	return b.String()
}

// truncate shortens value to width terminal cells, marking the cut with
// "..." when there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
