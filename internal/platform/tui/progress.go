// Package tui provides the Bubble Tea terminal UI for sxbp: a live solve
// progress view, a journal history browser, and SSH server support via Wish.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressMsg reports that another segment's length has been finalised.
type ProgressMsg struct {
	Latest int // index of the segment just solved
	Target int // final segment index of this solve
}

// DoneMsg reports that the solve finished, successfully or not.
type DoneMsg struct {
	Err error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// ProgressModel is the Bubble Tea model for watching a solve in flight.
// Quitting the view cancels the solve through the supplied cancel function;
// the solve itself runs in the caller's goroutine and feeds events in.
type ProgressModel struct {
	bar      progress.Model
	events   <-chan tea.Msg
	cancel   context.CancelFunc
	started  time.Time
	latest   int
	target   int
	width    int
	err      error
	finished bool
}

// NewProgressModel creates a progress view for a solve with the given final
// segment index.
func NewProgressModel(target int, events <-chan tea.Msg, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		bar:     progress.New(progress.WithDefaultGradient()),
		events:  events,
		cancel:  cancel,
		started: time.Now(),
		latest:  -1,
		target:  target,
		width:   80,
	}
}

// nextEvent waits for the next solver event.
func nextEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// Init starts listening for solver events.
func (m ProgressModel) Init() tea.Cmd {
	return nextEvent(m.events)
}

// Update handles messages and updates the model state.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			if m.finished {
				return m, tea.Quit
			}
			// wait for the solver to acknowledge the cancellation so the
			// final state shown is the figure's true state
			return m, nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		return m, nil

	case ProgressMsg:
		m.latest = msg.Latest
		m.target = msg.Target
		return m, nextEvent(m.events)

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the progress bar and status line.
func (m ProgressModel) View() string {
	percent := 0.0
	if m.target >= 0 {
		percent = float64(m.latest+1) / float64(m.target+1)
	}
	status := fmt.Sprintf("segment %d of %d  %s",
		m.latest+1, m.target+1, time.Since(m.started).Round(time.Second))
	view := titleStyle.Render("sxbp - solving") + "\n\n" +
		"  " + m.bar.ViewAs(percent) + "\n\n" +
		"  " + statusStyle.Render(status) + "\n\n" +
		"  " + statusStyle.Render("press q to cancel") + "\n"
	if m.finished && m.err != nil {
		view += "\n  " + errorStyle.Render(m.err.Error()) + "\n"
	}
	return view
}

// Err returns the solve's final error, if any. Only meaningful after the
// program has quit.
func (m ProgressModel) Err() error {
	return m.err
}

// RunProgress runs the progress view until the solve completes or the user
// cancels. It returns the solve's final error.
func RunProgress(target int, events <-chan tea.Msg, cancel context.CancelFunc) error {
	model := NewProgressModel(target, events, cancel)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("tui: progress view failed: %w", err)
	}
	if m, ok := final.(ProgressModel); ok {
		return m.Err()
	}
	return nil
}
