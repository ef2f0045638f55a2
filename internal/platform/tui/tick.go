// Package tui provides the Bubble Tea screens for Pattern Island: the island
// map, the puzzle screen, the statistics screen and the SSH server hosting them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Delays between a pick and its follow-up on the puzzle screen.
const (
	wrongFeedbackDelay = 800 * time.Millisecond
	advanceDelay       = time.Second
)

// clearFeedbackMsg hides the wrong-answer feedback shown for pick seq.
type clearFeedbackMsg struct {
	attemptID string
	seq       int
}

// advanceMsg moves on after a solved attempt.
type advanceMsg struct{ attemptID string }

// after returns a command that delivers msg once d has elapsed.
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
