// Package tui is the terminal front end: a Bubble Tea setup screen, the play
// screen that drives a session.Controller, the scoreboard, and an SSH server
// that serves the same models over Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives the session scheduler and refreshes the clock display.
// Gen identifies the play screen whose loop sent it; ticks from an earlier
// play screen are dropped so only one loop advances the session.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 10
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
