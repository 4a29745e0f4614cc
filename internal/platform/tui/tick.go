// Package tui provides the Bubble Tea host for Starfall.
// It runs the fixed-rate loop, turns key presses into held input and plays
// the game's side effects (sound, restart control, score saving).
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// RevealRestartMsg asks the model to show the restart control.
// Generation ties the message to the game instance that ended.
type RevealRestartMsg struct {
	Generation int64
}

// revealAfter fires a RevealRestartMsg once, after delay.
func revealAfter(delay time.Duration, generation int64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RevealRestartMsg{Generation: generation}
	})
}
