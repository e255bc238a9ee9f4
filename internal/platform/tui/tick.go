// Package tui provides the Bubble Tea front end: the game model, the menu,
// the replay browser and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one engine step. Gen identifies the game that armed it
// so ticks left over from a finished game are ignored.
type TickMsg struct {
	Gen uint64
}

var generations atomic.Uint64

func nextGen() uint64 {
	return generations.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}
