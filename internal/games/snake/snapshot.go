package snake

import "github.com/vovakirdan/torus-snake/internal/grid"

// State names the engine's state machine state.
type State string

const (
	StateRunning  State = "running"
	StateGameOver State = "game_over"
)

// Snapshot captures the game state for determinism checks and replays.
type Snapshot struct {
	Tick         uint64
	State        State
	Head         grid.Cell
	Length       int
	TargetLength int
	Food         grid.Cell
	Heading      grid.Direction
	Score        int
}

// Snapshot returns the current game snapshot.
func (e *Engine) Snapshot() Snapshot {
	state := StateRunning
	if !e.alive {
		state = StateGameOver
	}
	return Snapshot{
		Tick:         e.tick,
		State:        state,
		Head:         e.body[0],
		Length:       len(e.body),
		TargetLength: e.targetLength,
		Food:         e.food,
		Heading:      e.effective,
		Score:        e.score,
	}
}
