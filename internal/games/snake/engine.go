// Package snake implements the toroidal snake engine: body, food, headings
// and the one-tick update rule. It has no knowledge of terminals or timers;
// drivers call Step at a fixed interval and hand frames to a Renderer.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/torus-snake/internal/grid"
)

// Config holds the construction parameters of an engine.
type Config struct {
	CellSize       float64
	Dimension      int
	AnchorX        float64
	AnchorY        float64
	InitialHeading grid.Direction
	InitialLength  int
	Seed           int64

	// FoodAvoidsBody places respawned food on a free cell instead of
	// anywhere on the board.
	FoodAvoidsBody bool
}

// StepResult reports what happened during one Step.
type StepResult struct {
	Moved    bool // false once the game is over
	Ate      bool
	GameOver bool // true on the step that ended the game and every step after
}

// InputEvent is a heading request stamped with the number of steps that
// had run when it arrived.
type InputEvent struct {
	Tick uint64
	Dir  grid.Direction
}

// Engine owns the complete game state. It is not safe for concurrent use;
// drivers serialize input and ticks onto one goroutine.
type Engine struct {
	cfg  Config
	grid *grid.Grid
	rng  *rand.Rand

	body         []grid.Cell // head at index 0
	food         grid.Cell
	targetLength int
	pending      grid.Direction
	effective    grid.Direction
	alive        bool
	score        int
	tick         uint64
	inputs       []InputEvent
}

// New creates an engine in its initial state. Invalid parameters are
// programmer errors and panic.
func New(cfg Config) *Engine {
	if !cfg.InitialHeading.Valid() {
		panic(fmt.Sprintf("snake: invalid initial heading %d", int(cfg.InitialHeading)))
	}
	if cfg.InitialLength < 1 {
		panic(fmt.Sprintf("snake: initial length must be at least 1, got %d", cfg.InitialLength))
	}

	g := grid.New(cfg.CellSize, cfg.Dimension, cfg.AnchorX, cfg.AnchorY)
	e := &Engine{
		cfg:          cfg,
		grid:         g,
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		body:         []grid.Cell{g.Center()},
		targetLength: cfg.InitialLength,
		pending:      cfg.InitialHeading,
		effective:    cfg.InitialHeading,
		alive:        true,
	}
	e.food = e.placeFood()
	return e
}

// SetHeading requests a new heading for the next step. Only the last
// request before a step counts. Ignored once the game is over.
func (e *Engine) SetHeading(d grid.Direction) {
	if !d.Valid() {
		panic(fmt.Sprintf("snake: invalid heading %d", int(d)))
	}
	if !e.alive {
		return
	}
	e.pending = d
	e.inputs = append(e.inputs, InputEvent{Tick: e.tick, Dir: d})
}

// Step advances the game by one tick. After game over it is a no-op.
func (e *Engine) Step() StepResult {
	if !e.alive {
		return StepResult{GameOver: true}
	}
	e.tick++

	// A reversal would run the head straight into the neck; keep going
	// the way we went last step.
	if !e.pending.IsReverse(e.effective) {
		e.effective = e.pending
	}

	head := e.body[0].Next(e.grid, e.effective)
	e.body = append(e.body, grid.Cell{})
	copy(e.body[1:], e.body)
	e.body[0] = head

	if e.collides(head) {
		e.alive = false
		e.score = e.targetLength
		return StepResult{Moved: true, GameOver: true}
	}

	ate := false
	if head == e.food {
		ate = true
		e.targetLength++
		e.food = e.placeFood()
	}

	for len(e.body) > e.targetLength {
		e.body = e.body[:len(e.body)-1]
	}

	return StepResult{Moved: true, Ate: ate}
}

// collides scans the previous body (everything behind the new head).
func (e *Engine) collides(head grid.Cell) bool {
	for _, c := range e.body[1:] {
		if c == head {
			return true
		}
	}
	return false
}

func (e *Engine) placeFood() grid.Cell {
	if !e.cfg.FoodAvoidsBody {
		return e.grid.RandomCell(e.rng)
	}

	occupied := make(map[grid.Cell]bool, len(e.body))
	for _, c := range e.body {
		occupied[c] = true
	}
	dim := e.grid.Dimension()
	free := make([]grid.Cell, 0, dim*dim-len(occupied))
	for row := range dim {
		for col := range dim {
			c := grid.Cell{Col: col, Row: row}
			if !occupied[c] {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		// Board is full; nothing to avoid.
		return e.grid.RandomCell(e.rng)
	}
	return free[e.rng.Intn(len(free))]
}

// Grid returns the board the engine plays on.
func (e *Engine) Grid() *grid.Grid {
	return e.grid
}

// Config returns the parameters the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Body returns a copy of the body, head first.
func (e *Engine) Body() []grid.Cell {
	out := make([]grid.Cell, len(e.body))
	copy(out, e.body)
	return out
}

// Head returns the head cell.
func (e *Engine) Head() grid.Cell {
	return e.body[0]
}

// Food returns the current food cell.
func (e *Engine) Food() grid.Cell {
	return e.food
}

// TargetLength returns the length the body is converging to.
func (e *Engine) TargetLength() int {
	return e.targetLength
}

// PendingHeading returns the most recent heading request.
func (e *Engine) PendingHeading() grid.Direction {
	return e.pending
}

// EffectiveHeading returns the heading applied on the last step.
func (e *Engine) EffectiveHeading() grid.Direction {
	return e.effective
}

// Alive reports whether the game is still running.
func (e *Engine) Alive() bool {
	return e.alive
}

// Score returns the final score. It is zero while the game is running.
func (e *Engine) Score() int {
	return e.score
}

// Tick returns the number of steps executed.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// Inputs returns a copy of the heading requests received so far.
func (e *Engine) Inputs() []InputEvent {
	out := make([]InputEvent, len(e.inputs))
	copy(out, e.inputs)
	return out
}
