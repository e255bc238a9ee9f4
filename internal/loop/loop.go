// Package loop drives an engine in real time for front ends that have no
// event loop of their own. Ticks and heading changes are serialized onto
// the goroutine that calls Run.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
)

// inputBuffer bounds how many key presses may queue between two ticks.
// When it is full the oldest press is dropped.
const inputBuffer = 16

// Loop steps an engine every interval and redraws after each step.
type Loop struct {
	engine   *snake.Engine
	renderer snake.Renderer
	interval time.Duration
	input    chan grid.Direction
	script   *snake.Script
	logger   *log.Logger
	onStep   func(snake.StepResult)
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for step and game-over events.
func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) {
		lp.logger = l
	}
}

// WithScript replays recorded input instead of taking live input.
// Send drops everything while a script is set.
func WithScript(s *snake.Script) Option {
	return func(lp *Loop) {
		lp.script = s
	}
}

// WithStepHook calls fn after every step, on the loop goroutine.
func WithStepHook(fn func(snake.StepResult)) Option {
	return func(lp *Loop) {
		lp.onStep = fn
	}
}

// New creates a loop. interval must be positive.
func New(e *snake.Engine, r snake.Renderer, interval time.Duration, opts ...Option) *Loop {
	if interval <= 0 {
		panic("loop: interval must be positive")
	}
	l := &Loop{
		engine:   e,
		renderer: r,
		interval: interval,
		input:    make(chan grid.Direction, inputBuffer),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Send queues a heading change. It never blocks: when the queue is full
// the oldest press makes room, so the newest one always reaches the
// engine. It reports false while a script is playing.
func (l *Loop) Send(d grid.Direction) bool {
	if l.script != nil {
		return false
	}
	for {
		select {
		case l.input <- d:
			return true
		default:
		}
		select {
		case <-l.input:
		default:
		}
	}
}

// Run draws the first frame and then steps the engine until the game ends
// or ctx is done. The timer is re-armed only after a step that did not end
// the game, so no tick fires after game over. It returns the final score.
func (l *Loop) Run(ctx context.Context) (int, error) {
	l.engine.Draw(l.renderer)
	l.logger.Debug("loop started", "interval", l.interval, "replay", l.script != nil)

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop cancelled", "tick", l.engine.Tick())
			return l.engine.Score(), ctx.Err()

		case d := <-l.input:
			l.engine.SetHeading(d)

		case <-timer.C:
			if l.script != nil {
				l.script.Apply(l.engine)
			}
			res := l.engine.Step()
			if res.GameOver {
				// The losing step is not drawn; the last frame stays up
				// under the score.
				score := l.engine.Score()
				l.renderer.DrawGameOver(score)
				if l.onStep != nil {
					l.onStep(res)
				}
				l.logger.Info("game over", "tick", l.engine.Tick(), "score", score)
				return score, nil
			}
			l.engine.Draw(l.renderer)
			if l.onStep != nil {
				l.onStep(res)
			}
			if res.Ate {
				l.logger.Debug("food eaten", "tick", l.engine.Tick(), "target", l.engine.TargetLength())
			}
			timer.Reset(l.interval)
		}
	}
}
