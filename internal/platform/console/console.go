package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/torus-snake/internal/config"
	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/loop"
	"github.com/vovakirdan/torus-snake/internal/render"
	"github.com/vovakirdan/torus-snake/internal/storage"
)

// Options configures a console session.
type Options struct {
	Config config.SnakeConfig
	Seed   int64 // first game only; 0 or a restart picks a time-based seed

	// Store records finished games. Nil disables recording.
	Store  *storage.Store
	Player string
	Logger *log.Logger

	// Replay plays back a recorded session instead of taking live input.
	Replay *storage.Session
}

// Console runs games on a tcell screen until the player quits.
type Console struct {
	screen tcell.Screen
	opts   Options
	logger *log.Logger
	events chan tcell.Event

	renderer *Renderer
}

// New creates a console on an initialized screen.
func New(screen tcell.Screen, opts Options) *Console {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{
		screen: screen,
		opts:   opts,
		logger: logger,
	}
}

// Play opens the terminal, runs the console and restores the terminal.
func Play(ctx context.Context, opts Options) (int, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return 0, fmt.Errorf("console: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return 0, fmt.Errorf("console: cannot init screen: %w", err)
	}
	defer screen.Fini()

	return New(screen, opts).Run(ctx)
}

// Run plays games until the player quits or ctx is done, and returns the
// score of the last finished game. R restarts after game over.
func (c *Console) Run(ctx context.Context) (int, error) {
	// ChannelEvents closes the channel when it returns, so every Run gets
	// a fresh one.
	c.events = make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go c.screen.ChannelEvents(c.events, quit)

	lastScore := 0
	for {
		score, quitting, err := c.runGame(ctx)
		if err != nil {
			return lastScore, err
		}
		if quitting {
			return lastScore, nil
		}
		lastScore = score

		again, err := c.waitForRestart(ctx)
		if err != nil || !again {
			return lastScore, err
		}
	}
}

func (c *Console) newEngine() (*snake.Engine, time.Duration) {
	w, h := c.screen.Size()
	ax, ay := render.Anchor(w, h)

	if c.opts.Replay != nil {
		return snake.New(c.opts.Replay.EngineConfig(ax, ay)), c.opts.Replay.TickInterval()
	}
	seed := core.RuntimeConfig{Seed: c.opts.Seed}.ResolveSeed()
	// A fixed seed only applies to the first game; restarts get a new board.
	c.opts.Seed = 0
	return snake.New(c.opts.Config.EngineConfig(ax, ay, seed)), c.opts.Config.TickInterval()
}

// runGame plays one game. The loop goroutine owns the engine; the input
// goroutine forwards key presses to it and stops when the game ends.
func (c *Console) runGame(ctx context.Context) (score int, quitting bool, err error) {
	engine, interval := c.newEngine()

	status := c.opts.Player
	opts := []loop.Option{loop.WithLogger(c.logger)}
	if c.opts.Replay != nil {
		status = fmt.Sprintf("REPLAY #%d", c.opts.Replay.ID)
		opts = append(opts, loop.WithScript(snake.NewScript(c.opts.Replay.Inputs)))
	}
	c.renderer = NewRenderer(c.screen, engine.Grid(), "SNAKE", status)
	lp := loop.New(engine, c.renderer, interval, opts...)

	gameCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gameCtx := errgroup.WithContext(gameCtx)

	g.Go(func() error {
		defer cancel()
		s, err := lp.Run(gameCtx)
		score = s
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		for {
			select {
			case <-gameCtx.Done():
				return nil
			case ev := <-c.events:
				action := c.handleEvent(ev)
				if action == core.ActionQuit || action == core.ActionBack {
					quitting = true
					cancel()
					return nil
				}
				if d, ok := action.Direction(); ok {
					lp.Send(d)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return score, false, err
	}
	if ctx.Err() != nil {
		return score, true, nil
	}
	if !quitting {
		c.record(engine, interval)
	}
	return score, quitting, nil
}

// handleEvent resizes on terminal changes and maps keys to actions.
func (c *Console) handleEvent(ev tcell.Event) core.Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		if c.renderer != nil {
			c.renderer.Resize()
		}
	case *tcell.EventKey:
		return core.ActionForKey(keyName(ev))
	}
	return core.ActionNone
}

// waitForRestart keeps the game-over screen up until the player restarts
// or quits.
func (c *Console) waitForRestart(ctx context.Context) (bool, error) {
	for {
		select {
		case <-ctx.Done():
			return false, nil
		case ev := <-c.events:
			switch c.handleEvent(ev) {
			case core.ActionRestart:
				return true, nil
			case core.ActionQuit, core.ActionBack:
				return false, nil
			}
		}
	}
}

func (c *Console) record(e *snake.Engine, interval time.Duration) {
	if c.opts.Store == nil || c.opts.Replay != nil {
		return
	}
	id, err := c.opts.Store.SaveSession(storage.NewSession(c.opts.Player, e, int(interval/time.Millisecond)))
	if err != nil {
		c.logger.Warn("could not record session", "error", err)
		return
	}
	c.logger.Debug("session recorded", "id", id)
}
