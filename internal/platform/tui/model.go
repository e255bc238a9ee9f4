package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/torus-snake/internal/config"
	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/render"
	"github.com/vovakirdan/torus-snake/internal/storage"
)

// helpHeight is the number of rows below the board reserved for the help bar.
const helpHeight = 1

// GameOptions configures a GameModel.
type GameOptions struct {
	Config  config.SnakeConfig
	Runtime core.RuntimeConfig

	// Store records finished games. Nil disables recording.
	Store  *storage.Store
	Player string
	Logger *log.Logger

	// Replay plays back a recorded session instead of taking live input.
	Replay *storage.Session

	// Embedded makes esc/b hand control back to a parent model instead of
	// quitting the program.
	Embedded bool
}

// GameModel is the Bubble Tea model that drives one engine: key presses
// become heading changes and every TickMsg runs one step.
type GameModel struct {
	opts     GameOptions
	interval time.Duration
	logger   *log.Logger

	screen   *core.Screen
	engine   *snake.Engine
	renderer *render.ScreenRenderer
	script   *snake.Script
	gen      uint64

	keys GameKeyMap
	help help.Model

	lastRecorded int64
	quitting     bool
	backToMenu   bool
}

// NewGameModel creates a game model and draws the first frame.
func NewGameModel(opts GameOptions) GameModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	interval := opts.Config.TickInterval()
	if opts.Replay != nil {
		interval = opts.Replay.TickInterval()
	}

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	m := GameModel{
		opts:     opts,
		interval: interval,
		logger:   logger,
		screen:   core.NewScreen(opts.Runtime.ScreenW, max(0, opts.Runtime.ScreenH-helpHeight)),
		keys:     DefaultGameKeyMap(),
		help:     h,
	}
	m.newGame(opts.Runtime.ResolveSeed())
	return m
}

// newGame builds a fresh engine centered on the current screen.
func (m *GameModel) newGame(seed int64) {
	ax, ay := render.Anchor(m.screen.Width(), m.screen.Height())

	var cfg snake.Config
	if m.opts.Replay != nil {
		cfg = m.opts.Replay.EngineConfig(ax, ay)
		m.script = snake.NewScript(m.opts.Replay.Inputs)
	} else {
		cfg = m.opts.Config.EngineConfig(ax, ay, seed)
	}

	m.engine = snake.New(cfg)
	m.renderer = render.NewScreenRenderer(m.screen, m.engine.Grid(), "SNAKE")
	m.renderer.SetStatus(m.status())
	m.gen = nextGen()
	m.keys.Restart.SetEnabled(false)
	m.engine.Draw(m.renderer)

	m.logger.Debug("game started",
		"seed", cfg.Seed,
		"dimension", cfg.Dimension,
		"length", cfg.InitialLength,
		"replay", m.script != nil,
	)
}

func (m *GameModel) status() string {
	if m.opts.Replay != nil {
		return fmt.Sprintf("REPLAY #%d", m.opts.Replay.ID)
	}
	return m.opts.Player
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.interval, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(0, msg.Height-helpHeight))
		m.help.Width = msg.Width
		m.redraw()
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		if m.opts.Embedded {
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		m.newGame(time.Now().UnixNano())
		return m, tickCmd(m.interval, m.gen)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if d, ok := m.keys.Direction(msg); ok && m.script == nil {
		m.engine.SetHeading(d)
	}
	return m, nil
}

// handleTick runs one step. The next tick is armed only while the game is
// still running, so nothing steps after game over.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || !m.engine.Alive() {
		return m, nil
	}

	// Hold the game while the board does not fit.
	if !render.Fits(m.engine.Grid(), m.screen.Width(), m.screen.Height()) {
		m.engine.Draw(m.renderer)
		return m, tickCmd(m.interval, m.gen)
	}

	if m.script != nil {
		m.script.Apply(m.engine)
	}
	res := m.engine.Step()
	if res.GameOver {
		// The last running frame stays under the score.
		m.finish()
		return m, nil
	}
	m.engine.Draw(m.renderer)
	return m, tickCmd(m.interval, m.gen)
}

// finish shows the final score and records the game.
func (m *GameModel) finish() {
	score := m.engine.Score()
	m.renderer.DrawGameOver(score)
	m.keys.Restart.SetEnabled(true)
	m.logger.Info("game over", "score", score, "tick", m.engine.Tick(), "player", m.opts.Player)

	if m.opts.Store == nil || m.script != nil {
		return
	}
	id, err := m.opts.Store.SaveSession(storage.NewSession(m.opts.Player, m.engine, int(m.interval/time.Millisecond)))
	if err != nil {
		m.logger.Warn("could not record session", "error", err)
		return
	}
	m.lastRecorded = id
	m.logger.Debug("session recorded", "id", id)
}

// redraw repaints the current frame after a resize. A finished game keeps
// its last frame; Screen.Resize already preserved it.
func (m *GameModel) redraw() {
	if m.engine.Alive() {
		m.engine.Draw(m.renderer)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Engine returns the engine of the current game.
func (m GameModel) Engine() *snake.Engine {
	return m.engine
}

// LastRecorded returns the journal ID of the last recorded game, or 0.
func (m GameModel) LastRecorded() int64 {
	return m.lastRecorded
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(opts GameOptions) error {
	p := tea.NewProgram(
		NewGameModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
