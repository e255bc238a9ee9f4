package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/torus-snake/internal/config"
	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
	"github.com/vovakirdan/torus-snake/internal/storage"
)

func testOptions() GameOptions {
	return GameOptions{
		Config:  config.DefaultSnakeConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 31, Seed: 7},
	}
}

// tinyOptions uses a 1x1 board, where the first step always ends the game.
func tinyOptions() GameOptions {
	opts := testOptions()
	opts.Config.Grid.Dimension = 1
	opts.Config.Snake.InitialLength = 3
	return opts
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm, cmd
}

func tick(t *testing.T, m GameModel) (GameModel, tea.Cmd) {
	t.Helper()
	return update(t, m, TickMsg{Gen: m.gen})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestGameModelInitialFrame(t *testing.T) {
	m := NewGameModel(testOptions())

	assert.NotNil(t, m.Init())
	assert.True(t, m.Engine().Alive())
	assert.Contains(t, m.View(), "Length: 1")
}

func TestGameModelSteersAndSteps(t *testing.T) {
	m := NewGameModel(testOptions())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := tick(t, m)

	assert.NotNil(t, cmd, "next tick is armed while running")
	assert.Equal(t, grid.Cell{Col: 10, Row: 9}, m.Engine().Head())
	assert.Equal(t, uint64(1), m.Engine().Tick())
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	m := NewGameModel(testOptions())

	m, cmd := update(t, m, TickMsg{Gen: m.gen + 1000})

	assert.Nil(t, cmd)
	assert.Equal(t, uint64(0), m.Engine().Tick())
}

func TestGameModelGameOverStopsTicking(t *testing.T) {
	m := NewGameModel(tinyOptions())

	m, cmd := tick(t, m)

	assert.Nil(t, cmd, "no tick after game over")
	assert.False(t, m.Engine().Alive())
	assert.Equal(t, 3, m.Engine().Score())
	assert.Contains(t, m.View(), "You lose! You scored: 3")
	// The losing step prepends a head onto the body without trimming; that
	// frame is never drawn, so the HUD still shows the initial length.
	assert.Contains(t, m.View(), "Length: 1")
	assert.NotContains(t, m.View(), "Length: 2")

	// A tick that was already in flight changes nothing.
	m, cmd = tick(t, m)
	assert.Nil(t, cmd)
	assert.Equal(t, uint64(1), m.Engine().Tick())
}

func TestGameModelRestart(t *testing.T) {
	m := NewGameModel(tinyOptions())
	first := m.Engine()

	// Restart is disabled while the game runs.
	m, cmd := update(t, m, runeKey('r'))
	assert.Nil(t, cmd)
	assert.Same(t, first, m.Engine())

	m, _ = tick(t, m)
	require.False(t, m.Engine().Alive())
	oldGen := m.gen

	m, cmd = update(t, m, runeKey('r'))
	assert.NotNil(t, cmd)
	assert.NotSame(t, first, m.Engine())
	assert.True(t, m.Engine().Alive())
	assert.NotEqual(t, oldGen, m.gen)
}

func TestGameModelQuitAndBack(t *testing.T) {
	m := NewGameModel(testOptions())
	quit, cmd := update(t, m, runeKey('q'))
	assert.True(t, quit.IsQuitting())
	assert.True(t, isQuit(cmd))
	assert.Empty(t, quit.View())

	back, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, back.BackToMenu())
	assert.True(t, isQuit(cmd), "standalone games exit on back")

	opts := testOptions()
	opts.Embedded = true
	embedded, cmd := update(t, NewGameModel(opts), tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, embedded.BackToMenu())
	assert.Nil(t, cmd, "embedded games leave the exit to the parent")
}

func TestGameModelHoldsWhileTooSmall(t *testing.T) {
	m := NewGameModel(testOptions())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	m, cmd := tick(t, m)

	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(0), m.Engine().Tick())
	assert.Contains(t, m.View(), "Window too small")
}

func TestGameModelRecordsFinishedGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	opts := tinyOptions()
	opts.Store = store
	opts.Player = "alice"
	m := NewGameModel(opts)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = tick(t, m)

	require.NotZero(t, m.LastRecorded())
	sess, err := store.Session(m.LastRecorded())
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Player)
	assert.Equal(t, int64(7), sess.Seed)
	assert.Equal(t, uint64(1), sess.Ticks)
	assert.Equal(t, 100, sess.TickIntervalMs)
	assert.Equal(t, []snake.InputEvent{{Tick: 0, Dir: grid.Up}}, sess.Inputs)
}

func TestGameModelReplay(t *testing.T) {
	sess := &storage.Session{
		ID:             3,
		Seed:           11,
		Dimension:      12,
		CellSize:       1,
		InitialLength:  5,
		InitialHeading: grid.Left,
		TickIntervalMs: 50,
		Inputs: []snake.InputEvent{
			{Tick: 2, Dir: grid.Up},
			{Tick: 6, Dir: grid.Right},
			{Tick: 15, Dir: grid.Down},
		},
	}
	opts := testOptions()
	opts.Replay = sess
	m := NewGameModel(opts)

	assert.Contains(t, m.View(), "REPLAY #3")

	// Live input is ignored during playback.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.Engine().Inputs())

	const ticks = 25
	for i := 0; i < ticks; i++ {
		m, _ = tick(t, m)
	}

	want := snake.Simulate(sess.EngineConfig(0, 0), sess.Inputs, ticks)
	assert.Equal(t, want, m.Engine().Snapshot())
}
