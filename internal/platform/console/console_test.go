package console

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/torus-snake/internal/config"
	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/grid"
	"github.com/vovakirdan/torus-snake/internal/storage"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)
	return screen
}

// lockedScreen serializes drawing by the console with reads by the test.
type lockedScreen struct {
	tcell.SimulationScreen
	mu sync.Mutex
}

func newLockedScreen(t *testing.T) *lockedScreen {
	t.Helper()
	return &lockedScreen{SimulationScreen: newSimScreen(t)}
}

func (s *lockedScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.SetContent(x, y, primary, combining, style)
}

func (s *lockedScreen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.Show()
}

func (s *lockedScreen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.Clear()
}

func (s *lockedScreen) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.Sync()
}

func (s *lockedScreen) text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return screenText(s.SimulationScreen)
}

func screenText(screen tcell.SimulationScreen) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%w == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// waitForSessions waits until n games are recorded. A game is recorded
// after its loop has stopped, so keys sent afterwards reach the
// restart prompt.
func waitForSessions(t *testing.T, store *storage.Store, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		sessions, err := store.RecentSessions(10)
		return err == nil && len(sessions) == n
	}, 2*time.Second, 10*time.Millisecond)
}

// tinyConfig uses a 1x1 board, where the first step always ends the game.
func tinyConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Dimension = 1
	cfg.Snake.InitialLength = 3
	cfg.Timing.TickIntervalMs = 5
	return cfg
}

type result struct {
	score int
	err   error
}

func runAsync(c *Console) <-chan result {
	done := make(chan result, 1)
	go func() {
		score, err := c.Run(context.Background())
		done <- result{score, err}
	}()
	return done
}

func TestConsoleGameOverThenQuit(t *testing.T) {
	screen := newLockedScreen(t)
	store := openStore(t)

	c := New(screen, Options{Config: tinyConfig(), Seed: 5, Store: store, Player: "carol"})
	done := runAsync(c)

	waitForSessions(t, store, 1)
	text := screen.text()
	assert.Contains(t, text, "You lose! You scored: 3")
	assert.Contains(t, text, "Length: 1", "the losing step is not drawn")

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, 3, res.score)
	case <-time.After(2 * time.Second):
		t.Fatal("console did not quit")
	}

	sessions, err := store.RecentSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "carol", sessions[0].Player)
	assert.Equal(t, int64(5), sessions[0].Seed)
}

func TestConsoleRestartUsesFreshSeed(t *testing.T) {
	screen := newLockedScreen(t)
	store := openStore(t)

	c := New(screen, Options{Config: tinyConfig(), Seed: 5, Store: store, Player: "carol"})
	done := runAsync(c)

	waitForSessions(t, store, 1)
	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	waitForSessions(t, store, 2)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, 3, res.score)
	case <-time.After(2 * time.Second):
		t.Fatal("console did not quit")
	}

	sessions, err := store.RecentSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// Newest first.
	assert.Equal(t, int64(5), sessions[1].Seed)
	assert.NotEqual(t, int64(5), sessions[0].Seed)
}

func TestConsoleQuitMidGame(t *testing.T) {
	screen := newLockedScreen(t)
	cfg := config.DefaultSnakeConfig()
	cfg.Timing.TickIntervalMs = 1000

	c := New(screen, Options{Config: cfg, Seed: 1})
	done := runAsync(c)

	assert.Eventually(t, func() bool {
		return strings.Contains(screen.text(), "Length: 1")
	}, 2*time.Second, 10*time.Millisecond)

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, 0, res.score)
	case <-time.After(2 * time.Second):
		t.Fatal("console did not quit")
	}
}

func TestConsoleStopsOnContextCancel(t *testing.T) {
	screen := newLockedScreen(t)
	ctx, cancel := context.WithCancel(context.Background())

	c := New(screen, Options{Config: config.DefaultSnakeConfig(), Seed: 1})
	done := make(chan error, 1)
	go func() {
		_, err := c.Run(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("console did not stop")
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want core.Action
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), core.ActionUp},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), core.ActionLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), core.ActionRight},
		{tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), core.ActionDown},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), core.ActionRestart},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), core.ActionBack},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), core.ActionNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, core.ActionForKey(keyName(tt.ev)), "key %v", tt.ev.Name())
	}
}

func TestRendererFlushesColors(t *testing.T) {
	screen := newSimScreen(t)
	g := grid.New(1, 10, 20, 16)
	r := NewRenderer(screen, g, "SNAKE", "")

	r.DrawFrame([]grid.Cell{{Col: 0, Row: 0}}, grid.Cell{Col: 9, Row: 9})

	mainc, _, style, _ := screen.GetContent(30, 11)
	assert.Equal(t, '█', mainc)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.PaletteColor(core.ColorBrightBlue.ANSI()), fg)
}
