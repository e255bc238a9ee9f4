// Package console is the tcell front end. It runs the engine on
// internal/loop and copies frames from a core.Screen into a tcell.Screen.
package console

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
	"github.com/vovakirdan/torus-snake/internal/render"
)

// Renderer implements snake.Renderer on a tcell.Screen. Frames come from
// the loop goroutine and resizes from the event goroutine, so the buffer
// is guarded by a mutex.
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	buf    *core.Screen
	inner  *render.ScreenRenderer
}

var _ snake.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer for boards laid out by g.
func NewRenderer(screen tcell.Screen, g *grid.Grid, title, status string) *Renderer {
	w, h := screen.Size()
	buf := core.NewScreen(w, h)
	inner := render.NewScreenRenderer(buf, g, title)
	inner.SetStatus(status)
	return &Renderer{
		screen: screen,
		buf:    buf,
		inner:  inner,
	}
}

// DrawFrame draws the frame and shows it.
func (r *Renderer) DrawFrame(body []grid.Cell, food grid.Cell) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inner.DrawFrame(body, food)
	r.flush()
}

// DrawGameOver overlays the final score and shows it.
func (r *Renderer) DrawGameOver(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inner.DrawGameOver(score)
	r.flush()
}

// Resize follows the terminal size. The board is re-centered on the next
// frame.
func (r *Renderer) Resize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, h := r.screen.Size()
	r.buf.Resize(w, h)
	r.screen.Clear()
	r.flush()
	r.screen.Sync()
}

// flush copies the buffer to the terminal. Callers hold mu.
func (r *Renderer) flush() {
	for y := range r.buf.Height() {
		for x := range r.buf.Width() {
			cell := r.buf.GetCell(x, y)
			r.screen.SetContent(x, y, cell.Rune, nil, styleFor(cell.Color))
		}
	}
	r.screen.Show()
}

// styleFor maps a core.Color to a tcell style.
func styleFor(c core.Color) tcell.Style {
	code := c.ANSI()
	if code < 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(code))
}

// keyName spells a tcell key the way core.ActionForKey expects.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}
