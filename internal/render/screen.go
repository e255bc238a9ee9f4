// Package render draws game frames into a core.Screen. Both terminal front
// ends share it: Bubble Tea styles the screen with lipgloss, the console
// front end copies it into tcell.
package render

import (
	"fmt"
	"math"

	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
)

const (
	// ColumnsPerUnit is how many terminal columns one display unit spans.
	// Terminal cells are about twice as tall as they are wide.
	ColumnsPerUnit = 2

	hudHeight = 2
)

// Palette
const (
	colorBorder   = core.ColorRed
	colorHead     = core.ColorBrightBlue
	colorBody     = core.ColorWhite
	colorFood     = core.ColorYellow
	colorGameOver = core.ColorGreen
	colorHUD      = core.ColorGray
)

// Anchor returns the display-space point a grid should be centered on to sit
// in the middle of a screenW x screenH terminal, below the HUD.
func Anchor(screenW, screenH int) (x, y float64) {
	return float64(screenW) / 2 / ColumnsPerUnit, hudHeight + float64(screenH-hudHeight)/2
}

// Fits reports whether the board plus its border fits on the screen.
func Fits(g *grid.Grid, screenW, screenH int) bool {
	span := g.CellSize() * float64(g.Dimension())
	needW := int(math.Ceil(span*ColumnsPerUnit)) + 2
	needH := int(math.Ceil(span)) + 2 + hudHeight
	return screenW >= needW && screenH >= needH
}

// ScreenRenderer implements snake.Renderer on top of a core.Screen.
type ScreenRenderer struct {
	screen *core.Screen
	grid   *grid.Grid
	title  string
	status string

	gameOver bool
}

var _ snake.Renderer = (*ScreenRenderer)(nil)

// NewScreenRenderer creates a renderer for boards laid out by g.
func NewScreenRenderer(screen *core.Screen, g *grid.Grid, title string) *ScreenRenderer {
	return &ScreenRenderer{
		screen: screen,
		grid:   g,
		title:  title,
	}
}

// SetStatus sets extra text shown on the right of the HUD.
func (r *ScreenRenderer) SetStatus(status string) {
	r.status = status
}

// GameOver reports whether DrawGameOver has been called.
func (r *ScreenRenderer) GameOver() bool {
	return r.gameOver
}

// DrawFrame redraws the whole screen: HUD, border, food, then the body
// tail-first so the head is drawn last.
func (r *ScreenRenderer) DrawFrame(body []grid.Cell, food grid.Cell) {
	s := r.screen
	s.Clear()
	r.gameOver = false

	r.drawHUD(len(body))

	if !Fits(r.grid, s.Width(), s.Height()) {
		s.DrawTextCentered(s.Height()/2, "Window too small", core.ColorBrightWhite)
		s.DrawTextCentered(s.Height()/2+1, "Resize to continue", colorHUD)
		return
	}

	r.drawBorder()
	r.fillCell(food, '●', colorFood)
	for i := len(body) - 1; i >= 0; i-- {
		if i == 0 {
			r.fillCell(body[i], '█', colorHead)
		} else {
			r.fillCell(body[i], '█', colorBody)
		}
	}
}

// DrawGameOver overlays the final score on the last frame.
func (r *ScreenRenderer) DrawGameOver(score int) {
	r.gameOver = true
	r.drawOverlay(
		"Game Over",
		fmt.Sprintf("You lose! You scored: %d", score),
		"R: restart   Q: quit",
	)
}

func (r *ScreenRenderer) drawHUD(length int) {
	s := r.screen
	hud := fmt.Sprintf(" %s  Length: %d", r.title, length)
	s.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	if r.status != "" {
		s.DrawTextColor(s.Width()-len([]rune(r.status))-1, 0, r.status, colorHUD)
	}
	s.DrawHLine(0, 1, s.Width(), '─', colorHUD)
}

// offset shifts display coordinates so the board stays centered after the
// screen was resized away from the size the grid was anchored for.
func (r *ScreenRenderer) offset() (dx, dy float64) {
	ax, ay := Anchor(r.screen.Width(), r.screen.Height())
	ox, oy := r.grid.Origin()
	half := r.grid.CellSize() * float64(r.grid.Dimension()) / 2
	return ax - (ox + half), ay - (oy + half)
}

// cellRect converts a logical cell to its screen rectangle.
func (r *ScreenRenderer) cellRect(c grid.Cell) core.Rect {
	x, y := r.grid.ToDisplay(c.Col, c.Row)
	dx, dy := r.offset()
	size := r.grid.CellSize()
	return core.NewRect(
		int(math.Round((x+dx)*ColumnsPerUnit)),
		int(math.Round(y+dy)),
		max(1, int(math.Round(size*ColumnsPerUnit))),
		max(1, int(math.Round(size))),
	)
}

func (r *ScreenRenderer) fillCell(c grid.Cell, ch rune, color core.Color) {
	r.screen.FillRect(r.cellRect(c), ch, color)
}

func (r *ScreenRenderer) drawBorder() {
	last := r.grid.Dimension() - 1
	topLeft := r.cellRect(grid.Cell{Col: 0, Row: 0})
	bottomRight := r.cellRect(grid.Cell{Col: last, Row: last})
	r.screen.DrawBox(core.NewRect(
		topLeft.X-1,
		topLeft.Y-1,
		bottomRight.Right()-topLeft.X+2,
		bottomRight.Bottom()-topLeft.Y+2,
	), colorBorder)
}

// drawOverlay draws a centered message box.
func (r *ScreenRenderer) drawOverlay(lines ...string) {
	s := r.screen
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect(
		core.Clamp((s.Width()-boxW)/2, 0, s.Width()),
		core.Clamp((s.Height()-boxH)/2, 0, s.Height()),
		boxW,
		boxH,
	)

	s.FillRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, colorGameOver)
	for i, l := range lines {
		color := colorGameOver
		if i == len(lines)-1 {
			color = colorHUD
		}
		s.DrawTextCentered(box.Y+1+i, l, color)
	}
}
