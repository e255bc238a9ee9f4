package snake

import "github.com/vovakirdan/torus-snake/internal/grid"

// Renderer is implemented by front ends. The engine's drivers call it;
// the engine itself never draws.
type Renderer interface {
	// DrawFrame shows the body (head at index 0) and the food cell.
	DrawFrame(body []grid.Cell, food grid.Cell)

	// DrawGameOver shows the final score. Called once per game.
	DrawGameOver(score int)
}

// Draw sends the engine's current frame to r.
func (e *Engine) Draw(r Renderer) {
	r.DrawFrame(e.Body(), e.food)
}
