// Package grid models the toroidal board: cells, headings, wrap-around
// arithmetic and the mapping from logical cells to display coordinates.
package grid

import "fmt"

// Source is the random source used to place cells. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Grid is a dimension x dimension toroidal board. It is immutable after New.
type Grid struct {
	cellSize  float64
	dimension int
	originX   float64
	originY   float64
}

// New creates a grid whose display footprint is centered on (anchorX, anchorY).
// A non-positive dimension is a programmer error and panics.
func New(cellSize float64, dimension int, anchorX, anchorY float64) *Grid {
	if dimension <= 0 {
		panic(fmt.Sprintf("grid: dimension must be positive, got %d", dimension))
	}
	half := cellSize * float64(dimension) / 2
	return &Grid{
		cellSize:  cellSize,
		dimension: dimension,
		originX:   anchorX - half,
		originY:   anchorY - half,
	}
}

// Dimension returns the number of cells along each axis.
func (g *Grid) Dimension() int {
	return g.dimension
}

// CellSize returns the display size of one cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Origin returns the display position of cell (0, 0).
func (g *Grid) Origin() (x, y float64) {
	return g.originX, g.originY
}

// Center returns the cell at floor(dimension/2) on both axes.
func (g *Grid) Center() Cell {
	return Cell{Col: g.dimension / 2, Row: g.dimension / 2}
}

// ToDisplay converts a logical cell coordinate to a display coordinate.
func (g *Grid) ToDisplay(col, row int) (x, y float64) {
	return g.originX + float64(col)*g.cellSize, g.originY + float64(row)*g.cellSize
}

// Wrap folds a coordinate back onto the board. Callers only ever step one
// cell past an edge, so inputs lie in [-1, dimension] and a single
// conditional per axis is enough.
func (g *Grid) Wrap(col, row int) (int, int) {
	return wrapAxis(col, g.dimension), wrapAxis(row, g.dimension)
}

func wrapAxis(v, dim int) int {
	if v < 0 {
		return v + dim
	}
	if v >= dim {
		return v - dim
	}
	return v
}

// Contains reports whether c lies on the board.
func (g *Grid) Contains(c Cell) bool {
	return c.Col >= 0 && c.Col < g.dimension && c.Row >= 0 && c.Row < g.dimension
}

// RandomCell returns a cell with col and row drawn independently and
// uniformly from [0, dimension).
func (g *Grid) RandomCell(src Source) Cell {
	col := src.Intn(g.dimension)
	row := src.Intn(g.dimension)
	return Cell{Col: col, Row: row}
}
