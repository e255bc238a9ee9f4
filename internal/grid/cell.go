package grid

import "fmt"

// Cell is one logical grid position. Cells are values: two cells are
// equal iff Col and Row match, so == is the equality test.
type Cell struct {
	Col, Row int
}

// Next returns the neighbor of c one step in direction d, wrapped
// onto the torus described by g.
func (c Cell) Next(g *Grid, d Direction) Cell {
	dx, dy := d.Vector()
	col, row := g.Wrap(c.Col+dx, c.Row+dy)
	return Cell{Col: col, Row: row}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}
