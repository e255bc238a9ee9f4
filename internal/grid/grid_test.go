package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapStaysOnBoard(t *testing.T) {
	for _, dim := range []int{1, 2, 5, 48} {
		g := New(10, dim, 0, 0)
		for c := -1; c <= dim; c++ {
			col, row := g.Wrap(c, c)
			want := ((c % dim) + dim) % dim

			assert.GreaterOrEqual(t, col, 0, "dim=%d c=%d", dim, c)
			assert.Less(t, col, dim, "dim=%d c=%d", dim, c)
			assert.Equal(t, want, col, "dim=%d c=%d", dim, c)
			assert.Equal(t, want, row, "dim=%d c=%d", dim, c)
		}
	}
}

func TestWrapAxesIndependent(t *testing.T) {
	g := New(10, 48, 0, 0)

	tests := []struct {
		name             string
		col, row         int
		wantCol, wantRow int
	}{
		{"left edge", -1, 24, 47, 24},
		{"right edge", 48, 24, 0, 24},
		{"top edge", 24, -1, 24, 47},
		{"bottom edge", 24, 48, 24, 0},
		{"corner", -1, 48, 47, 0},
		{"inside", 23, 24, 23, 24},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row := g.Wrap(tc.col, tc.row)
			assert.Equal(t, tc.wantCol, col)
			assert.Equal(t, tc.wantRow, row)
		})
	}
}

func TestToDisplayCentersGrid(t *testing.T) {
	g := New(10, 48, 0, 0)

	ox, oy := g.Origin()
	assert.Equal(t, -240.0, ox)
	assert.Equal(t, -240.0, oy)

	x, y := g.ToDisplay(0, 0)
	assert.Equal(t, ox, x)
	assert.Equal(t, oy, y)

	x, y = g.ToDisplay(24, 24)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	x, y = g.ToDisplay(3, 7)
	assert.Equal(t, -210.0, x)
	assert.Equal(t, -170.0, y)
}

func TestToDisplayAnchorOffset(t *testing.T) {
	g := New(2, 10, 40, 12)

	x, y := g.ToDisplay(0, 0)
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 2.0, y)
}

func TestCenter(t *testing.T) {
	assert.Equal(t, Cell{Col: 24, Row: 24}, New(10, 48, 0, 0).Center())
	assert.Equal(t, Cell{Col: 3, Row: 3}, New(10, 7, 0, 0).Center())
}

func TestRandomCellInRange(t *testing.T) {
	g := New(1, 7, 0, 0)
	rng := rand.New(rand.NewSource(1))

	seen := make(map[Cell]bool)
	for range 2000 {
		c := g.RandomCell(rng)
		require.True(t, g.Contains(c), "cell %v off board", c)
		seen[c] = true
	}
	// 49 cells, 2000 draws: every cell should have come up.
	assert.Len(t, seen, 49)
}

func TestRandomCellDeterministic(t *testing.T) {
	g := New(1, 30, 0, 0)
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))

	for range 50 {
		assert.Equal(t, g.RandomCell(a), g.RandomCell(b))
	}
}

func TestNewPanicsOnBadDimension(t *testing.T) {
	assert.Panics(t, func() { New(10, 0, 0, 0) })
	assert.Panics(t, func() { New(10, -3, 0, 0) })
}
