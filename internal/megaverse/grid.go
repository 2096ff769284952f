package megaverse

import (
	"errors"
	"fmt"
)

var ErrRaggedGrid = errors.New("megaverse: ragged grid")

// Grid is a rectangular row-major map of objects. Instances are built from
// one fetch and never mutated afterwards.
type Grid [][]Object

// Dimensions returns row and column counts. An empty grid is 0x0.
func (g Grid) Dimensions() (rows, columns int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// Validate enforces uniform row length across the grid.
func (g Grid) Validate() error {
	_, width := g.Dimensions()
	for i, row := range g {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedGrid, i, len(row), width)
		}
	}
	return nil
}
