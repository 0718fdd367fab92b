package engine

import "github.com/piwi3910/ShapeNest/internal/model"

// Grid is the transient occupancy table of a sheet, length x width cells.
type Grid struct {
	length int
	width  int
	cells  []bool
}

func newGrid(length, width int) *Grid {
	return &Grid{length: length, width: width, cells: make([]bool, length*width)}
}

// InBounds reports whether the cell lies on the sheet.
func (g *Grid) InBounds(c model.Cell) bool {
	return c.X >= 0 && c.X < g.length && c.Y >= 0 && c.Y < g.width
}

// Occupied reports whether an in-bounds cell is taken.
func (g *Grid) Occupied(c model.Cell) bool {
	return g.cells[c.X*g.width+c.Y]
}

// Fits reports whether every cell is on the sheet and free.
func (g *Grid) Fits(cells []model.Cell) bool {
	for _, c := range cells {
		if !g.InBounds(c) || g.Occupied(c) {
			return false
		}
	}
	return true
}

// Occupy marks every in-bounds cell as taken.
func (g *Grid) Occupy(cells []model.Cell) {
	for _, c := range cells {
		if g.InBounds(c) {
			g.cells[c.X*g.width+c.Y] = true
		}
	}
}

// free returns the number of unoccupied cells.
func (g *Grid) free() int {
	n := 0
	for _, taken := range g.cells {
		if !taken {
			n++
		}
	}
	return n
}
