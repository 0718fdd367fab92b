package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// ExportDXF writes a layout as LINE entities tracing each shape's path
// through its cell centres, cellSize drawing units per cell. Importing the
// drawing with the same unit yields the placed (rotated) move sequences.
func ExportDXF(path string, problem *model.Problem, c *model.Candidate, cellSize float64) error {
	if len(c.Placements) == 0 {
		return fmt.Errorf("layout has no placements")
	}
	if cellSize <= 0 {
		cellSize = 1
	}
	centre := func(v int) float64 { return (float64(v) + 0.5) * cellSize }

	d := dxf.NewDrawing()
	for i, pl := range c.Placements {
		x, y := pl.X, pl.Y
		for _, m := range problem.Shapes[i].Moves {
			dx, dy := m.Dir.Rotate(pl.Rotation).Delta()
			nx, ny := x+dx*m.Paces, y+dy*m.Paces
			if _, err := d.Line(centre(x), centre(y), 0, centre(nx), centre(ny), 0); err != nil {
				return fmt.Errorf("shape %s: %w", problem.Shapes[i].Label, err)
			}
			x, y = nx, ny
		}
	}
	return d.SaveAs(path)
}
