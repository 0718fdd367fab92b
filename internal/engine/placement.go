// Package engine implements the multi-objective layout search: placement
// validation and repair, Pareto ranking, variation and selection operators,
// and the generational loop that ties them together.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// Placer turns layout descriptions into occupied cells and fitness, and
// repairs placements that collide or leave the sheet.
type Placer struct {
	problem     *model.Problem
	rng         *rand.Rand
	maxAttempts int // 0 retries without a cap
}

// NewPlacer creates a placer drawing from the given random stream.
func NewPlacer(problem *model.Problem, rng *rand.Rand, maxAttempts int) *Placer {
	return &Placer{
		problem:     problem,
		rng:         rng,
		maxAttempts: maxAttempts,
	}
}

// Problem returns the instance this placer works on.
func (p *Placer) Problem() *model.Problem {
	return p.problem
}

// NewGrid returns an empty occupancy table sized to the problem.
func (p *Placer) NewGrid() *Grid {
	return newGrid(p.problem.MaxSheetLength, p.problem.SheetWidth)
}

// Validate recomputes every placement's cells in shape order and fails on the
// first cell that leaves the sheet or is already taken by another shape.
// A shape whose own path revisits a cell does not collide with itself.
func (p *Placer) Validate(placements []model.Placement) error {
	if len(placements) != p.problem.ShapeCount() {
		return fmt.Errorf("%w: expected %d placements, got %d", ErrInvalidLayout, p.problem.ShapeCount(), len(placements))
	}
	grid := p.NewGrid()
	for i, pl := range placements {
		if pl.Rotation < 0 || pl.Rotation > 3 {
			return &LayoutError{Shape: i, Cell: model.Cell{X: pl.X, Y: pl.Y}, Reason: fmt.Sprintf("rotation %d out of range", pl.Rotation)}
		}
		cells := p.problem.Shapes[i].Cells(pl)
		for _, c := range cells {
			if !grid.InBounds(c) {
				return &LayoutError{Shape: i, Cell: c, Reason: "outside sheet"}
			}
			if grid.Occupied(c) {
				return &LayoutError{Shape: i, Cell: c, Reason: "collides with another shape"}
			}
		}
		grid.Occupy(cells)
	}
	return nil
}

// BoundingBox returns the used sheet length and width: one more than the
// largest anchor coordinate on each axis. Only anchors count, not the cells
// the shapes extend into.
func (p *Placer) BoundingBox(placements []model.Placement) (usedLength, usedWidth int) {
	maxX, maxY := 0, 0
	for _, pl := range placements {
		maxX = max(maxX, pl.X)
		maxY = max(maxY, pl.Y)
	}
	return maxX + 1, maxY + 1
}

// Evaluate builds a candidate from a layout and computes both fitness values.
// The layout is copied; it is not validated.
func (p *Placer) Evaluate(placements []model.Placement) *model.Candidate {
	genes := make([]model.Placement, len(placements))
	copy(genes, placements)
	usedLength, usedWidth := p.BoundingBox(genes)
	return &model.Candidate{
		Placements:    genes,
		UsedLength:    usedLength,
		UsedWidth:     usedWidth,
		LengthFitness: p.problem.MaxSheetLength - usedLength,
		WidthFitness:  p.problem.SheetWidth - usedWidth,
	}
}

// randomPlacement draws an anchor uniformly over the sheet and one of four rotations.
func (p *Placer) randomPlacement() model.Placement {
	x := p.rng.Intn(p.problem.MaxSheetLength)
	y := p.rng.Intn(p.problem.SheetWidth)
	r := p.rng.Intn(4)
	return model.Placement{X: x, Y: y, Rotation: r}
}

// RepairOne finds a placement for one shape that fits the grid and marks its
// cells as taken. The preferred placement, when given, is tried first; after
// that placements are resampled uniformly. With a zero attempt cap the search
// never gives up.
func (p *Placer) RepairOne(grid *Grid, shape int, preferred *model.Placement) (model.Placement, error) {
	s := p.problem.Shapes[shape]
	if preferred != nil && preferred.Rotation >= 0 && preferred.Rotation <= 3 {
		cells := s.Cells(*preferred)
		if grid.Fits(cells) {
			grid.Occupy(cells)
			return *preferred, nil
		}
	}
	for attempt := 1; p.maxAttempts == 0 || attempt <= p.maxAttempts; attempt++ {
		pl := p.randomPlacement()
		cells := s.Cells(pl)
		if grid.Fits(cells) {
			grid.Occupy(cells)
			return pl, nil
		}
	}
	return model.Placement{}, &PlacementError{Shape: shape, Attempts: p.maxAttempts}
}

// RandomCandidate places every shape in index order against the shapes already placed.
func (p *Placer) RandomCandidate() (*model.Candidate, error) {
	grid := p.NewGrid()
	genes := make([]model.Placement, p.problem.ShapeCount())
	for i := range genes {
		pl, err := p.RepairOne(grid, i, nil)
		if err != nil {
			return nil, err
		}
		genes[i] = pl
	}
	return p.Evaluate(genes), nil
}
