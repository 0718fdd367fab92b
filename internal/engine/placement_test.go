package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/piwi3910/ShapeNest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bar(paces int) model.Shape {
	return model.NewShape("bar", []model.Move{{Dir: model.Right, Paces: paces}})
}

// testProblem is a roomy four-shape instance used across engine tests.
func testProblem() *model.Problem {
	p := model.NewProblem(5, []model.Shape{
		bar(1),
		model.NewShape("post", []model.Move{{Dir: model.Up, Paces: 2}}),
		model.NewShape("hook", []model.Move{{Dir: model.Right, Paces: 1}, {Dir: model.Up, Paces: 1}}),
		model.NewShape("tail", []model.Move{{Dir: model.Left, Paces: 2}}),
	})
	return &p
}

func newTestPlacer(p *model.Problem, seed int64) *Placer {
	return NewPlacer(p, rand.New(rand.NewSource(seed)), 100000)
}

func TestRandomCandidate_SingleBarFindsValidPlacement(t *testing.T) {
	p := model.NewProblem(3, []model.Shape{bar(1)})
	require.Equal(t, 2, p.MaxSheetLength)

	// Enumerate every anchor and rotation the 2x3 grid admits.
	valid := map[model.Placement]bool{}
	checker := newTestPlacer(&p, 1)
	for x := 0; x < p.MaxSheetLength; x++ {
		for y := 0; y < p.SheetWidth; y++ {
			for r := 0; r < 4; r++ {
				pl := model.Placement{X: x, Y: y, Rotation: r}
				if checker.Validate([]model.Placement{pl}) == nil {
					valid[pl] = true
				}
			}
		}
	}
	assert.Len(t, valid, 14)

	for seed := int64(0); seed < 50; seed++ {
		c, err := newTestPlacer(&p, seed).RandomCandidate()
		require.NoError(t, err)
		require.Len(t, c.Placements, 1)
		assert.True(t, valid[c.Placements[0]], "placement %v should be valid", c.Placements[0])
	}
}

func TestRandomCandidate_AlwaysValid(t *testing.T) {
	p := testProblem()
	for seed := int64(0); seed < 100; seed++ {
		placer := newTestPlacer(p, seed)
		c, err := placer.RandomCandidate()
		require.NoError(t, err)
		assert.NoError(t, placer.Validate(c.Placements))
	}
}

func TestValidate_RejectsCollision(t *testing.T) {
	p := model.NewProblem(3, []model.Shape{bar(1), bar(1)})
	placer := newTestPlacer(&p, 1)

	err := placer.Validate([]model.Placement{{X: 0, Y: 0}, {X: 1, Y: 0, Rotation: 2}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLayout))

	var layoutErr *LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, 1, layoutErr.Shape)
}

func TestValidate_RejectsOutOfBounds(t *testing.T) {
	p := model.NewProblem(3, []model.Shape{bar(1)})
	placer := newTestPlacer(&p, 1)

	// Anchor in bounds, second cell past the sheet length.
	err := placer.Validate([]model.Placement{{X: 1, Y: 0}})
	assert.ErrorIs(t, err, ErrInvalidLayout)

	// Rotated downwards off the bottom edge.
	err = placer.Validate([]model.Placement{{X: 0, Y: 0, Rotation: 1}})
	assert.ErrorIs(t, err, ErrInvalidLayout)

	err = placer.Validate([]model.Placement{{X: 0, Y: 0, Rotation: 4}})
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestValidate_WrongGeneCount(t *testing.T) {
	placer := newTestPlacer(testProblem(), 1)
	assert.ErrorIs(t, placer.Validate(nil), ErrInvalidLayout)
}

func TestValidate_ShapeMayRevisitItsOwnCells(t *testing.T) {
	ring := model.NewShape("ring", []model.Move{
		{Dir: model.Right, Paces: 2}, {Dir: model.Up, Paces: 1}, {Dir: model.Left, Paces: 2}, {Dir: model.Down, Paces: 1},
	})
	p := model.NewProblem(3, []model.Shape{ring})
	placer := newTestPlacer(&p, 1)
	assert.NoError(t, placer.Validate([]model.Placement{{X: 0, Y: 0}}))
}

func TestEvaluate_BoundingBoxUsesAnchorsOnly(t *testing.T) {
	p := model.NewProblem(4, []model.Shape{bar(3), bar(1)})
	placer := newTestPlacer(&p, 1)

	c := placer.Evaluate([]model.Placement{{X: 0, Y: 0}, {X: 2, Y: 3}})
	assert.Equal(t, 3, c.UsedLength, "bar reaching x=3 must not count")
	assert.Equal(t, 4, c.UsedWidth)
	assert.Equal(t, p.MaxSheetLength-3, c.LengthFitness)
	assert.Equal(t, 0, c.WidthFitness)
}

func TestEvaluate_CopiesPlacements(t *testing.T) {
	placer := newTestPlacer(testProblem(), 1)
	genes := []model.Placement{{}, {X: 3}, {X: 5}, {X: 8}}
	c := placer.Evaluate(genes)
	genes[0].X = 9
	assert.Equal(t, 0, c.Placements[0].X)
}

func TestRepairOne_KeepsPreferredWhenItFits(t *testing.T) {
	p := testProblem()
	placer := newTestPlacer(p, 1)
	grid := placer.NewGrid()

	want := model.Placement{X: 4, Y: 2, Rotation: 0}
	got, err := placer.RepairOne(grid, 0, &want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, grid.Occupied(model.Cell{X: 4, Y: 2}))
	assert.True(t, grid.Occupied(model.Cell{X: 5, Y: 2}))
}

func TestRepairOne_ResamplesCollidingPreferred(t *testing.T) {
	p := testProblem()
	placer := newTestPlacer(p, 3)
	grid := placer.NewGrid()
	grid.Occupy([]model.Cell{{X: 4, Y: 2}})

	preferred := model.Placement{X: 4, Y: 2}
	got, err := placer.RepairOne(grid, 0, &preferred)
	require.NoError(t, err)
	assert.NotEqual(t, preferred, got)
}

func TestRepairOne_ResultValidAgainstNeighbours(t *testing.T) {
	p := testProblem()
	for seed := int64(0); seed < 50; seed++ {
		placer := newTestPlacer(p, seed)
		base, err := placer.RandomCandidate()
		require.NoError(t, err)

		// Fix every gene but the last, then repair the last one.
		grid := placer.NewGrid()
		last := p.ShapeCount() - 1
		for i, pl := range base.Placements[:last] {
			grid.Occupy(p.Shapes[i].Cells(pl))
		}
		pl, err := placer.RepairOne(grid, last, nil)
		require.NoError(t, err)

		genes := append(append([]model.Placement{}, base.Placements[:last]...), pl)
		assert.NoError(t, placer.Validate(genes))
	}
}

func TestRepairOne_BoundedAttemptsReportInfeasible(t *testing.T) {
	p := model.NewProblem(1, []model.Shape{bar(1)})
	placer := NewPlacer(&p, rand.New(rand.NewSource(1)), 50)
	grid := placer.NewGrid()
	grid.Occupy([]model.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}})
	require.Equal(t, 0, grid.free())

	_, err := placer.RepairOne(grid, 0, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlacementInfeasible))

	var perr *PlacementError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 0, perr.Shape)
	assert.Equal(t, 50, perr.Attempts)
}
