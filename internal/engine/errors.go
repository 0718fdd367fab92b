package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/ShapeNest/internal/model"
)

var (
	// ErrPlacementInfeasible means no valid placement was found within the repair budget.
	ErrPlacementInfeasible = errors.New("placement infeasible")
	// ErrInvalidLayout means a layout has colliding or out-of-bounds placements.
	ErrInvalidLayout = errors.New("invalid layout")
	// ErrEmptyPopulation means an operator was handed no candidates to work on.
	ErrEmptyPopulation = errors.New("empty population")
)

// PlacementError reports which shape could not be placed.
type PlacementError struct {
	Shape    int
	Attempts int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("shape %d: no valid placement after %d attempts", e.Shape, e.Attempts)
}

func (e *PlacementError) Unwrap() error { return ErrPlacementInfeasible }

// LayoutError reports the first offending cell of an invalid layout.
type LayoutError struct {
	Shape  int
	Cell   model.Cell
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("shape %d at cell (%d,%d): %s", e.Shape, e.Cell.X, e.Cell.Y, e.Reason)
}

func (e *LayoutError) Unwrap() error { return ErrInvalidLayout }
