package model

import "fmt"

// Placement is one gene: where a shape's anchor sits and how it is turned.
type Placement struct {
	X        int `json:"x"`        // anchor along the sheet length
	Y        int `json:"y"`        // anchor along the sheet width
	Rotation int `json:"rotation"` // quarter turns, 0..3
}

func (p Placement) String() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Rotation)
}

// Problem is a packing instance: a fixed-width sheet and the shapes to place on it.
type Problem struct {
	SheetWidth     int     `json:"sheet_width"`
	Shapes         []Shape `json:"shapes"`
	MaxSheetLength int     `json:"max_sheet_length"` // sum of every shape's largest side
}

// NewProblem builds a problem and derives its maximum sheet length.
func NewProblem(sheetWidth int, shapes []Shape) Problem {
	p := Problem{SheetWidth: sheetWidth, Shapes: shapes}
	for _, s := range shapes {
		p.MaxSheetLength += s.LargestSide()
	}
	return p
}

// ShapeCount returns the number of genes every candidate carries.
func (p Problem) ShapeCount() int {
	return len(p.Shapes)
}

// Validate checks the sheet width and every shape definition.
func (p Problem) Validate() error {
	if p.SheetWidth <= 0 {
		return fmt.Errorf("sheet width must be positive, got %d", p.SheetWidth)
	}
	if len(p.Shapes) == 0 {
		return fmt.Errorf("problem has no shapes")
	}
	for _, s := range p.Shapes {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
