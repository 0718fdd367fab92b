package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Direction is one of the four unit moves a shape path can take.
type Direction byte

const (
	Left  Direction = 'L'
	Right Direction = 'R'
	Up    Direction = 'U'
	Down  Direction = 'D'
)

// rotationCycle is the order directions advance through on each quarter turn.
var rotationCycle = [4]Direction{Right, Down, Left, Up}

// ParseDirection converts a direction letter (case-insensitive) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return Left, true
	case "R":
		return Right, true
	case "U":
		return Up, true
	case "D":
		return Down, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	return string(d)
}

// MarshalText encodes a direction as its letter.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte{byte(d)}, nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("unknown direction %q", b)
	}
	*d = v
	return nil
}

// Rotate returns the direction after the given number of quarter turns.
// Right becomes Down, Down becomes Left, Left becomes Up, Up becomes Right.
func (d Direction) Rotate(quarterTurns int) Direction {
	idx := -1
	for i, c := range rotationCycle {
		if c == d {
			idx = i
			break
		}
	}
	if idx < 0 {
		return d
	}
	turns := ((quarterTurns % 4) + 4) % 4
	return rotationCycle[(idx+turns)%4]
}

// Delta returns the unit step along the length (X) and width (Y) axes.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	default:
		return 0, 0
	}
}

// Move is a single straight run of unit steps in one direction.
type Move struct {
	Dir   Direction `json:"dir"`
	Paces int       `json:"paces"` // always positive
}

func (m Move) String() string {
	return fmt.Sprintf("%s%d", m.Dir, m.Paces)
}

// Cell is one occupied grid square. X runs along the sheet length, Y along its width.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shape is a rigid rectilinear figure traced by a sequence of moves from its anchor.
// Shapes are shared by reference between all candidates and never mutated.
type Shape struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Moves []Move `json:"moves"`
}

func NewShape(label string, moves []Move) Shape {
	return Shape{
		ID:    uuid.New().String()[:8],
		Label: label,
		Moves: moves,
	}
}

// String renders the move sequence in problem-file notation, e.g. "R3 U2 L3 D2".
func (s Shape) String() string {
	parts := make([]string, len(s.Moves))
	for i, m := range s.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Cells walks the rotated move sequence from the anchor and returns one cell
// for the anchor plus one per unit pace, in walk order. A path that revisits a
// cell yields that cell more than once.
func (s Shape) Cells(p Placement) []Cell {
	cells := make([]Cell, 0, s.PathLength()+1)
	pos := Cell{X: p.X, Y: p.Y}
	cells = append(cells, pos)
	for _, m := range s.Moves {
		dx, dy := m.Dir.Rotate(p.Rotation).Delta()
		for i := 0; i < m.Paces; i++ {
			pos.X += dx
			pos.Y += dy
			cells = append(cells, pos)
		}
	}
	return cells
}

// PathLength is the total number of unit paces in the shape.
func (s Shape) PathLength() int {
	n := 0
	for _, m := range s.Moves {
		n += m.Paces
	}
	return n
}

// Extent returns the bounding width and height of the unrotated shape in cells.
func (s Shape) Extent() (width, height int) {
	var minX, maxX, minY, maxY int
	for _, c := range s.Cells(Placement{}) {
		minX = min(minX, c.X)
		maxX = max(maxX, c.X)
		minY = min(minY, c.Y)
		maxY = max(maxY, c.Y)
	}
	return maxX - minX + 1, maxY - minY + 1
}

// LargestSide is the larger of the shape's bounding width and height.
func (s Shape) LargestSide() int {
	w, h := s.Extent()
	return max(w, h)
}

// Validate reports whether every move has a known direction and a positive pace count.
func (s Shape) Validate() error {
	if len(s.Moves) == 0 {
		return fmt.Errorf("shape %q has no moves", s.Label)
	}
	for i, m := range s.Moves {
		if _, ok := ParseDirection(string(m.Dir)); !ok {
			return fmt.Errorf("shape %q move %d: unknown direction %q", s.Label, i+1, m.Dir)
		}
		if m.Paces <= 0 {
			return fmt.Errorf("shape %q move %d: pace count must be positive, got %d", s.Label, i+1, m.Paces)
		}
	}
	return nil
}
