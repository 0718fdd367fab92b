package gcode

import (
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// MoveType classifies one parsed motion command.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0 positioning
	MoveFeed                    // G1 cutting in the XY plane
	MovePlunge                  // G1 going down in Z only
	MoveRetract                 // going up in Z
)

// Move is one parsed G0/G1 command with the absolute position before and after.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

// Parse reads a program into motion commands, tracking absolute position.
// Comments and non-motion words are skipped.
func Parse(code string) []Move {
	var moves []Move
	curX, curY, curZ, curFeed := 0.0, 0.0, 0.0, 0.0

	for _, line := range strings.Split(code, "\n") {
		fields := strings.Fields(strings.ToUpper(stripComment(line)))
		if len(fields) == 0 {
			continue
		}

		var rapid bool
		switch fields[0] {
		case "G0", "G00":
			rapid = true
		case "G1", "G01":
		default:
			continue
		}

		x, y, z, feed := curX, curY, curZ, curFeed
		for _, word := range fields[1:] {
			if len(word) < 2 {
				continue
			}
			v, err := strconv.ParseFloat(word[1:], 64)
			if err != nil {
				continue
			}
			switch word[0] {
			case 'X':
				x = v
			case 'Y':
				y = v
			case 'Z':
				z = v
			case 'F':
				feed = v
			}
		}

		moves = append(moves, Move{
			Type:  classifyMove(rapid, curZ, z, curX != x || curY != y),
			FromX: curX, FromY: curY, FromZ: curZ,
			ToX: x, ToY: y, ToZ: z,
			FeedRate: feed,
		})
		curX, curY, curZ, curFeed = x, y, z, feed
	}
	return moves
}

func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.Index(line[idx:], ")"); end >= 0 {
			line = line[:idx] + line[idx+end+1:]
		} else {
			line = line[:idx]
		}
	}
	return line
}

func classifyMove(rapid bool, fromZ, toZ float64, hasXY bool) MoveType {
	dz := toZ - fromZ
	switch {
	case rapid:
		if dz > 0 {
			return MoveRetract
		}
		return MoveRapid
	case dz < -0.001 && !hasXY:
		return MovePlunge
	case dz > 0.001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

// TraceCells recovers the cut paths of a program as cell corners: one path per
// plunge, starting at the plunge point and adding every feed endpoint until
// the next retract.
func TraceCells(moves []Move, cellSize float64) [][]model.Cell {
	toCell := func(x, y float64) model.Cell {
		return model.Cell{
			X: int(math.Round(x/cellSize - 0.5)),
			Y: int(math.Round(y/cellSize - 0.5)),
		}
	}

	var paths [][]model.Cell
	var current []model.Cell
	cutting := false
	for _, m := range moves {
		switch m.Type {
		case MovePlunge:
			cutting = true
			current = []model.Cell{toCell(m.ToX, m.ToY)}
		case MoveFeed:
			if cutting {
				current = append(current, toCell(m.ToX, m.ToY))
			}
		case MoveRetract:
			if cutting {
				paths = append(paths, current)
				current = nil
			}
			cutting = false
		}
	}
	if cutting {
		paths = append(paths, current)
	}
	return paths
}
