package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// point is a DXF vertex in drawing units.
type point struct{ x, y float64 }

type segment struct{ start, end point }

// ImportDXF reads shape paths from a DXF drawing. Each LWPOLYLINE, and each
// chain of connected LINE entities, becomes one shape whose moves follow the
// vertices in drawing order. Segments must be axis-aligned and a whole number
// of unit cells long.
func ImportDXF(path string, unit float64) ImportResult {
	var result ImportResult
	if unit <= 0 {
		unit = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}
	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var paths [][]point
	var segs []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			pts := make([]point, len(e.Vertices))
			for i, v := range e.Vertices {
				pts[i] = point{v[0], v[1]}
			}
			paths = append(paths, pts)
		case *entity.Line:
			segs = append(segs, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		}
	}
	paths = append(paths, chainSegments(segs, unit*0.01)...)

	if len(paths) == 0 {
		result.Errors = append(result.Errors, "No shape paths found in DXF file")
		return result
	}

	for i, pts := range paths {
		moves, err := pathToMoves(pts, unit)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Path %d: %v", i+1, err))
			continue
		}
		result.Shapes = append(result.Shapes, model.NewShape(fmt.Sprintf("DXF Shape %d", i+1), moves))
	}
	return result
}

// pathToMoves converts consecutive vertices into unit moves. Zero-length
// segments are dropped.
func pathToMoves(pts []point, unit float64) ([]model.Move, error) {
	var moves []model.Move
	for i := 1; i < len(pts); i++ {
		dx := (pts[i].x - pts[i-1].x) / unit
		dy := (pts[i].y - pts[i-1].y) / unit
		const tol = 1e-6

		var dir model.Direction
		var length float64
		switch {
		case math.Abs(dx) < tol && math.Abs(dy) < tol:
			continue
		case math.Abs(dy) < tol:
			dir, length = model.Right, dx
			if dx < 0 {
				dir, length = model.Left, -dx
			}
		case math.Abs(dx) < tol:
			dir, length = model.Up, dy
			if dy < 0 {
				dir, length = model.Down, -dy
			}
		default:
			return nil, fmt.Errorf("segment %d is not axis-aligned", i)
		}

		paces := math.Round(length)
		if math.Abs(length-paces) > 0.01 {
			return nil, fmt.Errorf("segment %d length %.3f is not a whole number of cells", i, length)
		}
		moves = append(moves, model.Move{Dir: dir, Paces: int(paces)})
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("path has no non-zero segments")
	}
	return moves, nil
}

// chainSegments joins segments end to start into paths, flipping a segment
// when its end meets the current tail. Chains may be open or closed.
func chainSegments(segs []segment, tolerance float64) [][]point {
	used := make([]bool, len(segs))
	var paths [][]point

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := []point{segs[start].start, segs[start].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, s := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(tail, s.start, tolerance):
					chain = append(chain, s.end)
				case pointsClose(tail, s.end, tolerance):
					chain = append(chain, s.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}
		paths = append(paths, chain)
	}
	return paths
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}
