package importer

import (
	"testing"

	"github.com/piwi3910/ShapeNest/internal/model"
)

func TestPathToMoves(t *testing.T) {
	pts := []point{{0, 0}, {30, 0}, {30, 20}, {30, 20}, {0, 20}, {0, 0}}
	moves, err := pathToMoves(pts, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.Move{
		{Dir: model.Right, Paces: 3},
		{Dir: model.Up, Paces: 2},
		{Dir: model.Left, Paces: 3},
		{Dir: model.Down, Paces: 2},
	}
	if len(moves) != len(want) {
		t.Fatalf("expected %d moves, got %v", len(want), moves)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d: expected %v, got %v", i, want[i], moves[i])
		}
	}
}

func TestPathToMoves_Rejects(t *testing.T) {
	if _, err := pathToMoves([]point{{0, 0}, {1, 1}}, 1); err == nil {
		t.Error("expected error for diagonal segment")
	}
	if _, err := pathToMoves([]point{{0, 0}, {1.5, 0}}, 1); err == nil {
		t.Error("expected error for fractional length")
	}
	if _, err := pathToMoves([]point{{2, 2}, {2, 2}}, 1); err == nil {
		t.Error("expected error for zero-length path")
	}
}

func TestChainSegments(t *testing.T) {
	segs := []segment{
		{start: point{0, 0}, end: point{2, 0}},
		{start: point{5, 5}, end: point{5, 7}},
		{start: point{2, 1}, end: point{2, 0}}, // reversed
		{start: point{2, 1}, end: point{0, 1}},
	}
	paths := chainSegments(segs, 0.01)
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	want := []point{{0, 0}, {2, 0}, {2, 1}, {0, 1}}
	if len(paths[0]) != len(want) {
		t.Fatalf("expected %d points, got %v", len(want), paths[0])
	}
	for i := range want {
		if paths[0][i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], paths[0][i])
		}
	}
}

func TestImportDXF_MissingFile(t *testing.T) {
	if result := ImportDXF("/nonexistent/shapes.dxf", 1); len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}
