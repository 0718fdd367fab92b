package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ShapeNest/internal/model"
)

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("R3 U2 l3 d2")
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
		t.Fatalf("expected %d moves, got %d", len(want), len(moves))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d: expected %v, got %v", i, want[i], moves[i])
		}
	}
}

func TestParseMoves_MultiDigitPaces(t *testing.T) {
	moves, err := ParseMoves("R12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moves) != 1 || moves[0].Paces != 12 {
		t.Errorf("expected R12, got %v", moves)
	}
}

func TestParseMoves_Invalid(t *testing.T) {
	for _, s := range []string{"X3", "R", "R-2", "3R", "R2,U1"} {
		if _, err := ParseMoves(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestParsePlacement(t *testing.T) {
	pl, err := ParsePlacement(" 4, 2,3 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pl != (model.Placement{X: 4, Y: 2, Rotation: 3}) {
		t.Errorf("unexpected placement %v", pl)
	}

	if _, err := ParsePlacement("4,2"); err == nil {
		t.Error("expected error for missing rotation")
	}
}

func TestParseProblem(t *testing.T) {
	input := "3 2\nR1\n\nU2 R1\n"
	p, err := ParseProblem(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SheetWidth != 3 {
		t.Errorf("expected sheet width 3, got %d", p.SheetWidth)
	}
	if p.ShapeCount() != 2 {
		t.Fatalf("expected 2 shapes, got %d", p.ShapeCount())
	}
	if p.Shapes[1].String() != "U2 R1" {
		t.Errorf("expected second shape U2 R1, got %s", p.Shapes[1])
	}
	if p.MaxSheetLength != 2+3 {
		t.Errorf("expected max sheet length 5, got %d", p.MaxSheetLength)
	}
}

func TestParseProblem_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"short header":    "3\nR1\n",
		"zero width":      "0 1\nR1\n",
		"count mismatch":  "3 2\nR1\n",
		"too many shapes": "3 1\nR1\nU1\n",
		"bad move":        "3 1\nQ1\n",
		"zero paces":      "3 1\nR0\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseProblem(strings.NewReader(input)); err == nil {
				t.Errorf("expected error for %q", input)
			}
		})
	}
}

func TestParseProblem_ErrorNamesLine(t *testing.T) {
	_, err := ParseProblem(strings.NewReader("3 2\nR1\n\nR1 X\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("expected error to name line 4, got %v", err)
	}
}

func TestLoadProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.txt")
	if err := os.WriteFile(path, []byte("5 1\nR3 U2 L3 D2\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	p, err := LoadProblem(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MaxSheetLength != 4 {
		t.Errorf("expected max sheet length 4, got %d", p.MaxSheetLength)
	}

	if _, err := LoadProblem(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
