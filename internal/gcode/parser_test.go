package gcode

import "testing"

func TestParse_Empty(t *testing.T) {
	if moves := Parse(""); len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParse_CommentsOnly(t *testing.T) {
	code := "; a comment\n(parenthetical comment)\nM3 S1000\n"
	if moves := Parse(code); len(moves) != 0 {
		t.Errorf("expected 0 moves, got %d", len(moves))
	}
}

func TestParse_Classification(t *testing.T) {
	code := `G0 Z5
G0 X10 Y20
G1 Z-3 F300
G1 X30 Y20 F1200 ; cut
G0 Z5
`
	moves := Parse(code)
	want := []MoveType{MoveRetract, MoveRapid, MovePlunge, MoveFeed, MoveRetract}
	if len(moves) != len(want) {
		t.Fatalf("expected %d moves, got %d", len(want), len(moves))
	}
	for i, mt := range want {
		if moves[i].Type != mt {
			t.Errorf("move %d: expected type %d, got %d", i, mt, moves[i].Type)
		}
	}
	feed := moves[3]
	if feed.FromX != 10 || feed.ToX != 30 || feed.FeedRate != 1200 {
		t.Errorf("unexpected feed move %+v", feed)
	}
}

func TestParse_ModalFeedRate(t *testing.T) {
	moves := Parse("G1 X1 F500\nG01 X2\n")
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[1].FeedRate != 500 {
		t.Errorf("expected feed rate to carry over, got %.1f", moves[1].FeedRate)
	}
}

func TestTraceCells_UnterminatedCut(t *testing.T) {
	moves := Parse("G1 Z-1\nG1 X25 Y5\n")
	paths := TraceCells(moves, 10)
	if len(paths) != 1 || len(paths[0]) != 2 {
		t.Fatalf("expected one path of 2 points, got %v", paths)
	}
	if paths[0][1].X != 2 || paths[0][1].Y != 0 {
		t.Errorf("expected cell (2,0), got %v", paths[0][1])
	}
}
