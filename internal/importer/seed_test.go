package importer

import (
	"strings"
	"testing"

	"github.com/piwi3910/ShapeNest/internal/model"
)

func TestParseSeeds(t *testing.T) {
	input := "2\n0,0,0\n3,1,2\n\n1,1,1\n4,0,3\n\n"
	seeds, err := ParseSeeds(strings.NewReader(input), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("expected 2 genotypes, got %d", len(seeds))
	}
	if seeds[0][1] != (model.Placement{X: 3, Y: 1, Rotation: 2}) {
		t.Errorf("unexpected gene %v", seeds[0][1])
	}
	if seeds[1][1] != (model.Placement{X: 4, Y: 0, Rotation: 3}) {
		t.Errorf("unexpected gene %v", seeds[1][1])
	}
}

func TestParseSeeds_AnySeparatorLine(t *testing.T) {
	input := "2\n0,0,0\n1,1,0\n---\n2,0,0\n0,2,1\n---\n"
	seeds, err := ParseSeeds(strings.NewReader(input), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("expected 2 genotypes, got %d", len(seeds))
	}
	if seeds[1][0] != (model.Placement{X: 2, Y: 0, Rotation: 0}) {
		t.Errorf("unexpected gene %v", seeds[1][0])
	}
	if seeds[1][1] != (model.Placement{X: 0, Y: 2, Rotation: 1}) {
		t.Errorf("unexpected gene %v", seeds[1][1])
	}
}

func TestParseSeeds_FinalSeparatorOptional(t *testing.T) {
	seeds, err := ParseSeeds(strings.NewReader("2\n0,0,0\n#\n1,1,1"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("expected 2 genotypes, got %d", len(seeds))
	}
	if seeds[1][0] != (model.Placement{X: 1, Y: 1, Rotation: 1}) {
		t.Errorf("unexpected gene %v", seeds[1][0])
	}
}

func TestParseSeeds_SeparatorIsAlwaysConsumed(t *testing.T) {
	// Without separators the second genotype's line is taken as one.
	if _, err := ParseSeeds(strings.NewReader("2\n0,0,0\n1,1,1\n"), 1); err == nil {
		t.Error("expected error when separators are missing")
	}
}

func TestParseSeeds_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"bad count":     "two\n0,0,0\n",
		"too few lines": "2\n0,0,0\n\n",
		"bad gene":      "1\n0;0;0\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseSeeds(strings.NewReader(input), 1); err == nil {
				t.Errorf("expected error for %q", input)
			}
		})
	}
}

func TestParseSeeds_NegativeCoordinatesParse(t *testing.T) {
	// Out-of-sheet genes are read; validation happens when the population is built.
	seeds, err := ParseSeeds(strings.NewReader("1\n-1,0,0\n"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seeds[0][0].X != -1 {
		t.Errorf("expected x -1, got %d", seeds[0][0].X)
	}
}
