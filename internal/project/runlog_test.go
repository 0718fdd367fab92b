package project

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/importer"
	"github.com/piwi3910/ShapeNest/internal/model"
)

func sampleProblem() model.Problem {
	return model.NewProblem(3, []model.Shape{
		model.NewShape("S1", []model.Move{{Dir: model.Right, Paces: 1}}),
		model.NewShape("S2", []model.Move{{Dir: model.Up, Paces: 2}, {Dir: model.Left, Paces: 1}}),
	})
}

func sampleBatch() engine.BatchResult {
	front := model.Front{
		{Placements: []model.Placement{{X: 0, Y: 0, Rotation: 0}, {X: 2, Y: 0, Rotation: 0}}, LengthFitness: 2, WidthFitness: 0},
		{Placements: []model.Placement{{X: 0, Y: 2, Rotation: 0}, {X: 1, Y: 1, Rotation: 1}}, LengthFitness: 1, WidthFitness: 1},
	}
	return engine.BatchResult{
		BaseSeed:  100,
		BestRun:   1,
		BestFront: front,
		Runs: []engine.RunResult{{
			Run: 1, ID: "abcd1234", Seed: 100, Evaluations: 30, Front: front,
			Generations: []engine.GenerationStats{
				{Generation: 0, Evaluations: 20, AvgLength: 0.5, BestLength: 1, AvgWidth: 0.25, BestWidth: 1, FrontSize: 1},
				{Generation: 1, Evaluations: 30, AvgLength: 1.5, BestLength: 2, AvgWidth: 0.5, BestWidth: 1, FrontSize: 2, FrontImproved: true},
			},
		}},
	}
}

func TestWriteRunLog(t *testing.T) {
	var buf bytes.Buffer
	header := LogHeader{ProblemPath: "p.txt", ConfigPath: "c.json", Seed: 100}
	if err := WriteRunLog(&buf, header, sampleBatch()); err != nil {
		t.Fatalf("WriteRunLog failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Result Log\n", "Problem: p.txt\n", "Config: c.json\n", "Seed: 100\n", "\nRun 1\n",
		"20\t0.5000\t1\t0.2500\t1\n", "30\t1.5000\t2\t0.5000\t1\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteRunLogRandomSearch(t *testing.T) {
	batch := engine.BatchResult{Runs: []engine.RunResult{{
		Run:          1,
		Best:         &model.Candidate{LengthFitness: 4},
		Improvements: []engine.Improvement{{Evaluation: 1, LengthFitness: 2}, {Evaluation: 9, LengthFitness: 4}},
	}}}
	var buf bytes.Buffer
	if err := WriteRunLog(&buf, LogHeader{}, batch); err != nil {
		t.Fatalf("WriteRunLog failed: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "Run 1\n1\t2\n9\t4\n") {
		t.Errorf("unexpected random search log:\n%s", buf.String())
	}
}

func TestWriteSolutionReadsBackAsSeeds(t *testing.T) {
	batch := sampleBatch()
	var buf bytes.Buffer
	if err := WriteSolution(&buf, batch.BestFront); err != nil {
		t.Fatalf("WriteSolution failed: %v", err)
	}
	seeds, err := importer.ParseSeeds(&buf, 2)
	if err != nil {
		t.Fatalf("ParseSeeds failed: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("expected 2 genotypes, got %d", len(seeds))
	}
	if seeds[1][1] != (model.Placement{X: 1, Y: 1, Rotation: 1}) {
		t.Errorf("unexpected placement %v", seeds[1][1])
	}
}

func TestWriteProblemReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "problem.txt")
	p := sampleProblem()
	if err := WriteFile(path, func(w io.Writer) error { return WriteProblem(w, p) }); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "3 2\nR1\nU2 L1\n" {
		t.Errorf("unexpected problem file %q", string(data))
	}
	loaded, err := importer.LoadProblem(path)
	if err != nil {
		t.Fatalf("LoadProblem failed: %v", err)
	}
	if loaded.MaxSheetLength != p.MaxSheetLength {
		t.Errorf("expected max length %d, got %d", p.MaxSheetLength, loaded.MaxSheetLength)
	}
}
