package project

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShapeNest/internal/model"
)

func TestArchiveSaveAndQuery(t *testing.T) {
	ctx := context.Background()
	a, err := OpenArchive(ctx, filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenArchive failed: %v", err)
	}
	defer a.Close()

	batch := sampleBatch()
	id, err := a.SaveBatch(ctx, "problem.txt", model.DefaultConfig(), batch)
	if err != nil {
		t.Fatalf("SaveBatch failed: %v", err)
	}
	if _, err := a.SaveBatch(ctx, "other.txt", model.DefaultConfig(), batch); err != nil {
		t.Fatalf("second SaveBatch failed: %v", err)
	}

	batches, err := a.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if batches[1].ID != id || batches[1].ProblemPath != "problem.txt" {
		t.Errorf("expected oldest batch last, got %+v", batches[1])
	}
	if batches[1].BaseSeed != 100 || batches[1].Algorithm != model.AlgorithmEvolutionary {
		t.Errorf("unexpected batch summary %+v", batches[1])
	}

	runs, err := a.ListRuns(ctx, id)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].RunID != "abcd1234" || runs[0].FrontSize != 2 || runs[0].BestLength != 2 || runs[0].BestWidth != 1 {
		t.Errorf("unexpected run summary %+v", runs[0])
	}

	gens, err := a.LoadGenerations(ctx, id, 1)
	if err != nil {
		t.Fatalf("LoadGenerations failed: %v", err)
	}
	if len(gens) != 2 || gens[1].Evaluations != 30 || gens[1].AvgLength != 1.5 {
		t.Errorf("unexpected generations %+v", gens)
	}

	front, err := a.LoadFront(ctx, id, 1)
	if err != nil {
		t.Fatalf("LoadFront failed: %v", err)
	}
	if len(front) != 2 {
		t.Fatalf("expected 2 front members, got %d", len(front))
	}
	if front[1].Placements[1] != (model.Placement{X: 1, Y: 1, Rotation: 1}) {
		t.Errorf("unexpected placement %v", front[1].Placements[1])
	}
}

func TestOpenArchiveEmptyPath(t *testing.T) {
	if _, err := OpenArchive(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
