package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShapeNest/internal/model"
)

func TestExportAndImportBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "bundle.json")
	cfg := model.DefaultConfig()
	cfg.Runs = 1

	if err := ExportBundle(path, "problem.txt", sampleProblem(), cfg, sampleBatch()); err != nil {
		t.Fatalf("ExportBundle failed: %v", err)
	}
	bundle, err := ImportBundle(path)
	if err != nil {
		t.Fatalf("ImportBundle failed: %v", err)
	}
	if bundle.Version != BundleVersion {
		t.Errorf("expected version %s, got %s", BundleVersion, bundle.Version)
	}
	if bundle.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if bundle.ProblemPath != "problem.txt" {
		t.Errorf("expected problem path, got %q", bundle.ProblemPath)
	}
	if len(bundle.Problem.Shapes) != 2 || bundle.Problem.SheetWidth != 3 {
		t.Errorf("unexpected problem %+v", bundle.Problem)
	}
	if len(bundle.Batch.BestFront) != 2 {
		t.Fatalf("expected 2 front members, got %d", len(bundle.Batch.BestFront))
	}
	if len(bundle.Batch.Runs[0].Generations) != 2 {
		t.Errorf("expected generation stats to survive, got %d", len(bundle.Batch.Runs[0].Generations))
	}
}

func TestImportBundleMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	if err := os.WriteFile(path, []byte(`{"problem": {"sheet_width": 3}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportBundle(path); err == nil {
		t.Fatal("expected error for bundle without version")
	}
}

func TestImportBundleMissingFile(t *testing.T) {
	if _, err := ImportBundle(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
