package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/model"
)

// BundleVersion is written to every bundle; bundles without one are rejected.
const BundleVersion = "1.0.0"

// Bundle is everything needed to re-render reports for a finished batch.
type Bundle struct {
	Version     string             `json:"version"`
	CreatedAt   string             `json:"created_at"`
	ProblemPath string             `json:"problem_path,omitempty"`
	Problem     model.Problem      `json:"problem"`
	Config      model.Config       `json:"config"`
	Batch       engine.BatchResult `json:"batch"`
}

// ExportBundle writes a batch with its problem and config as indented JSON.
func ExportBundle(path, problemPath string, problem model.Problem, cfg model.Config, batch engine.BatchResult) error {
	bundle := Bundle{
		Version:     BundleVersion,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		ProblemPath: problemPath,
		Problem:     problem,
		Config:      cfg,
		Batch:       batch,
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bundle file: %w", err)
	}
	return nil
}

// ImportBundle reads a bundle written by ExportBundle.
func ImportBundle(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read bundle file: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("failed to parse bundle file: %w", err)
	}
	if bundle.Version == "" {
		return Bundle{}, fmt.Errorf("invalid bundle file: missing version field")
	}
	if err := bundle.Problem.Validate(); err != nil {
		return Bundle{}, fmt.Errorf("invalid bundle file: %w", err)
	}
	return bundle, nil
}
