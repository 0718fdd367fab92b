package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/model"
)

// Archive is a SQLite store of finished batches, their runs, per-generation
// statistics and final fronts.
type Archive struct {
	db *sql.DB
}

// BatchSummary is one archived batch.
type BatchSummary struct {
	ID          int64
	CreatedAt   time.Time
	ProblemPath string
	Algorithm   model.Algorithm
	BaseSeed    int64
	Runs        int
	BestRun     int
}

// RunSummary is one archived run.
type RunSummary struct {
	BatchID     int64
	Run         int
	RunID       string
	Seed        int64
	Evaluations int
	FrontSize   int
	BestLength  int
	BestWidth   int
}

// OpenArchive opens or creates the archive database at path.
func OpenArchive(ctx context.Context, path string) (*Archive, error) {
	if path == "" {
		return nil, errors.New("archive path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create archive tables: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func createTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			problem_path TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			base_seed INTEGER NOT NULL,
			runs INTEGER NOT NULL,
			best_run INTEGER NOT NULL,
			config TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			batch_id INTEGER NOT NULL REFERENCES batches(id),
			run INTEGER NOT NULL,
			run_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			evaluations INTEGER NOT NULL,
			front_size INTEGER NOT NULL,
			best_length INTEGER NOT NULL,
			best_width INTEGER NOT NULL,
			PRIMARY KEY (batch_id, run)
		)`,
		`CREATE TABLE IF NOT EXISTS generations (
			batch_id INTEGER NOT NULL,
			run INTEGER NOT NULL,
			generation INTEGER NOT NULL,
			evaluations INTEGER NOT NULL,
			avg_length REAL NOT NULL,
			best_length INTEGER NOT NULL,
			avg_width REAL NOT NULL,
			best_width INTEGER NOT NULL,
			front_size INTEGER NOT NULL,
			PRIMARY KEY (batch_id, run, generation)
		)`,
		`CREATE TABLE IF NOT EXISTS fronts (
			batch_id INTEGER NOT NULL,
			run INTEGER NOT NULL,
			member INTEGER NOT NULL,
			length_fitness INTEGER NOT NULL,
			width_fitness INTEGER NOT NULL,
			placements TEXT NOT NULL,
			PRIMARY KEY (batch_id, run, member)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveBatch stores a batch in a single transaction and returns its ID.
func (a *Archive) SaveBatch(ctx context.Context, problemPath string, cfg model.Config, batch engine.BatchResult) (int64, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error in db execution: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO batches (created_at, problem_path, algorithm, base_seed, runs, best_run, config)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, time.Now().UTC().Format(time.RFC3339), problemPath, string(cfg.Algorithm),
		batch.BaseSeed, len(batch.Runs), batch.BestRun, string(cfgJSON))
	if err != nil {
		return 0, fmt.Errorf("error in db execution: %w", err)
	}
	batchID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error in db execution: %w", err)
	}

	for _, run := range batch.Runs {
		bestL, bestW := frontBests(run.Front)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO runs (batch_id, run, run_id, seed, evaluations, front_size, best_length, best_width)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, batchID, run.Run, run.ID, run.Seed, run.Evaluations, len(run.Front), bestL, bestW); err != nil {
			return 0, fmt.Errorf("error in db execution: %w", err)
		}
		for _, g := range run.Generations {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO generations (batch_id, run, generation, evaluations, avg_length, best_length, avg_width, best_width, front_size)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, batchID, run.Run, g.Generation, g.Evaluations, g.AvgLength, g.BestLength, g.AvgWidth, g.BestWidth, g.FrontSize); err != nil {
				return 0, fmt.Errorf("error in db execution: %w", err)
			}
		}
		for i, c := range run.Front {
			placements, err := json.Marshal(c.Placements)
			if err != nil {
				return 0, fmt.Errorf("failed to marshal placements: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO fronts (batch_id, run, member, length_fitness, width_fitness, placements)
				VALUES (?, ?, ?, ?, ?, ?)
			`, batchID, run.Run, i, c.LengthFitness, c.WidthFitness, string(placements)); err != nil {
				return 0, fmt.Errorf("error in db execution: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error in db execution: %w", err)
	}
	return batchID, nil
}

func frontBests(front model.Front) (int, int) {
	if len(front) == 0 {
		return 0, 0
	}
	l, w := front[0].LengthFitness, front[0].WidthFitness
	for _, c := range front[1:] {
		l = max(l, c.LengthFitness)
		w = max(w, c.WidthFitness)
	}
	return l, w
}

// ListBatches returns every archived batch, newest first.
func (a *Archive) ListBatches(ctx context.Context) ([]BatchSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, created_at, problem_path, algorithm, base_seed, runs, best_run
		FROM batches ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	defer rows.Close()

	var out []BatchSummary
	for rows.Next() {
		var b BatchSummary
		var created, algorithm string
		if err := rows.Scan(&b.ID, &created, &b.ProblemPath, &algorithm, &b.BaseSeed, &b.Runs, &b.BestRun); err != nil {
			return nil, fmt.Errorf("error in db execution: %w", err)
		}
		b.Algorithm = model.Algorithm(algorithm)
		b.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListRuns returns the runs of a batch in run order.
func (a *Archive) ListRuns(ctx context.Context, batchID int64) ([]RunSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT batch_id, run, run_id, seed, evaluations, front_size, best_length, best_width
		FROM runs WHERE batch_id = ? ORDER BY run
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.BatchID, &r.Run, &r.RunID, &r.Seed, &r.Evaluations, &r.FrontSize, &r.BestLength, &r.BestWidth); err != nil {
			return nil, fmt.Errorf("error in db execution: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadGenerations returns the per-generation statistics of one run.
func (a *Archive) LoadGenerations(ctx context.Context, batchID int64, run int) ([]engine.GenerationStats, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT generation, evaluations, avg_length, best_length, avg_width, best_width, front_size
		FROM generations WHERE batch_id = ? AND run = ? ORDER BY generation
	`, batchID, run)
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	defer rows.Close()

	var out []engine.GenerationStats
	for rows.Next() {
		var g engine.GenerationStats
		if err := rows.Scan(&g.Generation, &g.Evaluations, &g.AvgLength, &g.BestLength, &g.AvgWidth, &g.BestWidth, &g.FrontSize); err != nil {
			return nil, fmt.Errorf("error in db execution: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// LoadFront returns the final front of one run with its stored fitness.
func (a *Archive) LoadFront(ctx context.Context, batchID int64, run int) (model.Front, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT length_fitness, width_fitness, placements
		FROM fronts WHERE batch_id = ? AND run = ? ORDER BY member
	`, batchID, run)
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	defer rows.Close()

	var front model.Front
	for rows.Next() {
		c := &model.Candidate{}
		var placements string
		if err := rows.Scan(&c.LengthFitness, &c.WidthFitness, &placements); err != nil {
			return nil, fmt.Errorf("error in db execution: %w", err)
		}
		if err := json.Unmarshal([]byte(placements), &c.Placements); err != nil {
			return nil, fmt.Errorf("decode front member: %w", err)
		}
		front = append(front, c)
	}
	return front, rows.Err()
}
