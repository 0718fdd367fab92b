package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// RunResult is the outcome of one independent run of a batch.
type RunResult struct {
	Run         int               `json:"run"` // 1-based
	ID          string            `json:"id"`
	Seed        int64             `json:"seed"`
	Evaluations int               `json:"evaluations"`
	Front       model.Front       `json:"front"`
	Generations []GenerationStats `json:"generations,omitempty"`

	// Random search only.
	Best         *model.Candidate `json:"best,omitempty"`
	Improvements []Improvement    `json:"improvements,omitempty"`

	DiscardedSeeds   int `json:"discarded_seeds,omitempty"`
	AbortedOffspring int `json:"aborted_offspring,omitempty"`
}

// BatchResult collects every run of a batch and the best front across them.
type BatchResult struct {
	BaseSeed  int64       `json:"base_seed"`
	Runs      []RunResult `json:"runs"`
	BestFront model.Front `json:"best_front"`
	BestRun   int         `json:"best_run"`
}

// Runner executes the configured number of independent runs. Run i (0-based)
// draws from its own stream seeded with BaseSeed+i.
type Runner struct {
	Problem *model.Problem
	Config  model.Config
	Seeds   [][]model.Placement
	Logger  *slog.Logger

	// OnGeneration is called with the run number and statistics of each
	// generation. With ParallelRuns above 1 it is called from several goroutines.
	OnGeneration func(run int, stats GenerationStats)
	// OnImprovement is the random-search counterpart of OnGeneration.
	OnImprovement func(run int, imp Improvement)

	// Now is the clock used for time-derived seeds. Nil means time.Now.
	Now func() time.Time
}

// BaseSeed returns the seed of the first run.
func (r *Runner) BaseSeed() int64 {
	if r.Config.RNG.Mode == model.RNGSeed {
		return r.Config.RNG.Seed
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return now().UnixNano()
}

// Run executes every run and selects the best front in run order.
func (r *Runner) Run(ctx context.Context) (BatchResult, error) {
	if err := r.Config.Validate(); err != nil {
		return BatchResult{}, fmt.Errorf("invalid config: %w", err)
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	batch := BatchResult{
		BaseSeed: r.BaseSeed(),
		Runs:     make([]RunResult, r.Config.Runs),
	}
	logger.Info("starting batch",
		"algorithm", r.Config.Algorithm,
		"runs", r.Config.Runs,
		"evaluations", r.Config.Evaluations,
		"base_seed", batch.BaseSeed,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Config.ParallelRuns))
	for i := 0; i < r.Config.Runs; i++ {
		i := i
		g.Go(func() error {
			seed := batch.BaseSeed + int64(i)
			res, err := r.runOne(gctx, i+1, seed, logger)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			batch.Runs[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return batch, err
	}

	batch.BestFront, batch.BestRun = r.selectBest(batch.Runs)
	logger.Info("batch finished", "best_run", batch.BestRun, "front_size", len(batch.BestFront))
	return batch, nil
}

func (r *Runner) runOne(ctx context.Context, run int, seed int64, logger *slog.Logger) (RunResult, error) {
	res := RunResult{
		Run:  run,
		ID:   uuid.New().String()[:8],
		Seed: seed,
	}
	rng := rand.New(rand.NewSource(seed))
	logger = logger.With("run", run, "run_id", res.ID)

	if r.Config.Algorithm == model.AlgorithmRandom {
		var onImp func(Improvement)
		if r.OnImprovement != nil {
			onImp = func(imp Improvement) { r.OnImprovement(run, imp) }
		}
		search, err := NewRandomSearch(r.Problem, r.Config.Evaluations, r.Config.MaxRepairAttempts, rng, logger, onImp)
		if err != nil {
			return res, err
		}
		out, err := search.Run(ctx)
		if err != nil {
			return res, err
		}
		res.Evaluations = r.Config.Evaluations
		res.Best = out.Best
		res.Improvements = out.Improvements
		res.Front = out.Archive
		return res, nil
	}

	var onGen func(GenerationStats)
	if r.OnGeneration != nil {
		onGen = func(s GenerationStats) { r.OnGeneration(run, s) }
	}
	ev, err := NewEvolver(r.Problem, r.Config, rng, Options{
		Logger:       logger,
		Seeds:        r.Seeds,
		OnGeneration: onGen,
	})
	if err != nil {
		return res, err
	}
	front, err := ev.Run(ctx)
	if err != nil {
		return res, err
	}
	res.Front = front
	res.Evaluations = ev.Evaluations()
	res.Generations = ev.History().Generations
	res.DiscardedSeeds = ev.DiscardedSeeds()
	res.AbortedOffspring = ev.AbortedOffspring()
	return res, nil
}

// selectBest walks the runs in order. For the evolutionary search a run's
// front replaces the best when a larger share of it dominates; for random
// search the single best-by-length candidate wins, earliest run on ties.
func (r *Runner) selectBest(runs []RunResult) (model.Front, int) {
	if len(runs) == 0 {
		return nil, 0
	}
	if r.Config.Algorithm == model.AlgorithmRandom {
		best := runs[0]
		for _, run := range runs[1:] {
			if run.Best.LengthFitness > best.Best.LengthFitness {
				best = run
			}
		}
		return model.Front{best.Best}, best.Run
	}
	best := runs[0]
	for _, run := range runs[1:] {
		if pA, pB := FrontDominanceProportions(run.Front, best.Front); pA > pB {
			best = run
		}
	}
	return best.Front, best.Run
}
