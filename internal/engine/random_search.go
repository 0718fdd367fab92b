package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// Improvement marks an evaluation at which the best length fitness rose.
type Improvement struct {
	Evaluation    int `json:"evaluation"`
	LengthFitness int `json:"length_fitness"`
}

// RandomSearchResult is the outcome of one random-search run.
type RandomSearchResult struct {
	Best         *model.Candidate
	Improvements []Improvement
	// Archive holds the non-dominated candidates seen, one per fitness pair.
	Archive model.Front
}

// RandomSearch samples independent random layouts as a baseline for the
// evolutionary search.
type RandomSearch struct {
	placer        *Placer
	budget        int
	logger        *slog.Logger
	onImprovement func(Improvement)
}

// NewRandomSearch prepares a random search spending the given number of evaluations.
func NewRandomSearch(problem *model.Problem, budget, maxRepairAttempts int, rng *rand.Rand, logger *slog.Logger, onImprovement func(Improvement)) (*RandomSearch, error) {
	if rng == nil {
		return nil, errNoRandomSource
	}
	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	if budget <= 0 {
		return nil, fmt.Errorf("evaluations must be positive, got %d", budget)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RandomSearch{
		placer:        NewPlacer(problem, rng, maxRepairAttempts),
		budget:        budget,
		logger:        logger,
		onImprovement: onImprovement,
	}, nil
}

// Run draws the budgeted number of candidates. The first candidate always
// counts as an improvement.
func (s *RandomSearch) Run(ctx context.Context) (RandomSearchResult, error) {
	var res RandomSearchResult
	for eval := 1; eval <= s.budget; eval++ {
		if eval%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		c, err := s.placer.RandomCandidate()
		if err != nil {
			return res, err
		}
		res.Archive = addToArchive(res.Archive, c)

		if res.Best == nil || c.LengthFitness > res.Best.LengthFitness {
			res.Best = c
			imp := Improvement{Evaluation: eval, LengthFitness: c.LengthFitness}
			res.Improvements = append(res.Improvements, imp)
			s.logger.Debug("improvement", "evaluation", eval, "length_fitness", c.LengthFitness)
			if s.onImprovement != nil {
				s.onImprovement(imp)
			}
		}
	}
	s.logger.Info("random search finished",
		"evaluations", s.budget,
		"best_length_fitness", res.Best.LengthFitness,
		"archive_size", len(res.Archive),
	)
	return res, nil
}

// addToArchive inserts c unless it is dominated or repeats a fitness pair
// already present, dropping the members it dominates.
func addToArchive(archive model.Front, c *model.Candidate) model.Front {
	for _, m := range archive {
		if Dominates(m, c) {
			return archive
		}
		if m.LengthFitness == c.LengthFitness && m.WidthFitness == c.WidthFitness {
			return archive
		}
	}
	kept := archive[:0]
	for _, m := range archive {
		if !Dominates(c, m) {
			kept = append(kept, m)
		}
	}
	return append(kept, c)
}
