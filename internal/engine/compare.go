package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// ComparisonScenario is a named configuration to run against a problem.
// Seeds must be set when the configuration enables seeding.
type ComparisonScenario struct {
	Name   string
	Config model.Config
	Seeds  [][]model.Placement
}

// ComparisonResult holds a scenario's batch and how its best front fares
// against the first scenario's.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Batch      BatchResult
	FrontSize  int
	BestLength int
	BestWidth  int
	// Shares of this front dominating the baseline front and of the baseline dominating it.
	DominatesBaseline   float64
	DominatedByBaseline float64
}

// CompareScenarios runs every scenario on the same problem and returns the
// results in scenario order. The first scenario is the baseline.
func CompareScenarios(ctx context.Context, problem *model.Problem, scenarios []ComparisonScenario, logger *slog.Logger) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		cfg := scenario.Config
		if cfg.Algorithm == model.AlgorithmEvolutionary && cfg.Seeding.Enabled && scenario.Seeds == nil {
			return results, fmt.Errorf("scenario %q: seeding is enabled but no seeds were loaded", scenario.Name)
		}
		runner := &Runner{Problem: problem, Config: cfg, Seeds: scenario.Seeds, Logger: logger}
		batch, err := runner.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		res := ComparisonResult{
			Scenario:  scenario,
			Batch:     batch,
			FrontSize: len(batch.BestFront),
		}
		for i, c := range batch.BestFront {
			if i == 0 || c.LengthFitness > res.BestLength {
				res.BestLength = c.LengthFitness
			}
			if i == 0 || c.WidthFitness > res.BestWidth {
				res.BestWidth = c.WidthFitness
			}
		}
		if len(results) > 0 {
			res.DominatesBaseline, res.DominatedByBaseline = FrontDominanceProportions(batch.BestFront, results[0].Batch.BestFront)
		}
		results = append(results, res)
	}

	return results, nil
}

// BuildScenarios turns preset names into scenarios sharing the base
// configuration's budget, run count and seed. Only the base scenario keeps
// its seeding settings; the caller attaches its seeds.
func BuildScenarios(base model.Config, presetNames []string) ([]ComparisonScenario, error) {
	scenarios := []ComparisonScenario{{Name: "current", Config: base}}
	for _, name := range presetNames {
		cfg, ok := model.GetPreset(name)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		cfg.Runs = base.Runs
		cfg.Evaluations = base.Evaluations
		cfg.RNG = base.RNG
		cfg.MaxRepairAttempts = base.MaxRepairAttempts
		cfg.Seeding = model.SeedingConfig{}
		cfg.Output = model.OutputConfig{}
		scenarios = append(scenarios, ComparisonScenario{Name: name, Config: cfg})
	}
	return scenarios, nil
}
