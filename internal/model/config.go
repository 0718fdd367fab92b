package model

import (
	"errors"
	"fmt"
)

// Algorithm selects the search strategy.
type Algorithm string

const (
	AlgorithmEvolutionary Algorithm = "ea"     // Multi-objective evolutionary search
	AlgorithmRandom       Algorithm = "random" // Pure random sampling baseline
)

// RNGMode selects how each run's random stream is seeded.
type RNGMode string

const (
	RNGSeed RNGMode = "seed" // Use Config.RNG.Seed
	RNGTime RNGMode = "time" // Derive the seed from the wall clock
)

// ParentSelection names the parent selection operator.
type ParentSelection string

const (
	ParentTournament   ParentSelection = "k-tournament"
	ParentProportional ParentSelection = "fitness-proportional"
	ParentUniform      ParentSelection = "uniform-random"
)

// SurvivalStrategy decides which pool survivors are drawn from.
type SurvivalStrategy string

const (
	SurvivalComma SurvivalStrategy = "comma" // offspring only
	SurvivalPlus  SurvivalStrategy = "plus"  // offspring and parents
)

// SurvivalSelection names the survivor selection operator.
type SurvivalSelection string

const (
	SurvivalUniform      SurvivalSelection = "uniform-random"
	SurvivalTruncation   SurvivalSelection = "truncation"
	SurvivalProportional SurvivalSelection = "fitness-proportional"
	SurvivalTournament   SurvivalSelection = "k-tournament"
)

// TerminationMode decides when a run stops.
type TerminationMode string

const (
	TerminateEvaluations TerminationMode = "evaluations"        // budget exhausted
	TerminateStagnation  TerminationMode = "no-change-in-front" // budget exhausted or front stagnant
)

// RNGConfig controls random stream seeding.
type RNGConfig struct {
	Mode RNGMode `json:"mode"`
	Seed int64   `json:"seed"`
}

// SeedingConfig controls initial population seeding from a file.
type SeedingConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// SurvivalConfig controls how the next population is formed.
type SurvivalConfig struct {
	Strategy  SurvivalStrategy  `json:"strategy"`
	Selection SurvivalSelection `json:"selection"`
}

// TerminationConfig controls when a run ends before its budget is spent.
type TerminationConfig struct {
	Mode                  TerminationMode `json:"mode"`
	StagnationGenerations int             `json:"stagnation_generations"`
}

// OutputConfig lists the artifacts a batch writes. Empty paths are skipped.
type OutputConfig struct {
	LogPath      string `json:"log_path"`
	SolutionPath string `json:"solution_path"`
	BundlePath   string `json:"bundle_path"`
	ArchivePath  string `json:"archive_path"`
	ReportDir    string `json:"report_dir"`
}

// Config holds every experiment parameter.
type Config struct {
	Algorithm    Algorithm `json:"algorithm"`
	Runs         int       `json:"runs"`
	Evaluations  int       `json:"evaluations"`
	ParallelRuns int       `json:"parallel_runs"` // independent runs evaluated concurrently
	RNG          RNGConfig `json:"rng"`

	Seeding         SeedingConfig     `json:"seeding"`
	ParentSelection ParentSelection   `json:"parent_selection"`
	Survival        SurvivalConfig    `json:"survival"`
	Termination     TerminationConfig `json:"termination"`

	Mu                     int     `json:"mu"`     // population size
	Lambda                 int     `json:"lambda"` // offspring per generation
	ParentTournamentSize   int     `json:"parent_tournament_size"`
	SurvivalTournamentSize int     `json:"survival_tournament_size"`
	MutationRate           float64 `json:"mutation_rate"`
	MaxRepairAttempts      int     `json:"max_repair_attempts"` // 0 retries without a cap

	Output OutputConfig `json:"output"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Algorithm:    AlgorithmEvolutionary,
		Runs:         1,
		Evaluations:  10000,
		ParallelRuns: 1,
		RNG:          RNGConfig{Mode: RNGTime},

		ParentSelection: ParentTournament,
		Survival: SurvivalConfig{
			Strategy:  SurvivalPlus,
			Selection: SurvivalTruncation,
		},
		Termination: TerminationConfig{
			Mode:                  TerminateEvaluations,
			StagnationGenerations: 50,
		},

		Mu:                     100,
		Lambda:                 50,
		ParentTournamentSize:   5,
		SurvivalTournamentSize: 5,
		MutationRate:           0.05,
		MaxRepairAttempts:      100000,

		Output: OutputConfig{
			LogPath:      "results/run.log",
			SolutionPath: "results/solution.txt",
		},
	}
}

// Validate reports every invalid field. The returned error joins one error per problem.
func (c Config) Validate() error {
	var errs []error
	switch c.Algorithm {
	case AlgorithmEvolutionary, AlgorithmRandom:
	default:
		errs = append(errs, fmt.Errorf("unknown algorithm %q", c.Algorithm))
	}
	if c.Runs <= 0 {
		errs = append(errs, fmt.Errorf("runs must be positive, got %d", c.Runs))
	}
	if c.Evaluations <= 0 {
		errs = append(errs, fmt.Errorf("evaluations must be positive, got %d", c.Evaluations))
	}
	if c.ParallelRuns < 0 {
		errs = append(errs, fmt.Errorf("parallel_runs must not be negative, got %d", c.ParallelRuns))
	}
	switch c.RNG.Mode {
	case RNGSeed, RNGTime:
	default:
		errs = append(errs, fmt.Errorf("unknown rng mode %q", c.RNG.Mode))
	}
	if c.MaxRepairAttempts < 0 {
		errs = append(errs, fmt.Errorf("max_repair_attempts must not be negative, got %d", c.MaxRepairAttempts))
	}
	if c.Algorithm == AlgorithmRandom {
		return errors.Join(errs...)
	}

	if c.Seeding.Enabled && c.Seeding.Path == "" {
		errs = append(errs, errors.New("seeding is enabled but seeding.path is empty"))
	}
	switch c.ParentSelection {
	case ParentTournament, ParentProportional, ParentUniform:
	default:
		errs = append(errs, fmt.Errorf("unknown parent selection %q", c.ParentSelection))
	}
	switch c.Survival.Strategy {
	case SurvivalComma, SurvivalPlus:
	default:
		errs = append(errs, fmt.Errorf("unknown survival strategy %q", c.Survival.Strategy))
	}
	switch c.Survival.Selection {
	case SurvivalUniform, SurvivalTruncation, SurvivalProportional, SurvivalTournament:
	default:
		errs = append(errs, fmt.Errorf("unknown survival selection %q", c.Survival.Selection))
	}
	switch c.Termination.Mode {
	case TerminateEvaluations:
	case TerminateStagnation:
		if c.Termination.StagnationGenerations <= 0 {
			errs = append(errs, fmt.Errorf("stagnation_generations must be positive, got %d", c.Termination.StagnationGenerations))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown termination mode %q", c.Termination.Mode))
	}
	if c.Mu < 2 {
		errs = append(errs, fmt.Errorf("mu must be at least 2, got %d", c.Mu))
	}
	if c.Lambda <= 0 {
		errs = append(errs, fmt.Errorf("lambda must be positive, got %d", c.Lambda))
	} else if c.Survival.Strategy == SurvivalComma && c.Lambda < 2 {
		errs = append(errs, fmt.Errorf("comma survival needs lambda of at least 2, got %d", c.Lambda))
	}
	if c.ParentSelection == ParentTournament && c.ParentTournamentSize <= 0 {
		errs = append(errs, fmt.Errorf("parent_tournament_size must be positive, got %d", c.ParentTournamentSize))
	}
	if c.Survival.Selection == SurvivalTournament && c.SurvivalTournamentSize <= 0 {
		errs = append(errs, fmt.Errorf("survival_tournament_size must be positive, got %d", c.SurvivalTournamentSize))
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		errs = append(errs, fmt.Errorf("mutation_rate must be within [0, 1], got %g", c.MutationRate))
	}
	return errors.Join(errs...)
}
