package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// State is the lifecycle stage of an Evolver.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options carries the optional collaborators of an Evolver.
type Options struct {
	Logger *slog.Logger
	// Seeds are genotypes to place in the initial population before random fill.
	Seeds [][]model.Placement
	// OnGeneration receives the statistics of the initial population and of
	// every generation after it.
	OnGeneration func(GenerationStats)
	// Run numbers log lines when several runs share a logger.
	Run int
}

// Evolver runs one evolutionary search against an evaluation budget.
type Evolver struct {
	problem   *model.Problem
	config    model.Config
	rng       *rand.Rand
	placer    *Placer
	parents   ParentSelector
	survivors SurvivorSelector
	logger    *slog.Logger
	seeds     [][]model.Placement
	onGen     func(GenerationStats)

	state            State
	evalsLeft        int
	evalsDone        int
	population       []*model.Candidate
	history          *History
	discardedSeeds   int
	abortedOffspring int
}

// NewEvolver checks the configuration and builds the operators it names.
func NewEvolver(problem *model.Problem, cfg model.Config, rng *rand.Rand, opts Options) (*Evolver, error) {
	if rng == nil {
		return nil, errNoRandomSource
	}
	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	parents, err := NewParentSelector(cfg)
	if err != nil {
		return nil, err
	}
	survivors, err := NewSurvivorSelector(cfg)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Run > 0 {
		logger = logger.With("run", opts.Run)
	}

	return &Evolver{
		problem:   problem,
		config:    cfg,
		rng:       rng,
		placer:    NewPlacer(problem, rng, cfg.MaxRepairAttempts),
		parents:   parents,
		survivors: survivors,
		logger:    logger,
		seeds:     opts.Seeds,
		onGen:     opts.OnGeneration,
		state:     StateInitializing,
		evalsLeft: cfg.Evaluations,
		history:   &History{},
	}, nil
}

// State returns the current lifecycle stage.
func (e *Evolver) State() State { return e.state }

// History returns the run's statistics and best front so far.
func (e *Evolver) History() *History { return e.history }

// Population returns the current population.
func (e *Evolver) Population() []*model.Candidate { return e.population }

// Evaluations returns how many evaluations have been spent.
func (e *Evolver) Evaluations() int { return e.evalsDone }

// DiscardedSeeds returns how many seeded genotypes failed validation.
func (e *Evolver) DiscardedSeeds() int { return e.discardedSeeds }

// AbortedOffspring returns how many offspring attempts hit placement infeasibility.
func (e *Evolver) AbortedOffspring() int { return e.abortedOffspring }

// Run initializes the population, evolves it until the budget is spent or
// the front stagnates, and returns the best front recorded. Cancellation is
// checked between generations.
func (e *Evolver) Run(ctx context.Context) (model.Front, error) {
	if e.state != StateInitializing {
		return nil, fmt.Errorf("evolver already %s", e.state)
	}
	if err := e.initialize(); err != nil {
		e.state = StateTerminated
		return nil, err
	}
	e.state = StateRunning

	for !e.shouldTerminate() {
		if err := ctx.Err(); err != nil {
			e.state = StateTerminated
			return e.history.BestFront, err
		}
		if err := e.step(); err != nil {
			e.state = StateTerminated
			return e.history.BestFront, err
		}
	}

	e.state = StateTerminated
	e.logger.Info("run finished",
		"evaluations", e.evalsDone,
		"generations", len(e.history.Generations)-1,
		"front_size", len(e.history.BestFront),
		"discarded_seeds", e.discardedSeeds,
		"aborted_offspring", e.abortedOffspring,
	)
	return e.history.BestFront, nil
}

func (e *Evolver) spend() {
	e.evalsLeft--
	e.evalsDone++
}

func (e *Evolver) initialize() error {
	mu := e.config.Mu
	e.population = make([]*model.Candidate, 0, mu)

	seeds := e.seeds
	if len(seeds) > mu {
		seeds = seeds[:mu]
	}
	for i, genes := range seeds {
		if e.evalsLeft == 0 {
			break
		}
		if err := e.placer.Validate(genes); err != nil {
			e.discardedSeeds++
			e.logger.Warn("discarding seeded genotype", "seed", i, "error", err)
			continue
		}
		e.population = append(e.population, e.placer.Evaluate(genes))
		e.spend()
	}

	for len(e.population) < mu && e.evalsLeft > 0 {
		c, err := e.placer.RandomCandidate()
		if err != nil {
			return fmt.Errorf("building initial population: %w", err)
		}
		e.population = append(e.population, c)
		e.spend()
	}

	e.rng.Shuffle(len(e.population), func(i, j int) {
		e.population[i], e.population[j] = e.population[j], e.population[i]
	})

	e.record()
	return nil
}

func (e *Evolver) shouldTerminate() bool {
	if e.evalsLeft <= 0 || len(e.population) < 2 {
		return true
	}
	return e.config.Termination.Mode == model.TerminateStagnation &&
		e.history.FrontStagnant(e.config.Termination.StagnationGenerations)
}

// step produces one generation of offspring and selects the survivors.
func (e *Evolver) step() error {
	lambda := e.config.Lambda
	offspring := make([]*model.Candidate, 0, lambda)
	failures := 0
	for len(offspring) < lambda && e.evalsLeft > 0 {
		child, err := e.breed()
		if errors.Is(err, ErrPlacementInfeasible) {
			e.abortedOffspring++
			failures++
			e.logger.Warn("offspring aborted",
				"generation", len(e.history.Generations),
				"error", err,
			)
			if failures >= lambda {
				return fmt.Errorf("generation %d: %d consecutive offspring failed: %w",
					len(e.history.Generations), failures, err)
			}
			continue
		}
		if err != nil {
			return err
		}
		failures = 0
		offspring = append(offspring, child)
		e.spend()
	}

	pool := offspring
	target := min(e.config.Mu, len(offspring))
	if e.config.Survival.Strategy == model.SurvivalPlus {
		pool = append(offspring, e.population...)
		target = min(e.config.Mu, len(pool))
	}
	e.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	next, err := e.survivors.SelectSurvivors(e.rng, pool, target)
	if err != nil {
		return fmt.Errorf("survival selection: %w", err)
	}
	e.population = next
	e.record()
	return nil
}

// breed selects two parents, recombines them and optionally mutates the child.
func (e *Evolver) breed() (*model.Candidate, error) {
	i, j, err := e.parents.SelectParents(e.rng, e.population)
	if err != nil {
		return nil, fmt.Errorf("parent selection: %w", err)
	}
	child, err := e.placer.Crossover(e.population[i], e.population[j])
	if err != nil {
		return nil, err
	}
	if e.config.MutationRate > 0 {
		child, err = e.placer.Mutate(child, e.config.MutationRate)
		if err != nil {
			return nil, err
		}
	}
	return child, nil
}

func (e *Evolver) record() {
	stats := e.history.AddGeneration(e.evalsDone, e.population)
	e.logger.Debug("generation",
		"generation", stats.Generation,
		"evaluations", stats.Evaluations,
		"best_length", stats.BestLength,
		"avg_length", stats.AvgLength,
		"best_width", stats.BestWidth,
		"avg_width", stats.AvgWidth,
		"front_size", stats.FrontSize,
	)
	if e.onGen != nil {
		e.onGen(stats)
	}
}
