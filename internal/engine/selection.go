package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/piwi3910/ShapeNest/internal/model"
)

var errNoRandomSource = errors.New("random source is required")

// ParentSelector picks two distinct population indices to mate.
type ParentSelector interface {
	Name() string
	SelectParents(rng *rand.Rand, population []*model.Candidate) (int, int, error)
}

// SurvivorSelector reduces a pool of candidates to n survivors without repeats.
type SurvivorSelector interface {
	Name() string
	SelectSurvivors(rng *rand.Rand, pool []*model.Candidate, n int) ([]*model.Candidate, error)
}

// NewParentSelector returns the parent selector named by the configuration.
func NewParentSelector(cfg model.Config) (ParentSelector, error) {
	switch cfg.ParentSelection {
	case model.ParentTournament:
		return TournamentParentSelector{TournamentSize: cfg.ParentTournamentSize}, nil
	case model.ParentProportional:
		return ProportionalParentSelector{}, nil
	case model.ParentUniform:
		return UniformParentSelector{}, nil
	default:
		return nil, fmt.Errorf("unknown parent selection %q", cfg.ParentSelection)
	}
}

// NewSurvivorSelector returns the survivor selector named by the configuration.
func NewSurvivorSelector(cfg model.Config) (SurvivorSelector, error) {
	switch cfg.Survival.Selection {
	case model.SurvivalUniform:
		return UniformSurvivorSelector{}, nil
	case model.SurvivalTruncation:
		return TruncationSurvivorSelector{}, nil
	case model.SurvivalProportional:
		return ProportionalSurvivorSelector{}, nil
	case model.SurvivalTournament:
		return TournamentSurvivorSelector{TournamentSize: cfg.SurvivalTournamentSize}, nil
	default:
		return nil, fmt.Errorf("unknown survival selection %q", cfg.Survival.Selection)
	}
}

func checkParentInput(rng *rand.Rand, population []*model.Candidate) error {
	if rng == nil {
		return errNoRandomSource
	}
	if len(population) < 2 {
		return fmt.Errorf("%w: need at least 2 parents, have %d", ErrEmptyPopulation, len(population))
	}
	return nil
}

// TournamentParentSelector runs two k-tournaments over the level ranking.
// The second tournament excludes the first winner.
type TournamentParentSelector struct {
	TournamentSize int
}

func (TournamentParentSelector) Name() string {
	return string(model.ParentTournament)
}

func (s TournamentParentSelector) SelectParents(rng *rand.Rand, population []*model.Candidate) (int, int, error) {
	if err := checkParentInput(rng, population); err != nil {
		return 0, 0, err
	}
	level := levelIndex(ComputeLevels(population), len(population))

	all := make([]int, len(population))
	for i := range all {
		all[i] = i
	}
	first := tournament(rng, level, all, s.TournamentSize)

	rest := make([]int, 0, len(all)-1)
	for _, i := range all {
		if i != first {
			rest = append(rest, i)
		}
	}
	second := tournament(rng, level, rest, s.TournamentSize)
	return first, second, nil
}

// ProportionalParentSelector spins a level-weighted roulette wheel twice
// without putting the first pick back.
type ProportionalParentSelector struct{}

func (ProportionalParentSelector) Name() string {
	return string(model.ParentProportional)
}

func (ProportionalParentSelector) SelectParents(rng *rand.Rand, population []*model.Candidate) (int, int, error) {
	if err := checkParentInput(rng, population); err != nil {
		return 0, 0, err
	}
	picks := roulette(rng, levelWeights(population), 2)
	return picks[0], picks[1], nil
}

// UniformParentSelector picks two distinct members uniformly.
type UniformParentSelector struct{}

func (UniformParentSelector) Name() string {
	return string(model.ParentUniform)
}

func (UniformParentSelector) SelectParents(rng *rand.Rand, population []*model.Candidate) (int, int, error) {
	if err := checkParentInput(rng, population); err != nil {
		return 0, 0, err
	}
	a := rng.Intn(len(population))
	b := rng.Intn(len(population) - 1)
	if b >= a {
		b++
	}
	return a, b, nil
}

func checkSurvivorInput(rng *rand.Rand, pool []*model.Candidate, n int) (int, error) {
	if rng == nil {
		return 0, errNoRandomSource
	}
	if len(pool) == 0 {
		return 0, fmt.Errorf("%w: survivor pool is empty", ErrEmptyPopulation)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid survivor count: %d", n)
	}
	return min(n, len(pool)), nil
}

// UniformSurvivorSelector keeps n distinct pool members chosen uniformly.
type UniformSurvivorSelector struct{}

func (UniformSurvivorSelector) Name() string {
	return string(model.SurvivalUniform)
}

func (UniformSurvivorSelector) SelectSurvivors(rng *rand.Rand, pool []*model.Candidate, n int) ([]*model.Candidate, error) {
	n, err := checkSurvivorInput(rng, pool, n)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Candidate, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out, nil
}

// TruncationSurvivorSelector keeps the first n members of the level ranking,
// level 0 first and each level in its stored order.
type TruncationSurvivorSelector struct{}

func (TruncationSurvivorSelector) Name() string {
	return string(model.SurvivalTruncation)
}

func (TruncationSurvivorSelector) SelectSurvivors(rng *rand.Rand, pool []*model.Candidate, n int) ([]*model.Candidate, error) {
	n, err := checkSurvivorInput(rng, pool, n)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Candidate, 0, n)
	for _, members := range ComputeLevels(pool) {
		for _, i := range members {
			if len(out) == n {
				return out, nil
			}
			out = append(out, pool[i])
		}
	}
	return out, nil
}

// ProportionalSurvivorSelector draws n members from a level-weighted roulette
// wheel without replacement.
type ProportionalSurvivorSelector struct{}

func (ProportionalSurvivorSelector) Name() string {
	return string(model.SurvivalProportional)
}

func (ProportionalSurvivorSelector) SelectSurvivors(rng *rand.Rand, pool []*model.Candidate, n int) ([]*model.Candidate, error) {
	n, err := checkSurvivorInput(rng, pool, n)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Candidate, 0, n)
	for _, i := range roulette(rng, levelWeights(pool), n) {
		out = append(out, pool[i])
	}
	return out, nil
}

// TournamentSurvivorSelector runs repeated k-tournaments over what is left of
// the pool, re-ranking the remainder before each one.
type TournamentSurvivorSelector struct {
	TournamentSize int
}

func (TournamentSurvivorSelector) Name() string {
	return string(model.SurvivalTournament)
}

func (s TournamentSurvivorSelector) SelectSurvivors(rng *rand.Rand, pool []*model.Candidate, n int) ([]*model.Candidate, error) {
	n, err := checkSurvivorInput(rng, pool, n)
	if err != nil {
		return nil, err
	}
	remaining := make([]*model.Candidate, len(pool))
	copy(remaining, pool)

	out := make([]*model.Candidate, 0, n)
	for len(out) < n {
		level := levelIndex(ComputeLevels(remaining), len(remaining))
		eligible := make([]int, len(remaining))
		for i := range eligible {
			eligible[i] = i
		}
		w := tournament(rng, level, eligible, s.TournamentSize)
		out = append(out, remaining[w])
		remaining = append(remaining[:w], remaining[w+1:]...)
	}
	return out, nil
}

// tournament draws k distinct participants from eligible and returns the one
// with the highest level index. Ties go to the earliest draw.
func tournament(rng *rand.Rand, level []int, eligible []int, k int) int {
	k = max(1, min(k, len(eligible)))
	draw := make([]int, len(eligible))
	copy(draw, eligible)

	winner := -1
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(draw)-i)
		draw[i], draw[j] = draw[j], draw[i]
		if winner < 0 || level[draw[i]] > level[winner] {
			winner = draw[i]
		}
	}
	return winner
}

// levelWeights gives every member of level n a roulette weight of 100/2^n.
func levelWeights(pop []*model.Candidate) []float64 {
	levels := ComputeLevels(pop)
	weights := make([]float64, len(pop))
	w := 100.0
	for _, members := range levels {
		for _, i := range members {
			weights[i] = w
		}
		w /= 2
	}
	return weights
}

// roulette draws count distinct indices with probability proportional to
// their remaining weight. A drawn index is taken off the wheel.
func roulette(rng *rand.Rand, weights []float64, count int) []int {
	w := make([]float64, len(weights))
	copy(w, weights)
	out := make([]int, 0, count)
	for len(out) < count {
		total := 0.0
		last := -1
		for i, x := range w {
			if x > 0 {
				total += x
				last = i
			}
		}
		if last < 0 {
			break
		}
		r := rng.Float64() * total
		pick := last
		for i, x := range w {
			if x <= 0 {
				continue
			}
			if r < x {
				pick = i
				break
			}
			r -= x
		}
		out = append(out, pick)
		w[pick] = 0
	}
	return out
}
