package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/ShapeNest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fit(length, width int) *model.Candidate {
	return &model.Candidate{LengthFitness: length, WidthFitness: width}
}

func randomFitnessPopulation(rng *rand.Rand, n int) []*model.Candidate {
	pop := make([]*model.Candidate, n)
	for i := range pop {
		pop[i] = fit(rng.Intn(8), rng.Intn(8))
	}
	return pop
}

func TestDominates(t *testing.T) {
	cases := []struct {
		name string
		a, b *model.Candidate
		want bool
	}{
		{"better on both", fit(3, 3), fit(2, 2), true},
		{"better length, equal width", fit(3, 2), fit(2, 2), true},
		{"better width, equal length", fit(2, 3), fit(2, 2), true},
		{"equal", fit(2, 2), fit(2, 2), false},
		{"trade-off", fit(3, 1), fit(1, 3), false},
		{"worse", fit(1, 1), fit(2, 2), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Dominates(tc.a, tc.b))
		})
	}
}

func TestDominates_IrreflexiveAndAsymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pop := randomFitnessPopulation(rng, 40)
	for _, a := range pop {
		assert.False(t, Dominates(a, a))
		for _, b := range pop {
			if Dominates(a, b) {
				assert.False(t, Dominates(b, a))
			}
		}
	}
}

func TestComputeLevels_TiesShareALevel(t *testing.T) {
	levels := ComputeLevels([]*model.Candidate{fit(5, 5), fit(5, 5)})
	require.Len(t, levels, 1)
	assert.ElementsMatch(t, []int{0, 1}, levels[0])
}

func TestComputeLevels_EvictsDominatedMember(t *testing.T) {
	levels := ComputeLevels([]*model.Candidate{fit(1, 1), fit(2, 2), fit(3, 0)})
	require.Len(t, levels, 2)
	assert.ElementsMatch(t, []int{1, 2}, levels[0])
	assert.Equal(t, []int{0}, levels[1])
}

func TestComputeLevels_ChainOfEvictions(t *testing.T) {
	levels := ComputeLevels([]*model.Candidate{fit(1, 1), fit(2, 2), fit(3, 3)})
	assert.Equal(t, [][]int{{2}, {1}, {0}}, levels)
}

func TestComputeLevels_PartitionAndOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		pop := randomFitnessPopulation(rng, 1+rng.Intn(30))
		levels := ComputeLevels(pop)

		seen := make(map[int]int)
		for lvl, members := range levels {
			require.NotEmpty(t, members)
			for _, m := range members {
				_, dup := seen[m]
				require.False(t, dup, "index %d appears twice", m)
				seen[m] = lvl
			}
		}
		require.Len(t, seen, len(pop))

		for x, lx := range seen {
			for y, ly := range seen {
				if ly < lx {
					assert.False(t, Dominates(pop[x], pop[y]), "level %d member dominates level %d member", lx, ly)
				}
				if ly == lx {
					assert.False(t, Dominates(pop[x], pop[y]), "members of one level must not dominate each other")
				}
			}
		}

		// Level 0 is exactly the set of non-dominated candidates.
		var front []int
		for i := range pop {
			dominated := false
			for j := range pop {
				if Dominates(pop[j], pop[i]) {
					dominated = true
					break
				}
			}
			if !dominated {
				front = append(front, i)
			}
		}
		assert.ElementsMatch(t, front, levels[0])
	}
}

func TestComputeLevels_Empty(t *testing.T) {
	assert.Empty(t, ComputeLevels(nil))
	assert.Nil(t, ParetoFront(nil))
}

func TestFrontDominanceProportions(t *testing.T) {
	front := []*model.Candidate{fit(5, 1), fit(3, 3), fit(1, 5)}
	pA, pB := FrontDominanceProportions(front, front)
	assert.Equal(t, 0.0, pA)
	assert.Equal(t, 0.0, pB)

	worse := []*model.Candidate{fit(4, 0), fit(2, 2)}
	pA, pB = FrontDominanceProportions(front, worse)
	assert.InDelta(t, 2.0/3.0, pA, 1e-9) // (1,5) dominates neither member
	assert.Equal(t, 0.0, pB)

	pA, pB = FrontDominanceProportions(nil, front)
	assert.Equal(t, 0.0, pA)
	assert.Equal(t, 0.0, pB)
}
