package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossover_ChildIsValid(t *testing.T) {
	p := testProblem()
	for seed := int64(0); seed < 50; seed++ {
		placer := newTestPlacer(p, seed)
		a, err := placer.RandomCandidate()
		require.NoError(t, err)
		b, err := placer.RandomCandidate()
		require.NoError(t, err)

		child, err := placer.Crossover(a, b)
		require.NoError(t, err)
		assert.NoError(t, placer.Validate(child.Placements))
		assert.Equal(t, child.LengthFitness, placer.Evaluate(child.Placements).LengthFitness)
	}
}

func TestCrossover_IdenticalParentsReproduce(t *testing.T) {
	p := testProblem()
	placer := newTestPlacer(p, 5)
	a, err := placer.RandomCandidate()
	require.NoError(t, err)

	child, err := placer.Crossover(a, a)
	require.NoError(t, err)
	assert.Equal(t, a.Placements, child.Placements)
}

func TestMutate_ZeroRateIsNoOp(t *testing.T) {
	p := testProblem()
	placer := newTestPlacer(p, 9)
	c, err := placer.RandomCandidate()
	require.NoError(t, err)

	m, err := placer.Mutate(c, 0)
	require.NoError(t, err)
	assert.Equal(t, c.Placements, m.Placements)
	assert.NotSame(t, c, m)
}

func TestMutate_FullRateResamplesValidly(t *testing.T) {
	p := testProblem()
	for seed := int64(0); seed < 50; seed++ {
		placer := newTestPlacer(p, seed)
		c, err := placer.RandomCandidate()
		require.NoError(t, err)
		before := append(c.Placements[:0:0], c.Placements...)

		m, err := placer.Mutate(c, 1)
		require.NoError(t, err)
		assert.NoError(t, placer.Validate(m.Placements))
		assert.Equal(t, before, c.Placements, "input must not change")
	}
}

func TestMutate_PartialRateKeepsLayoutValid(t *testing.T) {
	p := testProblem()
	placer := newTestPlacer(p, 11)
	c, err := placer.RandomCandidate()
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		c, err = placer.Mutate(c, 0.3)
		require.NoError(t, err)
		require.NoError(t, placer.Validate(c.Placements))
	}
}
