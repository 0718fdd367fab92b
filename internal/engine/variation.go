package engine

import (
	"github.com/piwi3910/ShapeNest/internal/model"
)

// Crossover builds a child gene by gene: each shape takes one parent's
// placement at random and is repaired at once against the genes already
// chosen, so the child is always a valid layout.
func (p *Placer) Crossover(a, b *model.Candidate) (*model.Candidate, error) {
	n := p.problem.ShapeCount()
	grid := p.NewGrid()
	genes := make([]model.Placement, n)
	for i := 0; i < n; i++ {
		pick := a.Placements[i]
		if p.rng.Intn(2) == 1 {
			pick = b.Placements[i]
		}
		pl, err := p.RepairOne(grid, i, &pick)
		if err != nil {
			return nil, err
		}
		genes[i] = pl
	}
	return p.Evaluate(genes), nil
}

// Mutate clears each gene with probability rate and resamples the cleared
// genes in index order against the untouched ones. The input is not modified.
func (p *Placer) Mutate(c *model.Candidate, rate float64) (*model.Candidate, error) {
	if rate <= 0 {
		return c.Clone(), nil
	}

	n := len(c.Placements)
	cleared := make([]bool, n)
	touched := false
	for i := range cleared {
		if p.rng.Float64() < rate {
			cleared[i] = true
			touched = true
		}
	}
	if !touched {
		return c.Clone(), nil
	}

	grid := p.NewGrid()
	genes := make([]model.Placement, n)
	for i, pl := range c.Placements {
		if !cleared[i] {
			genes[i] = pl
			grid.Occupy(p.problem.Shapes[i].Cells(pl))
		}
	}
	for i := range genes {
		if !cleared[i] {
			continue
		}
		pl, err := p.RepairOne(grid, i, nil)
		if err != nil {
			return nil, err
		}
		genes[i] = pl
	}
	return p.Evaluate(genes), nil
}
