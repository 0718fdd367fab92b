package engine

import "github.com/piwi3910/ShapeNest/internal/model"

// Dominates reports whether a is at least as good as b on both objectives and
// strictly better on one. Equal candidates never dominate each other.
func Dominates(a, b *model.Candidate) bool {
	return (a.LengthFitness > b.LengthFitness && a.WidthFitness >= b.WidthFitness) ||
		(a.WidthFitness > b.WidthFitness && a.LengthFitness >= b.LengthFitness)
}

// ComputeLevels partitions the population into levels of mutually
// non-dominating candidates, returned as indices into pop.
//
// Candidates are inserted greedily in population order. Each one goes into the
// first level where no member dominates it; members it dominates are evicted
// from that level and reinserted from the next level down. The result depends
// on input order and level 0 is always the true Pareto front.
func ComputeLevels(pop []*model.Candidate) [][]int {
	var levels [][]int

	var insert func(idx, from int)
	insert = func(idx, from int) {
		for lvl := from; lvl < len(levels); lvl++ {
			blocked := false
			for _, m := range levels[lvl] {
				if Dominates(pop[m], pop[idx]) {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}

			kept := levels[lvl][:0:0]
			var evicted []int
			for _, m := range levels[lvl] {
				if Dominates(pop[idx], pop[m]) {
					evicted = append(evicted, m)
				} else {
					kept = append(kept, m)
				}
			}
			levels[lvl] = append(kept, idx)
			for _, m := range evicted {
				insert(m, lvl+1)
			}
			return
		}
		levels = append(levels, []int{idx})
	}

	for i := range pop {
		insert(i, 0)
	}
	return levels
}

// levelIndex maps each population index to its level number.
func levelIndex(levels [][]int, n int) []int {
	out := make([]int, n)
	for lvl, members := range levels {
		for _, m := range members {
			out[m] = lvl
		}
	}
	return out
}

// ParetoFront returns the level-0 members of the population.
func ParetoFront(pop []*model.Candidate) model.Front {
	if len(pop) == 0 {
		return nil
	}
	levels := ComputeLevels(pop)
	front := make(model.Front, 0, len(levels[0]))
	for _, i := range levels[0] {
		front = append(front, pop[i])
	}
	return front
}

// FrontDominanceProportions returns the share of a's members that dominate at
// least one member of b, and the share of b's members that dominate at least
// one member of a. An empty front scores zero.
func FrontDominanceProportions(a, b []*model.Candidate) (pA, pB float64) {
	return dominatingShare(a, b), dominatingShare(b, a)
}

func dominatingShare(from, against []*model.Candidate) float64 {
	if len(from) == 0 {
		return 0
	}
	count := 0
	for _, x := range from {
		for _, y := range against {
			if Dominates(x, y) {
				count++
				break
			}
		}
	}
	return float64(count) / float64(len(from))
}
