package engine

import "github.com/piwi3910/ShapeNest/internal/model"

// GenerationStats summarizes one population snapshot.
type GenerationStats struct {
	Generation    int     `json:"generation"`
	Evaluations   int     `json:"evaluations"` // cumulative for the run
	AvgLength     float64 `json:"avg_length"`
	BestLength    int     `json:"best_length"`
	AvgWidth      float64 `json:"avg_width"`
	BestWidth     int     `json:"best_width"`
	FrontSize     int     `json:"front_size"`
	FrontImproved bool    `json:"front_improved"`
}

// History records per-generation statistics and the best front seen in a run.
type History struct {
	Generations []GenerationStats
	BestFront   model.Front
}

// AddGeneration records a population snapshot. The population's Pareto front
// replaces the best front when a larger share of its members dominates.
func (h *History) AddGeneration(evaluations int, population []*model.Candidate) GenerationStats {
	stats := GenerationStats{
		Generation:  len(h.Generations),
		Evaluations: evaluations,
	}
	if len(population) > 0 {
		sumL, sumW := 0, 0
		stats.BestLength = population[0].LengthFitness
		stats.BestWidth = population[0].WidthFitness
		for _, c := range population {
			sumL += c.LengthFitness
			sumW += c.WidthFitness
			stats.BestLength = max(stats.BestLength, c.LengthFitness)
			stats.BestWidth = max(stats.BestWidth, c.WidthFitness)
		}
		stats.AvgLength = float64(sumL) / float64(len(population))
		stats.AvgWidth = float64(sumW) / float64(len(population))
	}

	front := ParetoFront(population)
	stats.FrontSize = len(front)
	if len(h.Generations) == 0 {
		h.BestFront = front
		stats.FrontImproved = true
	} else if pA, pB := FrontDominanceProportions(front, h.BestFront); pA > pB {
		h.BestFront = front
		stats.FrontImproved = true
	}

	h.Generations = append(h.Generations, stats)
	return stats
}

// FrontStagnant reports whether the best front has not changed during the
// last window generations. It is false until window generations have been
// recorded after the initial population.
func (h *History) FrontStagnant(window int) bool {
	if window <= 0 || len(h.Generations) < window+1 {
		return false
	}
	for _, g := range h.Generations[len(h.Generations)-window:] {
		if g.FrontImproved {
			return false
		}
	}
	return true
}
