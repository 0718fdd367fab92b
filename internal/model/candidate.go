package model

// Candidate is a full layout: one placement per shape, indexed by shape, plus
// the two sheet-size headroom scores. Both fitness values are maximized.
type Candidate struct {
	Placements    []Placement `json:"placements"`
	UsedLength    int         `json:"used_length"`
	UsedWidth     int         `json:"used_width"`
	LengthFitness int         `json:"length_fitness"` // MaxSheetLength - UsedLength
	WidthFitness  int         `json:"width_fitness"`  // SheetWidth - UsedWidth
}

// Clone returns a deep copy so operators never share placement slices.
func (c *Candidate) Clone() *Candidate {
	placements := make([]Placement, len(c.Placements))
	copy(placements, c.Placements)
	cp := *c
	cp.Placements = placements
	return &cp
}

// Front is a set of mutually non-dominated candidates.
type Front []*Candidate

// Genotypes returns the placement sequences of every member, in order.
func (f Front) Genotypes() [][]Placement {
	out := make([][]Placement, len(f))
	for i, c := range f {
		out[i] = c.Placements
	}
	return out
}
