package search

// Greedy builds the one emitted plan by sorting all candidates by
// (begin, size, end) ascending and sweeping left to right,
// accumulating any candidate disjoint from the running union of
// already-taken positions.
func Greedy(cands []*Candidate) Plan {
	sorted := sortedByBeginSizeEnd(cands)
	taken := map[int]bool{}
	var plan Plan

	for _, c := range sorted {
		if conflictsWithSet(c, taken) {
			continue
		}
		plan.Candidates = append(plan.Candidates, c)
		plan.Saving += c.SizeSaving()
		for _, p := range c.Positions {
			taken[p] = true
		}
	}
	return plan
}
