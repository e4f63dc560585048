package search

import "math/rand"

// Random builds a plan by walking candidates in (begin, size, end)
// order. Each candidate still in play forms a conflict group with
// every later unresolved candidate it overlaps; the group's winner is
// picked uniformly at random (trivially, when the group is a
// singleton) and committed, and the whole group, winner and losers
// alike, leaves the search for good. A losing member never re-enters
// against a different grouping later in the sweep.
func Random(cands []*Candidate, rng *rand.Rand) Plan {
	sorted := sortedByBeginSizeEnd(cands)
	removed := make([]bool, len(sorted))
	taken := map[int]bool{}
	var plan Plan

	for i := range sorted {
		if removed[i] || conflictsWithSet(sorted[i], taken) {
			continue
		}
		c := sorted[i]

		group := []int{i}
		for j := i + 1; j < len(sorted); j++ {
			if removed[j] || conflictsWithSet(sorted[j], taken) {
				continue
			}
			if c.Conflicts(sorted[j]) {
				group = append(group, j)
			}
		}

		winnerIdx := group[0]
		if len(group) > 1 {
			winnerIdx = group[rng.Intn(len(group))]
		}
		winner := sorted[winnerIdx]

		plan.Candidates = append(plan.Candidates, winner)
		plan.Saving += winner.SizeSaving()
		for _, p := range winner.Positions {
			taken[p] = true
		}

		for _, idx := range group {
			removed[idx] = true
		}
	}
	return plan
}
