package search

import "sort"

// Plan is an ordered, conflict-free set of candidates chosen for
// simultaneous application, with its cumulative size saving.
type Plan struct {
	Candidates []*Candidate
	Saving     int
}

// Plans is the sorted-descending-by-saving view over a set of plans;
// Best is its head. A single Execute turn only ever builds one Plan,
// so Plans is a thin convenience wrapper rather than a true
// multi-plan search result: sort.Slice is enough; there is no
// incremental insert/extract-max that would warrant container/heap.
type Plans []Plan

// Best returns the highest-saving plan, or the zero Plan if empty.
func (p Plans) Best() Plan {
	if len(p) == 0 {
		return Plan{}
	}
	return p[0]
}

// Sorted returns plans ordered descending by Saving.
func Sorted(plans []Plan) Plans {
	out := append([]Plan(nil), plans...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Saving > out[j].Saving })
	return Plans(out)
}

// sortedByBeginSizeEnd returns cands ordered by (begin, size saving,
// end) ascending, the order both Greedy and Random walk candidates in.
func sortedByBeginSizeEnd(cands []*Candidate) []*Candidate {
	out := append([]*Candidate(nil), cands...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Begin() != b.Begin() {
			return a.Begin() < b.Begin()
		}
		if a.SizeSaving() != b.SizeSaving() {
			return a.SizeSaving() < b.SizeSaving()
		}
		return a.End() < b.End()
	})
	return out
}

func conflictsWithSet(c *Candidate, taken map[int]bool) bool {
	for _, p := range c.Positions {
		if taken[p] {
			return true
		}
	}
	return false
}
