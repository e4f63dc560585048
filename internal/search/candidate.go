package search

import (
	"github.com/qcpm/qcpmgo/internal/circuit"
	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/pattern"
)

// Candidate is a validated instance of a non-local pattern at a
// specific, strictly-increasing position tuple in a circuit's draft.
type Candidate struct {
	Pattern   pattern.Pattern
	Positions []int

	cycleDelta int
	depthDelta *int // memoized on first Delta(Depth, ...) call; nil until then
}

// Begin is the candidate's first matched position.
func (c *Candidate) Begin() int { return c.Positions[0] }

// End is the candidate's last matched position.
func (c *Candidate) End() int { return c.Positions[len(c.Positions)-1] }

// SizeSaving is the pattern's static source-arity-sum minus
// destination-arity-sum, the candidate's size saving.
func (c *Candidate) SizeSaving() int { return c.cycleDelta }

// Conflicts reports whether c and other share any matched position.
func (c *Candidate) Conflicts(other *Candidate) bool {
	set := make(map[int]bool, len(c.Positions))
	for _, p := range c.Positions {
		set[p] = true
	}
	for _, p := range other.Positions {
		if set[p] {
			return true
		}
	}
	return false
}

// Delta returns the candidate's cost-model value under metric. For
// Cycle it is the pattern's cached static arity-sum difference. For
// Depth it excises a ±cfg.DepthWindow sub-circuit around the
// candidate, applies it on a throwaway copy, and records
// depth_after - depth_before + 1, memoizing the result (a candidate's
// depth delta never needs recomputing once measured against a given
// circuit).
func (c *Candidate) Delta(metric Metric, ops []*gate.Op, cfg Config) (int, error) {
	if metric == Cycle {
		return c.cycleDelta, nil
	}
	if c.depthDelta != nil {
		return *c.depthDelta, nil
	}

	begin, end := c.Begin(), c.End()
	windowStart := begin - cfg.DepthWindow
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := end + cfg.DepthWindow + 1
	if windowEnd > len(ops) {
		windowEnd = len(ops)
	}

	sub := ops[windowStart:windowEnd]
	before, err := circuit.ComputeInfo(sub)
	if err != nil {
		return 0, err
	}

	shifted := &Candidate{
		Pattern:    c.Pattern,
		Positions:  shiftPositions(c.Positions, windowStart),
		cycleDelta: c.cycleDelta,
	}
	after, err := applyAndInfo(sub, shifted)
	if err != nil {
		return 0, err
	}

	delta := after.MaxDepth - before.MaxDepth + 1
	c.depthDelta = &delta
	return delta, nil
}

func shiftPositions(positions []int, by int) []int {
	out := make([]int, len(positions))
	for i, p := range positions {
		out[i] = p - by
	}
	return out
}

func applyAndInfo(ops []*gate.Op, cand *Candidate) (*circuit.Info, error) {
	mutated, err := ApplyToOps(ops, cand)
	if err != nil {
		return nil, err
	}
	return circuit.ComputeInfo(mutated)
}
