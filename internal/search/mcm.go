package search

import (
	"math"
	"math/rand"

	"github.com/qcpm/qcpmgo/internal/gate"
)

// MonteCarlo builds a plan by repeatedly expanding to the next
// conflict group past whatever has already been committed, and picking
// a winner from that group by simulated rollout value when it has more
// than one member. All randomness (rollout sampling, tie-breaks) is
// drawn from rng, so a fixed seed reproduces a fixed plan.
func MonteCarlo(cands []*Candidate, ops []*gate.Op, metric Metric, cfg Config, rng *rand.Rand) (Plan, error) {
	sorted := sortedByBeginSizeEnd(cands)
	committed := make([]bool, len(sorted))
	var plan Plan

	for {
		taken := takenPositions(sorted, committed)

		headIdx := -1
		for i := range sorted {
			if committed[i] || conflictsWithSet(sorted[i], taken) {
				continue
			}
			headIdx = i
			break
		}
		if headIdx == -1 {
			break
		}
		head := sorted[headIdx]

		targets := []int{headIdx}
		for j := headIdx + 1; j < len(sorted); j++ {
			if committed[j] || conflictsWithSet(sorted[j], taken) {
				continue
			}
			if !head.Conflicts(sorted[j]) {
				break
			}
			targets = append(targets, j)
		}

		winnerIdx := targets[0]
		if len(targets) > 1 {
			var err error
			winnerIdx, err = selectByRollout(targets, sorted, committed, ops, metric, cfg, rng)
			if err != nil {
				return Plan{}, err
			}
		}

		winner := sorted[winnerIdx]
		delta, err := winner.Delta(metric, ops, cfg)
		if err != nil {
			return Plan{}, err
		}
		plan.Candidates = append(plan.Candidates, winner)
		plan.Saving += delta
		committed[winnerIdx] = true
	}
	return plan, nil
}

func takenPositions(sorted []*Candidate, committed []bool) map[int]bool {
	taken := map[int]bool{}
	for i, c := range sorted {
		if !committed[i] {
			continue
		}
		for _, p := range c.Positions {
			taken[p] = true
		}
	}
	return taken
}

// selectByRollout simulates every member of targets and returns the
// index (into sorted) of whichever has the highest mean rollout value,
// breaking ties uniformly at random.
func selectByRollout(targets []int, sorted []*Candidate, committed []bool, ops []*gate.Op, metric Metric, cfg Config, rng *rand.Rand) (int, error) {
	bestVal := math.Inf(-1)
	var best []int

	for _, idx := range targets {
		val, err := simulate(idx, sorted, committed, ops, metric, cfg, rng)
		if err != nil {
			return 0, err
		}
		switch {
		case val > bestVal:
			bestVal = val
			best = []int{idx}
		case val == bestVal:
			best = append(best, idx)
		}
	}

	if len(best) == 1 {
		return best[0], nil
	}
	return best[rng.Intn(len(best))], nil
}

// simulate runs cfg.SimulationTimes independent rollouts from the
// candidate at targetIdx and returns their arithmetic mean.
func simulate(targetIdx int, pool []*Candidate, committed []bool, ops []*gate.Op, metric Metric, cfg Config, rng *rand.Rand) (float64, error) {
	sum := 0.0
	for i := 0; i < cfg.SimulationTimes; i++ {
		v, err := rollout(targetIdx, pool, committed, ops, metric, cfg, rng)
		if err != nil {
			return 0, err
		}
		sum += float64(v)
	}
	return sum / float64(cfg.SimulationTimes), nil
}

// rollout plays out one random continuation past the candidate at
// targetIdx: gather every uncommitted candidate after it in sweep
// order whose last position falls within cfg.SimulationSize of its
// begin, then repeatedly sample one (probability proportional to its
// delta) from whatever remains disjoint from what has been applied so
// far, until nothing remains. A gathered candidate may interleave
// with the target's position range; only actual position overlap
// disqualifies it, and that is the disjointness filter's job.
func rollout(targetIdx int, pool []*Candidate, committed []bool, ops []*gate.Op, metric Metric, cfg Config, rng *rand.Rand) (int, error) {
	target := pool[targetIdx]
	value, err := target.Delta(metric, ops, cfg)
	if err != nil {
		return 0, err
	}
	applied := []*Candidate{target}

	horizon := target.Begin() + cfg.SimulationSize
	if horizon > len(ops) {
		horizon = len(ops)
	}

	var horizonCands []*Candidate
	for i := targetIdx + 1; i < len(pool); i++ {
		if committed[i] || pool[i].End() >= horizon {
			continue
		}
		horizonCands = append(horizonCands, pool[i])
	}

	remaining := filterDisjoint(horizonCands, applied)
	for len(remaining) > 0 {
		chosen, err := sampleByDelta(remaining, ops, metric, cfg, rng)
		if err != nil {
			return 0, err
		}
		d, err := chosen.Delta(metric, ops, cfg)
		if err != nil {
			return 0, err
		}
		value += d
		applied = append(applied, chosen)
		remaining = filterDisjoint(remaining, applied)
	}
	return value, nil
}

// sampleByDelta picks one candidate with probability proportional to
// its delta, via cumulative-mass inverse-CDF sampling. When every
// candidate's delta is non-positive (no informative weight), it falls
// back to a uniform pick rather than dividing by a zero mass.
func sampleByDelta(cands []*Candidate, ops []*gate.Op, metric Metric, cfg Config, rng *rand.Rand) (*Candidate, error) {
	if len(cands) == 1 {
		return cands[0], nil
	}

	weights := make([]float64, len(cands))
	total := 0.0
	for i, c := range cands {
		d, err := c.Delta(metric, ops, cfg)
		if err != nil {
			return nil, err
		}
		if d > 0 {
			weights[i] = float64(d)
			total += weights[i]
		}
	}
	if total <= 0 {
		return cands[rng.Intn(len(cands))], nil
	}

	r := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return cands[i], nil
		}
	}
	return cands[len(cands)-1], nil
}

// filterDisjoint returns the subset of cands that conflicts with no
// member of applied.
func filterDisjoint(cands []*Candidate, applied []*Candidate) []*Candidate {
	var out []*Candidate
	for _, c := range cands {
		conflict := false
		for _, a := range applied {
			if c.Conflicts(a) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, c)
		}
	}
	return out
}
