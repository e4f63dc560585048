package search

import (
	"fmt"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/pattern"
)

// ApplyToOps instantiates cand's destination template in place of its
// source positions within ops, returning a new slice (the operators at
// the untouched positions are shared with ops; the operators at
// cand.Positions are cloned before mutation so ops itself is never
// touched, so callers exploring a hypothetical, like the depth-delta
// simulation, get an isolated result). It re-runs Match to obtain a
// fresh binding rather than trusting one recorded at validation time.
// Source positions past the destination's template count are set to
// gate.Abandon for the next compaction to erase.
func ApplyToOps(ops []*gate.Op, cand *Candidate) ([]*gate.Op, error) {
	ok, res := pattern.Match(ops, cand.Positions, cand.Pattern.Src)
	if !ok {
		return nil, fmt.Errorf("search: candidate at %v no longer matches %q", cand.Positions, cand.Pattern.Src.Operator)
	}

	out := append([]*gate.Op(nil), ops...)
	dstSize := cand.Pattern.Dst.Size()

	for i, pos := range cand.Positions {
		clone := *out[pos]
		opCopy := &clone
		out[pos] = opCopy

		if i < dstSize {
			kind, ok := gate.FromCode(cand.Pattern.Dst.Operator[i])
			if !ok {
				return nil, fmt.Errorf("search: destination code %q has no kind", cand.Pattern.Dst.Operator[i])
			}
			operands := pattern.Instantiate(cand.Pattern.Dst, i, res.Books)
			if err := opCopy.Change(kind, operands, cand.Pattern.Dst.Angles[i]); err != nil {
				return nil, err
			}
		} else {
			opCopy.Kind = gate.Abandon
		}
	}

	return out, nil
}
