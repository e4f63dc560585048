package rewrite

import (
	"iter"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/rules"
)

// MaxTurns caps how many (reduction -> commutation) turns one
// Optimize call runs before settling.
const MaxTurns = 3

// Collect materializes a streaming pass's output into a slice. The
// sliding-window passes are naturally iterator-shaped, but the
// candidate/plan search and the draft string both need random
// access, so the pipeline's final output is always collected once
// per turn.
func Collect(seq iter.Seq[*gate.Op]) []*gate.Op {
	var out []*gate.Op
	for op := range seq {
		out = append(out, op)
	}
	return out
}

// Seq adapts a materialized operator slice back into an iter.Seq, the
// input shape every streaming pass (Reduce, Commute, Expand, Migrate)
// expects.
func Seq(ops []*gate.Op) iter.Seq[*gate.Op] {
	return func(yield func(*gate.Op) bool) {
		for _, op := range ops {
			if !yield(op) {
				return
			}
		}
	}
}

func slice(ops []*gate.Op) iter.Seq[*gate.Op] { return Seq(ops) }

// Optimize runs one composite-optimization cycle: up to MaxTurns turns
// of (reduction -> commutation), stopping as soon as a turn's reduction
// and commutation passes together leave the draft unchanged, at which
// point one bonus reduction pass runs and Optimize returns.
func Optimize(ops []*gate.Op, system rules.System) (out []*gate.Op, err error) {
	cur := ops

	for turn := 0; turn < MaxTurns; turn++ {
		var turnChanged bool

		reduced, err := Reduce(slice(cur), system, &turnChanged)
		if err != nil {
			return nil, err
		}
		curAfterReduce := Collect(reduced)

		commuted, err := Commute(slice(curAfterReduce), system, &turnChanged)
		if err != nil {
			return nil, err
		}
		cur = Collect(commuted)

		if !turnChanged {
			var bonusChanged bool
			final, err := Reduce(slice(cur), system, &bonusChanged)
			if err != nil {
				return nil, err
			}
			cur = Collect(final)
			break
		}
	}

	return cur, nil
}
