package rewrite

import (
	"iter"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/pattern"
	"github.com/qcpm/qcpmgo/internal/rules"
)

// Reduce runs the reversible-cancellation and Hadamard-identity rules
// over the stream, folding any matched trailing window into its
// (possibly empty) destination template as soon as it completes.
// changed is set to true if at least one rule fired.
func Reduce(in iter.Seq[*gate.Op], system rules.System, changed *bool) (iter.Seq[*gate.Op], error) {
	rs, err := loadReductionRules(system)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return in, nil
	}
	maxSize := maxSrcSize(rs)

	return windowedPass(in, maxSize, func(buf []*gate.Op) ([]*gate.Op, bool) {
		r, res, ok := matchSuffix(buf, rs)
		if !ok {
			return nil, false
		}
		*changed = true
		head := buf[:len(buf)-r.Src.Size()]
		return append(append([]*gate.Op(nil), head...), instantiate(r.Dst, res)...), true
	}), nil
}

func loadReductionRules(system rules.System) ([]pattern.Pattern, error) {
	reversible, err := rules.Load(system, rules.Reversible)
	if err != nil {
		return nil, err
	}
	hadamard, err := rules.Load(system, rules.Hadamard)
	if err != nil {
		return nil, err
	}
	return append(append([]pattern.Pattern(nil), reversible...), hadamard...), nil
}
