package rewrite

import (
	"iter"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/rules"
)

// Commute applies the commutation rule set over the stream: whenever
// the trailing window of the buffer matches a rule's source signature,
// the suffix is replaced with the rule's destination template, which
// for a commutation rule is always the same operators in swapped
// order, the effect of commuting two adjacent gates whose commutator
// vanishes. changed records whether any rule fired.
func Commute(in iter.Seq[*gate.Op], system rules.System, changed *bool) (iter.Seq[*gate.Op], error) {
	rs, err := rules.Load(system, rules.Commutation)
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
