package rewrite

import (
	"iter"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/pattern"
	"github.com/qcpm/qcpmgo/internal/rules"
)

// Expand runs the composite-gate expansion rules over the stream,
// one operator at a time: each source template spans exactly one
// operator (there is nothing upstream of it to bind multi-operand
// letters against), so matching reduces to "does this operator's kind
// and operand count agree with the rule". On a match, the single
// operator is replaced by the rule's destination operator list;
// operators with no matching rule pass through unchanged.
func Expand(in iter.Seq[*gate.Op], system rules.System) (iter.Seq[*gate.Op], error) {
	rs, err := rules.Load(system, rules.Expansion)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return in, nil
	}

	return func(yield func(*gate.Op) bool) {
		for op := range in {
			r, res, ok := matchOne(op, rs)
			if !ok {
				if !yield(op) {
					return
				}
				continue
			}
			for _, out := range instantiate(r.Dst, res) {
				if !yield(out) {
					return
				}
			}
		}
	}, nil
}

// matchOne tries every rule's (single-operator) source template
// against op, in rule order, returning the first that matches.
func matchOne(op *gate.Op, rs []pattern.Pattern) (pattern.Pattern, pattern.MatchResult, bool) {
	for _, r := range rs {
		if r.Src.Size() != 1 {
			continue
		}
		ok, res := pattern.Match([]*gate.Op{op}, []int{0}, r.Src)
		if ok {
			return r, res, true
		}
	}
	return pattern.Pattern{}, pattern.MatchResult{}, false
}
