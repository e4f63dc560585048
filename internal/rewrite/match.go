package rewrite

import (
	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/pattern"
)

// maxSrcSize is the widest window a rule set can ever need to inspect.
func maxSrcSize(rules []pattern.Pattern) int {
	max := 0
	for _, r := range rules {
		if n := r.Src.Size(); n > max {
			max = n
		}
	}
	return max
}

// matchSuffix tries every rule's source template against the trailing
// len(rule.Src) operators of buf, in rule order, returning the first
// match (or ok=false if none matches or buf is shorter than the rule).
func matchSuffix(buf []*gate.Op, rules []pattern.Pattern) (pattern.Pattern, pattern.MatchResult, bool) {
	for _, r := range rules {
		n := r.Src.Size()
		if n == 0 || n > len(buf) {
			continue
		}
		positions := make([]int, n)
		start := len(buf) - n
		for i := range positions {
			positions[i] = start + i
		}
		ok, res := pattern.Match(buf, positions, r.Src)
		if ok {
			return r, res, true
		}
	}
	return pattern.Pattern{}, pattern.MatchResult{}, false
}

// instantiate builds the concrete operator list for a destination
// template given the letter->qubit bindings from a successful match.
func instantiate(dst pattern.Template, res pattern.MatchResult) []*gate.Op {
	out := make([]*gate.Op, dst.Size())
	for i := range out {
		kind, _ := gate.FromCode(dst.Operator[i])
		operands := pattern.Instantiate(dst, i, res.Books)
		out[i] = gate.New(kind, operands, dst.Angles[i])
	}
	return out
}
