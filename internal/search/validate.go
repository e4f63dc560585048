package search

import (
	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/pattern"
	"github.com/qcpm/qcpmgo/internal/position"
)

// BuildCandidates enumerates every position.Find tuple for pat over
// draft and admits it as a Candidate iff Validate succeeds: first the
// pattern must match, then the intervening-operator sensitivity check
// must pass.
func BuildCandidates(ops []*gate.Op, draft string, pat pattern.Pattern, cfg Config) ([]*Candidate, error) {
	var out []*Candidate
	for positions := range position.Find(draft, pat.Src.Operator, cfg.DistanceLimit) {
		cand, ok, err := Validate(ops, pat, positions)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, cand)
		}
	}
	return out, nil
}

// Validate checks a position tuple against pat: first that pattern.Match
// succeeds (binding letters, distinctness, angle constraints), then that
// no intervening operator (one strictly between positions[0] and
// positions[-1] but not itself in positions) touches a bound qubit in
// a way that would change the pattern's meaning if reordered around it.
func Validate(ops []*gate.Op, pat pattern.Pattern, positions []int) (*Candidate, bool, error) {
	ok, res := pattern.Match(ops, positions, pat.Src)
	if !ok {
		return nil, false, nil
	}

	qAll, qTarget := boundQubits(pat.Src, res)

	inPositions := make(map[int]bool, len(positions))
	for _, p := range positions {
		inPositions[p] = true
	}

	begin, end := positions[0], positions[len(positions)-1]
	for i := begin + 1; i < end; i++ {
		if inPositions[i] {
			continue
		}
		if !interveningOK(ops[i], qAll, qTarget) {
			return nil, false, nil
		}
	}

	return &Candidate{Pattern: pat, Positions: positions, cycleDelta: pat.DeltaCycle}, true, nil
}

// boundQubits resolves the pattern's bound letters against the match's
// books, splitting them into the set of all bound qubits (qAll) and
// the subset bound in a target-role slot (qTarget).
func boundQubits(src pattern.Template, res pattern.MatchResult) (qAll, qTarget map[int]bool) {
	qAll = map[int]bool{}
	qTarget = map[int]bool{}
	roles := src.SlotRoles()
	for i := 0; i < len(src.Operands) && i < len(roles); i++ {
		letter := src.Operands[i]
		qubit := res.Qubit(letter)
		qAll[qubit] = true
		if !roles[i] {
			qTarget[qubit] = true
		}
	}
	return qAll, qTarget
}

// interveningOK reports whether op, sitting strictly between a
// candidate's bounding positions but not part of it, may be safely
// ignored. A 1-operand operator must not touch any bound qubit; a
// 2-operand operator's target slot o[1] must not touch any bound
// qubit, and its control slot o[0] must not touch a qubit bound in a
// target role. A 3-operand intervening operator (e.g. a ccz the
// system's expansion rules don't decompose) commutes with nothing we
// can reason about cheaply, but it also carries no single-slot
// sensitivity rule, so it is admitted.
func interveningOK(op *gate.Op, qAll, qTarget map[int]bool) bool {
	switch len(op.Operands) {
	case 1:
		return !qAll[op.Operands[0]]
	case 2:
		if qAll[op.Operands[1]] {
			return false
		}
		return !qTarget[op.Operands[0]]
	default:
		return true
	}
}
