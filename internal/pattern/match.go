package pattern

import "github.com/qcpm/qcpmgo/internal/gate"

// books binds each letter variable ('a'-'z') to the qubit index it has
// been matched against so far in one Match call. -1 means unbound.
// A fixed-size array is used instead of a map: letters are bounded
// (a-z) and reset on every match, so there is nothing a map buys here.
type books [26]int

func newBooks() books {
	var b books
	for i := range b {
		b[i] = -1
	}
	return b
}

// MatchResult carries the qubit binding and the flattened target
// operand list produced by a successful Match, both needed to
// instantiate a destination template.
type MatchResult struct {
	Books   books
	Targets []int
}

// Qubit returns the qubit index bound to letter, or -1 if unbound.
func (r MatchResult) Qubit(letter byte) int { return r.Books.Qubit(letter) }

// Qubit returns the qubit index bound to letter, or -1 if unbound.
func (b books) Qubit(letter byte) int { return b[letter-'a'] }

// Match checks whether src matches the operators at positions (in
// order), binding letter variables to qubit indices as it goes:
// operator-code check, letter binding, distinctness check (no two
// distinct letters may bind to the same qubit), and verbatim angle
// check.
func Match(ops []*gate.Op, positions []int, src Template) (bool, MatchResult) {
	if len(positions) != src.Size() {
		return false, MatchResult{}
	}

	b := newBooks()
	targets := make([]int, 0, len(positions))
	letterPos := 0

	for i, pos := range positions {
		op := ops[pos]

		code := src.Operator[i]
		kind, ok := gate.FromCode(code)
		if !ok || op.Kind != kind {
			return false, MatchResult{}
		}

		arityN := gate.CountQubits(kind)
		if len(op.Operands) != arityN || letterPos+arityN > len(src.Operands) {
			return false, MatchResult{}
		}

		for j := 0; j < arityN; j++ {
			letter := src.Operands[letterPos+j]
			target := op.Operands[j]
			li := letter - 'a'
			if b[li] == -1 {
				b[li] = target
			} else if b[li] != target {
				return false, MatchResult{}
			}
		}
		letterPos += arityN

		if src.Angles[i] != "" && src.Angles[i] != op.Angle {
			return false, MatchResult{}
		}

		targets = append(targets, op.Operands...)
	}

	if !distinct(src.Operands, b) {
		return false, MatchResult{}
	}

	return true, MatchResult{Books: b, Targets: targets}
}

// distinct reports whether every distinct letter used in operands is
// bound to a distinct qubit: two different letters may never collapse
// onto the same physical qubit within one match.
func distinct(operands string, b books) bool {
	seenLetters := map[byte]bool{}
	seenQubits := map[int]bool{}
	for i := 0; i < len(operands); i++ {
		l := operands[i]
		if seenLetters[l] {
			continue
		}
		seenLetters[l] = true
		seenQubits[b[l-'a']] = true
	}
	return len(seenLetters) == len(seenQubits)
}

// Instantiate builds the concrete operand list for a destination
// template operator at index i, resolving each letter through books.
func Instantiate(dst Template, opIndex int, b books) []int {
	start, arityN := dstOperandSpan(dst, opIndex)
	out := make([]int, arityN)
	for j := 0; j < arityN; j++ {
		out[j] = b.Qubit(dst.Operands[start+j])
	}
	return out
}

func dstOperandSpan(dst Template, opIndex int) (start, arityN int) {
	for i := 0; i < opIndex; i++ {
		if k, ok := gate.FromCode(dst.Operator[i]); ok {
			start += gate.CountQubits(k)
		}
	}
	if k, ok := gate.FromCode(dst.Operator[opIndex]); ok {
		arityN = gate.CountQubits(k)
	}
	return start, arityN
}
