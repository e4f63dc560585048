// Package gate implements the operator model (component A): gate
// kinds, their fixed qubit arity, the kind<->code bijection used by
// the draft string and pattern signatures, and the Op type itself.
package gate

import "fmt"

// Kind enumerates every gate kind the engine understands, plus the
// Abandon sentinel used to mark an operator for erasure on the next
// compaction pass.
type Kind int

const (
	Abandon Kind = iota
	ID
	H
	X
	Y
	Z
	S
	Sdg
	T
	Tdg
	RX
	RY
	RZ
	U1
	U2
	U3
	CX
	CZ
	SWAP
	CCX
	CCZ
	numKinds
)

type meta struct {
	token    string // QASM-like wire token, e.g. "cx", "rx"
	code     byte   // single-character draft/pattern-signature code
	arity    int    // fixed qubit arity: 1, 2, or 3
	rotation bool   // true if the kind carries an angle
}

var table = [numKinds]meta{
	Abandon: {token: "_", code: '_', arity: 0},
	ID:      {token: "id", code: 'I', arity: 1},
	H:       {token: "h", code: 'h', arity: 1},
	X:       {token: "x", code: 'x', arity: 1},
	Y:       {token: "y", code: 'y', arity: 1},
	Z:       {token: "z", code: 'z', arity: 1},
	S:       {token: "s", code: 's', arity: 1},
	Sdg:     {token: "sdg", code: 'S', arity: 1},
	T:       {token: "t", code: 't', arity: 1},
	Tdg:     {token: "tdg", code: 'T', arity: 1},
	RX:      {token: "rx", code: 'X', arity: 1, rotation: true},
	RY:      {token: "ry", code: 'Y', arity: 1, rotation: true},
	RZ:      {token: "rz", code: 'Z', arity: 1, rotation: true},
	U1:      {token: "u1", code: '1', arity: 1, rotation: true},
	U2:      {token: "u2", code: '2', arity: 1, rotation: true},
	U3:      {token: "u3", code: '3', arity: 1, rotation: true},
	CX:      {token: "cx", code: 'c', arity: 2},
	CZ:      {token: "cz", code: 'e', arity: 2},
	SWAP:    {token: "swap", code: 'w', arity: 2},
	CCX:     {token: "ccx", code: 'F', arity: 3},
	CCZ:     {token: "ccz", code: 'C', arity: 3},
}

// tofAlias lets "tof" parse to the same Kind as "ccx"; some emitters
// use the Toffoli name for the same gate.
const tofAlias = "tof"

var tokenToKind map[string]Kind
var codeToKind [256]Kind
var codeIsSet [256]bool

func init() {
	tokenToKind = make(map[string]Kind, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		m := table[k]
		tokenToKind[m.token] = k
		if codeIsSet[m.code] {
			panic(fmt.Sprintf("gate: code %q already assigned, kind<->code bijection broken", m.code))
		}
		codeToKind[m.code] = k
		codeIsSet[m.code] = true
	}
	tokenToKind[tofAlias] = CCX
}

// CountQubits returns the fixed qubit arity of kind (1, 2, or 3; 0 for Abandon).
func CountQubits(k Kind) int { return table[k].arity }

// IsRotation reports whether kind carries an angle string.
func IsRotation(k Kind) bool { return table[k].rotation }

// Code returns the single-character draft/pattern-signature code for kind.
func Code(k Kind) byte { return table[k].code }

// FromCode is the inverse of Code.
func FromCode(c byte) (Kind, bool) {
	if !codeIsSet[c] {
		return Abandon, false
	}
	return codeToKind[c], true
}

// Token returns the wire token ("cx", "rx", ...) for kind.
func Token(k Kind) string { return table[k].token }

// FromToken parses a wire token into a Kind.
func FromToken(tok string) (Kind, bool) {
	k, ok := tokenToKind[tok]
	return k, ok
}

func (k Kind) String() string { return table[k].token }
