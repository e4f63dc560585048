// Package circuit implements the circuit data model (component F's
// storage half): the ordered operator sequence, its draft string, and
// the derived CircuitInfo snapshot, kept consistent across every
// mutating rewrite pass.
package circuit

import (
	"strings"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/qcerr"
	"github.com/qcpm/qcpmgo/internal/rules"
)

// Circuit is an ordered sequence of operators plus the header lines
// and system tag needed to reproduce it on output, and the two
// CircuitInfo snapshots: Origin (frozen before the first optimize
// turn) and the live, lazily (re)computed current info.
type Circuit struct {
	Header    []string
	Operators []*gate.Op
	System    rules.System

	draft  []byte
	Origin *Info
	info   *Info
}

// New builds a Circuit from a parsed header and operator stream.
// The draft is derived immediately so it is in sync from construction.
func New(header []string, ops []*gate.Op, system rules.System) *Circuit {
	c := &Circuit{Header: header, Operators: ops, System: system}
	c.rebuildDraft()
	return c
}

// Draft returns the current kind-code signature string, one character
// per operator, kept in lockstep with Operators.
func (c *Circuit) Draft() string { return string(c.draft) }

// Len is the current operator count.
func (c *Circuit) Len() int { return len(c.Operators) }

func (c *Circuit) rebuildDraft() {
	buf := make([]byte, len(c.Operators))
	for i, op := range c.Operators {
		buf[i] = gate.Code(op.Kind)
	}
	c.draft = buf
}

// Replace swaps the circuit's operator stream wholesale. The
// streaming rewrite passes build the next-turn sequence functionally
// and hand it back rather than mutating Operators in place, so the
// draft every search sees stays stable for a whole turn.
func (c *Circuit) Replace(ops []*gate.Op) {
	c.Operators = ops
	c.rebuildDraft()
	c.info = nil
}

// Update runs the compaction pass: operators whose Kind has become
// gate.Abandon (left behind by a plan application) are filtered out,
// the draft is recomputed, and the live Info is invalidated. It then
// asserts the structural invariants and returns the first violation
// found.
func (c *Circuit) Update() error {
	kept := c.Operators[:0:0]
	for _, op := range c.Operators {
		if op.Kind == gate.Abandon {
			continue
		}
		kept = append(kept, op)
	}
	c.Operators = kept
	c.rebuildDraft()
	c.info = nil
	return c.checkInvariants()
}

// Info returns the live CircuitInfo, computing and caching it on
// first access after construction or the most recent Update/Replace.
func (c *Circuit) Info() (*Info, error) {
	if c.info != nil {
		return c.info, nil
	}
	info, err := ComputeInfo(c.Operators)
	if err != nil {
		return nil, err
	}
	c.info = info
	return info, nil
}

// FreezeOrigin snapshots the circuit's current Info as its Origin,
// the pre-optimization baseline the engine reports against in its
// final summary.
func (c *Circuit) FreezeOrigin() error {
	info, err := ComputeInfo(c.Operators)
	if err != nil {
		return err
	}
	c.Origin = info
	return nil
}

// checkInvariants asserts draft/operator lockstep and per-operator
// operand arity over the current state. Binding distinctness and plan
// disjointness are properties of a single match or plan and are
// checked at those call sites instead of here.
func (c *Circuit) checkInvariants() error {
	if len(c.draft) != len(c.Operators) {
		return qcerr.NewInvariantError("draft length %d != operators length %d", len(c.draft), len(c.Operators))
	}
	for i, op := range c.Operators {
		if op.Kind == gate.Abandon {
			return qcerr.NewInvariantError("abandoned operator survived update at position %d", i)
		}
		if c.draft[i] != gate.Code(op.Kind) {
			return qcerr.NewInvariantError("draft[%d]=%q != code(%s)", i, c.draft[i], gate.Token(op.Kind))
		}
		if len(op.Operands) != gate.CountQubits(op.Kind) {
			return qcerr.NewInvariantError("operator %d (%s) has %d operands, arity is %d", i, gate.Token(op.Kind), len(op.Operands), gate.CountQubits(op.Kind))
		}
	}
	return nil
}

// Output renders the full circuit back to its QASM-like textual form:
// the preserved header lines followed by one rendered line per
// non-abandoned, non-empty operator.
func (c *Circuit) Output() string {
	var sb strings.Builder
	for _, line := range c.Header {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	for _, op := range c.Operators {
		sb.WriteString(op.Output())
	}
	return sb.String()
}
