package gate

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/qcpm/qcpmgo/internal/qcerr"
)

var creationCounter atomic.Uint64

// Op represents a single gate operator: a kind, its ordered operand
// qubit indices, an optional angle expression (rotation kinds only),
// and a monotonic creation index used only for diagnostics.
type Op struct {
	Kind     Kind
	Operands []int
	Angle    string
	Index    uint64
}

// New constructs an Op and assigns it the next monotonic creation index.
func New(kind Kind, operands []int, angle string) *Op {
	return &Op{
		Kind:     kind,
		Operands: append([]int(nil), operands...),
		Angle:    NormalizeAngle(angle),
		Index:    creationCounter.Add(1),
	}
}

// NormalizeAngle strips whitespace and a single bracket wrapper, per
// the pattern/operator angle-normalization rule.
func NormalizeAngle(angle string) string {
	if angle == "" {
		return ""
	}
	angle = strings.ReplaceAll(angle, " ", "")
	if len(angle) >= 2 && angle[0] == '[' && angle[len(angle)-1] == ']' {
		angle = angle[1 : len(angle)-1]
		angle = strings.ReplaceAll(angle, " ", "")
	}
	return angle
}

// ParseToken splits a wire token like "rx(-pi/2)" or "cx" into its
// Kind and angle expression.
func ParseToken(raw string) (Kind, string, error) {
	base, angle := raw, ""
	if idx := strings.IndexByte(raw, '('); idx >= 0 {
		if !strings.HasSuffix(raw, ")") {
			return Abandon, "", qcerr.NewParseError("malformed angle expression in %q", raw)
		}
		base = raw[:idx]
		angle = NormalizeAngle(raw[idx+1 : len(raw)-1])
	}
	kind, ok := FromToken(base)
	if !ok {
		return Abandon, "", qcerr.NewParseError("unknown gate kind %q", base)
	}
	return kind, angle, nil
}

// Change mutates the operator in place: Abandon needs nothing else;
// otherwise the new kind is set first, and if new operands are
// supplied their count must match the new kind's arity
// (ArityMismatch otherwise). Omitted operands keep the operator's
// existing ones. An empty newAngle leaves Angle untouched.
func (o *Op) Change(newKind Kind, newOperands []int, newAngle string) error {
	if newKind == Abandon {
		o.Kind = Abandon
		return nil
	}

	o.Kind = newKind

	if newOperands != nil {
		if want := CountQubits(newKind); len(newOperands) != want {
			return qcerr.NewArityMismatch(Token(newKind), want, len(newOperands))
		}
		o.Operands = append([]int(nil), newOperands...)
	}

	if newAngle != "" {
		o.Angle = NormalizeAngle(newAngle)
	}

	return nil
}

// Output renders the operator's QASM-like line. Abandoned operators
// and operators with no operands render as the empty string.
func (o *Op) Output() string {
	if o.Kind == Abandon || len(o.Operands) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(Token(o.Kind))
	if o.Angle != "" {
		sb.WriteByte('(')
		sb.WriteString(o.Angle)
		sb.WriteByte(')')
	}
	sb.WriteByte(' ')
	for i, opd := range o.Operands {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("q[")
		sb.WriteString(strconv.Itoa(opd))
		sb.WriteByte(']')
	}
	sb.WriteString(";\n")
	return sb.String()
}

func (o *Op) String() string {
	return fmt.Sprintf("No: %d, %s %v", o.Index, Token(o.Kind), o.Operands)
}
