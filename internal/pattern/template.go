// Package pattern implements the pattern model (component B): rule
// templates with letter-variable operand binding, parsed from the
// system-scoped JSON rule resources, plus the match() primitive
// shared by every rewrite pass and by candidate validation.
package pattern

import (
	"fmt"
	"strings"

	"github.com/qcpm/qcpmgo/internal/gate"
)

// Template is one side (source or destination) of a rule: the kind
// code signature, the letter-variable operand signature, and one
// angle constraint per templated operator ("" means unconstrained).
type Template struct {
	Operator string
	Operands string
	Angles   []string
}

// Size is the number of templated operators (= len(Operator)).
func (t Template) Size() int { return len(t.Operator) }

// SlotRoles classifies every flat operand slot of t (aligned with
// t.Operands, one bool per letter) as control (true) or target
// (false): a 1-qubit gate's only slot is a target; a multi-qubit
// gate's last slot is its target and every other slot is a control.
func (t Template) SlotRoles() []bool {
	roles := make([]bool, 0, len(t.Operands))
	for i := 0; i < len(t.Operator); i++ {
		kind, ok := gate.FromCode(t.Operator[i])
		if !ok {
			continue
		}
		arityN := gate.CountQubits(kind)
		for j := 0; j < arityN; j++ {
			roles = append(roles, j < arityN-1 && arityN > 1)
		}
	}
	return roles
}

// rawEntry is one [kind, operands, angle?] template as decoded from JSON.
type rawEntry = []any

// letterAssigner normalizes arbitrary numeric operand indices to
// letters in order of first appearance (index seen first -> 'a',
// next new index -> 'b', ...), so rules are position-structural
// rather than index-bound. Shared across a rule's src and dst
// templates so a letter means the same bound slot on both sides of
// the rule.
type letterAssigner struct {
	seen map[int]byte
	next byte
}

func newLetterAssigner() *letterAssigner {
	return &letterAssigner{seen: map[int]byte{}, next: 'a'}
}

func (a *letterAssigner) letter(idx int) (byte, error) {
	if l, ok := a.seen[idx]; ok {
		return l, nil
	}
	if a.next > 'z' {
		return 0, fmt.Errorf("pattern template: more than 26 distinct operand indices")
	}
	l := a.next
	a.seen[idx] = l
	a.next++
	return l, nil
}

// parseTemplate normalizes a list of raw [kind, [operand_idx...], angle?]
// entries into a Template, assigning operand letters via letters (a
// fresh letterAssigner per rule, shared across its src and dst calls).
func parseTemplate(entries []rawEntry, letters *letterAssigner) (Template, error) {
	var operator, operands strings.Builder
	angles := make([]string, 0, len(entries))

	for _, entry := range entries {
		if len(entry) < 2 {
			return Template{}, fmt.Errorf("pattern template entry needs at least [kind, operands], got %v", entry)
		}

		token, ok := entry[0].(string)
		if !ok {
			return Template{}, fmt.Errorf("pattern template kind must be a string, got %v", entry[0])
		}
		kind, ok := gate.FromToken(token)
		if !ok {
			return Template{}, fmt.Errorf("pattern template: unknown gate kind %q", token)
		}
		operator.WriteByte(gate.Code(kind))

		rawOperands, ok := entry[1].([]any)
		if !ok {
			return Template{}, fmt.Errorf("pattern template operands must be a list, got %v", entry[1])
		}
		for _, v := range rawOperands {
			idx, ok := asInt(v)
			if !ok {
				return Template{}, fmt.Errorf("pattern template operand index must be a number, got %v", v)
			}
			letter, err := letters.letter(idx)
			if err != nil {
				return Template{}, err
			}
			operands.WriteByte(letter)
		}

		angle := ""
		if len(entry) >= 3 {
			angle = decodeAngle(entry[2])
		}
		angles = append(angles, angle)
	}

	return Template{Operator: operator.String(), Operands: operands.String(), Angles: angles}, nil
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func decodeAngle(v any) string {
	switch a := v.(type) {
	case string:
		return gate.NormalizeAngle(a)
	case []any:
		parts := make([]string, len(a))
		for i, p := range a {
			parts[i] = fmt.Sprint(p)
		}
		return gate.NormalizeAngle(strings.Join(parts, ","))
	default:
		return ""
	}
}
