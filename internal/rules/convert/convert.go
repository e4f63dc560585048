// Package convert implements the migration pattern-conversion
// utility: it derives a non-IBM system's rule set from the IBM rule
// set it was authored against, by substituting every IBM operator in
// a rule's templates with its migrated decomposition. The embedded
// Surface/U rule resources are separate hand-kept files; nothing in
// the module runs Convert over them.
package convert

import (
	"fmt"
	"strings"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/pattern"
)

// Convert rewrites every pattern in patterns (assumed to be expressed
// over IBM operators) into the equivalent pattern over the system
// migration targets, by replacing each templated IBM operator with its
// migration destination operators, per migration (as loaded by
// rules.LoadMigration(IBM, target)). An operator with no matching
// migration rule passes through unchanged, exactly as rewrite.Migrate
// leaves an untranslated operator alone in a live circuit.
func Convert(patterns []pattern.Pattern, migration []pattern.Pattern) ([]pattern.Pattern, error) {
	out := make([]pattern.Pattern, len(patterns))
	for i, p := range patterns {
		src, err := convertTemplate(p.Src, migration)
		if err != nil {
			return nil, fmt.Errorf("convert: rule %d src: %w", i, err)
		}
		dst, err := convertTemplate(p.Dst, migration)
		if err != nil {
			return nil, fmt.Errorf("convert: rule %d dst: %w", i, err)
		}
		out[i] = pattern.Pattern{
			Src:        src,
			Dst:        dst,
			DeltaCycle: arity(src.Operator) - arity(dst.Operator),
			Index:      p.Index,
		}
	}
	return out, nil
}

// convertTemplate walks t's operators left to right, substituting each
// one (by kind code) for its migration destination operators, with the
// destination's own local operand letters remapped onto whichever
// letters are actually bound at that slot in t.
func convertTemplate(t pattern.Template, migration []pattern.Pattern) (pattern.Template, error) {
	var op, operands strings.Builder
	var angles []string

	pos := 0
	for i := 0; i < len(t.Operator); i++ {
		code := t.Operator[i]
		kind, ok := gate.FromCode(code)
		if !ok {
			return pattern.Template{}, fmt.Errorf("unknown operator code %q", code)
		}
		n := gate.CountQubits(kind)
		letters := t.Operands[pos : pos+n]
		pos += n

		rule, ok := findSingleRule(migration, code)
		if !ok {
			op.WriteByte(code)
			operands.WriteString(letters)
			angles = append(angles, t.Angles[i])
			continue
		}

		mapping := make(map[byte]byte, len(letters))
		for j := 0; j < len(letters) && j < len(rule.Src.Operands); j++ {
			mapping[rule.Src.Operands[j]] = letters[j]
		}

		dstPos := 0
		for j := 0; j < rule.Dst.Size(); j++ {
			dstCode := rule.Dst.Operator[j]
			dstKind, ok := gate.FromCode(dstCode)
			if !ok {
				return pattern.Template{}, fmt.Errorf("unknown migration destination code %q", dstCode)
			}
			dstN := gate.CountQubits(dstKind)
			op.WriteByte(dstCode)
			for k := 0; k < dstN; k++ {
				operands.WriteByte(mapping[rule.Dst.Operands[dstPos+k]])
			}
			dstPos += dstN
			angles = append(angles, rule.Dst.Angles[j])
		}
	}

	return pattern.Template{Operator: op.String(), Operands: operands.String(), Angles: angles}, nil
}

// findSingleRule returns the migration rule whose (single-operator)
// source template matches code, if any.
func findSingleRule(migration []pattern.Pattern, code byte) (pattern.Pattern, bool) {
	for _, r := range migration {
		if r.Src.Size() == 1 && r.Src.Operator[0] == code {
			return r, true
		}
	}
	return pattern.Pattern{}, false
}

// arity sums the fixed qubit arity of every kind code in a signature,
// mirroring pattern.Pattern's own static cycle-delta computation.
func arity(codes string) int {
	total := 0
	for i := 0; i < len(codes); i++ {
		if k, ok := gate.FromCode(codes[i]); ok {
			total += gate.CountQubits(k)
		}
	}
	return total
}
