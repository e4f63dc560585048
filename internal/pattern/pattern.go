package pattern

import (
	"encoding/json"
	"fmt"

	"github.com/qcpm/qcpmgo/internal/gate"
)

// Pattern is one rewrite rule: a source template that must match a
// window of operators, and a destination template that replaces it.
// Index is the rule's position within its rule file. The rewrite
// passes try rules in that file order and take the first match.
type Pattern struct {
	Src, Dst   Template
	DeltaCycle int
	Index      int
}

type ruleFile struct {
	Src [][]any `json:"src"`
	Dst [][]any `json:"dst"`
}

// Parse decodes a rule file's JSON body into its Pattern list. Each
// top-level JSON array element is one rule: {"src": [...], "dst": [...]}.
func Parse(data []byte) ([]Pattern, error) {
	var raw []ruleFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("pattern: decode rule file: %w", err)
	}

	patterns := make([]Pattern, 0, len(raw))
	for i, rf := range raw {
		letters := newLetterAssigner()
		src, err := parseTemplate(rf.Src, letters)
		if err != nil {
			return nil, fmt.Errorf("pattern: rule %d src: %w", i, err)
		}
		dst, err := parseTemplate(rf.Dst, letters)
		if err != nil {
			return nil, fmt.Errorf("pattern: rule %d dst: %w", i, err)
		}
		patterns = append(patterns, Pattern{
			Src:        src,
			Dst:        dst,
			DeltaCycle: arity(src.Operator) - arity(dst.Operator),
			Index:      i,
		})
	}
	return patterns, nil
}

// arity sums the fixed qubit arity of every kind code in a signature,
// the static component of the cycle cost metric (component E).
func arity(codes string) int {
	total := 0
	for i := 0; i < len(codes); i++ {
		if k, ok := gate.FromCode(codes[i]); ok {
			total += gate.CountQubits(k)
		}
	}
	return total
}

// Size is the number of operators the source template spans.
func (p Pattern) Size() int { return p.Src.Size() }

// Swap flips a migration rule's direction: a rule file written as
// "source system op -> target system ops" becomes usable in reverse
// when no direct file exists for the opposite direction.
func (p Pattern) Swap() Pattern {
	return Pattern{Src: p.Dst, Dst: p.Src, DeltaCycle: -p.DeltaCycle, Index: p.Index}
}
