package convert

import (
	"testing"

	"github.com/qcpm/qcpmgo/internal/pattern"
	"github.com/qcpm/qcpmgo/internal/rules"
)

func TestConvertSubstitutesMigratedOperators(t *testing.T) {
	reversible, err := rules.Load(rules.IBM, rules.Reversible)
	if err != nil {
		t.Fatalf("Load reversible: %v", err)
	}
	migration, _, err := rules.LoadMigration(rules.IBM, rules.Surface)
	if err != nil {
		t.Fatalf("LoadMigration: %v", err)
	}

	converted, err := Convert(reversible, migration)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(converted) != len(reversible) {
		t.Fatalf("Convert should preserve rule count, got %d want %d", len(converted), len(reversible))
	}

	// cx;cx -> empty is the first reversible rule; cx migrates to
	// h;cz;h on Surface, so its converted src should be 6 operators
	// (two expansions of 3) collapsing to an empty dst either way.
	cxcx := converted[0]
	if len(cxcx.Src.Operator) != 6 {
		t.Fatalf("cx;cx converted src should expand to 6 operators (2x h,cz,h), got %d: %q", len(cxcx.Src.Operator), cxcx.Src.Operator)
	}
	if len(cxcx.Dst.Operator) != 0 {
		t.Errorf("cx;cx's dst was already empty and has nothing to convert, got %q", cxcx.Dst.Operator)
	}
}

func TestConvertPassesThroughUnmigratedOperators(t *testing.T) {
	// the hadamard-sandwich rule h;s;h -> sdg has no migration entry
	// for h, s, or sdg in IBM_to_Surface.json, so it should be
	// unchanged by Convert.
	hadamard, err := rules.Load(rules.IBM, rules.Hadamard)
	if err != nil {
		t.Fatalf("Load hadamard: %v", err)
	}
	migration, _, err := rules.LoadMigration(rules.IBM, rules.Surface)
	if err != nil {
		t.Fatalf("LoadMigration: %v", err)
	}

	converted, err := Convert(hadamard, migration)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if converted[0].Src.Operator != hadamard[0].Src.Operator {
		t.Errorf("unmigrated src should pass through unchanged, got %q want %q", converted[0].Src.Operator, hadamard[0].Src.Operator)
	}
	if converted[0].Dst.Operator != hadamard[0].Dst.Operator {
		t.Errorf("unmigrated dst should pass through unchanged, got %q want %q", converted[0].Dst.Operator, hadamard[0].Dst.Operator)
	}
}

func TestConvertRemapsOperandLetters(t *testing.T) {
	// a bespoke one-rule set: src is a single cx[a,b], dst empty.
	// cx migrates to h[b],cz[a,b],h[b] on Surface (mirroring
	// IBM_to_Surface.json's cx rule verbatim), so the converted src's
	// letters must track a and b through that substitution rather than
	// silently reusing the migration rule's own local letters.
	ps, err := pattern.Parse([]byte(`[{"src": [["cx", [0, 1]]], "dst": []}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	migration, err := pattern.Parse([]byte(`[{"src": [["cx", [0, 1]]], "dst": [["h", [1]], ["cz", [0, 1]], ["h", [1]]]}]`))
	if err != nil {
		t.Fatalf("Parse migration: %v", err)
	}

	converted, err := Convert(ps, migration)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got, want := converted[0].Src.Operands, "babb"; got != want {
		t.Errorf("Src.Operands = %q, want %q (h[b],cz[a,b],h[b])", got, want)
	}
}
