package rules

import (
	"errors"
	"testing"

	"github.com/qcpm/qcpmgo/internal/qcerr"
)

func TestLoadIBMReversible(t *testing.T) {
	ps, err := Load(IBM, Reversible)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ps) == 0 {
		t.Fatal("IBM reversible rules should not be empty")
	}
	for _, p := range ps {
		if p.Dst.Size() != 0 {
			t.Errorf("reversible rule %d has non-empty destination %q", p.Index, p.Dst.Operator)
		}
	}
}

func TestLoadAbsentFileContributesNoRules(t *testing.T) {
	ps, err := Load(Surface, Hadamard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ps) != 0 {
		t.Errorf("Surface carries no hadamard.json, want 0 rules, got %d", len(ps))
	}
}

func TestLoadMigrationDirect(t *testing.T) {
	ps, swapped, err := LoadMigration(IBM, Surface)
	if err != nil {
		t.Fatalf("LoadMigration: %v", err)
	}
	if swapped {
		t.Error("IBM_to_Surface.json exists, expected a direct load")
	}
	if len(ps) == 0 {
		t.Fatal("expected migration rules")
	}
}

func TestLoadMigrationSwapFallback(t *testing.T) {
	// No Surface_to_IBM.json exists, so the loader must fall back to
	// IBM_to_Surface.json with src/dst swapped per rule.
	ps, swapped, err := LoadMigration(Surface, IBM)
	if err != nil {
		t.Fatalf("LoadMigration: %v", err)
	}
	if !swapped {
		t.Error("expected the swapped fallback to report swapped=true")
	}
	direct, _, err := LoadMigration(IBM, Surface)
	if err != nil {
		t.Fatalf("LoadMigration direct: %v", err)
	}
	if len(ps) != len(direct) {
		t.Fatalf("swapped set has %d rules, direct has %d", len(ps), len(direct))
	}
	for i := range ps {
		if ps[i].Src.Operator != direct[i].Dst.Operator || ps[i].Dst.Operator != direct[i].Src.Operator {
			t.Errorf("rule %d not a src/dst swap of the direct rule", i)
		}
	}
}

func TestLoadMigrationMissingBothWays(t *testing.T) {
	_, _, err := LoadMigration(Surface, U)
	if err == nil {
		t.Fatal("no Surface<->U migration file exists either way, expected an error")
	}
	if !errors.Is(err, qcerr.ErrRuleFileMissing) {
		t.Errorf("want RuleFileMissing, got %v", err)
	}
}
