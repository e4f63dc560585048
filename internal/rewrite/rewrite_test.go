package rewrite

import (
	"testing"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/rules"
)

func ops(kinds []gate.Kind, operands [][]int, angles []string) []*gate.Op {
	out := make([]*gate.Op, len(kinds))
	for i, k := range kinds {
		var angle string
		if angles != nil {
			angle = angles[i]
		}
		out[i] = gate.New(k, operands[i], angle)
	}
	return out
}

func TestReduceCancelsAdjacentCX(t *testing.T) {
	in := ops([]gate.Kind{gate.CX, gate.CX}, [][]int{{0, 1}, {0, 1}}, nil)
	var changed bool
	out, err := Reduce(Seq(in), rules.IBM, &changed)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	got := Collect(out)
	if len(got) != 0 {
		t.Errorf("cx;cx should cancel to nothing, got %d ops", len(got))
	}
	if !changed {
		t.Error("changed should be true")
	}
}

func TestReduceHadamardSandwich(t *testing.T) {
	in := ops([]gate.Kind{gate.H, gate.S, gate.H}, [][]int{{0}, {0}, {0}}, nil)
	var changed bool
	out, err := Reduce(Seq(in), rules.IBM, &changed)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	got := Collect(out)
	if len(got) != 1 || got[0].Kind != gate.Sdg {
		t.Errorf("h;s;h should fold to sdg, got %v", got)
	}
}

func TestReduceNoMatchPassesThrough(t *testing.T) {
	in := ops([]gate.Kind{gate.H, gate.X}, [][]int{{0}, {1}}, nil)
	var changed bool
	out, err := Reduce(Seq(in), rules.IBM, &changed)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	got := Collect(out)
	if len(got) != 2 {
		t.Errorf("unrelated ops should pass through untouched, got %d", len(got))
	}
	if changed {
		t.Error("changed should stay false when nothing matches")
	}
}

func TestCommuteSwapsXBeforeCX(t *testing.T) {
	in := ops([]gate.Kind{gate.X, gate.CX}, [][]int{{0}, {0, 1}}, nil)
	var changed bool
	out, err := Commute(Seq(in), rules.IBM, &changed)
	if err != nil {
		t.Fatalf("Commute: %v", err)
	}
	got := Collect(out)
	if len(got) != 2 || got[0].Kind != gate.CX || got[1].Kind != gate.X {
		t.Errorf("x;cx should commute to cx;x, got %v", got)
	}
	if !changed {
		t.Error("changed should be true")
	}
}

func TestExpandSwapIntoThreeCX(t *testing.T) {
	in := ops([]gate.Kind{gate.SWAP}, [][]int{{0, 1}}, nil)
	out, err := Expand(Seq(in), rules.IBM)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	got := Collect(out)
	if len(got) != 3 {
		t.Fatalf("swap should expand into 3 cx, got %d ops", len(got))
	}
	for _, o := range got {
		if o.Kind != gate.CX {
			t.Errorf("expanded op kind = %s, want cx", o.Kind)
		}
	}
}

func TestExpandPassesThroughUnmatchedKind(t *testing.T) {
	in := ops([]gate.Kind{gate.H}, [][]int{{0}}, nil)
	out, err := Expand(Seq(in), rules.IBM)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	got := Collect(out)
	if len(got) != 1 || got[0].Kind != gate.H {
		t.Errorf("h has no expansion rule and should pass through, got %v", got)
	}
}

func TestMigrateIBMToSurfaceRewritesCX(t *testing.T) {
	in := ops([]gate.Kind{gate.CX}, [][]int{{0, 1}}, nil)
	out, err := Migrate(Seq(in), rules.IBM, rules.Surface)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	got := Collect(out)
	if len(got) != 3 {
		t.Fatalf("cx should migrate to h;cz;h on Surface, got %d ops", len(got))
	}
	if got[0].Kind != gate.H || got[1].Kind != gate.CZ || got[2].Kind != gate.H {
		t.Errorf("migrated sequence = %v, want h,cz,h", got)
	}
}

func TestMigrateSameSystemIsIdentity(t *testing.T) {
	in := ops([]gate.Kind{gate.H, gate.CX}, [][]int{{0}, {0, 1}}, nil)
	out, err := Migrate(Seq(in), rules.IBM, rules.IBM)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	got := Collect(out)
	if len(got) != 2 {
		t.Errorf("migrating a system onto itself should be a no-op, got %d ops", len(got))
	}
}

func TestOptimizeFixedPoint(t *testing.T) {
	// h;s;h;h;s;h reduces turn 1 to sdg;sdg, which doesn't combine
	// further under reversible/hadamard rules, so Optimize should
	// settle after the first turn shows no further change.
	in := ops(
		[]gate.Kind{gate.H, gate.S, gate.H, gate.H, gate.S, gate.H},
		[][]int{{0}, {0}, {0}, {0}, {0}, {0}},
		nil,
	)
	out, err := Optimize(in, rules.IBM)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 sdg ops after folding both sandwiches, got %d: %v", len(out), out)
	}
	for _, o := range out {
		if o.Kind != gate.Sdg {
			t.Errorf("Optimize residual kind = %s, want sdg", o.Kind)
		}
	}
}

func TestOptimizeEmptyInput(t *testing.T) {
	out, err := Optimize(nil, rules.IBM)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Optimize(nil) = %v, want empty", out)
	}
}
