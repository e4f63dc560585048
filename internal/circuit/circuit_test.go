package circuit

import (
	"testing"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/rules"
)

func TestNewDraftMatchesOperators(t *testing.T) {
	ops := []*gate.Op{
		gate.New(gate.H, []int{0}, ""),
		gate.New(gate.CX, []int{0, 1}, ""),
	}
	c := New([]string{"OPENQASM 2.0;"}, ops, rules.IBM)
	if got, want := c.Draft(), "hc"; got != want {
		t.Errorf("Draft() = %q, want %q", got, want)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestUpdateCompactsAbandonedOperators(t *testing.T) {
	ops := []*gate.Op{
		gate.New(gate.H, []int{0}, ""),
		gate.New(gate.CX, []int{0, 1}, ""),
	}
	c := New(nil, ops, rules.IBM)
	c.Operators[0].Kind = gate.Abandon
	if err := c.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Update should drop the abandoned operator, Len() = %d", c.Len())
	}
	if c.Draft() != "c" {
		t.Errorf("Draft() after Update = %q, want %q", c.Draft(), "c")
	}
}

func TestUpdateCatchesAbandonSurviving(t *testing.T) {
	// Manually forcing an Abandon to survive into checkInvariants
	// must trip the abandoned-operator check.
	c := New(nil, []*gate.Op{gate.New(gate.H, []int{0}, "")}, rules.IBM)
	c.Operators[0].Kind = gate.Abandon
	c.draft = []byte{gate.Code(gate.H)} // draft stale vs the abandoned op
	if err := c.checkInvariants(); err == nil {
		t.Error("expected an invariant violation for a surviving abandoned operator")
	}
}

func TestInfoCachesUntilReplace(t *testing.T) {
	ops := []*gate.Op{gate.New(gate.H, []int{0}, "")}
	c := New(nil, ops, rules.IBM)
	first, err := c.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	second, err := c.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if first != second {
		t.Error("Info() should return the same cached pointer until Replace/Update")
	}

	c.Replace([]*gate.Op{gate.New(gate.X, []int{0}, "")})
	third, err := c.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if third == first {
		t.Error("Info() should recompute after Replace")
	}
}

func TestFreezeOrigin(t *testing.T) {
	ops := []*gate.Op{gate.New(gate.H, []int{0}, ""), gate.New(gate.X, []int{0}, "")}
	c := New(nil, ops, rules.IBM)
	if err := c.FreezeOrigin(); err != nil {
		t.Fatalf("FreezeOrigin: %v", err)
	}
	if c.Origin.Size != 2 {
		t.Errorf("Origin.Size = %d, want 2", c.Origin.Size)
	}
	c.Replace(nil)
	if c.Origin.Size != 2 {
		t.Error("mutating the circuit after FreezeOrigin should not retroactively change Origin")
	}
}

func TestOutputRendersHeaderThenOperators(t *testing.T) {
	ops := []*gate.Op{gate.New(gate.CX, []int{0, 1}, "")}
	c := New([]string{"OPENQASM 2.0;", `include "qelib1.inc";`}, ops, rules.IBM)
	want := "OPENQASM 2.0;\ninclude \"qelib1.inc\";\ncx q[0],q[1];\n"
	if got := c.Output(); got != want {
		t.Errorf("Output() = %q, want %q", got, want)
	}
}

func TestComputeInfoDepthAndCycles(t *testing.T) {
	ops := []*gate.Op{
		gate.New(gate.H, []int{0}, ""),
		gate.New(gate.CX, []int{0, 1}, ""),
		gate.New(gate.H, []int{1}, ""),
	}
	info, err := ComputeInfo(ops)
	if err != nil {
		t.Fatalf("ComputeInfo: %v", err)
	}
	if info.Size != 3 {
		t.Errorf("Size = %d, want 3", info.Size)
	}
	if info.Cycles != 4 { // 1 + 2 + 1
		t.Errorf("Cycles = %d, want 4", info.Cycles)
	}
	if info.QubitsNum != 2 {
		t.Errorf("QubitsNum = %d, want 2", info.QubitsNum)
	}
	if info.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3 (h on q0 is layer 1, cx waits for it at layer 2, h on q1 waits for cx at layer 3)", info.MaxDepth)
	}
}

func TestComputeInfoSkipsAbandoned(t *testing.T) {
	ops := []*gate.Op{gate.New(gate.H, []int{0}, "")}
	ops[0].Kind = gate.Abandon
	info, err := ComputeInfo(ops)
	if err != nil {
		t.Fatalf("ComputeInfo: %v", err)
	}
	if info.Size != 0 || info.QubitsNum != 0 {
		t.Errorf("abandoned operators should contribute nothing, got %+v", info)
	}
}

func TestComputeInfoRejectsQubitOverCap(t *testing.T) {
	ops := []*gate.Op{gate.New(gate.H, []int{QubitIndexCap}, "")}
	if _, err := ComputeInfo(ops); err == nil {
		t.Error("expected QubitIndexOutOfRange for a qubit index at the cap")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		size int
		want DepthSize
	}{
		{0, Small}, {100, Small}, {101, Medium}, {999, Medium}, {1000, Large},
	}
	for _, c := range cases {
		if got := Classify(c.size); got != c.want {
			t.Errorf("Classify(%d) = %s, want %s", c.size, got, c.want)
		}
	}
}
