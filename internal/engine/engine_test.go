package engine

import (
	"os"
	"strings"
	"testing"

	"github.com/qcpm/qcpmgo/internal/circuit"
	"github.com/qcpm/qcpmgo/internal/config"
	"github.com/qcpm/qcpmgo/internal/qcio"
	"github.com/qcpm/qcpmgo/internal/rules"
)

func loadFromString(t *testing.T, src string, opts config.Options) *circuit.Circuit {
	t.Helper()
	header, ops, err := qcio.PreprocessReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("PreprocessReader: %v", err)
	}
	if opts.DepthSize != circuit.AnySize {
		info, err := circuit.ComputeInfo(ops)
		if err != nil {
			t.Fatalf("ComputeInfo: %v", err)
		}
		if info.DepthSizeClass != opts.DepthSize {
			t.Fatalf("test setup: circuit classifies as %s, want %s", info.DepthSizeClass, opts.DepthSize)
		}
	}
	return circuit.New(header, ops, opts.System.Src)
}

func TestRunHadamardSandwichReducesToSDG(t *testing.T) {
	src := "OPENQASM 2.0;\ninclude \"qelib1.inc\";\nh q[0];\ns q[0];\nh q[0];\n"
	c := loadFromString(t, src, config.Default())
	e := New(nil)
	changed, err := e.Run(c, config.Default())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !changed {
		t.Error("expected the draft to shrink")
	}
	if c.Len() != 1 {
		t.Fatalf("want 1 residual operator, got %d: draft=%q", c.Len(), c.Draft())
	}
	if c.Operators[0].Kind.String() != "sdg" {
		t.Errorf("residual kind = %s, want sdg", c.Operators[0].Kind)
	}
}

func TestRunCancelsReversiblePair(t *testing.T) {
	src := "OPENQASM 2.0;\ninclude \"qelib1.inc\";\ncx q[0],q[1];\ncx q[0],q[1];\n"
	c := loadFromString(t, src, config.Default())
	e := New(nil)
	changed, err := e.Run(c, config.Default())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !changed {
		t.Error("expected the draft to shrink")
	}
	if c.Len() != 0 {
		t.Fatalf("want an empty circuit, got %d operators: draft=%q", c.Len(), c.Draft())
	}
}

func TestLoadRejectsDepthSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/in.qasm"
	if err := os.WriteFile(path, []byte("OPENQASM 2.0;\ninclude \"qelib1.inc\";\nh q[0];\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	opts := config.Default()
	opts.DepthSize = circuit.Large
	if _, err := Load(path, opts); err == nil {
		t.Fatal("expected a DepthSizeMismatch error for a small circuit under a large filter")
	}

	opts.DepthSize = circuit.Small
	if _, err := Load(path, opts); err != nil {
		t.Errorf("expected the small filter to accept the circuit, got %v", err)
	}
}

func TestMigrateOnlySwapsSystemsWithoutOptimizing(t *testing.T) {
	src := "OPENQASM 2.0;\ninclude \"qelib1.inc\";\ncx q[0],q[1];\n"
	opts := config.Default()
	opts.Optimize = false
	opts.System = config.SystemPair{Src: rules.IBM, Dst: rules.Surface}

	c := loadFromString(t, src, opts)
	e := New(nil)
	changed, err := e.Run(c, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if changed {
		t.Error("migrateOnly should never report a shrink")
	}
	if c.System != rules.Surface {
		t.Errorf("System = %s, want Surface", c.System)
	}
	if c.Len() != 3 {
		t.Fatalf("cx should migrate to h;cz;h on Surface, got %d ops: draft=%q", c.Len(), c.Draft())
	}
}

func TestSummaryReportsReduction(t *testing.T) {
	src := "OPENQASM 2.0;\ninclude \"qelib1.inc\";\ncx q[0],q[1];\ncx q[0],q[1];\n"
	c := loadFromString(t, src, config.Default())
	e := New(nil)
	if _, err := e.Run(c, config.Default()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out, err := Summary(c)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !strings.Contains(out, "size: 2 -> 0") {
		t.Errorf("Summary() = %q, want it to report size 2 -> 0", out)
	}
}
