package engine

import (
	"fmt"

	"github.com/qcpm/qcpmgo/internal/circuit"
	"github.com/qcpm/qcpmgo/internal/qcerr"
)

func depthSizeMismatch(want, got circuit.DepthSize) error {
	return qcerr.NewDepthSizeMismatch(string(want), string(got))
}

// Summary renders the origin-vs-final CircuitInfo comparison printed
// after a run: size, depth and cycles, before and after, each with
// its reduction percentage.
func Summary(c *circuit.Circuit) (string, error) {
	after, err := c.Info()
	if err != nil {
		return "", err
	}
	before := c.Origin
	if before == nil {
		before = after
	}

	return fmt.Sprintf(
		"size: %d -> %d (%s)\nqubits: %d\ndepth: %d -> %d (%s)\ncycles: %d -> %d (%s)",
		before.Size, after.Size, reducePct(before.Size, after.Size),
		after.QubitsNum,
		before.MaxDepth, after.MaxDepth, reducePct(before.MaxDepth, after.MaxDepth),
		before.Cycles, after.Cycles, reducePct(before.Cycles, after.Cycles),
	), nil
}

// reducePct formats a before/after reduction the way the stats CSV
// does: "N(pp.pp%)" or "N(-)" when there was no reduction.
func reducePct(before, after int) string {
	n := before - after
	if n == 0 || before == 0 {
		return fmt.Sprintf("%d(-)", n)
	}
	pct := float64(n) / float64(before) * 100
	return fmt.Sprintf("%d(%.2f%%)", n, pct)
}
