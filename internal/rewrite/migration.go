package rewrite

import (
	"iter"

	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/rules"
)

// Migrate rewrites each operator from src's gate set into dst's,
// one source operator at a time, per the migration rule file loaded
// by rules.LoadMigration (which already applies the swapped
// reverse-file fallback when no direct file exists). An operator with no matching
// migration rule passes through unchanged, since not every kind needs
// translating between two systems that share most of their gate set.
func Migrate(in iter.Seq[*gate.Op], src, dst rules.System) (iter.Seq[*gate.Op], error) {
	if src == dst {
		return in, nil
	}
	rs, _, err := rules.LoadMigration(src, dst)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return in, nil
	}

	return func(yield func(*gate.Op) bool) {
		for op := range in {
			r, res, ok := matchOne(op, rs)
			if !ok {
				if !yield(op) {
					return
				}
				continue
			}
			for _, out := range instantiate(r.Dst, res) {
				if !yield(out) {
					return
				}
			}
		}
	}, nil
}
