// Package rewrite implements the streaming rewrite passes (component
// C): reduction, commutation, expansion and migration, each consuming
// a stream of operators and producing a rewritten stream through a
// small bounded look-behind buffer rather than materializing the
// whole circuit.
package rewrite

import (
	"iter"

	"github.com/qcpm/qcpmgo/internal/gate"
)

// windowedPass threads operators through a bounded deque buffer, per
// incoming token: append, evict front-overflow, then attempt step
// exactly once, not looped to a local fixpoint, so an operator
// produced by one fold still flows downstream before it can
// re-combine with anything already flushed. Once the buffer grows
// past maxSize (0 means unbounded), the oldest operator is flushed
// first, since it can no longer take part in any match step would
// attempt against the now-evicted buffer. The tail of the stream is
// drained with no further step attempts.
func windowedPass(in iter.Seq[*gate.Op], maxSize int, step func(buf []*gate.Op) ([]*gate.Op, bool)) iter.Seq[*gate.Op] {
	return func(yield func(*gate.Op) bool) {
		var buf []*gate.Op

		for o := range in {
			buf = append(buf, o)

			if maxSize > 0 {
				for len(buf) > maxSize {
					if !yield(buf[0]) {
						return
					}
					buf = buf[1:]
				}
			}

			if nb, applied := step(buf); applied {
				buf = nb
			}
		}

		for len(buf) > 0 {
			if !yield(buf[0]) {
				return
			}
			buf = buf[1:]
		}
	}
}
