package circuit

import (
	"github.com/qcpm/qcpmgo/internal/gate"
	"github.com/qcpm/qcpmgo/internal/qcerr"
)

// QubitIndexCap is the internal ceiling on a qubit operand index.
// Depth computation refuses to run over a circuit that references a
// qubit at or above this.
const QubitIndexCap = 1000

// DepthSize buckets a circuit by its operator count, used to filter a
// batch run down to files of one size class.
type DepthSize string

const (
	Small   DepthSize = "small"
	Medium  DepthSize = "medium"
	Large   DepthSize = "large"
	AnySize DepthSize = "all"
)

// Classify buckets size into the small/medium/large categories: small
// is at most 100 operators, medium is under 1000, large is 1000 or more.
func Classify(size int) DepthSize {
	switch {
	case size <= 100:
		return Small
	case size < 1000:
		return Medium
	default:
		return Large
	}
}

// Info is a derived, point-in-time snapshot of a circuit's shape:
// size, qubit count, per-qubit layer depth, cycle count (sum of
// operator arities) and the kind sets in play. It never mutates the
// circuit it was computed from.
type Info struct {
	Size             int
	QubitsNum        int
	Depths           []int
	MaxDepth         int
	Cycles           int
	SingleQubitKinds map[gate.Kind]bool
	MultiQubitKinds  map[gate.Kind]bool
	DepthSizeClass   DepthSize
}

// ComputeInfo derives an Info snapshot from a live operator list.
// Abandoned operators are treated as erased: they contribute nothing
// to depth, cycles, or kind sets (a circuit is only ever inspected
// post-update, but Info is safe to call mid-pass too).
func ComputeInfo(ops []*gate.Op) (*Info, error) {
	info := &Info{
		SingleQubitKinds: map[gate.Kind]bool{},
		MultiQubitKinds:  map[gate.Kind]bool{},
	}

	maxQubit := -1
	for _, op := range ops {
		if op.Kind == gate.Abandon {
			continue
		}
		info.Size++
		info.Cycles += gate.CountQubits(op.Kind)
		if gate.CountQubits(op.Kind) == 1 {
			info.SingleQubitKinds[op.Kind] = true
		} else {
			info.MultiQubitKinds[op.Kind] = true
		}
		for _, q := range op.Operands {
			if q >= QubitIndexCap {
				return nil, qcerr.NewQubitIndexOutOfRange(q, QubitIndexCap)
			}
			if q > maxQubit {
				maxQubit = q
			}
		}
	}
	info.QubitsNum = maxQubit + 1
	if info.QubitsNum < 0 {
		info.QubitsNum = 0
	}

	depths := make([]int, info.QubitsNum)
	for _, op := range ops {
		if op.Kind == gate.Abandon {
			continue
		}
		layer := 0
		for _, q := range op.Operands {
			if depths[q] > layer {
				layer = depths[q]
			}
		}
		layer++
		for _, q := range op.Operands {
			depths[q] = layer
		}
		if layer > info.MaxDepth {
			info.MaxDepth = layer
		}
	}
	info.Depths = depths
	info.DepthSizeClass = Classify(info.Size)
	return info, nil
}
