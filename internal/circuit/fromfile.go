package circuit

import "github.com/qcpm/qcpmgo/internal/qcio"

// InfoFromFile computes a CircuitInfo snapshot for the circuit at
// path without building a full Circuit (no system is known yet, so no
// expansion/migration/rewrite pass runs). Useful for inspecting a
// file's depth_size ahead of deciding how (or whether) to load it.
func InfoFromFile(path string) (*Info, error) {
	_, ops, err := qcio.Preprocess(path)
	if err != nil {
		return nil, err
	}
	return ComputeInfo(ops)
}
