package commands

import (
	"flag"
	"fmt"

	"github.com/qcpm/qcpmgo/internal/circuit"
)

// Info is the `qcpm info <file>` entry point: reports a circuit file's
// size/qubit/depth/cycle/depth_size shape without running any
// expansion, migration, or rewrite pass, via circuit.InfoFromFile.
func Info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: qcpm info <file>")
	}

	info, err := circuit.InfoFromFile(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("size: %d\n", info.Size)
	fmt.Printf("qubits: %d\n", info.QubitsNum)
	fmt.Printf("depth: %d\n", info.MaxDepth)
	fmt.Printf("cycles: %d\n", info.Cycles)
	fmt.Printf("depth_size: %s\n", info.DepthSizeClass)
	return nil
}
