// Command qcpm is the CLI wrapper around the rewrite engine: it reads
// circuit files, drives engine.Run, and writes the optimized result.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/qcpm/qcpmgo/cmd/qcpm/commands"
)

const version = "0.1.0"

var commandAliases = map[string]string{
	"r": "run",
	"b": "batch",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		usage()
	case "--version", "-v", "version":
		fmt.Println("qcpm", version)
	case "run":
		if err := commands.Run(args[1:]); err != nil {
			log.Fatalf("qcpm run: %v", err)
		}
	case "batch":
		if err := commands.Batch(args[1:]); err != nil {
			log.Fatalf("qcpm batch: %v", err)
		}
	case "info":
		if err := commands.Info(args[1:]); err != nil {
			log.Fatalf("qcpm info: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "qcpm: unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`qcpm - quantum circuit rewrite optimizer

Usage:
  qcpm run <in> [out] [options]
  qcpm batch <in-dir> <out-dir> [options]
  qcpm info <file>

Options:
  -optimize=true|false
  -strategy=none|MCM|random
  -metric=cycle|depth
  -depth-size=all|small|medium|large
  -system=IBM|Surface|U
  -system-dst=IBM|Surface|U   (pairs with -system as the migration source)
  -stat=path.csv
  -statdb=dsn
  -log=path
  -logs=dir`)
}
