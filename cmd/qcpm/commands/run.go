package commands

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/qcpm/qcpmgo/internal/engine"
	"github.com/qcpm/qcpmgo/internal/qcio"
	"github.com/qcpm/qcpmgo/internal/rlog"
)

// Run is the `qcpm run <in> [out]` entry point: optimize one circuit
// file and write the result.
func Run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	opt := bindOptionFlags(fs)
	seed := fs.Int64("seed", 1, "random seed for MCM/random strategies")
	verbose := fs.Bool("v", false, "print the final circuit's operator count")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: qcpm run <in> [out]")
	}
	in := fs.Arg(0)
	out := in + ".out"
	if fs.NArg() >= 2 {
		out = fs.Arg(1)
	}

	opts, err := opt.toOptions()
	if err != nil {
		return err
	}

	runID := uuid.New()
	started := time.Now()

	runFn := func() error {
		c, err := engine.Load(in, opts)
		if err != nil {
			return err
		}

		e := engine.New(rand.New(rand.NewSource(*seed)))
		changed, err := e.Run(c, opts)
		if err != nil {
			return err
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := qcio.Write(f, c.Header, c.Operators); err != nil {
			return err
		}

		summary, err := engine.Summary(c)
		if err != nil {
			return err
		}

		log.Printf("run %s: %s -> %s (changed=%v, %s operators) in %s",
			runID, in, out, changed, humanize.Comma(int64(c.Len())), time.Since(started))
		fmt.Println(summary)
		if *verbose {
			fmt.Printf("%d operators in final circuit\n", c.Len())
		}
		return nil
	}

	if opts.Log == "" {
		return runFn()
	}
	logFile, err := rlog.OpenAppend(opts.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()
	return rlog.Scope(logFile, runFn)
}
