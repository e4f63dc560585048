package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/kr/pretty"

	"github.com/qcpm/qcpmgo/internal/config"
	"github.com/qcpm/qcpmgo/internal/engine"
	"github.com/qcpm/qcpmgo/internal/qcerr"
	"github.com/qcpm/qcpmgo/internal/qcio"
	"github.com/qcpm/qcpmgo/internal/stats"
	"github.com/qcpm/qcpmgo/internal/statsdb"
)

// Batch is the `qcpm batch <in-dir> <out-dir>` entry point. It
// iterates every file in the input directory, prints progress, and
// skips (with a report, not an abort) files whose depth_size
// disagrees with the -depth-size filter.
func Batch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	opt := bindOptionFlags(fs)
	seed := fs.Int64("seed", 1, "random seed for MCM/random strategies")
	verbose := fs.Bool("v", false, "print each file's final circuit info")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: qcpm batch <in-dir> <out-dir>")
	}
	inDir, outDir := fs.Arg(0), fs.Arg(1)

	opts, err := opt.toOptions()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return err
	}

	var reporter *stats.Reporter
	if opts.StatCSV != "" {
		reporter, err = stats.Open(opts.StatCSV)
		if err != nil {
			return err
		}
		defer reporter.Close()
	}

	var db *statsdb.Store
	if opts.StatDB != "" {
		db, err = statsdb.Open(opts.StatDB)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	e := engine.New(rand.New(rand.NewSource(*seed)))
	today := civil.DateOf(time.Now())

	for i, entry := range entries {
		if entry.IsDir() {
			continue
		}
		in := filepath.Join(inDir, entry.Name())
		out := filepath.Join(outDir, entry.Name())
		fmt.Printf("[%d/%d] %s\n", i+1, len(entries), entry.Name())

		if err := runFile(e, opts, in, out, today, reporter, db, *verbose); err != nil {
			var qerr *qcerr.Error
			if errors.As(err, &qerr) && qerr.Kind == qcerr.DepthSizeMismatch {
				fmt.Printf("  skipped: %v\n", err)
				continue
			}
			fmt.Printf("  error: %v\n", err)
		}
	}
	return nil
}

// runFile loads, optimizes, and writes one circuit file, recording a
// stats row (CSV and/or DB) when a sink is configured.
func runFile(e *engine.Engine, opts config.Options, in, out string, today civil.Date, reporter *stats.Reporter, db *statsdb.Store, verbose bool) error {
	started := time.Now()

	c, err := engine.Load(in, opts)
	if err != nil {
		return err
	}

	if _, err := e.Run(c, opts); err != nil {
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

	after, err := c.Info()
	if err != nil {
		return err
	}
	before := c.Origin
	if before == nil {
		before = after
	}
	duration := time.Since(started)

	if verbose {
		fmt.Printf("  %s\n", pretty.Sprint(after))
	}

	metricBefore, metricAfter := before.Cycles, after.Cycles
	if opts.Metric == "depth" {
		metricBefore, metricAfter = before.MaxDepth, after.MaxDepth
	}

	if reporter != nil {
		if err := reporter.Write(stats.Row{
			Filename:     filepath.Base(in),
			SizeBefore:   before.Size,
			SizeAfter:    after.Size,
			MetricBefore: metricBefore,
			MetricAfter:  metricAfter,
			SQGsBefore:   len(before.SingleQubitKinds),
			SQGsAfter:    len(after.SingleQubitKinds),
			MQGsBefore:   len(before.MultiQubitKinds),
			MQGsAfter:    len(after.MultiQubitKinds),
			Duration:     duration,
		}); err != nil {
			return err
		}
	}

	if db != nil {
		if err := db.Insert(context.Background(), statsdb.Row{
			RunID:        uuid.New(),
			Filename:     filepath.Base(in),
			System:       string(opts.System.Dst),
			Strategy:     string(opts.Strategy),
			Metric:       string(opts.Metric),
			SizeBefore:   before.Size,
			SizeAfter:    after.Size,
			MetricBefore: metricBefore,
			MetricAfter:  metricAfter,
			SQGBefore:    len(before.SingleQubitKinds),
			SQGAfter:     len(after.SingleQubitKinds),
			MQGBefore:    len(before.MultiQubitKinds),
			MQGAfter:     len(after.MultiQubitKinds),
			RunDate:      today,
			Duration:     duration,
		}); err != nil {
			return err
		}
	}

	return nil
}
