package commands

import (
	"flag"
	"fmt"

	"github.com/qcpm/qcpmgo/internal/circuit"
	"github.com/qcpm/qcpmgo/internal/config"
	"github.com/qcpm/qcpmgo/internal/rules"
	"github.com/qcpm/qcpmgo/internal/search"
)

// optionFlags binds the recognized option bag to a flag.FlagSet
// shared by `run` and `batch`.
type optionFlags struct {
	optimize   bool
	strategy   string
	metric     string
	depthSize  string
	system     string
	systemDst  string
	stat       string
	statdb     string
	logPath    string
	logsDir    string
}

func bindOptionFlags(fs *flag.FlagSet) *optionFlags {
	f := &optionFlags{}
	fs.BoolVar(&f.optimize, "optimize", true, "run the optimize/search pipeline")
	fs.StringVar(&f.strategy, "strategy", "none", "plan strategy: none|MCM|random")
	fs.StringVar(&f.metric, "metric", "cycle", "cost metric: cycle|depth")
	fs.StringVar(&f.depthSize, "depth-size", "all", "depth_size filter: all|small|medium|large")
	fs.StringVar(&f.system, "system", "IBM", "source gate-set system: IBM|Surface|U")
	fs.StringVar(&f.systemDst, "system-dst", "", "destination system, if migrating (defaults to -system)")
	fs.StringVar(&f.stat, "stat", "", "CSV path for batch-run statistics")
	fs.StringVar(&f.statdb, "statdb", "", "DSN to mirror batch-run statistics into")
	fs.StringVar(&f.logPath, "log", "", "redirect this run's log output to path")
	fs.StringVar(&f.logsDir, "logs", "./log/", "logs directory (stored in the options; no command writes files under it)")
	return f
}

func (f *optionFlags) toOptions() (config.Options, error) {
	opts := config.Default()
	opts.Optimize = f.optimize

	switch f.strategy {
	case "none", "":
		opts.Strategy = search.GreedyStrategy
	case "MCM":
		opts.Strategy = search.MCM
	case "random":
		opts.Strategy = search.RandomKind
	default:
		return opts, fmt.Errorf("unknown -strategy %q", f.strategy)
	}

	switch f.metric {
	case "cycle", "":
		opts.Metric = search.Cycle
	case "depth":
		opts.Metric = search.Depth
	default:
		return opts, fmt.Errorf("unknown -metric %q", f.metric)
	}

	switch f.depthSize {
	case "all", "":
		opts.DepthSize = circuit.AnySize
	case "small":
		opts.DepthSize = circuit.Small
	case "medium":
		opts.DepthSize = circuit.Medium
	case "large":
		opts.DepthSize = circuit.Large
	default:
		return opts, fmt.Errorf("unknown -depth-size %q", f.depthSize)
	}

	src := rules.System(f.system)
	dst := src
	if f.systemDst != "" {
		dst = rules.System(f.systemDst)
	}
	opts.System = config.SystemPair{Src: src, Dst: dst}

	opts.StatCSV = f.stat
	opts.StatDB = f.statdb
	opts.Log = f.logPath
	opts.Logs = f.logsDir

	return opts, nil
}
