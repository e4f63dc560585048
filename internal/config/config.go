// Package config holds the recognized option bag every invocation of
// the engine is parameterized by, whether it arrives from the CLI
// flag parser or a test harness.
package config

import (
	"github.com/qcpm/qcpmgo/internal/circuit"
	"github.com/qcpm/qcpmgo/internal/rules"
	"github.com/qcpm/qcpmgo/internal/search"
)

// SystemPair is the `system` option: either a single system (used as
// both source and target, i.e. no migration), or a [src, dst] pair
// driving a cross-system migration pass.
type SystemPair struct {
	Src rules.System
	Dst rules.System
}

// Single builds a SystemPair with no migration (src == dst).
func Single(s rules.System) SystemPair { return SystemPair{Src: s, Dst: s} }

// Options is the full per-invocation option bag.
type Options struct {
	Optimize  bool
	Strategy  search.Strategy
	Metric    search.Metric
	DepthSize circuit.DepthSize
	System    SystemPair

	// StatCSV is the `stat` option: a CSV path, or "" to disable.
	StatCSV string
	// StatDB is an optional DSN mirroring every stats row into a SQL
	// table; "" disables it.
	StatDB string

	Log  string
	Logs string
}

// Default returns the stock options: optimize on, greedy strategy,
// cycle metric, no depth_size filter, IBM system, no CSV/DB sink, no
// log redirection, "./log/" as the logs directory.
func Default() Options {
	return Options{
		Optimize:  true,
		Strategy:  search.GreedyStrategy,
		Metric:    search.Cycle,
		DepthSize: circuit.AnySize,
		System:    Single(rules.IBM),
		Logs:      "./log/",
	}
}
