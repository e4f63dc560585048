// Package engine implements the circuit engine (component F): the
// high-level execute/Run API that orchestrates load, expansion,
// migration, the composite-optimization pipeline, and non-local
// pattern search into one iterative optimize loop.
package engine

import (
	"math/rand"

	"github.com/qcpm/qcpmgo/internal/circuit"
	"github.com/qcpm/qcpmgo/internal/config"
	"github.com/qcpm/qcpmgo/internal/qcio"
	"github.com/qcpm/qcpmgo/internal/rewrite"
	"github.com/qcpm/qcpmgo/internal/rules"
	"github.com/qcpm/qcpmgo/internal/search"
)

// Limit caps how many non-local search rounds one Run may attempt
// before giving up on further shrinkage.
const Limit = 5

// Engine holds the process-wide state Run/Execute need beyond the
// circuit itself: the search heuristic tunables and the random source
// every stochastic strategy draws from.
type Engine struct {
	Search search.Config
	Rand   *rand.Rand
}

// New builds an Engine with the default search tunables. Pass a
// seeded rand.Rand for reproducible MCM/random runs; nil falls back
// to a fixed-seed generator.
func New(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{Search: search.DefaultConfig(), Rand: rng}
}

// Load reads a circuit file, applying the depth_size filter (if one
// is set) before any rewrite pass runs: a file whose size bucket
// disagrees with opts.DepthSize is rejected with DepthSizeMismatch
// rather than partially loaded.
func Load(path string, opts config.Options) (*circuit.Circuit, error) {
	header, ops, err := qcio.Preprocess(path)
	if err != nil {
		return nil, err
	}

	if opts.DepthSize != circuit.AnySize {
		info, err := circuit.ComputeInfo(ops)
		if err != nil {
			return nil, err
		}
		if info.DepthSizeClass != opts.DepthSize {
			return nil, depthSizeMismatch(opts.DepthSize, info.DepthSizeClass)
		}
	}

	return circuit.New(header, ops, opts.System.Src), nil
}

// Run is the full outer orchestration: expansion, migration into the
// canonical IBM system, freezing the origin snapshot, the first
// composite-optimization pass, then up to Limit rounds of Execute
// non-local search, re-optimizing between rounds (never past the turn
// cap), until a round finds nothing left to shrink, finally migrating
// out to the requested destination system. It returns true iff the
// draft shrank between the origin snapshot and the end of the last
// optimization round.
func (e *Engine) Run(c *circuit.Circuit, opts config.Options) (bool, error) {
	if !opts.Optimize {
		return e.migrateOnly(c, opts)
	}

	if err := e.normalize(c, opts); err != nil {
		return false, err
	}
	if err := c.FreezeOrigin(); err != nil {
		return false, err
	}
	startLen := c.Len()
	if err := e.optimizeTurn(c); err != nil {
		return false, err
	}

	for turn := 0; turn < Limit; turn++ {
		changed, err := e.Execute(c, opts)
		if err != nil {
			return false, err
		}
		if !changed || turn+1 == Limit {
			break
		}
		if err := e.optimizeTurn(c); err != nil {
			return false, err
		}
	}

	overallChanged := c.Len() < startLen
	if err := e.migrateOut(c, opts); err != nil {
		return false, err
	}
	return overallChanged, nil
}

// Execute runs one round of non-local pattern search over the
// circuit's current draft, building one plan via the configured
// strategy and applying it. It returns true iff the draft strictly
// shrank.
func (e *Engine) Execute(c *circuit.Circuit, opts config.Options) (bool, error) {
	patterns, err := rules.Load(c.System, rules.NonLocal)
	if err != nil {
		return false, err
	}
	if len(patterns) == 0 {
		return false, nil
	}

	beforeLen := c.Len()
	draft := c.Draft()

	var all []*search.Candidate
	for _, p := range patterns {
		cands, err := search.BuildCandidates(c.Operators, draft, p, e.Search)
		if err != nil {
			return false, err
		}
		all = append(all, cands...)
	}
	if len(all) == 0 {
		return false, nil
	}

	plan, err := e.plan(all, c, opts)
	if err != nil {
		return false, err
	}

	ops := c.Operators
	for _, cand := range plan.Candidates {
		ops, err = search.ApplyToOps(ops, cand)
		if err != nil {
			return false, err
		}
	}
	c.Replace(ops)
	if err := c.Update(); err != nil {
		return false, err
	}

	return c.Len() < beforeLen, nil
}

func (e *Engine) plan(cands []*search.Candidate, c *circuit.Circuit, opts config.Options) (search.Plan, error) {
	switch opts.Strategy {
	case search.MCM:
		return search.MonteCarlo(cands, c.Operators, opts.Metric, e.Search, e.Rand)
	case search.RandomKind:
		return search.Random(cands, e.Rand), nil
	default:
		return search.Greedy(cands), nil
	}
}

// optimizeTurn runs rewrite.Optimize and folds the result back into c,
// then re-asserts the circuit invariants.
func (e *Engine) optimizeTurn(c *circuit.Circuit) error {
	out, err := rewrite.Optimize(c.Operators, c.System)
	if err != nil {
		return err
	}
	c.Replace(out)
	return c.Update()
}

// normalize runs the composite-gate expansion pass and, if the
// circuit's loaded system isn't the canonical IBM gate set, migrates
// it there so the reduction/commutation/pattern rule sets (which are
// richest for IBM) apply uniformly.
func (e *Engine) normalize(c *circuit.Circuit, opts config.Options) error {
	expanded, err := rewrite.Expand(rewrite.Seq(c.Operators), c.System)
	if err != nil {
		return err
	}
	c.Replace(rewrite.Collect(expanded))

	if opts.System.Src != rules.IBM {
		migrated, err := rewrite.Migrate(rewrite.Seq(c.Operators), opts.System.Src, rules.IBM)
		if err != nil {
			return err
		}
		c.Replace(rewrite.Collect(migrated))
	}
	c.System = rules.IBM
	return c.Update()
}

// migrateOut translates the circuit from the canonical IBM system to
// the requested destination system, a no-op when they're the same.
func (e *Engine) migrateOut(c *circuit.Circuit, opts config.Options) error {
	if opts.System.Dst == rules.IBM {
		return nil
	}
	migrated, err := rewrite.Migrate(rewrite.Seq(c.Operators), rules.IBM, opts.System.Dst)
	if err != nil {
		return err
	}
	c.Replace(rewrite.Collect(migrated))
	c.System = opts.System.Dst
	return c.Update()
}

// migrateOnly handles `optimize: false`: the circuit is translated
// directly between the requested systems with no expansion, rewrite,
// or non-local search pass.
func (e *Engine) migrateOnly(c *circuit.Circuit, opts config.Options) (bool, error) {
	if err := c.FreezeOrigin(); err != nil {
		return false, err
	}
	if opts.System.Src == opts.System.Dst {
		return false, nil
	}
	migrated, err := rewrite.Migrate(rewrite.Seq(c.Operators), opts.System.Src, opts.System.Dst)
	if err != nil {
		return false, err
	}
	c.Replace(rewrite.Collect(migrated))
	c.System = opts.System.Dst
	return false, c.Update()
}
