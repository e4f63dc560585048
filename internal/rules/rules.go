// Package rules loads the embedded per-system JSON rule resources
// (reduction, commutation, expansion and migration patterns) and
// memoizes the parse of each file behind a singleflight.Group and a
// plain map cache, since every file is read-only for the process
// lifetime. The map is not guarded by a lock; callers load rules from
// one goroutine, as the sequential batch driver does.
package rules

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sync/singleflight"

	"github.com/qcpm/qcpmgo/internal/pattern"
	"github.com/qcpm/qcpmgo/internal/qcerr"
)

//go:embed data
var data embed.FS

// System identifies a target hardware/gate-set family. Rule files are
// scoped per system under data/<System>/.
type System string

const (
	IBM     System = "IBM"
	Surface System = "Surface"
	U       System = "U"
)

// RuleKind names one of the five rule-file families a system may carry.
type RuleKind string

const (
	Reversible  RuleKind = "reversible"
	Hadamard    RuleKind = "hadamard"
	Commutation RuleKind = "commutation"
	NonLocal    RuleKind = "pattern"
	Expansion   RuleKind = "expansion"
)

var group singleflight.Group
var cache = map[string][]pattern.Pattern{}
var migCache = map[string]migrationResult{}

// Load returns the parsed patterns for (system, kind). A system that
// carries no file for kind is not an error: it simply contributes no
// rules to that pass (e.g. Surface has no hadamard.json).
func Load(system System, kind RuleKind) ([]pattern.Pattern, error) {
	key := fmt.Sprintf("%s/%s", system, kind)
	v, err, _ := group.Do(key, func() (interface{}, error) {
		if p, ok := cache[key]; ok {
			return p, nil
		}
		path := fmt.Sprintf("data/%s/%s.json", system, kind)
		raw, err := data.ReadFile(path)
		if err != nil {
			if isNotExist(err) {
				cache[key] = nil
				return []pattern.Pattern(nil), nil
			}
			return nil, err
		}
		patterns, err := pattern.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("rules: %s: %w", path, err)
		}
		cache[key] = patterns
		return patterns, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]pattern.Pattern), nil
}

// LoadMigration returns the patterns mapping src operators to dst
// operators. If no direct "<src>_to_<dst>.json" file exists, it falls
// back to the swap of "<dst>_to_<src>.json". If neither file exists,
// it returns a RuleFileMissing error.
func LoadMigration(src, dst System) (patterns []pattern.Pattern, swapped bool, err error) {
	key := fmt.Sprintf("migration/%s->%s", src, dst)
	v, err, _ := group.Do(key, func() (interface{}, error) {
		if res, ok := migCache[key]; ok {
			return res, nil
		}

		if direct, derr := readMigration(src, dst); derr == nil {
			res := migrationResult{patterns: direct, swapped: false}
			migCache[key] = res
			return res, nil
		} else if !isNotExist(derr) {
			return nil, derr
		}

		if reverse, rerr := readMigration(dst, src); rerr == nil {
			swappedPatterns := make([]pattern.Pattern, len(reverse))
			for i, p := range reverse {
				swappedPatterns[i] = p.Swap()
			}
			res := migrationResult{patterns: swappedPatterns, swapped: true}
			migCache[key] = res
			return res, nil
		} else if !isNotExist(rerr) {
			return nil, rerr
		}

		return nil, qcerr.NewRuleFileMissing(fmt.Sprintf("%s->%s", src, dst), "migration")
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(migrationResult)
	return res.patterns, res.swapped, nil
}

type migrationResult struct {
	patterns []pattern.Pattern
	swapped  bool
}

func readMigration(src, dst System) ([]pattern.Pattern, error) {
	path := fmt.Sprintf("data/migration/%s_to_%s.json", src, dst)
	raw, err := data.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return pattern.Parse(raw)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
