// Package position implements the non-contiguous subsequence
// positioning search (component D): given a circuit's kind-code draft
// string and a pattern's kind-code signature, it lazily enumerates the
// strictly increasing index tuples whose codes match the pattern,
// pruning any tuple whose first-to-last span exceeds a fixed distance
// limit once the draft is long enough for that to matter.
package position

import "iter"

// DistanceLimit bounds how far the first and last matched position of
// a tuple may be apart. A pattern whose operators are scattered wider
// than this across the circuit is not worth the search cost of tracking.
const DistanceLimit = 50

// Find lazily yields every position tuple in code (the circuit's
// kind-code draft string) whose characters match pattern in order,
// strictly increasing. When len(code) > limit, any tuple whose last
// position is more than limit past its first is dropped; shorter
// drafts are searched without distance pruning. Each yielded slice is
// caller-owned (a fresh copy).
func Find(code, pattern string, limit int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if pattern == "" {
			return
		}
		if len(code) <= limit {
			limit = len(code)
		}
		search(code, pattern, limit, nil, 0, yield)
	}
}

// search extends prefix by one more matched position starting the
// scan at searchFrom, recursing until prefix covers all of pattern.
// It returns false once yield asks the caller to stop, so the
// recursion unwinds without scanning the remainder of code.
func search(code, pattern string, limit int, prefix []int, searchFrom int, yield func([]int) bool) bool {
	if len(prefix) == len(pattern) {
		return yield(prefix)
	}

	want := pattern[len(prefix)]
	first := -1
	if len(prefix) > 0 {
		first = prefix[0]
	}

	for i := searchFrom; i < len(code); i++ {
		if first >= 0 && i-first > limit {
			break
		}
		if code[i] != want {
			continue
		}
		next := make([]int, len(prefix)+1)
		copy(next, prefix)
		next[len(prefix)] = i
		if !search(code, pattern, limit, next, i+1, yield) {
			return false
		}
	}
	return true
}
