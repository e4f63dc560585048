package position

import (
	"reflect"
	"strings"
	"testing"
)

func collect(draft, pat string, limit int) [][]int {
	var out [][]int
	for tup := range Find(draft, pat, limit) {
		out = append(out, tup)
	}
	return out
}

func TestFindSimple(t *testing.T) {
	got := collect("axcxb", "xcx", DistanceLimit)
	want := [][]int{{1, 2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find(axcxb, xcx) = %v, want %v", got, want)
	}
}

func TestFindNonContiguous(t *testing.T) {
	// "cxxc" matching pattern "cc": two non-adjacent c's.
	got := collect("cxxc", "cc", 10)
	want := [][]int{{0, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find(cxxc, cc) = %v, want %v", got, want)
	}
}

func TestFindMultipleMatches(t *testing.T) {
	got := collect("cccc", "cc", 10)
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find(cccc, cc) = %v, want %v", got, want)
	}
}

func TestFindDistanceLimitPrunes(t *testing.T) {
	// code is longer than the limit, so a tuple whose span exceeds it
	// must be dropped: a 'c' at 0 and one far past limit=2 can't pair.
	code := "c" + strings.Repeat("x", 5) + "c"
	got := collect(code, "cc", 2)
	if len(got) != 0 {
		t.Errorf("expected no matches once span %d > limit 2, got %v", len(code)-1, got)
	}
}

func TestFindNoPruningUnderLimit(t *testing.T) {
	// len(code) <= limit means no distance pruning applies at all:
	// a tuple spanning the whole draft (first to last index) is kept.
	code := "c" + strings.Repeat("x", 8) + "c" // len=10, span 9
	got := collect(code, "cc", 10)
	want := [][]int{{0, 9}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find with len(code)<=limit should skip pruning, got %v want %v", got, want)
	}
}

func TestFindEmptyPattern(t *testing.T) {
	got := collect("abc", "", 10)
	if got != nil {
		t.Errorf("empty pattern should yield no tuples, got %v", got)
	}
}
