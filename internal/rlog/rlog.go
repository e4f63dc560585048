// Package rlog implements scoped, run-local log redirection (the
// pre-redirect destination is restored on every exit path, including
// failure) and a terminal-detection helper.
package rlog

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY reports whether w is a terminal (a Cygwin terminal included).
// No command calls it; CLI output is never colorized.
func IsTTY(w *os.File) bool {
	return isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
}

// Scope redirects the standard logger's output to w for the duration
// of fn, restoring the prior destination on every exit path,
// panicking exits included, so one run's log lines never leak into a
// sibling run's redirection.
func Scope(w io.Writer, fn func() error) error {
	prev := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(w)
	defer func() {
		log.SetOutput(prev)
		log.SetFlags(prevFlags)
	}()
	return fn()
}

// OpenAppend opens path for append, creating it if absent; callers
// are responsible for any parent directory. A
// caller passing "" wants no redirection and should skip Scope
// entirely; OpenAppend is never called with an empty path.
func OpenAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("rlog: open %s: %w", path, err)
	}
	return f, nil
}
