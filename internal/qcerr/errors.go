// Package qcerr defines the typed errors raised by the rewrite engine,
// wrapped with github.com/pkg/errors so every propagated failure keeps
// a stack trace back to its origin.
package qcerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a domain error so callers (notably the batch driver)
// can branch on the failure without string-matching messages.
type Kind string

const (
	// ParseError: malformed header, unknown gate kind, missing '['.
	ParseError Kind = "ParseError"
	// ArityMismatch: change() received the wrong number of operands.
	ArityMismatch Kind = "ArityMismatch"
	// QubitIndexOutOfRange: depth computation saw an operand >= the internal cap.
	QubitIndexOutOfRange Kind = "QubitIndexOutOfRange"
	// DepthSizeMismatch: the load-time depth_size filter rejected the file.
	DepthSizeMismatch Kind = "DepthSizeMismatch"
	// RuleFileMissing: both the direct rule file and its swap fallback are absent.
	RuleFileMissing Kind = "RuleFileMissing"
	// InvariantError: a structural invariant failed at the end of update().
	InvariantError Kind = "InvariantError"
)

// Error is a typed, stack-carrying domain error.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is supports errors.Is(err, qcerr.ErrParseError) style checks: any
// *Error with the same Kind matches, so the Err* sentinels below
// compare by Kind alone.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newErr(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: errors.WithStack(errors.New(string(kind)))}
}

func NewParseError(format string, args ...interface{}) error {
	return newErr(ParseError, format, args...)
}

func NewArityMismatch(kindToken string, want, got int) error {
	return newErr(ArityMismatch, "operator <%s> expects %d operand(s), got %d", kindToken, want, got)
}

func NewQubitIndexOutOfRange(index, cap int) error {
	return newErr(QubitIndexOutOfRange, "qubit index %d exceeds internal cap %d", index, cap)
}

func NewDepthSizeMismatch(want, got string) error {
	return newErr(DepthSizeMismatch, "expected depth_size %q, got %q", want, got)
}

func NewRuleFileMissing(system, kind string) error {
	return newErr(RuleFileMissing, "no rule file for system %q kind %q (direct or swapped)", system, kind)
}

func NewInvariantError(format string, args ...interface{}) error {
	return newErr(InvariantError, format, args...)
}

// Wrap attaches file/operation context to an error without
// discarding its stack.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}

// Sentinel values usable with errors.Is against a bare Kind comparison.
var (
	ErrParseError           = &Error{Kind: ParseError}
	ErrArityMismatch        = &Error{Kind: ArityMismatch}
	ErrQubitIndexOutOfRange = &Error{Kind: QubitIndexOutOfRange}
	ErrDepthSizeMismatch    = &Error{Kind: DepthSizeMismatch}
	ErrRuleFileMissing      = &Error{Kind: RuleFileMissing}
	ErrInvariantError       = &Error{Kind: InvariantError}
)
