package backend

import (
	"errors"
	"fmt"
)

// Kind classifies the fatal failure modes of an invocation. A failure of
// any kind aborts the invocation; nothing is retried.
type Kind string

const (
	// KindSpawn covers pipe and process creation failures.
	KindSpawn Kind = "spawn"
	// KindRead covers unexpected, non-end-of-stream pipe read failures.
	KindRead Kind = "read"
	// KindWait covers failures of the termination wait itself.
	KindWait Kind = "wait"
	// KindStatusQuery covers failures retrieving the exit code after a
	// completed wait (native backend only).
	KindStatusQuery Kind = "status-query"
)

// Error is a fatal invocation failure carrying the failure kind, the
// operation that failed and the platform-derived cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps a platform error with its failure kind.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the failure kind from err, or the empty string when err
// did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
