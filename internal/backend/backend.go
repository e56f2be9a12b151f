package backend

import (
	"io"

	"github.com/zorba-modules/process/internal/command"
)

// Child is a handle on one spawned process. The parent exclusively owns the
// two read ends until it closes them; exactly one Wait call is ever made
// per child so a recycled process id is never waited on twice.
type Child interface {
	// Stdout returns the parent's read end of the child's stdout pipe.
	Stdout() io.ReadCloser

	// Stderr returns the parent's read end of the child's stderr pipe.
	Stderr() io.ReadCloser

	// Wait blocks until the child terminates and returns its normalized
	// exit code: the exit code itself for a normal exit, 128+signal when
	// the child was killed or stopped by a signal, and 255 for any status
	// shape the platform reports that we do not recognize.
	Wait() (int, error)
}

// Backend launches children with stdout and stderr redirected to pipes and
// an immediately-empty stdin. Implementations are platform specific and
// chosen once at build time; everything above this interface is portable.
type Backend interface {
	// Spawn creates the child described by spec. On failure every pipe or
	// handle created along the way has already been released and no child
	// is left behind.
	Spawn(spec *command.Spec) (Child, error)
}
