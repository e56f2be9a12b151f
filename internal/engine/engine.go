// Package engine drives one invocation end to end: assemble, spawn, drain
// both output streams, wait, and package the result.
package engine

import (
	"sync"

	"github.com/zorba-modules/process/internal/backend"
	"github.com/zorba-modules/process/internal/capture"
	"github.com/zorba-modules/process/internal/command"
	"github.com/zorba-modules/process/internal/metrics"
)

// Result is the output record of a completed invocation. Once packaged it
// is never mutated; both buffers were read to end-of-stream before it was
// built.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Engine runs child processes on a fixed backend. The zero-cost way to get
// one for the build platform is New(nil). Engines are stateless and safe
// for concurrent use; every invocation owns its own pipes and child handle.
type Engine struct {
	backend backend.Backend
}

// New constructs an engine on the given backend, defaulting to the build
// platform's backend when b is nil.
func New(b backend.Backend) *Engine {
	if b == nil {
		b = backend.New()
	}
	return &Engine{backend: b}
}

// Run spawns the child described by spec and blocks until it has exited
// and both output streams reached end-of-stream. There is no timeout or
// cancellation: a child that neither exits nor closes its pipes blocks the
// caller indefinitely, which is this engine's contract.
//
// On a fatal failure no partial result is produced; already-open handles
// are released and the child, if one was spawned, is still reaped.
func (e *Engine) Run(spec *command.Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	metrics.ObserveInvocation(spec.Mode.String())

	child, err := e.backend.Spawn(spec)
	if err != nil {
		metrics.ObserveFailure(string(backend.KindOf(err)))
		return nil, err
	}

	stdout := child.Stdout()
	stderr := child.Stderr()
	defer stdout.Close()
	defer stderr.Close()

	var (
		wg             sync.WaitGroup
		outBuf, errBuf []byte
		outErr, errErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		outBuf, outErr = capture.Drain(stdout)
	}()
	go func() {
		defer wg.Done()
		errBuf, errErr = capture.Drain(stderr)
	}()
	wg.Wait()

	// Reap the child even when a drain failed, so no error path leaves a
	// zombie behind.
	code, waitErr := child.Wait()

	if outErr != nil {
		return nil, e.fail(backend.NewError(backend.KindRead, "drain stdout", outErr))
	}
	if errErr != nil {
		return nil, e.fail(backend.NewError(backend.KindRead, "drain stderr", errErr))
	}
	if waitErr != nil {
		metrics.ObserveFailure(string(backend.KindOf(waitErr)))
		return nil, waitErr
	}

	metrics.ObserveCapture("stdout", len(outBuf))
	metrics.ObserveCapture("stderr", len(errBuf))

	return &Result{ExitCode: code, Stdout: string(outBuf), Stderr: string(errBuf)}, nil
}

func (e *Engine) fail(err *backend.Error) error {
	metrics.ObserveFailure(string(err.Kind))
	return err
}
