// Package process runs an external program or shell command line to
// completion, captures its standard output and standard error in full, and
// reports a normalized exit code alongside both streams.
//
// Two invocation modes exist. ExecCommand hands one assembled command line
// to the platform shell for parsing; Exec passes a literal argument vector
// (and optionally a replacement environment) with no interpreter involved.
// Both block the calling goroutine for the child's entire lifetime: there
// is no timeout, no cancellation and no streaming. Independent invocations
// may run concurrently from different goroutines; nothing is shared between
// them but the process-wide file descriptor table.
package process

import (
	"github.com/zorba-modules/process/internal/backend"
	"github.com/zorba-modules/process/internal/command"
	"github.com/zorba-modules/process/internal/engine"
)

// Result is the record handed back for every completed invocation. The
// three field names and the arity are part of the module contract.
type Result struct {
	ExitCode int    `json:"exit-code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

var defaultEngine = engine.New(backend.New())

// Exec runs program with the literal argument vector args. env holds
// ordered NAME=VALUE assignments; when non-empty the child observes exactly
// that environment, when empty it inherits the caller's in full.
func Exec(program string, args, env []string) (*Result, error) {
	spec, err := newSpec(program, args, env, command.ModeExec)
	if err != nil {
		return nil, err
	}
	return run(spec)
}

// ExecCommand assembles program and args into one command line and hands it
// to the platform shell. The assembly quotes the program unconditionally
// and an argument only when it contains a path separator; it is not shell
// escaping, and callers are trusted not to smuggle metacharacters they do
// not mean. env behaves as in Exec.
func ExecCommand(program string, args, env []string) (*Result, error) {
	spec, err := newSpec(program, args, env, command.ModeShell)
	if err != nil {
		return nil, err
	}
	return run(spec)
}

func newSpec(program string, args, env []string, mode command.Mode) (*command.Spec, error) {
	spec := &command.Spec{Program: program, Args: args, Mode: mode}
	for _, kv := range env {
		v, err := command.ParseEnv(kv)
		if err != nil {
			return nil, err
		}
		spec.Env = append(spec.Env, v)
	}
	return spec, nil
}

func run(spec *command.Spec) (*Result, error) {
	res, err := defaultEngine.Run(spec)
	if err != nil {
		return nil, err
	}
	return &Result{ExitCode: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr}, nil
}
