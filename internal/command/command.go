// Package command describes a single child-process invocation and assembles
// the concrete form the spawning backend needs: either one shell command
// line, or a literal argument vector plus an optional environment table.
package command

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how an invocation is handed to the operating system.
type Mode int

const (
	// ModeShell hands one assembled command line to the platform shell,
	// which performs its own word splitting.
	ModeShell Mode = iota
	// ModeExec passes a literal argument vector with no interpreter-level
	// parsing.
	ModeExec
)

func (m Mode) String() string {
	switch m {
	case ModeShell:
		return "shell"
	case ModeExec:
		return "exec"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// EnvVar is one NAME=VALUE environment assignment.
type EnvVar struct {
	Name  string
	Value string
}

func (v EnvVar) String() string {
	return v.Name + "=" + v.Value
}

// ParseEnv splits a NAME=VALUE assignment into an EnvVar. The name must be
// non-empty; the value may be empty.
func ParseEnv(s string) (EnvVar, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return EnvVar{}, fmt.Errorf("malformed environment assignment %q (want NAME=VALUE)", s)
	}
	return EnvVar{Name: name, Value: value}, nil
}

// Spec is the unit of work submitted to the engine. It is assembled once
// per invocation and never mutated afterwards.
type Spec struct {
	// Program is the path or bare name of the program in ModeExec, or the
	// leading command word in ModeShell.
	Program string
	// Args are the ordered arguments following Program.
	Args []string
	// Env holds ordered environment overrides. Empty means the child
	// inherits the parent's environment in full.
	Env []EnvVar
	// Mode selects shell-line or exec-argv semantics.
	Mode Mode
}

// Validate reports whether s describes a spawnable invocation.
func (s *Spec) Validate() error {
	switch s.Mode {
	case ModeExec:
		if s.Program == "" {
			return errors.New("command: exec mode requires a non-empty program")
		}
	case ModeShell:
		if strings.TrimSpace(s.Program) == "" && len(s.Args) == 0 {
			return errors.New("command: shell mode requires a non-empty command line")
		}
	default:
		return fmt.Errorf("command: unknown mode %v", s.Mode)
	}
	return nil
}

// CommandLine assembles the single-string form of the invocation. The
// program is always wrapped in double quotes; an argument is additionally
// quoted only when it contains a path separator, on the theory that such
// arguments are file paths that may carry spaces. This is not shell
// escaping: metacharacters pass through untouched and callers are trusted.
func (s *Spec) CommandLine() string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(s.Program)
	b.WriteByte('"')
	for _, arg := range s.Args {
		b.WriteByte(' ')
		if strings.ContainsAny(arg, `/\`) {
			b.WriteByte('"')
			b.WriteString(arg)
			b.WriteByte('"')
		} else {
			b.WriteString(arg)
		}
	}
	return b.String()
}

// Argv returns the literal argument vector for ModeExec, program first.
func (s *Spec) Argv() []string {
	argv := make([]string, 0, len(s.Args)+1)
	argv = append(argv, s.Program)
	return append(argv, s.Args...)
}

// Environ formats the override table as NAME=VALUE entries in declaration
// order, or returns nil when the child should inherit the parent
// environment.
func (s *Spec) Environ() []string {
	if len(s.Env) == 0 {
		return nil
	}
	env := make([]string, len(s.Env))
	for i, v := range s.Env {
		env[i] = v.String()
	}
	return env
}
