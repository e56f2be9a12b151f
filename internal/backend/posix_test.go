//go:build !windows

package backend

import (
	"errors"
	"io"
	"testing"

	"github.com/zorba-modules/process/internal/command"
)

func drainAll(t *testing.T, r io.ReadCloser) string {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close read end: %v", err)
	}
	return string(data)
}

func TestSpawnShellCapturesBothStreams(t *testing.T) {
	// The program word is always quoted by the assembler, so shell syntax
	// rides in the unquoted arguments.
	child, err := New().Spawn(&command.Spec{
		Program: "printf",
		Args:    []string{"hello;", "printf", "oops", ">&2;", "exit", "3"},
		Mode:    command.ModeShell,
	})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	stdout := drainAll(t, child.Stdout())
	stderr := drainAll(t, child.Stderr())

	code, err := child.Wait()
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if code != 3 {
		t.Fatalf("exit code = %d, want 3", code)
	}
	if stdout != "hello" {
		t.Fatalf("stdout = %q, want %q", stdout, "hello")
	}
	if stderr != "oops" {
		t.Fatalf("stderr = %q, want %q", stderr, "oops")
	}
}

func TestSpawnExecArgvPassesLiteralArguments(t *testing.T) {
	child, err := New().Spawn(&command.Spec{
		Program: "/bin/echo",
		Args:    []string{"a b", "$HOME"},
		Mode:    command.ModeExec,
	})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	stdout := drainAll(t, child.Stdout())
	drainAll(t, child.Stderr())
	if _, err := child.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	// No interpreter ran: the spaced argument stays one element and the
	// dollar reference is not expanded.
	if stdout != "a b $HOME\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestSpawnClosesChildStdin(t *testing.T) {
	// cat exits immediately only if its stdin reports end-of-file.
	child, err := New().Spawn(&command.Spec{
		Program: "cat",
		Mode:    command.ModeExec,
	})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	stdout := drainAll(t, child.Stdout())
	drainAll(t, child.Stderr())
	code, err := child.Wait()
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if code != 0 || stdout != "" {
		t.Fatalf("code = %d, stdout = %q; want 0 and empty", code, stdout)
	}
}

func TestSignaledChildMapsTo128PlusSignal(t *testing.T) {
	child, err := New().Spawn(&command.Spec{
		Program: "kill",
		Args:    []string{"-9", "$$"},
		Mode:    command.ModeShell,
	})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	drainAll(t, child.Stdout())
	drainAll(t, child.Stderr())

	code, err := child.Wait()
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if code != 137 {
		t.Fatalf("exit code = %d, want 137", code)
	}
}

func TestMissingProgramIsSpawnFailureInExecMode(t *testing.T) {
	_, err := New().Spawn(&command.Spec{
		Program: "/nonexistent/definitely-not-a-program",
		Mode:    command.ModeExec,
	})
	if err == nil {
		t.Fatal("expected spawn failure")
	}
	if KindOf(err) != KindSpawn {
		t.Fatalf("kind = %q, want %q (err: %v)", KindOf(err), KindSpawn, err)
	}
}

func TestMissingProgramIsShellReportedInShellMode(t *testing.T) {
	child, err := New().Spawn(&command.Spec{
		Program: "/nonexistent/definitely-not-a-program",
		Mode:    command.ModeShell,
	})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	drainAll(t, child.Stdout())
	stderr := drainAll(t, child.Stderr())
	code, err := child.Wait()
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if code == 0 {
		t.Fatal("expected non-zero exit code from shell")
	}
	if stderr == "" {
		t.Fatal("expected shell diagnostic on stderr")
	}
}

func TestSecondWaitFails(t *testing.T) {
	child, err := New().Spawn(&command.Spec{Program: "true", Mode: command.ModeExec})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	drainAll(t, child.Stdout())
	drainAll(t, child.Stderr())
	if _, err := child.Wait(); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if _, err := child.Wait(); err == nil {
		t.Fatal("expected second wait to fail")
	}
}

func TestKindOfForeignError(t *testing.T) {
	if kind := KindOf(errors.New("plain")); kind != "" {
		t.Fatalf("KindOf = %q, want empty", kind)
	}
}
