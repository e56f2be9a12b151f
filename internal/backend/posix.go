//go:build !windows

package backend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/zorba-modules/process/internal/command"
)

const shellPath = "/bin/sh"

type posixBackend struct{}

// New returns the fork/exec backend used on POSIX platforms.
func New() Backend {
	return posixBackend{}
}

// pipeSet holds both ends of the three standard-stream pipes between
// creation and spawn. Whichever ends are not handed to the caller must be
// closed on every exit path.
type pipeSet struct {
	stdinR, stdinW   *os.File
	stdoutR, stdoutW *os.File
	stderrR, stderrW *os.File
}

func openPipeSet() (*pipeSet, error) {
	ps := &pipeSet{}
	var err error
	if ps.stdinR, ps.stdinW, err = os.Pipe(); err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	if ps.stdoutR, ps.stdoutW, err = os.Pipe(); err != nil {
		ps.closeAll()
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if ps.stderrR, ps.stderrW, err = os.Pipe(); err != nil {
		ps.closeAll()
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	return ps, nil
}

func (ps *pipeSet) closeAll() {
	for _, f := range []*os.File{ps.stdinR, ps.stdinW, ps.stdoutR, ps.stdoutW, ps.stderrR, ps.stderrW} {
		if f != nil {
			f.Close()
		}
	}
}

func (ps *pipeSet) closeChildEnds() {
	// Closing the write ends here is what lets the drain observe
	// end-of-file once the child exits; closing the stdin write end gives
	// the child a valid stdin that reads EOF immediately.
	ps.stdinR.Close()
	ps.stdinW.Close()
	ps.stdoutW.Close()
	ps.stderrW.Close()
}

func (posixBackend) Spawn(spec *command.Spec) (Child, error) {
	ps, err := openPipeSet()
	if err != nil {
		return nil, NewError(KindSpawn, "create pipes", err)
	}

	var cmd *exec.Cmd
	if spec.Mode == command.ModeShell {
		cmd = exec.Command(shellPath, "-c", spec.CommandLine())
	} else {
		argv := spec.Argv()
		cmd = exec.Command(argv[0], argv[1:]...)
	}
	if env := spec.Environ(); env != nil {
		cmd.Env = env
	}
	cmd.Stdin = ps.stdinR
	cmd.Stdout = ps.stdoutW
	cmd.Stderr = ps.stderrW

	if err := cmd.Start(); err != nil {
		ps.closeAll()
		return nil, NewError(KindSpawn, fmt.Sprintf("start %q", spec.Program), err)
	}

	ps.closeChildEnds()

	return &posixChild{cmd: cmd, stdout: ps.stdoutR, stderr: ps.stderrR}, nil
}

type posixChild struct {
	cmd    *exec.Cmd
	stdout *os.File
	stderr *os.File
	waited bool
}

func (c *posixChild) Stdout() io.ReadCloser { return c.stdout }
func (c *posixChild) Stderr() io.ReadCloser { return c.stderr }

func (c *posixChild) Wait() (int, error) {
	if c.waited {
		return 0, NewError(KindWait, "wait", errors.New("child already waited on"))
	}
	c.waited = true

	err := c.cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return exitCodeOf(c.cmd.ProcessState), nil
	case errors.As(err, &exitErr):
		// Abnormal termination is still a successful wait; the status is
		// folded into the normalized exit code below.
		return exitCodeOf(exitErr.ProcessState), nil
	default:
		return 0, NewError(KindWait, fmt.Sprintf("wait for pid %d", c.cmd.Process.Pid), err)
	}
}

func exitCodeOf(state *os.ProcessState) int {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return 255
	}
	return normalizeWaitStatus(ws)
}

// normalizeWaitStatus maps a raw wait(2) status onto the engine's single
// exit-code numbering. A stopped child is reported with the same 128+signal
// encoding as a killed one; a waited, untraced child should never surface
// that shape, but when it does the two cases are not distinguished.
func normalizeWaitStatus(ws syscall.WaitStatus) int {
	switch {
	case ws.Exited():
		return ws.ExitStatus()
	case ws.Signaled():
		return 128 + int(ws.Signal())
	case ws.Stopped():
		return 128 + int(ws.StopSignal())
	default:
		return 255
	}
}
