//go:build windows

package backend

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/zorba-modules/process/internal/command"
)

// pipeBufferSize bounds each output pipe at one megabyte so the child can
// make progress before the parent begins draining.
const pipeBufferSize = 1 << 20

type nativeBackend struct{}

// New returns the CreateProcess backend used on Windows.
func New() Backend {
	return nativeBackend{}
}

// launchLine builds the single command-line string CreateProcess receives.
// Shell mode routes the assembled line through the command interpreter;
// exec mode hands the quoted program+args line to CreateProcess directly.
func launchLine(spec *command.Spec) string {
	if spec.Mode == command.ModeShell {
		return `cmd /C "` + spec.CommandLine() + `"`
	}
	return spec.CommandLine()
}

func (nativeBackend) Spawn(spec *command.Spec) (Child, error) {
	sa := &windows.SecurityAttributes{InheritHandle: 1}
	sa.Length = uint32(unsafe.Sizeof(*sa))

	var stdinR, stdinW, stdoutR, stdoutW, stderrR, stderrW windows.Handle
	if err := windows.CreatePipe(&stdinR, &stdinW, sa, 0); err != nil {
		return nil, NewError(KindSpawn, "create stdin pipe", err)
	}
	if err := windows.CreatePipe(&stdoutR, &stdoutW, sa, pipeBufferSize); err != nil {
		closeHandles(stdinR, stdinW)
		return nil, NewError(KindSpawn, "create stdout pipe", err)
	}
	if err := windows.CreatePipe(&stderrR, &stderrW, sa, pipeBufferSize); err != nil {
		closeHandles(stdinR, stdinW, stdoutR, stdoutW)
		return nil, NewError(KindSpawn, "create stderr pipe", err)
	}
	all := []windows.Handle{stdinR, stdinW, stdoutR, stdoutW, stderrR, stderrW}

	// The parent-side ends must not leak into the child, otherwise the
	// child holds its own output pipes open and the drain never sees the
	// pipe break.
	for _, h := range []windows.Handle{stdinW, stdoutR, stderrR} {
		if err := windows.SetHandleInformation(h, windows.HANDLE_FLAG_INHERIT, 0); err != nil {
			closeHandles(all...)
			return nil, NewError(KindSpawn, "restrict handle inheritance", err)
		}
	}

	line := launchLine(spec)
	linePtr, err := windows.UTF16PtrFromString(line)
	if err != nil {
		closeHandles(all...)
		return nil, NewError(KindSpawn, "encode command line", err)
	}

	si := &windows.StartupInfo{
		Flags:      windows.STARTF_USESTDHANDLES | windows.STARTF_USESHOWWINDOW,
		ShowWindow: windows.SW_HIDE,
		StdInput:   stdinR,
		StdOutput:  stdoutW,
		StdErr:     stderrW,
	}
	si.Cb = uint32(unsafe.Sizeof(*si))

	flags := uint32(windows.CREATE_NEW_CONSOLE)
	var envBlock *uint16
	if env := spec.Environ(); env != nil {
		envBlock = environBlock(env)
		flags |= windows.CREATE_UNICODE_ENVIRONMENT
	}

	var pi windows.ProcessInformation
	err = windows.CreateProcess(nil, linePtr, nil, nil, true, flags, envBlock, nil, si, &pi)
	if err != nil {
		closeHandles(all...)
		return nil, NewError(KindSpawn, fmt.Sprintf("create process %q", line), err)
	}

	// Release everything the parent neither drains nor waits on. Closing
	// the write ends now is what lets the drain observe the pipe break;
	// closing the stdin write end gives the child an empty stdin.
	closeHandles(pi.Thread, stdinR, stdinW, stdoutW, stderrW)

	return &nativeChild{
		process: pi.Process,
		stdout:  &handleReader{handle: stdoutR},
		stderr:  &handleReader{handle: stderrR},
	}, nil
}

func closeHandles(handles ...windows.Handle) {
	for _, h := range handles {
		if h != 0 {
			windows.CloseHandle(h)
		}
	}
}

// environBlock packs NAME=VALUE entries into the double-NUL-terminated
// UTF-16 block CreateProcess expects.
func environBlock(env []string) *uint16 {
	var block []uint16
	for _, kv := range env {
		block = append(block, utf16.Encode([]rune(kv))...)
		block = append(block, 0)
	}
	block = append(block, 0)
	return &block[0]
}

// handleReader adapts a pipe read handle to io.ReadCloser. A broken pipe
// means the child closed its end and is reported as a clean end-of-stream.
type handleReader struct {
	handle windows.Handle
	closed bool
}

func (r *handleReader) Read(p []byte) (int, error) {
	var n uint32
	err := windows.ReadFile(r.handle, p, &n, nil)
	if err != nil {
		if errors.Is(err, windows.ERROR_BROKEN_PIPE) {
			return int(n), io.EOF
		}
		return int(n), err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return int(n), nil
}

func (r *handleReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return windows.CloseHandle(r.handle)
}

type nativeChild struct {
	process windows.Handle
	stdout  *handleReader
	stderr  *handleReader
	waited  bool
}

func (c *nativeChild) Stdout() io.ReadCloser { return c.stdout }
func (c *nativeChild) Stderr() io.ReadCloser { return c.stderr }

func (c *nativeChild) Wait() (int, error) {
	if c.waited {
		return 0, NewError(KindWait, "wait", errors.New("child already waited on"))
	}
	c.waited = true
	defer windows.CloseHandle(c.process)

	event, err := windows.WaitForSingleObject(c.process, windows.INFINITE)
	if err != nil {
		return 0, NewError(KindWait, "wait for child", err)
	}
	if event != windows.WAIT_OBJECT_0 {
		return 0, NewError(KindWait, "wait for child", fmt.Errorf("unexpected wait event %#x", event))
	}

	var code uint32
	if err := windows.GetExitCodeProcess(c.process, &code); err != nil {
		return 0, NewError(KindStatusQuery, "query exit code", err)
	}
	return int(code), nil
}
