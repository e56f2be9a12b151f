// Package backend creates child processes with both output streams
// redirected to pipes the parent can drain.
//
// Two implementations exist, selected at build time. On POSIX platforms the
// child is created through fork and exec; shell mode hands the assembled
// command line to /bin/sh -c, exec mode replaces the image with the literal
// argv (and the override environment when one is supplied). On Windows the
// child is created with CreateProcess and inheritable anonymous pipes sized
// at one megabyte; shell mode runs cmd /C, and a broken pipe on read is the
// end-of-stream signal.
//
// The two backends are deliberately asymmetric in one respect: Windows
// capture strips carriage returns while copying, POSIX capture is raw-byte
// faithful. Callers that need identical text on both platforms rely on
// that strip.
//
// A missing program in exec mode surfaces as a spawn failure from Spawn. In
// shell mode it is the shell's problem: the spawn succeeds and the shell
// reports the error on its stderr with its own exit code.
package backend
