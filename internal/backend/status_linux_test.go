//go:build linux

package backend

import (
	"syscall"
	"testing"
)

// Raw wait(2) status words on Linux: exit code in bits 8-15, termination
// signal in bits 0-6, 0x7f in the low byte for a stopped child, 0xffff for
// a continued one.
func TestNormalizeWaitStatus(t *testing.T) {
	cases := []struct {
		name   string
		status syscall.WaitStatus
		want   int
	}{
		{"exit 0", 0x0000, 0},
		{"exit 3", 0x0300, 3},
		{"exit 255", 0xff00, 255},
		{"killed by SIGKILL", 0x0009, 137},
		{"killed by SIGTERM", 0x000f, 143},
		{"stopped by SIGSTOP", 0x137f, 128 + 19},
		{"continued shape is unknown", 0xffff, 255},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeWaitStatus(tc.status); got != tc.want {
				t.Fatalf("normalizeWaitStatus(%#x) = %d, want %d", uint32(tc.status), got, tc.want)
			}
		})
	}
}
