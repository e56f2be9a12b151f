//go:build !windows

package capture

// POSIX capture is raw-byte faithful.
func normalize(p []byte) []byte {
	return p
}
