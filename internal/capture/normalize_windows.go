//go:build windows

package capture

// Console programs emit CRLF line endings; carriage returns are dropped
// while copying so captured text matches the POSIX backend.
func normalize(p []byte) []byte {
	out := make([]byte, 0, len(p))
	for _, b := range p {
		if b != '\r' {
			out = append(out, b)
		}
	}
	return out
}
