// Package capture drains a child's output pipe to end-of-stream into an
// in-memory buffer. There is no size cap: everything the child writes is
// buffered to completion.
package capture

import "io"

// Drain reads r until end-of-stream and returns everything the child
// wrote, normalized for the platform (byte-faithful on POSIX, carriage
// returns stripped on Windows). Any non-end-of-stream read failure
// discards the partial buffer and is returned to the caller.
func Drain(r io.Reader) ([]byte, error) {
	buf := make([]byte, 32*1024)
	var out []byte
	for {
		n, err := r.Read(buf)
		if n > 0 {
			out = append(out, normalize(buf[:n])...)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
