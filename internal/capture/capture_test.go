package capture

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// chunkReader returns at most chunk bytes per Read call, forcing Drain
// through its partial-read path.
type chunkReader struct {
	r     io.Reader
	chunk int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.chunk {
		p = p[:c.chunk]
	}
	return c.r.Read(p)
}

func TestDrainReadsToEndOfStream(t *testing.T) {
	payload := strings.Repeat("abcdefgh", 10000)
	got, err := Drain(&chunkReader{r: strings.NewReader(payload), chunk: 7})
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("drained %d bytes, want %d", len(got), len(payload))
	}
}

func TestDrainEmptyStream(t *testing.T) {
	got, err := Drain(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("drained %q, want empty", got)
	}
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) > 0 {
		n := copy(p, f.data)
		f.data = f.data[n:]
		return n, nil
	}
	return 0, f.err
}

func TestDrainSurfacesReadFailure(t *testing.T) {
	readErr := errors.New("pipe exploded")
	got, err := Drain(&failingReader{data: []byte("partial"), err: readErr})
	if !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want %v", err, readErr)
	}
	if got != nil {
		t.Fatalf("partial output %q should have been discarded", got)
	}
}
