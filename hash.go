package ogma

import (
	"io"

	"github.com/zeebo/blake3"
)

// HashReader is a pass-through reader which feeds every byte it
// delivers into a BLAKE3 hasher.
type HashReader struct {
	r io.Reader
	h *blake3.Hasher
}

// NewHashReader wraps a reader.
func NewHashReader(r io.Reader) *HashReader {
	return &HashReader{r: r, h: blake3.New()}
}

func (hr *HashReader) Read(p []byte) (int, error) {
	n, err := hr.r.Read(p)
	if n > 0 {
		_, _ = hr.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the BLAKE3 digest of all bytes read so far.
func (hr *HashReader) Sum() []byte { return hr.h.Sum(nil) }

// HashWriter is a pass-through writer which feeds every byte written
// through it into a BLAKE3 hasher.
type HashWriter struct {
	w io.Writer
	h *blake3.Hasher
}

// NewHashWriter wraps a writer.
func NewHashWriter(w io.Writer) *HashWriter {
	return &HashWriter{w: w, h: blake3.New()}
}

func (hw *HashWriter) Write(p []byte) (int, error) {
	n, err := hw.w.Write(p)
	if n > 0 {
		_, _ = hw.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the BLAKE3 digest of all bytes written so far.
func (hw *HashWriter) Sum() []byte { return hw.h.Sum(nil) }
