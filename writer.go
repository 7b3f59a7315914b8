package ogma

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// Writer instances write a single container to an underlying writer.
// The header is emitted up front; everything written afterwards is fed
// through the brotli encoder. The stream is only complete once Close
// has been called.
type Writer struct {
	w  io.Writer
	br *brotli.Writer
}

// NewWriter emits the container header to w and returns a Writer for
// the payload.
func NewWriter(w io.Writer, o *Options) (*Writer, error) {
	if _, err := w.Write(encodeHeader()); err != nil {
		return nil, err
	}
	return &Writer{
		w:  w,
		br: brotli.NewWriterLevel(w, o.norm().CompressionLevel),
	}, nil
}

// Write compresses p into the container payload.
func (w *Writer) Write(p []byte) (int, error) {
	if w.br == nil {
		return 0, errClosed
	}
	return w.br.Write(p)
}

// Close flushes the remaining compressed bytes and terminates the
// brotli stream. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.br == nil {
		return errClosed
	}
	err := w.br.Close()
	w.br = nil
	return err
}

// Encode wraps payload into a complete container: the 6-byte header
// followed by the brotli-compressed payload. It performs no I/O; the
// returned bytes are the caller's to persist. The only failure path is
// the compressor itself, whose errors are surfaced as-is.
func Encode(payload []byte, o *Options) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(payload)/2+64))

	w, err := NewWriter(buf, o)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
