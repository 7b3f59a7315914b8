package ogma

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// The decoder keeps its end-of-stream state to itself; the only signal
// it gives for a terminated stream is a complaint about leftover input
// once decoding is complete. Appending a guard byte to the compressed
// input turns proper termination into exactly that complaint, which is
// matched by message below (the module pins the decoder version).
const excessiveInput = "brotli: excessive input"

// guardByte is appended after the compressed input. A single zero byte
// never forms a complete brotli stream on its own, so it can never turn
// an empty input into a valid one.
const guardByte = 0x00

// guardReader hands out the wrapped reader's bytes followed by a single
// guard byte. It records whether the guard byte was handed out and
// keeps the first source error so decoder failures and source failures
// can be told apart.
type guardReader struct {
	src    io.Reader
	srcErr error
	eof    bool
	served bool
}

func (g *guardReader) Read(p []byte) (int, error) {
	if g.srcErr != nil {
		return 0, g.srcErr
	}
	if len(p) == 0 {
		return 0, nil
	}

	if !g.eof {
		n, err := g.src.Read(p)
		switch {
		case err == nil:
			return n, nil
		case err == io.EOF:
			g.eof = true
			if n > 0 {
				return n, nil
			}
		default:
			g.srcErr = err
			return n, err
		}
	}

	if !g.served {
		g.served = true
		p[0] = guardByte
		return 1, nil
	}
	return 0, io.EOF
}

// --------------------------------------------------------------------

// Reader instances validate a container header and stream back the
// decompressed payload.
type Reader struct {
	br      *brotli.Reader
	guard   *guardReader
	version uint16
	err     error // sticky terminal state
}

// NewReader reads and validates the container header from r and
// returns a Reader over the decompressed payload. It fails with
// ErrTruncated if r holds fewer than 6 bytes, ErrBadMagic if the magic
// sequence does not match, and UnsupportedVersionError if the version
// is outside the supported set.
func NewReader(r io.Reader) (*Reader, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, err
	}

	m, version, err := decodeHeader(hdr)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(m, magic) {
		return nil, ErrBadMagic
	}
	if _, ok := supportedVersions[version]; !ok {
		return nil, &UnsupportedVersionError{Version: version}
	}

	guard := &guardReader{src: r}
	return &Reader{
		br:      brotli.NewReader(guard),
		guard:   guard,
		version: version,
	}, nil
}

// Version returns the container version declared in the header.
func (r *Reader) Version() uint16 { return r.version }

// Read decompresses the next chunk of the payload. The compressed
// stream must terminate exactly at the end of the underlying input:
// truncation, trailing bytes and malformed data are all reported as
// ErrCorrupt wrapping the cause. Errors raised by the underlying
// reader itself are passed through unchanged.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	n, err := r.br.Read(p)
	if err != nil {
		r.err = r.finish(err)
		err = r.err
	}
	return n, err
}

// finish turns the decoder's terminal condition into the container
// verdict. Only the guard byte surfacing as excess input proves the
// stream terminated exactly at the end of the container; a clean EOF
// means the decoder was still expecting data when the input ran out.
func (r *Reader) finish(err error) error {
	switch {
	case r.guard.srcErr != nil:
		return r.guard.srcErr
	case r.guard.served && err.Error() == excessiveInput:
		return io.EOF
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return fmt.Errorf("%w: compressed stream is truncated", ErrCorrupt)
	default:
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
}

// Decode validates data as a container and returns the decompressed
// payload. Decoding either fully succeeds or fails; there is no
// partial-payload return path.
func Decode(data []byte) ([]byte, error) {
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
