package ogma

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var magic = []byte{'O', 'G', 'M', 'A'}

// Version is the container version written by this package.
const Version uint16 = 2

// headerSize is the fixed length of the container preamble:
// 4 magic bytes followed by a little-endian uint16 version.
const headerSize = 6

// Brotli quality bounds. Levels outside this range are normalized
// away before they reach the encoder.
const (
	maxCompressionLevel     = 11
	defaultCompressionLevel = 5
)

var (
	// ErrTruncated is returned when the input ends before the 6-byte header.
	ErrTruncated = errors.New("ogma: truncated header")

	// ErrBadMagic is returned when the input does not start with the
	// magic byte sequence and is therefore not a container.
	ErrBadMagic = errors.New("ogma: bad magic byte sequence")

	// ErrCorrupt is returned when the header is valid but the compressed
	// payload cannot be decompressed.
	ErrCorrupt = errors.New("ogma: corrupt payload")

	errClosed = errors.New("ogma: is closed")
)

// supportedVersions is the closed set of container versions this
// implementation can decode. There is no best-effort fallback for
// versions outside the set.
var supportedVersions = map[uint16]struct{}{
	Version: {},
}

// UnsupportedVersionError is returned when a container carries a valid
// magic sequence but a version outside the supported set.
type UnsupportedVersionError struct {
	Version uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("ogma: container version is %d, but this library only supports version %d", e.Version, Version)
}

// --------------------------------------------------------------------

// Options define container codec options.
type Options struct {
	// CompressionLevel is the brotli quality setting, valid between 1
	// (fastest) and 11 (best compression). Values above the maximum are
	// clamped.
	//
	// Default: 5.
	CompressionLevel int
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.CompressionLevel < 1 {
		oo.CompressionLevel = defaultCompressionLevel
	}
	if oo.CompressionLevel > maxCompressionLevel {
		oo.CompressionLevel = maxCompressionLevel
	}

	return &oo
}

// --------------------------------------------------------------------

// encodeHeader emits the 6-byte preamble: the magic sequence followed
// by the current version. The version written is always Version; the
// codec never writes caller-chosen versions.
func encodeHeader() []byte {
	hdr := make([]byte, headerSize)
	copy(hdr, magic)
	binary.LittleEndian.PutUint16(hdr[4:], Version)
	return hdr
}

// decodeHeader splits the preamble into its magic and version fields
// without validating either; judging them is the reader's job.
func decodeHeader(p []byte) (m []byte, version uint16, err error) {
	if len(p) < headerSize {
		return nil, 0, ErrTruncated
	}
	return p[:4], binary.LittleEndian.Uint16(p[4:headerSize]), nil
}
