/*
Package ogma implements a minimal binary container format which wraps
an opaque byte payload in a fixed, versioned header and compresses it
with brotli.

Data Structure Documentation

Container

A container consists of a 6-byte header followed by a single
brotli-compressed payload stream. There is no length field, footer or
checksum; truncation and corruption beyond the header surface as
decompression failures.

    Container layout:
    +-----------------+-----------------------+----------------------------+
    | magic (4 bytes) | version (2 bytes, LE) | brotli-compressed payload  |
    +-----------------+-----------------------+----------------------------+

The magic byte sequence is "OGMA" and the current container version
is 2. Readers recognise exactly the versions listed in the package's
supported-version set, currently {2}; containers carrying any other
version are rejected with an UnsupportedVersionError rather than
decoded on a best-effort basis.

The compressed stream must terminate exactly at the end of the
container: a truncated stream, trailing bytes after the stream, and a
container with no compressed bytes at all are rejected as corrupt
rather than decoded partially.

The payload is semantically opaque to this package: no claims are made
about its internal structure, and the codec never inspects it. Store
layers a persisted key/value map on top of the container format.
*/
package ogma
