// Package pack reads electrovoyage asset packs: gzip-compressed archives
// holding a named file tree plus a denormalized directory index, prefixed
// with a literal !PACKED marker.
package pack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Marker is the literal header every packed archive starts with.
const Marker = "!PACKED\n"

// Decode validates the header, decompresses the payload and parses the
// directory document. It is a pure function of the input bytes.
func Decode(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte(Marker)) {
		return nil, fmt.Errorf("%w: buffer does not start with %q", ErrMissingHeader, Marker)
	}

	// Only the leading marker is stripped; marker bytes occurring inside
	// the compressed payload are data.
	payload := data[len(Marker):]

	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}

	return parseDocument(text)
}

// Encode is the inverse of Decode: it serializes the document, compresses
// it and prepends the marker. Output is deterministic for a given
// document.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Marker)

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(encodeDocument(doc)); err != nil {
		return nil, fmt.Errorf("compressing document: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing document: %w", err)
	}
	return buf.Bytes(), nil
}
