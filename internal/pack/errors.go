package pack

import "errors"

// Error kinds surfaced by the codec and pack operations. Callers match
// them with errors.Is; most are returned wrapped with extra context.
var (
	// ErrMissingHeader is returned when a buffer does not start with the
	// !PACKED\n marker.
	ErrMissingHeader = errors.New("missing !PACKED header")

	// ErrDecompression is returned when the compressed payload after the
	// header is not a valid gzip stream.
	ErrDecompression = errors.New("decompressing payload")

	// ErrCorruptArchive is returned when the decompressed payload is not
	// the expected two-key directory document.
	ErrCorruptArchive = errors.New("corrupt archive document")

	// ErrSourceUnreadable is returned when the pack source cannot be
	// opened or fully read.
	ErrSourceUnreadable = errors.New("unreadable pack source")

	// ErrFileNotFound is returned when an asset path is absent from the
	// tree, or when an emulated path does not exist on disk.
	ErrFileNotFound = errors.New("file not found in pack")

	// ErrReloadUnsupported is returned by Reload on packs built from a
	// non-reopenable stream.
	ErrReloadUnsupported = errors.New("reload unsupported for stream-backed pack")
)
