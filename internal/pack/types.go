package pack

import "io"

// ProgressFunc receives per-entry progress during extraction. label is
// the directory currently being written; current counts processed index
// entries out of total. Calls are synchronous and best-effort; a nil
// ProgressFunc disables reporting.
type ProgressFunc func(label string, current, total int)

// FolderPack is the minimal lookup capability shared by decoded packs
// and the directory emulator: fetch one asset by its pack path.
type FolderPack interface {
	// GetFile returns an independent reader over the asset's bytes.
	GetFile(assetPath string) (io.ReadCloser, error)
}

// RandomAccessPack extends FolderPack with the listing and extraction
// operations only a decoded archive provides. Callers that need the
// directory index must hold a RandomAccessPack; the emulator does not
// satisfy it.
type RandomAccessPack interface {
	FolderPack
	// DirIndex returns the full directory index. The returned map is
	// shared state and must not be mutated.
	DirIndex() map[string]DirEntry
	// ListObjects returns all asset paths, unordered.
	ListObjects() []string
	// ListDirectories returns all directory paths, unordered.
	ListDirectories() []string
	// Extract recreates the directory structure and files under dest.
	Extract(dest string, progress ProgressFunc) error
}
