package pack

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Emulator serves the pack lookup contract straight from a loose folder
// on disk, for development runs where no archive has been built. It
// holds no decoded state and supports no listings.
type Emulator struct {
	base string
}

// NewEmulator returns an emulator rooted at base, which stands in for
// the packed resources folder.
func NewEmulator(base string) *Emulator {
	return &Emulator{base: base}
}

// GetFile resolves assetPath under the base folder and returns a live
// file handle. A leading "resources" segment in the asset path is the
// archive-side anchor and is dropped before resolving.
func (e *Emulator) GetFile(assetPath string) (io.ReadCloser, error) {
	rel := strings.TrimPrefix(path.Clean(assetPath), "resources/")

	f, err := os.Open(filepath.Join(e.base, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, assetPath)
		}
		return nil, fmt.Errorf("opening emulated file %s: %w", assetPath, err)
	}
	return f, nil
}

// Select picks the pack implementation for the current run: the real
// pack at packPath when running a frozen build, otherwise an emulator
// rooted at resourceDir. An empty resourceDir defaults to the pack's
// parent directory.
func Select(packPath string, frozen bool, resourceDir string) (FolderPack, error) {
	if frozen {
		return Open(packPath)
	}
	if resourceDir == "" {
		resourceDir = filepath.Dir(packPath)
	}
	return NewEmulator(resourceDir), nil
}
