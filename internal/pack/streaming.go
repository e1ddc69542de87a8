package pack

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// StreamingPack eagerly extracts an archive into a temporary directory
// so assets can be read through ordinary filesystem access. The
// directory lives until Close; a failure during construction removes it
// before returning.
type StreamingPack struct {
	pack *Pack
	root string
}

// OpenStreaming decodes the pack at path and extracts it in full.
func OpenStreaming(path string) (sp *StreamingPack, err error) {
	p, err := Open(path)
	if err != nil {
		return nil, err
	}

	root, err := os.MkdirTemp("", "packed_streaming_")
	if err != nil {
		return nil, fmt.Errorf("creating streaming directory: %w", err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(root)
		}
	}()

	if err = p.Extract(root, nil); err != nil {
		return nil, err
	}

	return &StreamingPack{pack: p, root: root}, nil
}

// Root returns the temporary directory the pack was extracted into. It
// is invalid after Close.
func (s *StreamingPack) Root() string {
	return s.root
}

// Path maps an asset path onto its extracted location on disk.
func (s *StreamingPack) Path(assetPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(assetPath))
}

// GetFile opens the extracted asset for reading.
func (s *StreamingPack) GetFile(assetPath string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(assetPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, assetPath)
		}
		return nil, fmt.Errorf("opening streamed file %s: %w", assetPath, err)
	}
	return f, nil
}

// Close deletes the temporary directory and all extracted content. It
// is safe to call more than once.
func (s *StreamingPack) Close() error {
	if s.root == "" {
		return nil
	}
	root := s.root
	s.root = ""
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("removing streaming directory: %w", err)
	}
	return nil
}
