package pack

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/electrovoyage/unpacker/internal/ziputil"
)

// Pack is a fully decoded asset pack. The decoded state is owned by the
// holder and is not safe for concurrent mutation; Reload replaces it
// wholesale and must be serialized with readers by the caller.
type Pack struct {
	path string // retained source path, empty for stream-backed packs
	name string // label for error messages
	doc  *Document
}

// Open reads and decodes the pack at path. The path is retained so the
// pack can be reloaded later.
func Open(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("opening pack %s: %w", path, err)
	}

	slog.Debug("pack loaded", "path", path, "objects", len(doc.Tree), "directories", len(doc.DirIndex))

	return &Pack{path: path, name: path, doc: doc}, nil
}

// OpenReader decodes a pack from an already-open stream. name is kept
// only for error messages; the resulting pack cannot be reloaded.
func OpenReader(r io.Reader, name string) (*Pack, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("opening pack %s: %w", name, err)
	}

	return &Pack{name: name, doc: doc}, nil
}

// Name returns the pack's source label.
func (p *Pack) Name() string {
	return p.name
}

// Len returns the number of objects in the tree.
func (p *Pack) Len() int {
	return len(p.doc.Tree)
}

// GetFile returns a fresh reader over the stored bytes of assetPath.
// Each call yields an independent cursor.
func (p *Pack) GetFile(assetPath string) (io.ReadCloser, error) {
	content, ok := p.doc.Tree[assetPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, assetPath)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// DirIndex returns the directory index. The map is shared, not a copy.
func (p *Pack) DirIndex() map[string]DirEntry {
	return p.doc.DirIndex
}

// ListObjects returns all asset paths in the tree, unordered.
func (p *Pack) ListObjects() []string {
	objects := make([]string, 0, len(p.doc.Tree))
	for key := range p.doc.Tree {
		objects = append(objects, key)
	}
	return objects
}

// ListDirectories returns all directory paths in the index, unordered.
func (p *Pack) ListDirectories() []string {
	dirs := make([]string, 0, len(p.doc.DirIndex))
	for key := range p.doc.DirIndex {
		dirs = append(dirs, key)
	}
	return dirs
}

// Reload re-reads the retained source path and replaces the decoded
// state. Packs built from a stream cannot be reloaded.
func (p *Pack) Reload() error {
	if p.path == "" {
		return fmt.Errorf("%w: %s", ErrReloadUnsupported, p.name)
	}

	fresh, err := Open(p.path)
	if err != nil {
		return fmt.Errorf("reloading %s: %w", p.path, err)
	}
	p.doc = fresh.doc
	return nil
}

// Extract recreates the pack's directory structure under dest and writes
// every file the index names. Directory creation is idempotent. The
// first missing asset or I/O error aborts the remaining extraction;
// files already written stay in place.
func (p *Pack) Extract(dest string, progress ProgressFunc) error {
	index := p.doc.DirIndex
	total := len(index)
	done := 0

	for dirPath, entry := range index {
		target := filepath.Join(dest, filepath.FromSlash(dirPath))
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", target, err)
		}
		for _, sub := range entry.Dirs {
			if err := os.MkdirAll(filepath.Join(target, sub), 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", filepath.Join(target, sub), err)
			}
		}
		for _, name := range entry.Files {
			if err := p.ExportFile(dirPath+"/"+name, filepath.Join(target, name)); err != nil {
				return err
			}
		}

		done++
		if progress != nil {
			progress(dirPath, done, total)
		}
	}

	return nil
}

// ExtractToZip extracts the pack into a staging directory and packages
// it as a ZIP archive at destZip (extension normalized to .zip). The
// staging directory is removed on every exit path. Returns the path of
// the archive actually written.
func (p *Pack) ExtractToZip(destZip string, progress ProgressFunc) (written string, err error) {
	staging, err := os.MkdirTemp("", "packed_zipexport_")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil && err == nil {
			err = fmt.Errorf("removing staging directory: %w", rmErr)
		}
	}()

	if err := p.Extract(staging, progress); err != nil {
		return "", err
	}

	return ziputil.PackageDirectory(staging, destZip)
}

// ExportFile writes the bytes of assetPath to destPath, overwriting any
// existing file.
func (p *Pack) ExportFile(assetPath, destPath string) error {
	content, ok := p.doc.Tree[assetPath]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, assetPath)
	}
	if err := os.WriteFile(destPath, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	return nil
}

// ExportToTempFile writes the asset to a fresh temporary file whose
// suffix matches the asset's extension and returns the handle positioned
// at the start. The caller owns the file and its removal.
func (p *Pack) ExportToTempFile(assetPath string) (*os.File, error) {
	content, ok := p.doc.Tree[assetPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, assetPath)
	}

	f, err := os.CreateTemp("", "assetpack_*"+path.Ext(assetPath))
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("writing temporary file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("rewinding temporary file: %w", err)
	}

	return f, nil
}
