package pack

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// countStreamingDirs counts leftover streaming temp directories, so
// tests can assert that construction failures and Close leave none
// behind.
func countStreamingDirs(t *testing.T) int {
	t.Helper()

	entries, err := os.ReadDir(os.TempDir())
	if err != nil {
		t.Fatalf("reading temp dir: %v", err)
	}
	n := 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "packed_streaming_") {
			n++
		}
	}
	return n
}

func TestOpenStreaming(t *testing.T) {
	doc := testDocument()
	sp, err := OpenStreaming(writePack(t, doc))
	if err != nil {
		t.Fatalf("OpenStreaming() failed: %v", err)
	}
	defer sp.Close()

	// Every asset is reachable through plain filesystem access.
	for assetPath, want := range doc.Tree {
		content, err := os.ReadFile(sp.Path(assetPath))
		if err != nil {
			t.Errorf("extracted asset %s missing: %v", assetPath, err)
			continue
		}
		if string(content) != string(want) {
			t.Errorf("asset %s = %q, want %q", assetPath, content, want)
		}
	}

	f, err := sp.GetFile("resources/a.txt")
	if err != nil {
		t.Fatalf("GetFile() failed: %v", err)
	}
	content, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "alpha" {
		t.Errorf("GetFile() content = %q, want %q", content, "alpha")
	}

	if _, err := sp.GetFile("resources/missing.txt"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("GetFile(missing) error = %v, want ErrFileNotFound", err)
	}

	root := sp.Root()
	if err := sp.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if _, err := os.Stat(root); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("streaming directory %s still exists after Close", root)
	}

	// Close is idempotent.
	if err := sp.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestOpenStreamingCleansUpOnFailure(t *testing.T) {
	before := countStreamingDirs(t)

	// The index names a file missing from the tree, so extraction fails
	// mid-way after the temp directory was created.
	doc := testDocument()
	doc.DirIndex["resources"] = DirEntry{Files: []string{"a.txt", "ghost.txt"}, Dirs: []string{"images"}}

	if _, err := OpenStreaming(writePack(t, doc)); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("OpenStreaming() error = %v, want ErrFileNotFound", err)
	}

	if after := countStreamingDirs(t); after != before {
		t.Errorf("streaming temp dirs leaked: %d before, %d after", before, after)
	}
}

func TestOpenStreamingBadPack(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.packed")
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenStreaming(bad); !errors.Is(err, ErrMissingHeader) {
		t.Errorf("OpenStreaming() error = %v, want ErrMissingHeader", err)
	}
}
