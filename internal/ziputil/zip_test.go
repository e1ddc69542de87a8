package ziputil

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestPackageDirectory(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub", "deep"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"top.txt":           "top",
		"sub/mid.txt":       "mid",
		"sub/deep/leaf.bin": "leaf",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, filepath.FromSlash(name)), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		dest string
	}{
		{name: "zip extension kept", dest: "out.zip"},
		{name: "foreign extension normalized", dest: "out.bin"},
		{name: "no extension", dest: "out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			written, err := PackageDirectory(src, filepath.Join(t.TempDir(), tt.dest))
			if err != nil {
				t.Fatalf("PackageDirectory() failed: %v", err)
			}
			if filepath.Ext(written) != ".zip" {
				t.Fatalf("written path = %q, want .zip extension", written)
			}

			zr, err := zip.OpenReader(written)
			if err != nil {
				t.Fatalf("opening archive: %v", err)
			}
			defer zr.Close()

			got := map[string]string{}
			for _, f := range zr.File {
				if f.FileInfo().IsDir() {
					continue
				}
				rc, err := f.Open()
				if err != nil {
					t.Fatalf("opening entry %s: %v", f.Name, err)
				}
				content, err := io.ReadAll(rc)
				rc.Close()
				if err != nil {
					t.Fatalf("reading entry %s: %v", f.Name, err)
				}
				got[f.Name] = string(content)
			}

			if len(got) != len(files) {
				t.Errorf("archive has %d files, want %d", len(got), len(files))
			}
			for name, want := range files {
				if got[name] != want {
					t.Errorf("entry %s = %q, want %q", name, got[name], want)
				}
			}
		})
	}
}

func TestPackageDirectoryMissingSource(t *testing.T) {
	if _, err := PackageDirectory(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out.zip")); err == nil {
		t.Fatal("PackageDirectory() succeeded on missing source directory")
	}
}
