// Package ziputil packages extracted pack content as ZIP archives.
package ziputil

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PackageDirectory writes the contents of srcDir into a ZIP archive at
// destPath, normalizing the extension to .zip. Entry names are relative
// to srcDir with forward slashes. Returns the path actually written.
func PackageDirectory(srcDir, destPath string) (string, error) {
	destPath = strings.TrimSuffix(destPath, filepath.Ext(destPath)) + ".zip"

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating archive %s: %w", destPath, err)
	}

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			_, err := zw.Create(rel + "/")
			return err
		}

		w, err := zw.Create(rel)
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})

	if walkErr != nil {
		zw.Close()
		out.Close()
		return "", fmt.Errorf("packaging %s: %w", srcDir, walkErr)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return "", fmt.Errorf("finalizing archive %s: %w", destPath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing archive %s: %w", destPath, err)
	}

	return destPath, nil
}
