package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/electrovoyage/unpacker/internal/pack"
	"github.com/electrovoyage/unpacker/internal/utils"
	"github.com/spf13/cobra"
)

var createOut string

var createCmd = &cobra.Command{
	Use:   "create <dir>",
	Short: "Build an asset pack from a resource folder",
	Long: `Create walks the given folder and packages every file into a !PACKED
archive. All entries are anchored under the folder's base name, so
packing "resources/" yields asset paths like "resources/images/icon.png".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := filepath.Clean(args[0])
		anchor := filepath.Base(root)

		doc := &pack.Document{
			Tree:     make(map[string][]byte),
			DirIndex: make(map[string]pack.DirEntry),
		}

		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			key := anchor
			if rel != "." {
				key = anchor + "/" + filepath.ToSlash(rel)
			}

			if d.IsDir() {
				children, err := os.ReadDir(p)
				if err != nil {
					return err
				}
				entry := pack.DirEntry{Files: []string{}, Dirs: []string{}}
				for _, child := range children {
					if child.IsDir() {
						entry.Dirs = append(entry.Dirs, child.Name())
					} else {
						entry.Files = append(entry.Files, child.Name())
					}
				}
				doc.DirIndex[key] = entry
				return nil
			}

			content, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			doc.Tree[key] = content
			return nil
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", root, err)
		}

		data, err := pack.Encode(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(createOut, data, 0o644); err != nil {
			return fmt.Errorf("writing pack %s: %w", createOut, err)
		}

		slog.Info("Pack written",
			"path", createOut,
			"objects", len(doc.Tree),
			"directories", len(doc.DirIndex),
			"bytes", len(data))
		fmt.Printf("Packed %s objects into %s\n", utils.Number(int64(len(doc.Tree))), createOut)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createOut, "pack", "assets.packed", "path of the pack file to write")
}
