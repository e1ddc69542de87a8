package main

import (
	"fmt"
	"sort"

	"github.com/electrovoyage/unpacker/internal/pack"
	"github.com/electrovoyage/unpacker/internal/utils"
	"github.com/spf13/cobra"
)

var listDirs bool

var listCmd = &cobra.Command{
	Use:   "list <pack>",
	Short: "List the objects or directories in an asset pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pack.Open(args[0])
		if err != nil {
			return err
		}

		var entries []string
		if listDirs {
			entries = p.ListDirectories()
		} else {
			entries = p.ListObjects()
		}

		// The pack keeps no ordering; sort for stable output.
		sort.Strings(entries)
		for _, entry := range entries {
			fmt.Println(entry)
		}

		if listDirs {
			fmt.Printf("%s directories\n", utils.Number(int64(len(entries))))
		} else {
			fmt.Printf("%s objects\n", utils.Number(int64(len(entries))))
		}

		return nil
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listDirs, "dirs", false, "list directories instead of objects")
}
