package main

import (
	"io"
	"os"

	"github.com/electrovoyage/unpacker/internal/pack"
	"github.com/spf13/cobra"
)

var emulate bool

var catCmd = &cobra.Command{
	Use:   "cat <pack> <asset-path>",
	Short: "Write a single asset to stdout or a file",
	Long: `Cat looks up one asset and writes its bytes to stdout, or to the path
given with --output. With --emulate the pack argument is ignored as an
archive and assets are served from the loose resources folder instead,
the way unfrozen development builds do.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := pack.Select(args[0], !emulate, cfg.Resources)
		if err != nil {
			return err
		}

		f, err := source.GetFile(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		out := os.Stdout
		if cmd.Flags().Changed("output") {
			out, err = os.Create(cfg.Output)
			if err != nil {
				return err
			}
			defer out.Close()
		}

		_, err = io.Copy(out, f)
		return err
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
	catCmd.Flags().BoolVar(&emulate, "emulate", false, "serve from the resources folder instead of the pack")
}
