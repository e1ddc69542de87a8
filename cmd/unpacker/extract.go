package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/electrovoyage/unpacker/internal/pack"
	"github.com/electrovoyage/unpacker/internal/utils"
	"github.com/spf13/cobra"
)

var zipPath string

var extractCmd = &cobra.Command{
	Use:   "extract <pack>",
	Short: "Extract an asset pack to a directory or ZIP file",
	Long: `Extract decodes the given asset pack and recreates its full directory
tree under the output directory. With --zip the content is staged in a
temporary directory and packaged as a ZIP archive instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		p, err := pack.Open(args[0])
		if err != nil {
			return err
		}

		slog.Info("Extracting pack",
			"pack", p.Name(),
			"objects", p.Len(),
			"directories", len(p.DirIndex()))

		progress := utils.NewProgress(len(p.DirIndex()), progressEnabled())

		if zipPath != "" {
			written, err := p.ExtractToZip(zipPath, progress.Update)
			if err != nil {
				return err
			}
			progress.Finish()
			fmt.Printf("Archive written: %s\n", written)
		} else {
			if err := p.Extract(cfg.Output, progress.Update); err != nil {
				return err
			}
			progress.Finish()
			fmt.Printf("Extracted to: %s\n", cfg.Output)
		}

		fmt.Printf("Objects: %s\n", utils.Number(int64(p.Len())))
		fmt.Printf("Duration: %s\n", utils.Duration(time.Since(start)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&zipPath, "zip", "", "package the extracted content as a ZIP archive at this path")
}
