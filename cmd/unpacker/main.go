package main

import (
	"fmt"
	"os"

	"github.com/electrovoyage/unpacker/internal/config"
	"github.com/electrovoyage/unpacker/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	cfgFile string

	outputDir  string
	logLevel   string
	logFormat  string
	logDir     string
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "unpacker",
	Short: "Read and extract electrovoyage asset packs",
	Long: `unpacker reads !PACKED asset archives and provides listing, single-file
export and full extraction, either to a directory tree or to a ZIP file.
It can also build a pack from a loose resource folder.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if cmd.Flags().Changed("output") {
			cfg.Output = outputDir
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}
		if cmd.Flags().Changed("log-dir") {
			cfg.LogDir = logDir
		}

		return logging.Setup(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cfg.LogDir)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// progressEnabled reports whether a bar should be drawn for the current
// run. JSON log output and debug logging both interleave badly with it.
func progressEnabled() bool {
	return !(noProgress || cfg.LogFormat == "json" || cfg.LogLevel == "debug")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is unpacker.yaml in pwd)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory or file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for JSON log files")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bar")
}
