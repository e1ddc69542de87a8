package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
)

// Setup configures the global slog logger. format selects the console
// handler ("text" or "json"). If logDir is non-empty, logs are also
// written as JSON to a timestamped file in that directory.
func Setup(level slog.Level, format, logDir string) error {
	var console slog.Handler
	if format == "json" {
		console = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		console = tint.NewHandler(os.Stderr, &tint.Options{Level: level})
	}

	if logDir == "" {
		slog.SetDefault(slog.New(console))
		return nil
	}

	dir := os.ExpandEnv(logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	name := fmt.Sprintf("unpacker_%s.log", time.Now().Format("20060102_150405"))
	logFile, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}

	fileHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(slogmulti.Fanout(console, fileHandler)))
	return nil
}

// ParseLevel converts a config-file level string to a slog.Level,
// defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
