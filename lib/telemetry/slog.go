package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default logger, it writes to stderr so that
// stdout is left to operator output.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
