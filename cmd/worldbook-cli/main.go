package main

import (
	"context"
	"log/slog"
	"os"
	"worldbookmap/cmd/worldbook-cli/commands"
	"worldbookmap/lib/osutil"
	"worldbookmap/lib/telemetry"
)

func main() {
	ctx, stop := osutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "worldbook-cli")
	if err != nil {
		slog.Debug("tracing disabled", "err", err)
	}

	err = commands.ExecuteContext(ctx)

	// spans of a failed run are flushed too
	shutdownErr := tel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to flush traces", "err", shutdownErr)
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}
