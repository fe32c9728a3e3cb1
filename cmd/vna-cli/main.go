package main

import (
	"context"
	"log/slog"
	"os"

	"vna-etl/cmd/vna-cli/cmd"
	"vna-etl/lib/telemetry"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "err", err)
	}

	ctx := context.Background()

	err = telemetry.SetupFromEnv(ctx, "vna-cli")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to set up telemetry", "err", err)
	}
	defer telemetry.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	cmd.ExecuteContext(ctx)
}
