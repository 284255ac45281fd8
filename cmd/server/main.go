package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/nfrund/alphaprime/internal/app"
	"github.com/nfrund/alphaprime/internal/config"
	"github.com/nfrund/alphaprime/internal/logging"
)

func main() {
	cfg := config.New()
	logging.New(cfg.LogFormat, cfg.LogLevel)

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	if err := a.Server.Boot(ctx); err != nil {
		slog.Error("Failed to boot modules", "error", err)
		os.Exit(1)
	}

	exitCode := 0
	if err := a.Server.Start(cfg.ServerAddr); err != nil {
		slog.Error("Server stopped with error", "error", err)
		exitCode = 1
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Close(closeCtx); err != nil {
		slog.Error("Failed to close application", "error", err)
		exitCode = 1
	}
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
	slog.Info("Server exited gracefully")
}
