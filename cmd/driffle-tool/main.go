package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/justt1n/driffle-tool/internal/application"
	"github.com/justt1n/driffle-tool/pkg/contextx"
	"github.com/justt1n/driffle-tool/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{ //nolint:exhaustruct
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	ctx = contextx.WithLogger(ctx, logger)

	if err := application.Run(ctx); err != nil {
		logger.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	logger.Info("application stopped")
}
