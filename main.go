package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"crowd-status/config"
	"crowd-status/di"
	"crowd-status/logger"
)

func main() {
	logger.SetupDefault(os.Stdout)

	if err := run(); err != nil {
		slog.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	return container.Run(ctx)
}
