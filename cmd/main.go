package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"treehealth/internal/application"
	"treehealth/internal/config"
	"treehealth/pkg/contextx"
	"treehealth/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("application failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}

	slog.Info("application stopped")
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logx.NewLogger(os.Stdout, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logx.NewLogger: %w", err)
	}

	log = log.With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)

	if err := application.Run(contextx.WithLogger(ctx, log), cfg); err != nil {
		return fmt.Errorf("application.Run: %w", err)
	}

	return nil
}
