package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/you/laborhub/internal/app"
	"github.com/you/laborhub/internal/config"
	"github.com/you/laborhub/internal/logging"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		logging.New(os.Stderr, "error").Error("config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("app", "error", err)
		os.Exit(1)
	}
}
