package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/you/laborhub/internal/app"
	"github.com/you/laborhub/internal/config"
	"github.com/you/laborhub/internal/logging"
)

// Applies the schema and installs the route policies, then exits
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

	if err := migrate(cfg, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func migrate(cfg *config.Config, logger *slog.Logger) error {
	c, err := app.NewContainer(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	var users, rules int64
	if err := c.DB.Table("users").Count(&users).Error; err != nil {
		return fmt.Errorf("users table not accessible: %w", err)
	}
	if err := c.DB.Table("casbin_rule").Count(&rules).Error; err != nil {
		return fmt.Errorf("casbin_rule table not accessible: %w", err)
	}

	logger.Info("migration completed", "users", users, "policies", rules)
	return nil
}
