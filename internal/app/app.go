package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/laborhub/internal/config"
	"github.com/you/laborhub/internal/logging"
)

const (
	purgeInterval     = time.Hour
	purgeRetention    = 7 * 24 * time.Hour
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Run serves the API until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := logging.InitSentry(cfg.SentryDSN, cfg.Env); err != nil {
		logger.Error("init_sentry_failed", "error", err)
	}
	defer logging.FlushSentry()

	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	go c.purgeExpiredTokens(ctx, purgeInterval)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// purgeExpiredTokens periodically drops refresh token records that expired
// more than purgeRetention ago
func (c *Container) purgeExpiredTokens(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purgeOnce(ctx)
		}
	}
}

func (c *Container) purgeOnce(ctx context.Context) {
	deleted, err := c.TokenSvc.PurgeExpired(ctx, purgeRetention)
	if err != nil {
		c.Logger.WarnContext(ctx, "refresh token purge failed", "error", err)
		return
	}
	if deleted > 0 {
		c.Logger.InfoContext(ctx, "purged expired refresh tokens", "count", deleted)
	}
}
