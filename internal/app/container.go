package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/laborhub/domain"
	"github.com/you/laborhub/internal/config"
	httpx "github.com/you/laborhub/internal/http"
	"github.com/you/laborhub/internal/http/handlers"
	"github.com/you/laborhub/internal/http/middleware"
	"github.com/you/laborhub/internal/infrastructure/auth"
	"github.com/you/laborhub/internal/infrastructure/database"
	"github.com/you/laborhub/internal/infrastructure/notifications"
	"github.com/you/laborhub/internal/infrastructure/repositories"
	"github.com/you/laborhub/internal/logging"
	"github.com/you/laborhub/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo     domain.UserRepository
	RefreshRepo  domain.RefreshTokenRepository
	OTPStateRepo domain.OTPStateRepository

	// Services
	Audit     domain.AuditLogger
	PinSvc    domain.PinService
	TokenSvc  *services.TokenServiceImpl
	Verifier  domain.VerificationProvider
	OTPSvc    domain.OTPService
	AuthSvc   domain.AuthService
	PolicySvc domain.PolicyService
}

// NewContainer connects to postgres and redis and wires every dependency
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	db, err := database.Open(cfg.DSN, database.LogLevel(cfg.LogLevel), cfg.StoreTimeout)
	if err != nil {
		return nil, err
	}

	rdb, err := database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, err
	}

	return Wire(cfg, logger, db, rdb)
}

// Wire builds the container on already opened stores. It migrates the
// schema and installs the default route policies.
func Wire(cfg *config.Config, logger *slog.Logger, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		RedisClient: rdb,
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initPolicies(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.RefreshRepo = repositories.NewRefreshTokenRepository(c.DB)
	c.OTPStateRepo = repositories.NewOTPStateRepository(c.RedisClient)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.Audit = logging.NewAuditLogger(c.Logger)
	c.PinSvc = auth.NewPinService()

	signer := auth.NewJWTService(
		cfg.JWTAccessSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTIssuer,
		cfg.AccessTTL,
		cfg.RefreshTTL,
	)
	c.TokenSvc = services.NewTokenService(signer, c.RefreshRepo, cfg.StoreTimeout)

	c.Verifier = notifications.NewTwilioVerifyService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioVerifySID, c.Logger)
	c.OTPSvc = services.NewOTPService(c.Verifier, c.UserRepo, c.OTPStateRepo, c.Audit, services.OTPConfig{
		MaxAttempts:  cfg.OTPMaxAttempts,
		AttemptTTL:   cfg.OTPAttemptTTL,
		ResendWindow: cfg.OTPResendWindow,
	})

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PinSvc, c.TokenSvc, c.Audit, c.Logger)
}

func (c *Container) initPolicies() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to create casbin service: %w", err)
	}

	c.PolicySvc = services.NewPolicyService(cas.E)
	if err := c.PolicySvc.EnsurePolicies(services.RoutePolicies()); err != nil {
		return fmt.Errorf("failed to install route policies: %w", err)
	}
	return nil
}

// Router builds the HTTP handler tree
func (c *Container) Router() *gin.Engine {
	h := httpx.Handlers{
		Auth: handlers.NewAuthHandlers(c.AuthSvc, handlers.CookieOptions{Secure: c.Config.IsProduction()}),
		User: handlers.NewUserHandlers(c.AuthSvc),
		OTP:  handlers.NewOTPHandlers(c.OTPSvc),
	}

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.UserRepo)
	casbinMW := middleware.NewCasbinMW(c.PolicySvc, c.Audit)

	return httpx.BuildRouter(c.Logger, h, jwtMW, casbinMW)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
