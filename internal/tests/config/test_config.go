package config

import (
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/laborhub/internal/config"
)

// LoadTestConfig returns a valid configuration for end-to-end tests.
// Secrets may be overridden from .env.test or the environment.
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	if err := godotenv.Load(".env.test"); err != nil && !os.IsNotExist(err) {
		t.Logf("Warning: Could not load .env.test file: %v", err)
	}

	cfg := &config.Config{
		Port:             "0",
		Env:              config.EnvDevelopment,
		GinMode:          "test",
		LogLevel:         "error",
		StoreTimeout:     5 * time.Second,
		JWTAccessSecret:  envOr("TEST_JWT_ACCESS_SECRET", "e2e-access-secret"),
		JWTRefreshSecret: envOr("TEST_JWT_REFRESH_SECRET", "e2e-refresh-secret"),
		JWTIssuer:        "laborhub-test",
		AccessTTL:        6 * time.Minute,
		RefreshTTL:       30 * 24 * time.Hour,
		OTPMaxAttempts:   3,
		OTPAttemptTTL:    10 * time.Minute,
		OTPResendWindow:  30 * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	return cfg
}

// OpenTestDB opens a private in-memory SQLite database
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// one connection keeps a single shared :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// OpenTestRedis starts an in-process Redis server
func OpenTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
