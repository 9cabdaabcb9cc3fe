package database

import (
	"fmt"
	"log/slog"
	"time"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/you/laborhub/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string, level logger.LogLevel, slowThreshold time.Duration) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.New(slogWriter{slog.Default()}, logger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// LogLevel maps an application log level name to the gorm logger level
func LogLevel(name string) logger.LogLevel {
	switch name {
	case "debug":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

// AutoMigrate performs database migration for all required tables
// This includes users, refresh tokens and Casbin policy tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBUser{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	if err := db.AutoMigrate(&repositories.DBRefreshToken{}); err != nil {
		return fmt.Errorf("failed to migrate refresh_tokens table: %w", err)
	}

	// The adapter creates the casbin_rule table on construction
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}

// slogWriter routes gorm's printf-style logger through slog
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.logger.Info(fmt.Sprintf(format, args...), "component", "gorm")
}
