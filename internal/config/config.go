package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type AppConfig struct {
	Port     int    `yaml:"port"`
	Env      string `yaml:"env"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	DSN     string `yaml:"dsn"`
	Timeout string `yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	MaxAttempts  int    `yaml:"max_attempts"`
	AttemptTTL   string `yaml:"attempt_ttl"`
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID       string `yaml:"account_sid"`
	AuthToken        string `yaml:"auth_token"`
	VerifyServiceSID string `yaml:"verify_service_sid"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Sentry   SentryConfig   `yaml:"sentry"`
}

// Config is built once at startup and shared read-only afterwards.
type Config struct {
	Port             string
	Env              string
	GinMode          string
	LogLevel         string
	DSN              string
	StoreTimeout     time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	OTPMaxAttempts   int
	OTPAttemptTTL    time.Duration
	OTPResendWindow  time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioVerifySID  string
	CasbinModelPath  string
	SentryDSN        string
}

// IsProduction reports whether cookies must be restricted to secure channels
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func defaultConfigFile() *ConfigFile {
	return &ConfigFile{
		App:      AppConfig{Port: 5000, Env: EnvDevelopment, GinMode: "release", LogLevel: "info"},
		Database: DatabaseConfig{Timeout: "5s"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		JWT: JWTConfig{
			Issuer:     "laborhub",
			AccessTTL:  "6m",
			RefreshTTL: "720h",
		},
		OTP: OTPConfig{
			MaxAttempts:  5,
			AttemptTTL:   "10m",
			ResendWindow: "30s",
		},
		Casbin: CasbinConfig{ModelPath: "config/rbac_model.conf"},
	}
}

// Load reads the YAML config at path (if present), applies environment
// overrides (a .env file is loaded first when available) and validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	configFile := defaultConfigFile()
	if path != "" {
		if err := loadConfigFile(path, configFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	applyEnv(configFile)

	cfg, err := build(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string, into *ConfigFile) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, into); err != nil {
		return fmt.Errorf("could not parse config yaml: %w", err)
	}

	return nil
}

func applyEnv(f *ConfigFile) {
	f.App.Env = env("NODE_ENV", env("APP_ENV", f.App.Env))
	f.App.Port = atoi(env("PORT", strconv.Itoa(f.App.Port)), f.App.Port)
	f.App.LogLevel = env("LOG_LEVEL", f.App.LogLevel)
	f.Database.DSN = env("DATABASE_DSN", f.Database.DSN)
	f.Redis.Addr = env("REDIS_ADDR", f.Redis.Addr)
	f.Redis.Password = env("REDIS_PASSWORD", f.Redis.Password)
	f.JWT.AccessSecret = env("JWT_ACCESS_SECRET", f.JWT.AccessSecret)
	f.JWT.RefreshSecret = env("JWT_REFRESH_SECRET", f.JWT.RefreshSecret)
	f.JWT.AccessTTL = env("JWT_ACCESS_TTL", f.JWT.AccessTTL)
	f.JWT.RefreshTTL = env("JWT_REFRESH_TTL", f.JWT.RefreshTTL)
	f.Twilio.AccountSID = env("TWILIO_ACCOUNT_SID", f.Twilio.AccountSID)
	f.Twilio.AuthToken = env("TWILIO_AUTH_TOKEN", f.Twilio.AuthToken)
	f.Twilio.VerifyServiceSID = env("TWILIO_VERIFY_SERVICE_SID", f.Twilio.VerifyServiceSID)
	f.Sentry.DSN = env("SENTRY_DSN", f.Sentry.DSN)
}

func build(f *ConfigFile) (*Config, error) {
	accTTL, err := time.ParseDuration(f.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(f.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	storeTimeout, err := time.ParseDuration(f.Database.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid database timeout: %w", err)
	}

	attemptTTL, err := time.ParseDuration(f.OTP.AttemptTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP attempt TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(f.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	return &Config{
		Port:             strconv.Itoa(f.App.Port),
		Env:              f.App.Env,
		GinMode:          f.App.GinMode,
		LogLevel:         f.App.LogLevel,
		DSN:              f.Database.DSN,
		StoreTimeout:     storeTimeout,
		RedisAddr:        f.Redis.Addr,
		RedisPassword:    f.Redis.Password,
		RedisDB:          f.Redis.DB,
		JWTAccessSecret:  f.JWT.AccessSecret,
		JWTRefreshSecret: f.JWT.RefreshSecret,
		JWTIssuer:        f.JWT.Issuer,
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		OTPMaxAttempts:   f.OTP.MaxAttempts,
		OTPAttemptTTL:    attemptTTL,
		OTPResendWindow:  resWnd,
		TwilioSID:        f.Twilio.AccountSID,
		TwilioToken:      f.Twilio.AuthToken,
		TwilioVerifySID:  f.Twilio.VerifyServiceSID,
		CasbinModelPath:  f.Casbin.ModelPath,
		SentryDSN:        f.Sentry.DSN,
	}, nil
}

// Validate rejects configurations that would let the service start without
// working token signing.
func (c *Config) Validate() error {
	if c.JWTAccessSecret == "" {
		return errors.New("config: JWT access secret is required")
	}
	if c.JWTRefreshSecret == "" {
		return errors.New("config: JWT refresh secret is required")
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return errors.New("config: JWT access and refresh secrets must differ")
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("config: token TTLs must be positive")
	}
	if c.AccessTTL >= c.RefreshTTL {
		return errors.New("config: access TTL must be shorter than refresh TTL")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("config: database timeout must be positive")
	}
	return nil
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
