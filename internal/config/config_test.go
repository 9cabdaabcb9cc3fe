package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// clearEnv blanks every override so host variables cannot leak into a test
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{
		"NODE_ENV", "APP_ENV", "PORT", "LOG_LEVEL", "DATABASE_DSN", "REDIS_ADDR", "REDIS_PASSWORD",
		"JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET", "JWT_ACCESS_TTL", "JWT_REFRESH_TTL",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_VERIFY_SERVICE_SID", "SENTRY_DSN",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8081
  env: production
jwt:
  access_secret: access-secret
  refresh_secret: refresh-secret
  issuer: test-issuer
  access_ttl: 10m
  refresh_ttl: 48h
database:
  dsn: postgres://db
  timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "test-issuer", cfg.JWTIssuer)
	assert.Equal(t, 10*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "postgres://db", cfg.DSN)
	// untouched sections keep their defaults
	assert.Equal(t, 5, cfg.OTPMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.OTPResendWindow)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
jwt:
  access_secret: from-file-access
  refresh_secret: from-file-refresh
`)
	t.Setenv("JWT_ACCESS_SECRET", "from-env-access")
	t.Setenv("JWT_REFRESH_TTL", "240h")
	t.Setenv("PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env-access", cfg.JWTAccessSecret)
	assert.Equal(t, "from-file-refresh", cfg.JWTRefreshSecret)
	assert.Equal(t, 240*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "b")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 6*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing access secret aborts",
			body:    "jwt:\n  refresh_secret: r\n",
			wantErr: "access secret is required",
		},
		{
			name:    "missing refresh secret aborts",
			body:    "jwt:\n  access_secret: a\n",
			wantErr: "refresh secret is required",
		},
		{
			name:    "shared secret rejected",
			body:    "jwt:\n  access_secret: same\n  refresh_secret: same\n",
			wantErr: "must differ",
		},
		{
			name:    "bad duration",
			body:    "jwt:\n  access_secret: a\n  refresh_secret: r\n  access_ttl: soon\n",
			wantErr: "invalid JWT access TTL",
		},
		{
			name:    "access ttl longer than refresh ttl",
			body:    "jwt:\n  access_secret: a\n  refresh_secret: r\n  access_ttl: 72h\n  refresh_ttl: 1h\n",
			wantErr: "access TTL must be shorter",
		},
		{
			name:    "malformed yaml",
			body:    "jwt: [unterminated",
			wantErr: "could not parse config yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
