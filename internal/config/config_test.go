package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		os.Unsetenv(key)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	unsetenv(t, "APP_ENV", "APP_PORT", "JWT_SECRET", "JWT_TTL",
		"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_PER_MINUTE", "METRICS_ENABLED", "SEED_VENDORS")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.SeedVendors)
}

func TestFromEnvFallsBackToInsecureSecretOutsideProduction(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "  ")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, InsecureDevSecret, cfg.JWTSecret)
	assert.True(t, cfg.InsecureSecret)
}

func TestFromEnvRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("SEED_VENDORS", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.False(t, cfg.InsecureSecret)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Zero(t, cfg.RateLimitPerMinute)
	assert.True(t, cfg.SeedVendors)
}

func TestFromEnvRejectsNonPositiveTTL(t *testing.T) {
	unsetenv(t, "APP_ENV")
	t.Setenv("JWT_TTL", "0s")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\n"), 0o600))
	// godotenv never overrides variables that are already set.
	unsetenv(t, "APP_PORT", "APP_ENV")
	t.Cleanup(func() { os.Unsetenv("APP_PORT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.AppPort)
}

func TestLoadFailsOnMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
