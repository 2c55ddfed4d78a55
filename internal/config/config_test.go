package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_TOKEN_TTL", "")
	t.Setenv("REDIS_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "directory-app", cfg.Auth.TokenAudience)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_RequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_TOKEN_TTL", "90m")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "127.0.0.1:9000", cfg.App.Addr())
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AUTH_TOKEN_TTL", "-1h")
	_, err = Load()
	assert.Error(t, err)
}
