package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "user-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.True(t, cfg.Seed.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "30")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Seed.Enabled)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestAuthConfig_FallbackDurations(t *testing.T) {
	cfg := AuthConfig{}
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 5*time.Minute, cfg.LoginAttemptWindow())
}
