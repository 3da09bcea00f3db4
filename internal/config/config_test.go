package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "leave-portal", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.Equal(t, "http://localhost:8080/api", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "lp_session", cfg.Session.CookieName)
	assert.Equal(t, 12*time.Hour, cfg.Session.DefaultTTL())
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "4000")
	t.Setenv("BACKEND_BASE_URL", "https://leave.example.com/api")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "3")
	t.Setenv("SESSION_COOKIE_NAME", "portal_sid")
	t.Setenv("SESSION_DEFAULT_TTL_MINUTES", "60")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4000", cfg.App.Addr())
	assert.Equal(t, "https://leave.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, "portal_sid", cfg.Session.CookieName)
	assert.Equal(t, time.Hour, cfg.Session.DefaultTTL())
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestMalformedEnvFallsBack(t *testing.T) {
	t.Setenv("SESSION_DEFAULT_TTL_MINUTES", "soon")
	t.Setenv("SESSION_COOKIE_SECURE", "yep")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 720, cfg.Session.DefaultTTLMins)
	assert.False(t, cfg.Session.CookieSecure)
}
