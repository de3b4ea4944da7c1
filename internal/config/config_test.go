package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DB_DRIVER", "DB_CONNECTION_STRING", "LLM_PROVIDER", "JWT_EXPIRE_MINUTES", "NATS_URL", "REDIS_URL"} {
		t.Setenv(key, "")
	}
	// t.Setenv with "" still marks the key as set; unset it for defaults.
	unset(t, "APP_PORT", "DB_DRIVER", "DB_CONNECTION_STRING", "LLM_PROVIDER", "JWT_EXPIRE_MINUTES", "NATS_URL", "REDIS_URL")

	cfg := Load()
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "http://localhost:8000", cfg.App.BaseURL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "blog.db", cfg.Database.Connection)
	assert.Equal(t, "none", cfg.Ai.LLMProvider)
	assert.Equal(t, time.Hour, cfg.Auth.JwtExpiry)
	assert.Empty(t, cfg.App.NatsURL)
	assert.Empty(t, cfg.App.RedisURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_EXPIRE_MINUTES", "5")
	t.Setenv("AI_CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("GO_ENV", "production")

	cfg := Load()
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Auth.JwtExpiry)
	assert.Equal(t, 600*time.Second, cfg.Cache.AIResultTTL)
	assert.True(t, cfg.IsProduction())
}

func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		_ = os.Unsetenv(key)
	}
}
