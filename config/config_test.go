package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "3000", cfg.Service.Port)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Contains(t, cfg.DSN(), "dbname=meditrust")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SESSION_BACKEND", "redis")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Service.Port)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "redis", cfg.Session.Backend)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Load()
	cfg.Session.Backend = "flatfile"
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.Tracing.SampleRate = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.Session.TTL = 0
	assert.Error(t, cfg.Validate())
}
