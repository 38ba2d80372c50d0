package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("SPLITLEDGER_AUTH_JWT_SECRET", testSecret)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/splitledger.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiry)
	assert.False(t, cfg.SMTP.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SPLITLEDGER_AUTH_JWT_SECRET", testSecret)
	t.Setenv("SPLITLEDGER_SERVER_PORT", "9999")
	t.Setenv("SPLITLEDGER_SERVER_LOG_LEVEL", "debug")
	t.Setenv("SPLITLEDGER_DATABASE_PATH", "/tmp/other.db")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("SPLITLEDGER_AUTH_JWT_SECRET", "too-short")
	t.Chdir(t.TempDir())

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("SPLITLEDGER_AUTH_JWT_SECRET", testSecret)
	t.Setenv("SPLITLEDGER_SERVER_LOG_LEVEL", "verbose")
	t.Chdir(t.TempDir())

	_, err := Load()
	require.Error(t, err)
}
