package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "http://localhost:5000/api/events", cfg.Push.URL)
	assert.Equal(t, 5, cfg.Push.ReconnectAttempts)
	assert.Equal(t, time.Second, cfg.Push.ReconnectDelay)
	assert.Equal(t, 5*time.Second, cfg.State.ErrorTTL)
	assert.NotEmpty(t, cfg.Data.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_ENV", "production")
	t.Setenv("PARLEY_API_URL", "https://forum.example.com/api")
	t.Setenv("PARLEY_PUSH_RECONNECT_ATTEMPTS", "3")
	t.Setenv("PARLEY_PUSH_RECONNECT_DELAY", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "https://forum.example.com/api", cfg.API.BaseURL)
	// Push URL derives from the API base when not set explicitly.
	assert.Equal(t, "https://forum.example.com/api/events", cfg.Push.URL)
	assert.Equal(t, 3, cfg.Push.ReconnectAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Push.ReconnectDelay)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("PARLEY_ENV", "sandbox")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("PARLEY_API_TIMEOUT", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PARLEY_API_TIMEOUT")
}

func TestLoad_DataDirExpansion(t *testing.T) {
	t.Setenv("PARLEY_DATA_DIR", "~/parley-data")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotContains(t, cfg.Data.Dir, "~")
}
