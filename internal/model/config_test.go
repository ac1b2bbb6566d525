package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
	assert.Equal(t, DefaultPollIntervalSec, cfg.PollIntervalSec)
	assert.False(t, cfg.Delivery.AllowFallback)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("VANVYAPAAR_API_URL", "https://api.vanvyapaar.example/api")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.vanvyapaar.example/api", cfg.BaseURL)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "base_url: https://market.example/api\npoll_interval_sec: 60\ndelivery:\n  allow_fallback: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://market.example/api", cfg.BaseURL)
	assert.Equal(t, 60, cfg.PollIntervalSec)
	assert.True(t, cfg.Delivery.AllowFallback)
}

func TestLoadConfigRejectsNonPositivePollInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval_sec: 0\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPollIntervalSec, cfg.PollIntervalSec)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &AppConfig{
		BaseURL:         "https://market.example/api",
		PollIntervalSec: 45,
		CachePath:       "/tmp/vanvyapaar-cache.db",
		Delivery:        DeliveryConfig{AllowFallback: true},
		Log:             LogConfig{Level: "debug"},
	}
	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in.BaseURL, out.BaseURL)
	assert.Equal(t, in.PollIntervalSec, out.PollIntervalSec)
	assert.Equal(t, in.CachePath, out.CachePath)
	assert.True(t, out.Delivery.AllowFallback)
	assert.Equal(t, "debug", out.Log.Level)
}
