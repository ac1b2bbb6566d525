package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default polling cadence for the notification unread count, matching
// the backend's expectations for client refresh traffic.
const DefaultPollIntervalSec = 30

// DeliveryConfig controls the delivery service's degraded mode.
type DeliveryConfig struct {
	// AllowFallback enables canned delivery data when the backend is
	// unreachable. Off by default; every fallback is logged and the
	// result is flagged as degraded.
	AllowFallback bool `mapstructure:"allow_fallback" yaml:"allow_fallback"`
}

// LogConfig holds structured-logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level client configuration.
type AppConfig struct {
	// BaseURL is the root of the marketplace REST API. Overridable by
	// the VANVYAPAAR_API_URL environment variable.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// PollIntervalSec is how often the notification poller refreshes
	// the unread count.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// CachePath is the SQLite file backing the local caches.
	CachePath string `mapstructure:"cache_path" yaml:"cache_path"`

	Delivery DeliveryConfig `mapstructure:"delivery" yaml:"delivery"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/vanvyapaar/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "vanvyapaar", "config.yaml")
}

// DefaultCachePath returns the default SQLite cache location,
// ~/.local/share/vanvyapaar/cache.db.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cache.db")
	}
	return filepath.Join(home, ".local", "share", "vanvyapaar", "cache.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		BaseURL:         "http://localhost:8080/api",
		PollIntervalSec: DefaultPollIntervalSec,
		CachePath:       DefaultCachePath(),
		Delivery:        DeliveryConfig{AllowFallback: false},
		Log:             LogConfig{Level: "info"},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. A missing file yields the defaults. VANVYAPAAR_API_URL, when
// set, overrides base_url regardless of the file contents.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("base_url", "http://localhost:8080/api")
	v.SetDefault("poll_interval_sec", DefaultPollIntervalSec)
	v.SetDefault("cache_path", DefaultCachePath())
	v.SetDefault("delivery.allow_fallback", false)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("vanvyapaar")
	_ = v.BindEnv("base_url", "VANVYAPAAR_API_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
		// Fall through with defaults; env overrides still apply.
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.PollIntervalSec <= 0 {
		cfg.PollIntervalSec = DefaultPollIntervalSec
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("base_url", cfg.BaseURL)
	v.Set("poll_interval_sec", cfg.PollIntervalSec)
	v.Set("cache_path", cfg.CachePath)
	v.Set("delivery", cfg.Delivery)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
