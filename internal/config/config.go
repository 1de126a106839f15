// Package config loads the overlay's settings from an optional YAML file,
// an optional .env file and LEAGUE_OVERLAY_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "LEAGUE_OVERLAY_"

type Config struct {
	LiveClient LiveClientConfig `yaml:"live_client" envPrefix:"LIVE_CLIENT_"`
	Poll       PollConfig       `yaml:"poll"        envPrefix:"POLL_"`
	HTTP       HTTPConfig       `yaml:"http"        envPrefix:"HTTP_"`
	Log        LogConfig        `yaml:"log"         envPrefix:"LOG_"`
}

type LiveClientConfig struct {
	BaseURL        string `yaml:"base_url"        env:"BASE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	VerifyTLS      bool   `yaml:"verify_tls"      env:"VERIFY_TLS"`
}

func (c LiveClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PollConfig sets the two sleeps of the acquisition loop: after a negative
// probe, and after each active cycle.
type PollConfig struct {
	IdleBackoffSeconds int `yaml:"idle_backoff_seconds" env:"IDLE_BACKOFF_SECONDS"`
	ActiveIntervalMS   int `yaml:"active_interval_ms"   env:"ACTIVE_INTERVAL_MS"`
}

func (c PollConfig) IdleBackoff() time.Duration {
	return time.Duration(c.IdleBackoffSeconds) * time.Second
}

func (c PollConfig) ActiveInterval() time.Duration {
	return time.Duration(c.ActiveIntervalMS) * time.Millisecond
}

type HTTPConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr"    env:"ADDR"`
}

type LogConfig struct {
	Level       string `yaml:"level"       env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

func DefaultConfig() Config {
	return Config{
		LiveClient: LiveClientConfig{
			BaseURL:        "https://127.0.0.1:2999/liveclientdata",
			TimeoutSeconds: 5,
		},
		Poll: PollConfig{
			IdleBackoffSeconds: 5,
			ActiveIntervalMS:   1000,
		},
		HTTP: HTTPConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8089",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration. path may be empty, in which case only the
// defaults, .env and the environment apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()

	c.LiveClient.BaseURL = strings.TrimRight(strings.TrimSpace(c.LiveClient.BaseURL), "/")
	if c.LiveClient.BaseURL == "" {
		c.LiveClient.BaseURL = def.LiveClient.BaseURL
	}
	if c.LiveClient.TimeoutSeconds == 0 {
		c.LiveClient.TimeoutSeconds = def.LiveClient.TimeoutSeconds
	}
	if c.Poll.IdleBackoffSeconds == 0 {
		c.Poll.IdleBackoffSeconds = def.Poll.IdleBackoffSeconds
	}
	if c.Poll.ActiveIntervalMS == 0 {
		c.Poll.ActiveIntervalMS = def.Poll.ActiveIntervalMS
	}
	c.HTTP.Addr = strings.TrimSpace(c.HTTP.Addr)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func (c Config) Validate() error {
	if c.LiveClient.TimeoutSeconds < 0 {
		return fmt.Errorf("live_client.timeout_seconds must be positive, got %d", c.LiveClient.TimeoutSeconds)
	}
	if c.Poll.IdleBackoffSeconds < 0 {
		return fmt.Errorf("poll.idle_backoff_seconds must be positive, got %d", c.Poll.IdleBackoffSeconds)
	}
	if c.Poll.ActiveIntervalMS < 0 {
		return fmt.Errorf("poll.active_interval_ms must be positive, got %d", c.Poll.ActiveIntervalMS)
	}
	if c.HTTP.Enabled && c.HTTP.Addr == "" {
		return errors.New("http.addr is required when http is enabled")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
