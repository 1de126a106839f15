package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 5*time.Second, cfg.Poll.IdleBackoff())
	assert.Equal(t, time.Second, cfg.Poll.ActiveInterval())
	assert.Equal(t, 5*time.Second, cfg.LiveClient.Timeout())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeFile(t, dir, "overlay.yaml", `
live_client:
  base_url: https://127.0.0.1:2999/liveclientdata/
  verify_tls: true
poll:
  active_interval_ms: 250
log:
  level: DEBUG
`)
	t.Setenv("LEAGUE_OVERLAY_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("LEAGUE_OVERLAY_POLL_IDLE_BACKOFF_SECONDS", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://127.0.0.1:2999/liveclientdata", cfg.LiveClient.BaseURL)
	assert.True(t, cfg.LiveClient.VerifyTLS)
	assert.Equal(t, 5, cfg.LiveClient.TimeoutSeconds, "unset keys keep their default")
	assert.Equal(t, 250*time.Millisecond, cfg.Poll.ActiveInterval())
	assert.Equal(t, 2*time.Second, cfg.Poll.IdleBackoff())
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, ".env", "LEAGUE_OVERLAY_HTTP_ENABLED=false\nLEAGUE_OVERLAY_LOG_DEVELOPMENT=true\n")
	t.Cleanup(func() {
		os.Unsetenv("LEAGUE_OVERLAY_HTTP_ENABLED")
		os.Unsetenv("LEAGUE_OVERLAY_LOG_DEVELOPMENT")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.HTTP.Enabled)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	bad := writeFile(t, dir, "bad.yaml", "poll: [1, 2\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("LEAGUE_OVERLAY_POLL_ACTIVE_INTERVAL_MS", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "parse env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative timeout", func(c *Config) { c.LiveClient.TimeoutSeconds = -1 }, "timeout_seconds"},
		{"negative backoff", func(c *Config) { c.Poll.IdleBackoffSeconds = -5 }, "idle_backoff_seconds"},
		{"negative interval", func(c *Config) { c.Poll.ActiveIntervalMS = -1 }, "active_interval_ms"},
		{"missing addr", func(c *Config) { c.HTTP.Addr = "" }, "http.addr"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	cfg := DefaultConfig()
	cfg.HTTP = HTTPConfig{}
	assert.NoError(t, cfg.Validate(), "addr is only required when http is enabled")
}

// chdir switches the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
