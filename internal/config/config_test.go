package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config path at an empty dir and unsets every
// LINGOFLOW_* variable for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"LINGOFLOW_CONFIG", "LINGOFLOW_SERVER_URL", "LINGOFLOW_TIMEOUT",
		"LINGOFLOW_LOG_FILE", "LINGOFLOW_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "http://localhost:8000", cfg.Server.URL)
	assert.Equal(t, 5*time.Minute, cfg.Server.Timeout)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "server:\n  url: http://tutor.local:9000\n  timeout: 30s\nlog:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://tutor.local:9000", cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "server:\n  url: http://tutor.local:9000\n")
	t.Setenv("LINGOFLOW_SERVER_URL", "https://lingo.example.com")
	t.Setenv("LINGOFLOW_TIMEOUT", "2m")
	t.Setenv("LINGOFLOW_LOG_FILE", "/tmp/lingoflow.log")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://lingo.example.com", cfg.Server.URL)
	assert.Equal(t, 2*time.Minute, cfg.Server.Timeout)
	assert.Equal(t, "/tmp/lingoflow.log", cfg.Log.File)
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "server:\n  url: http://from-env-path:8000\n")
	t.Setenv("LINGOFLOW_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env-path:8000", cfg.Server.URL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadTimeout(t *testing.T) {
	isolate(t)
	t.Setenv("LINGOFLOW_TIMEOUT", "soon")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	isolate(t)
	t.Setenv("LINGOFLOW_SERVER_URL", "ftp://example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.Server.URL = "http://localhost:5000"
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https", func(c *Config) { c.Server.URL = "https://example.com" }, false},
		{"no scheme", func(c *Config) { c.Server.URL = "localhost:8000" }, true},
		{"ftp", func(c *Config) { c.Server.URL = "ftp://example.com" }, true},
		{"no host", func(c *Config) { c.Server.URL = "http://" }, true},
		{"negative timeout", func(c *Config) { c.Server.Timeout = -time.Second }, true},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"upper level", func(c *Config) { c.Log.Level = "WARN" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
