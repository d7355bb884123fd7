// Package config loads client configuration from defaults, a YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig describes the LingoFlow backend.
type ServerConfig struct {
	// URL is the base URL the /api/* paths are resolved against.
	URL string `yaml:"url"`

	// Timeout bounds a single request. Scenario generation runs a model
	// on the server, so the default is generous. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig controls the structured log sink.
type LogConfig struct {
	File  string `yaml:"file"`  // Empty discards logs.
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: 5 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lingoflow", "config.yaml")
}

// Load builds a Config from defaults, then the YAML file at path (or
// LINGOFLOW_CONFIG, or DefaultPath), then environment variables. A missing
// file is not an error unless path was given explicitly. The result is not
// validated; callers overlay flags first and then call Validate.
func Load(path string) (Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getEnv("LINGOFLOW_CONFIG", "")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.URL = getEnv("LINGOFLOW_SERVER_URL", c.Server.URL)
	c.Log.File = getEnv("LINGOFLOW_LOG_FILE", c.Log.File)
	c.Log.Level = getEnv("LINGOFLOW_LOG_LEVEL", c.Log.Level)

	if v, ok := os.LookupEnv("LINGOFLOW_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("LINGOFLOW_TIMEOUT: %w", err)
		}
		c.Server.Timeout = d
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server url %q: %w", c.Server.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server url %q must be http or https", c.Server.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("server url %q has no host", c.Server.URL)
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server timeout must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
