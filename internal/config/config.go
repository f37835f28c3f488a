// Package config loads service configuration from a TOML file, an optional
// environment overlay file, and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/pelletier/go-toml/v2"
)

const (
	// OverlayConfigPattern names the overlay file that sits next to the base file.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv selects the overlay, e.g. SERVICE_ENV=dev loads config.dev.toml.
	EnvServiceEnv = "SERVICE_ENV"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	CORS     CORSConfig     `toml:"cors"`
}

// Load reads the base file and the SERVICE_ENV overlay, then finalizes the
// result. An empty path yields the defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		base, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = base

		if overlay := overlayPath(path); overlay != "" {
			o, err := load(overlay)
			if err != nil {
				return nil, xerrors.Newf("load overlay %s: %w", overlay, err)
			}
			cfg.Merge(o)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates every section.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return xerrors.Newf("server: %w", err)
	}
	if err := c.Database.Finalize(); err != nil {
		return xerrors.Newf("database: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return xerrors.Newf("logging: %w", err)
	}
	if err := c.CORS.Finalize(); err != nil {
		return xerrors.Newf("cors: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.CORS.Merge(&overlay.CORS)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Newf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, xerrors.Newf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := strings.TrimSpace(os.Getenv(EnvServiceEnv))
	if env == "" {
		return ""
	}

	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
