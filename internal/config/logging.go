package config

import (
	"log/slog"
	"os"

	"github.com/mdobak/go-xerrors"
)

const (
	EnvLoggingLevel  = "LOGGING_LEVEL"
	EnvLoggingFormat = "LOGGING_FORMAT"
)

const (
	FormatDev  = "dev"
	FormatJSON = "json"
)

type LoggingConfig struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"`
	AddSource bool   `toml:"add_source"`
}

// SlogLevel converts Level to its slog equivalent. Valid after Finalize.
func (c *LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Level))
	return level
}

func (c *LoggingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *LoggingConfig) Merge(overlay *LoggingConfig) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.AddSource {
		c.AddSource = true
	}
}

func (c *LoggingConfig) loadDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatDev
	}
}

func (c *LoggingConfig) loadEnv() {
	if v := os.Getenv(EnvLoggingLevel); v != "" {
		c.Level = v
	}
	if v := os.Getenv(EnvLoggingFormat); v != "" {
		c.Format = v
	}
}

func (c *LoggingConfig) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return xerrors.Newf("invalid level %q: %w", c.Level, err)
	}
	switch c.Format {
	case FormatDev, FormatJSON:
		return nil
	default:
		return xerrors.Newf("invalid format %q (must be %s or %s)", c.Format, FormatDev, FormatJSON)
	}
}
