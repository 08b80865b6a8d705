// Package logger builds the slog.Logger used by the shrub binary.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Log level and format values accepted in Config.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	FormatJSON = "json"
	FormatText = "text"
)

// Config represents logger configuration.
type Config struct {
	Level     string `mapstructure:"level" yaml:"level"`   // "debug", "info", "warn", "error"
	Format    string `mapstructure:"format" yaml:"format"` // "json", "text"
	AddSource bool   `mapstructure:"add_source" yaml:"add_source"`
}

// DefaultConfig returns defaults used when no config is provided.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
	}
}

// LogLevel converts the level string to slog.Level. Unknown levels map to
// info.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn, "warning":
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON.
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == FormatJSON
}

// New returns a logger writing to w according to cfg.
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}
	var h slog.Handler
	if cfg.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}
