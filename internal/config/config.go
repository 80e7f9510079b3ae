package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/winstate/internal/windowstate"
)

// Config is the effective winstate configuration.
type Config struct {
	DefaultWidth  int    `yaml:"default_width"`
	DefaultHeight int    `yaml:"default_height"`
	Path          string `yaml:"path"`
	File          string `yaml:"file"`
	Maximize      bool   `yaml:"maximize"`
	FullScreen    bool   `yaml:"full_screen"`
	EventDelayMS  int    `yaml:"event_delay_ms"`
	LogLevel      string `yaml:"log_level"`
	Display       string `yaml:"display"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultWidth:  windowstate.DefaultWidth,
		DefaultHeight: windowstate.DefaultHeight,
		File:          windowstate.DefaultFileName,
		Maximize:      true,
		FullScreen:    true,
		EventDelayMS:  int(windowstate.DefaultEventDelay / time.Millisecond),
		LogLevel:      "info",
	}
}

func (c *Config) Validate() error {
	if c.DefaultWidth <= 0 {
		return &ValidationError{Path: "default_width", Err: fmt.Errorf("default_width must be > 0")}
	}
	if c.DefaultHeight <= 0 {
		return &ValidationError{Path: "default_height", Err: fmt.Errorf("default_height must be > 0")}
	}
	file := strings.TrimSpace(c.File)
	if file == "" || file != filepath.Base(file) || file == "." || file == ".." {
		return &ValidationError{Path: "file", Err: fmt.Errorf("file must be a bare file name, got %q", c.File)}
	}
	if c.EventDelayMS < 0 {
		return &ValidationError{Path: "event_delay_ms", Err: fmt.Errorf("event_delay_ms must be >= 0")}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

// EventDelay returns the debounce delay as a duration.
func (c *Config) EventDelay() time.Duration {
	return time.Duration(c.EventDelayMS) * time.Millisecond
}

// ManagerConfig converts c into the settings used by windowstate.Manager.
func (c *Config) ManagerConfig(logger *slog.Logger) windowstate.Config {
	return windowstate.Config{
		DefaultWidth:  c.DefaultWidth,
		DefaultHeight: c.DefaultHeight,
		Dir:           c.Path,
		File:          c.File,
		Maximize:      c.Maximize,
		FullScreen:    c.FullScreen,
		EventDelay:    c.EventDelay(),
		Logger:        logger,
	}
}

// ParseLogLevel maps a config log level onto slog.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
}
