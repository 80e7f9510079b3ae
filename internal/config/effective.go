package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig layers raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.DefaultWidth != nil {
		cfg.DefaultWidth = *raw.DefaultWidth
	}
	if raw.DefaultHeight != nil {
		cfg.DefaultHeight = *raw.DefaultHeight
	}
	if raw.Path != nil {
		path, err := expandHome(*raw.Path)
		if err != nil {
			return nil, &ValidationError{Path: "path", Err: err}
		}
		cfg.Path = path
	}
	if raw.File != nil {
		cfg.File = strings.TrimSpace(*raw.File)
	}
	if raw.Maximize != nil {
		cfg.Maximize = *raw.Maximize
	}
	if raw.FullScreen != nil {
		cfg.FullScreen = *raw.FullScreen
	}
	if raw.EventDelayMS != nil {
		cfg.EventDelayMS = *raw.EventDelayMS
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}

	return cfg, nil
}

func expandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
