package appdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used under the user config directory.
const AppName = "winstate"

// Dir returns the application data directory for winstate state files.
func Dir() (string, error) {
	return DirFor(AppName)
}

// DirFor returns the data directory for app. Priority:
// 1) XDG_CONFIG_HOME/<app> (if set)
// 2) os.UserConfigDir()/<app>
// 3) $HOME/.config/<app>
// The directory is not created; writers create it on first save.
func DirFor(app string) (string, error) {
	app = strings.TrimSpace(app)
	if app == "" || app != filepath.Base(app) || app == "." || app == ".." {
		return "", fmt.Errorf("invalid application name %q", app)
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, app), nil
	}

	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, app), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", app), nil
}

// ConfigPath returns the default YAML configuration path.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
