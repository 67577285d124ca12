// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the configuration and data directories.
const AppName = "armine"

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// ConfigDir returns $HOME/.config/armine.
func ConfigDir() string {
	return ExpandPath(filepath.Join("~", ".config", AppName))
}

// DefaultDatabasePath returns $HOME/.local/share/armine/armine.db.
func DefaultDatabasePath() string {
	return ExpandPath(filepath.Join("~", ".local", "share", AppName, AppName+".db"))
}

// DefaultTokenPath is where the Google OAuth2 token is cached.
func DefaultTokenPath() string {
	return filepath.Join(ConfigDir(), "sheets-token.json")
}
