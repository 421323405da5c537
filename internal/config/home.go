package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the rfopener home directory
const HomeEnv = "RFOPENER_HOME"

// GetHome returns the rfopener home directory
// Priority order:
//  1. RFOPENER_HOME environment variable (if set)
//  2. ~/.rfopener
//
// The directory is created if it doesn't exist
func GetHome() (string, error) {
	home := os.Getenv(HomeEnv)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get user home directory: %w", err)
		}
		home = filepath.Join(userHome, ".rfopener")
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create rfopener home directory: %w", err)
	}
	return home, nil
}

// DefaultConfigPath returns $RFOPENER_HOME/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// HistoryDBPath returns the configured history database path, falling back
// to $RFOPENER_HOME/history.db
func (c *Config) HistoryDBPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
