// Package config resolves where zipaudit keeps its configuration and loads
// it from YAML or JSON with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the configuration directory for zipaudit.
// It follows the XDG Base Directory Specification:
// - $ZIPAUDIT_CONFIG_DIR (full override)
// - $XDG_CONFIG_HOME/zipaudit
// - ~/.config/zipaudit (fallback)
func ConfigDir() (string, error) {
	// Check for full override
	if dir := os.Getenv("ZIPAUDIT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	// Check XDG_CONFIG_HOME
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "zipaudit"), nil
	}

	// Fallback to ~/.config/zipaudit
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".config", "zipaudit"), nil
}

// LoadDefault loads configuration from ConfigDir.
func LoadDefault() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return Load(dir)
}
