// internal/config/discover.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./sweeparr.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "sweeparr", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. SWEEPARR_CONFIG environment variable
//  2. ./sweeparr.toml (current directory)
//  3. $XDG_CONFIG_HOME/sweeparr/config.toml
//  4. /etc/sweeparr/config.toml
func Discover() (string, error) {
	// 1. Check SWEEPARR_CONFIG env var
	if envPath := os.Getenv("SWEEPARR_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("SWEEPARR_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	// Build search paths
	paths := []string{
		"./sweeparr.toml",
		DefaultPath(),
		"/etc/sweeparr/config.toml",
	}

	// 2-4. Check each path
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("config not found, checked: %s", formatPaths(paths))
}

func formatPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
