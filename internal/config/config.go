// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultThreshold is the minimum threshold percentage applied when a
	// library does not set min_threshold explicitly.
	DefaultThreshold = 90.0

	// DefaultInterval is the sweep interval applied when [schedule] does
	// not set one.
	DefaultInterval = "24h"
)

// Config is the root configuration structure.
type Config struct {
	Plex      PlexConfig      `toml:"plex"`
	Libraries []LibraryConfig `toml:"library"`
	Log       LogConfig       `toml:"log"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Schedule  ScheduleConfig  `toml:"schedule"`
}

type PlexConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// LibraryConfig declares one library to sweep. Exactly one of Path and
// Paths must be set; Path is shorthand for a single-entry Paths.
type LibraryConfig struct {
	Name         string   `toml:"name"`
	Path         string   `toml:"path"`
	Paths        []string `toml:"paths"`
	MinFiles     int      `toml:"min_files"`
	MinThreshold *float64 `toml:"min_threshold"`
}

// AllPaths returns the library's directories as a fresh slice, regardless
// of which declaration form was used. Callers may modify the result.
func (l *LibraryConfig) AllPaths() []string {
	if l.Path != "" {
		return []string{l.Path}
	}
	paths := make([]string, len(l.Paths))
	copy(paths, l.Paths)
	return paths
}

// Threshold returns min_threshold, or DefaultThreshold when unset.
// An explicit 0 disables the threshold check and is distinct from absent.
func (l *LibraryConfig) Threshold() float64 {
	if l.MinThreshold == nil {
		return DefaultThreshold
	}
	return *l.MinThreshold
}

type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// MetricsConfig points at the JSON run-history file. An empty File
// disables metrics collection.
type MetricsConfig struct {
	File string `toml:"file"`
}

type ScheduleConfig struct {
	Interval string `toml:"interval"`
}

// IntervalDuration parses the configured sweep interval.
func (s *ScheduleConfig) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(s.Interval)
	if err != nil {
		return 0, fmt.Errorf("parsing schedule.interval: %w", err)
	}
	return d, nil
}

// Load reads, parses, and validates the configuration file. Unresolved
// environment variables and validation failures are aggregated into a
// *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := parse(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}

	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, skipping
// validation and tolerating unresolved environment variables. Used by
// diagnostic commands that report problems themselves.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := parse(path)
	return cfg, err
}

func parse(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Schedule.Interval == "" {
		c.Schedule.Interval = DefaultInterval
	}
}

// substituteEnvVars replaces ${VAR} references with environment variable
// values. ${VAR:-default} falls back when VAR is unset or empty;
// ${VAR:?message} records "VAR: message" as missing when unset or empty.
// Plain ${VAR} references to unset variables are left unchanged and
// collected in the returned missing list.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }

		if name, def, ok := strings.Cut(expr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return def
		}

		if name, msg, ok := strings.Cut(expr, ":?"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			missing = append(missing, fmt.Sprintf("%s: %s", name, msg))
			return match
		}

		if value, ok := os.LookupEnv(expr); ok {
			return value
		}
		missing = append(missing, expr)
		return match
	})

	return result, missing
}
