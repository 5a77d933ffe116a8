// internal/config/validate.go
package config

import (
	"fmt"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Plex connection
	if c.Plex.URL == "" {
		errs = append(errs, "plex.url: required")
	}
	if c.Plex.Token == "" {
		errs = append(errs, "plex.token: required")
	}

	// Libraries. An empty list is valid: a sweep over nothing succeeds.
	seen := make(map[string]bool, len(c.Libraries))
	for i, lib := range c.Libraries {
		label := fmt.Sprintf("library[%d]", i)
		if lib.Name != "" {
			label = fmt.Sprintf("library[%d] (%s)", i, lib.Name)
		}

		if lib.Name == "" {
			errs = append(errs, fmt.Sprintf("%s.name: required", label))
		} else if seen[lib.Name] {
			errs = append(errs, fmt.Sprintf("%s.name: duplicate library name %q", label, lib.Name))
		}
		seen[lib.Name] = true

		switch {
		case lib.Path == "" && len(lib.Paths) == 0:
			errs = append(errs, fmt.Sprintf("%s: one of path or paths is required", label))
		case lib.Path != "" && len(lib.Paths) > 0:
			errs = append(errs, fmt.Sprintf("%s: path and paths are mutually exclusive", label))
		}

		if lib.MinFiles < 0 {
			errs = append(errs, fmt.Sprintf("%s.min_files: must be >= 0, got %d", label, lib.MinFiles))
		}
		if lib.MinThreshold != nil && (*lib.MinThreshold < 0 || *lib.MinThreshold > 100) {
			errs = append(errs, fmt.Sprintf("%s.min_threshold: must be between 0 and 100, got %g", label, *lib.MinThreshold))
		}
	}

	// Logging
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be text or json; got %q", c.Log.Format))
	}
	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, fmt.Sprintf("log.max_size_mb: must be >= 0, got %d", c.Log.MaxSizeMB))
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("log.max_backups: must be >= 0, got %d", c.Log.MaxBackups))
	}

	// Schedule
	if c.Schedule.Interval != "" {
		if d, err := time.ParseDuration(c.Schedule.Interval); err != nil {
			errs = append(errs, fmt.Sprintf("schedule.interval: invalid duration %q", c.Schedule.Interval))
		} else if d <= 0 {
			errs = append(errs, fmt.Sprintf("schedule.interval: must be positive, got %s", c.Schedule.Interval))
		}
	}

	return errs
}
