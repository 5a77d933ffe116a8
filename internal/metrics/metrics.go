// Package metrics persists run history to a JSON file. The file carries a
// lifetime summary and the most recent runs with per-library detail.
package metrics

import (
	"encoding/json"
	"fmt"
	"os"
)

// File is the on-disk metrics document.
type File struct {
	LastUpdated string  `json:"last_updated"`
	Summary     Summary `json:"summary"`
	Runs        []Run   `json:"runs"`
}

// Summary accumulates over every recorded run, including runs already
// trimmed from the history.
type Summary struct {
	TotalRuns               int `json:"total_runs"`
	SuccessfulRuns          int `json:"successful_runs"`
	PartialRuns             int `json:"partial_runs"`
	FailedRuns              int `json:"failed_runs"`
	TotalLibrariesProcessed int `json:"total_libraries_processed"`
	TotalLibrariesSucceeded int `json:"total_libraries_succeeded"`
	TotalLibrariesFailed    int `json:"total_libraries_failed"`
}

// Run is one recorded sweep.
type Run struct {
	StartTime           string          `json:"start_time"`
	EndTime             string          `json:"end_time"`
	DurationSeconds     float64         `json:"duration_seconds"`
	ExitCode            int             `json:"exit_code"`
	LibrariesTotal      int             `json:"libraries_total"`
	LibrariesSuccessful int             `json:"libraries_successful"`
	LibrariesFailed     int             `json:"libraries_failed"`
	LibraryDetails      []LibraryDetail `json:"library_details"`
}

// LibraryDetail is the per-library outcome within a run. ErrorMessage is
// nil when the library passed.
type LibraryDetail struct {
	Name                string  `json:"name"`
	Success             bool    `json:"success"`
	FileCount           int     `json:"file_count"`
	MediaCount          int     `json:"media_count"`
	ThresholdPercentage float64 `json:"threshold_percentage"`
	ErrorMessage        *string `json:"error_message"`
}

// Latest returns the most recent run, or nil when none are recorded.
func (f *File) Latest() *Run {
	if len(f.Runs) == 0 {
		return nil
	}
	return &f.Runs[len(f.Runs)-1]
}

// Load reads a metrics file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metrics: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing metrics: %w", err)
	}
	return &f, nil
}
