// internal/metrics/collector.go
package metrics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/sweeparr/sweeparr/internal/sweep"
)

// keepRuns caps the run history kept in the metrics file.
const keepRuns = 100

// Collector writes run results to a metrics file.
type Collector struct {
	path string
	log  *slog.Logger
}

// Ensure Collector can serve as the runner's sink.
var _ sweep.MetricsSink = (*Collector)(nil)

// NewCollector returns a Collector persisting to path.
func NewCollector(path string, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{path: path, log: log.With("component", "metrics")}
}

// Record appends the run to the metrics file, updates the lifetime summary
// and trims the history. A missing or unreadable file is replaced with a
// fresh one rather than failing the run.
func (c *Collector) Record(result sweep.Result) error {
	file := c.load()
	file.Runs = append(file.Runs, buildRun(result))

	switch result.ExitCode() {
	case 0:
		file.Summary.SuccessfulRuns++
	case 1:
		file.Summary.PartialRuns++
	default:
		file.Summary.FailedRuns++
	}
	file.Summary.TotalRuns++
	file.Summary.TotalLibrariesProcessed += result.Total
	file.Summary.TotalLibrariesSucceeded += result.Successful
	file.Summary.TotalLibrariesFailed += result.Failed

	if len(file.Runs) > keepRuns {
		file.Runs = file.Runs[len(file.Runs)-keepRuns:]
	}
	file.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	return c.write(file)
}

func (c *Collector) load() *File {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return &File{Runs: []Run{}}
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		c.log.Warn("metrics file unreadable, starting fresh", "path", c.path, "error", err)
		return &File{Runs: []Run{}}
	}
	if f.Runs == nil {
		f.Runs = []Run{}
	}
	return &f
}

func (c *Collector) write(file *File) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating metrics directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func buildRun(result sweep.Result) Run {
	run := Run{
		StartTime:           result.Started.Format(time.RFC3339),
		EndTime:             result.Finished.Format(time.RFC3339),
		DurationSeconds:     round2(result.Duration().Seconds()),
		ExitCode:            result.ExitCode(),
		LibrariesTotal:      result.Total,
		LibrariesSuccessful: result.Successful,
		LibrariesFailed:     result.Failed,
		LibraryDetails:      make([]LibraryDetail, 0, len(result.Outcomes)),
	}
	for _, o := range result.Outcomes {
		detail := LibraryDetail{
			Name:                o.Name,
			Success:             o.Success,
			FileCount:           o.FileCount,
			MediaCount:          o.MediaCount,
			ThresholdPercentage: round2(o.Percentage),
		}
		if o.Err != "" {
			msg := o.Err
			detail.ErrorMessage = &msg
		}
		run.LibraryDetails = append(run.LibraryDetails, detail)
	}
	return run
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
