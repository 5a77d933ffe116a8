// Package sweep orchestrates janitor runs: it fetches the server's section
// inventory, builds a record per configured library, validates each one and
// empties the trash of the libraries that pass.
package sweep

//go:generate mockgen -source=runner.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sweeparr/sweeparr/internal/fsys"
	"github.com/sweeparr/sweeparr/internal/library"
	"github.com/sweeparr/sweeparr/internal/plex"
)

// MediaServer is the remote side of a sweep. Sections maps section titles
// to section keys; SectionSize and EmptyTrash take a section key.
type MediaServer interface {
	Sections(ctx context.Context) (map[string]string, error)
	SectionSize(ctx context.Context, sectionKey string) (int, error)
	EmptyTrash(ctx context.Context, sectionKey string) (bool, error)
}

// Ensure the default implementations satisfy the runner's collaborators.
var (
	_ MediaServer     = (*plex.Client)(nil)
	_ library.Counter = (*fsys.Checker)(nil)
)

// MetricsSink records completed runs. Sinks are best effort: a sink error
// is logged and never fails the run.
type MetricsSink interface {
	Record(result Result) error
}

// Runner executes sweeps against a single media server.
type Runner struct {
	server  MediaServer
	counter library.Counter
	sink    MetricsSink
	log     *slog.Logger
}

// NewRunner returns a Runner. sink may be nil to disable metrics.
func NewRunner(server MediaServer, counter library.Counter, sink MetricsSink, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		server:  server,
		counter: counter,
		sink:    sink,
		log:     log.With("component", "sweep"),
	}
}

// Run sweeps the given libraries. A failure to read the server's inventory
// aborts the run with an error; per-library failures are recorded in the
// result and reflected in its exit code.
func (r *Runner) Run(ctx context.Context, defs []library.Definition) (*Result, error) {
	result := &Result{Started: time.Now().UTC()}

	sections, err := r.server.Sections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}

	// Sorted title order keeps logs deterministic across runs.
	titles := make([]string, 0, len(sections))
	for title := range sections {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	sizes := make(map[string]int, len(sections))
	for _, title := range titles {
		size, err := r.server.SectionSize(ctx, sections[title])
		if err != nil {
			return nil, fmt.Errorf("sizing section %q: %w", title, err)
		}
		r.log.Info("server section", "section", title, "size", size)
		sizes[title] = size
	}

	records := library.BuildRecords(defs, sections, sizes, r.counter, r.log)
	for _, rec := range records {
		outcome := r.sweep(ctx, rec)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Total++
		if outcome.Success {
			result.Successful++
			r.log.Info("library passed",
				"library", rec.Name, "files", rec.FileCount, "media", rec.MediaCount)
		} else {
			result.Failed++
			r.log.Error("library failed", "library", rec.Name, "error", outcome.Err)
		}
	}
	result.Finished = time.Now().UTC()

	r.log.Info("run finished",
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed,
		"exit_code", result.ExitCode())

	if r.sink != nil {
		if err := r.sink.Record(*result); err != nil {
			r.log.Warn("recording metrics failed", "error", err)
		}
	}

	return result, nil
}

// sweep validates one library and, when it passes, empties its trash.
func (r *Runner) sweep(ctx context.Context, rec library.Record) LibraryOutcome {
	outcome := LibraryOutcome{
		Name:       rec.Name,
		FileCount:  rec.FileCount,
		MediaCount: rec.MediaCount,
		Percentage: rec.Percentage(),
	}

	if err := library.Validate(rec, r.counter); err != nil {
		outcome.Err = err.Error()
		return outcome
	}

	if rec.SectionKey == "" {
		outcome.Err = fmt.Sprintf("no section named %q on server", rec.Name)
		return outcome
	}

	ok, err := r.server.EmptyTrash(ctx, rec.SectionKey)
	if err != nil {
		outcome.Err = fmt.Sprintf("emptying trash: %v", err)
		return outcome
	}
	if !ok {
		outcome.Err = "empty trash rejected by server"
		return outcome
	}

	outcome.Success = true
	return outcome
}
