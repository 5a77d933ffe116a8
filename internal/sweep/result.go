// internal/sweep/result.go
package sweep

import "time"

// LibraryOutcome is the per-library outcome of a run.
type LibraryOutcome struct {
	Name       string  `json:"name"`
	Success    bool    `json:"success"`
	FileCount  int     `json:"file_count"`
	MediaCount int     `json:"media_count"`
	Percentage float64 `json:"percentage"`
	Err        string  `json:"error,omitempty"` // failure reason, empty on success
}

// Result aggregates a completed run. Total is always the number of
// libraries swept; Successful and Failed partition it.
type Result struct {
	Started    time.Time        `json:"started"`
	Finished   time.Time        `json:"finished"`
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Outcomes   []LibraryOutcome `json:"libraries"`
}

// Duration returns the wall-clock length of the run.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// ExitCode maps the run outcome to a process exit code: 0 when every
// library passed (including a run over no libraries), 2 when every library
// failed and there was at least one, 1 for a mix.
func (r *Result) ExitCode() int {
	switch {
	case r.Failed == 0:
		return 0
	case r.Successful == 0:
		return 2
	default:
		return 1
	}
}
