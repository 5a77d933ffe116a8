// internal/library/validate.go
package library

// Validate runs the ordered checks for one record and returns the first
// failure:
//
//  1. every configured path is a usable directory (first invalid path wins)
//  2. the file count meets min_files
//  3. the file count reaches min_threshold percent of the server's media
//     count (skipped when the threshold is 0)
//
// A record whose server media count is 0 has a percentage of exactly 0, so
// any positive threshold fails it regardless of what is on disk.
func Validate(rec Record, counter Counter) error {
	for _, p := range rec.Paths {
		if err := counter.Check(p); err != nil {
			return &DirectoryInvalidError{Path: p, Reason: err.Error()}
		}
	}

	if rec.FileCount < rec.MinFiles {
		return &MinFilesError{Actual: rec.FileCount, Required: rec.MinFiles}
	}

	if rec.MinThreshold > 0 {
		if pct := rec.Percentage(); pct < rec.MinThreshold {
			return &ThresholdError{Percentage: pct, Required: rec.MinThreshold}
		}
	}

	return nil
}
