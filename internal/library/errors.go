package library

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDirectory indicates a library path failed directory validation.
	ErrInvalidDirectory = errors.New("invalid library directory")
)

// DirectoryInvalidError reports an unusable library directory.
type DirectoryInvalidError struct {
	Path   string
	Reason string
}

func (e *DirectoryInvalidError) Error() string {
	return fmt.Sprintf("directory invalid or inaccessible: %s", e.Reason)
}

// MinFilesError reports a file count below the configured minimum.
type MinFilesError struct {
	Actual   int
	Required int
}

func (e *MinFilesError) Error() string {
	return fmt.Sprintf("file count %d below minimum %d", e.Actual, e.Required)
}

// ThresholdError reports a file count below the required percentage of the
// server's media count.
type ThresholdError struct {
	Percentage float64
	Required   float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("threshold %.2f%% below minimum %.2f%%", e.Percentage, e.Required)
}
