// internal/library/testutil_test.go
package library

import "errors"

// fakeCounter serves canned per-path results and records the order of
// Check and Count calls.
type fakeCounter struct {
	invalid   map[string]string // path -> reason
	counts    map[string]int    // path -> entry count
	countErrs map[string]string // path -> count failure

	checked []string
	counted []string
}

func (f *fakeCounter) Check(path string) error {
	f.checked = append(f.checked, path)
	if reason, ok := f.invalid[path]; ok {
		return errors.New(reason)
	}
	return nil
}

func (f *fakeCounter) Count(path string) (int, error) {
	f.counted = append(f.counted, path)
	if msg, ok := f.countErrs[path]; ok {
		return 0, errors.New(msg)
	}
	return f.counts[path], nil
}
