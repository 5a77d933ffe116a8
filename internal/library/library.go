// Package library builds and validates media library records: the join of a
// configured library, the matching server section, and what is actually on
// disk.
package library

// Definition describes one library as configured, before any observation.
type Definition struct {
	Name         string
	Paths        []string
	MinFiles     int
	MinThreshold float64 // 0 disables the threshold check
}

// Record is a Definition joined with server and filesystem observations.
type Record struct {
	Definition

	SectionKey string // empty when the server reports no matching section
	MediaCount int    // item count reported by the server
	FileCount  int    // entries found across the library's directories
}

// Percentage returns the local file count as a percentage of the server's
// media count. A media count of zero yields exactly 0, even when local
// files exist.
func (r *Record) Percentage() float64 {
	if r.MediaCount == 0 {
		return 0
	}
	return float64(r.FileCount) / float64(r.MediaCount) * 100
}
