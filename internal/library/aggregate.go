// internal/library/aggregate.go
package library

import (
	"fmt"
	"log/slog"
)

// Counter inspects library directories on the local filesystem.
type Counter interface {
	Check(path string) error
	Count(path string) (int, error)
}

// CountFiles validates every path and then sums the entries directly inside
// each. Validation is fail-fast: nothing is counted until all paths pass.
func CountFiles(counter Counter, paths []string) (int, error) {
	for _, p := range paths {
		if err := counter.Check(p); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
		}
	}

	total := 0
	for _, p := range paths {
		n, err := counter.Count(p)
		if err != nil {
			return 0, fmt.Errorf("counting %s: %w", p, err)
		}
		total += n
	}

	return total, nil
}

// BuildRecords joins library definitions with the server's section map,
// per-section media counts (keyed by section title), and local file counts.
// One record per definition, in input order; the input is never modified.
//
// A definition naming no known section gets an empty SectionKey and
// MediaCount 0; a failed local count leaves FileCount 0. Both outcomes are
// logged here and surface as failures during validation.
func BuildRecords(defs []Definition, sections map[string]string, sizes map[string]int, counter Counter, log *slog.Logger) []Record {
	if log == nil {
		log = slog.Default()
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}

	records := make([]Record, 0, len(defs))
	for _, def := range defs {
		rec := Record{Definition: def}
		rec.Paths = make([]string, len(def.Paths))
		copy(rec.Paths, def.Paths)

		if key, ok := sections[def.Name]; ok {
			rec.SectionKey = key
			rec.MediaCount = sizes[def.Name]
		} else if suggestion, ok := ClosestName(def.Name, names); ok {
			log.Warn("library has no matching section on server",
				"library", def.Name, "closest_section", suggestion)
		} else {
			log.Warn("library has no matching section on server", "library", def.Name)
		}

		count, err := CountFiles(counter, rec.Paths)
		if err != nil {
			log.Warn("file count failed", "library", def.Name, "error", err)
		} else {
			rec.FileCount = count
		}

		records = append(records, rec)
	}

	return records
}
