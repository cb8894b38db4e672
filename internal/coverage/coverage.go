package coverage

import "github.com/krysz/cover-checker/internal/logger"

// LineCoverage is one instrumentation record for a source line.
type LineCoverage struct {
	Line   int
	Status Status
}

// FileCoverage holds the line records a coverage tool reported for one file.
type FileCoverage struct {
	// File is the path as reported by the coverage tool, '/'-separated.
	File string

	// Type is the source language or report flavour (e.g. "java", "kt").
	// Informational only.
	Type string

	Lines []LineCoverage
}

// MergeFiles groups file reports by path. Reports for the same path, which
// happens when a file is instrumented by more than one module, have their
// line records concatenated in input order.
func MergeFiles(files []FileCoverage) map[string][]LineCoverage {
	merged := make(map[string][]LineCoverage, len(files))
	for _, f := range files {
		logger.Debug("file coverage %s", f.File)
		merged[f.File] = append(merged[f.File], f.Lines...)
	}
	return merged
}

// ResolveStatuses builds a per-line status map. When a line occurs more than
// once the higher-ranked status is kept.
func ResolveStatuses(lines []LineCoverage) map[int]Status {
	statuses := make(map[int]Status, len(lines))
	for _, l := range lines {
		if prev, ok := statuses[l.Line]; ok {
			statuses[l.Line] = Max(prev, l.Status)
			continue
		}
		statuses[l.Line] = l.Status
	}
	return statuses
}
