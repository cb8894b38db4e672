package checker

// FileResult is the new-code coverage of one changed file.
type FileResult struct {
	// Path is the file path as reported by the coverage tool.
	Path string `json:"path"`

	// Name is the display name, the base name in brackets.
	Name string `json:"name"`

	// URL links to the file's page in the rendered coverage report.
	URL string `json:"url"`

	// Ranges lists the testable added lines in ascending order.
	Ranges []RangeStatus `json:"ranges"`

	AddedLineCount   int `json:"added_line_count"`
	CoveredLineCount int `json:"covered_line_count"`
}

// Percent returns the truncated coverage percentage of the file.
func (f FileResult) Percent() int {
	return floorPercent(f.CoveredLineCount, f.AddedLineCount)
}

// Report is the aggregate new-code coverage of a change.
type Report struct {
	TotalAddedLines   int          `json:"total_added_lines"`
	TotalCoveredLines int          `json:"total_covered_lines"`
	Files             []FileResult `json:"files"`

	// Threshold is the required overall coverage percentage.
	Threshold int `json:"threshold"`

	// FileThreshold is the required per-file coverage percentage.
	FileThreshold int `json:"file_threshold"`

	// Err carries an upstream failure, such as a coverage tool that could not
	// produce a report. It is never set by the checker itself.
	Err error `json:"-"`
}

// Percent returns the truncated overall coverage percentage. A change with no
// testable added lines is fully covered.
func (r *Report) Percent() int {
	if r.TotalAddedLines == 0 {
		return 100
	}
	return floorPercent(r.TotalCoveredLines, r.TotalAddedLines)
}

// floorPercent returns floor(100*covered/total), or 0 for an empty total.
func floorPercent(covered, total int) int {
	if total <= 0 {
		return 0
	}
	return 100 * covered / total
}
