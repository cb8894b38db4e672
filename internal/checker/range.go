package checker

import (
	"fmt"

	"github.com/krysz/cover-checker/internal/coverage"
)

// Range is an inclusive span of line numbers.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String formats the range as "12" or "12-15".
func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// RangeStatus pairs a range of added lines with their shared status.
type RangeStatus struct {
	Range
	Status coverage.Status `json:"status"`
}

// LineStatus is the resolved status of one testable added line.
type LineStatus struct {
	Line   int
	Status coverage.Status
}

// Compress folds lines, sorted ascending, into status-homogeneous ranges.
//
// A range is extended whenever the next line has the same status, even if
// line numbers in between are missing: those lines were dropped as not
// testable and do not break a run.
func Compress(lines []LineStatus) []RangeStatus {
	ranges := make([]RangeStatus, 0, len(lines))

	var cur *RangeStatus
	for _, l := range lines {
		if cur != nil && cur.Status == l.Status {
			cur.End = l.Line
			continue
		}
		if cur != nil {
			ranges = append(ranges, *cur)
		}
		cur = &RangeStatus{Range: Range{Start: l.Line, End: l.Line}, Status: l.Status}
	}
	if cur != nil {
		ranges = append(ranges, *cur)
	}

	return ranges
}
