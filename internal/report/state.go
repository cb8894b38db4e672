// Package report turns a new-code coverage result into what a reviewer sees:
// a commit status, a pull request comment, or a terminal summary.
package report

import (
	"fmt"

	"github.com/krysz/cover-checker/internal/checker"
)

// State is the outcome of a coverage check as a commit status.
type State string

const (
	Success State = "success"
	Pending State = "pending"
	Failure State = "failure"
	Error   State = "error"
)

// StatusContext names the commit status this tool owns.
const StatusContext = "coverchecker"

// Verdict returns the short word shown next to the numbers.
func (s State) Verdict() string {
	switch s {
	case Success:
		return "pass"
	case Pending:
		return "check"
	case Failure:
		return "fail"
	default:
		return "error"
	}
}

// Evaluate decides the state of a report. The overall threshold fails the
// check outright; a file under the per-file threshold only asks for a look.
func Evaluate(r *checker.Report) State {
	switch {
	case r.Err != nil:
		return Error
	case r.Percent() < r.Threshold:
		return Failure
	}
	for _, f := range r.Files {
		if f.Percent() < r.FileThreshold {
			return Pending
		}
	}
	return Success
}

// CommitStatus is the payload for a hosting platform's commit status API.
type CommitStatus struct {
	State       State  `json:"state"`
	Description string `json:"description"`
	Context     string `json:"context"`
}

// Status builds the commit status for a report.
func Status(r *checker.Report) CommitStatus {
	state := Evaluate(r)
	if state == Error {
		return CommitStatus{
			State:       Error,
			Description: fmt.Sprintf("error - %v", r.Err),
			Context:     StatusContext,
		}
	}
	return CommitStatus{
		State: state,
		Description: fmt.Sprintf("%d / %d (%d%%) - %s",
			r.TotalCoveredLines, r.TotalAddedLines, r.Percent(), state.Verdict()),
		Context: StatusContext,
	}
}

// ratio formats covered/total as a percentage with two decimals.
func ratio(covered, total int) string {
	if total == 0 {
		return "100.00%"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(covered)/float64(total))
}
