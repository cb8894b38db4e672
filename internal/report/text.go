package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/krysz/cover-checker/internal/checker"
	"github.com/krysz/cover-checker/internal/coverage"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func stateStyle(s State) lipgloss.Style {
	switch s {
	case Success:
		return successStyle
	case Pending:
		return warningStyle
	default:
		return errorStyle
	}
}

// Text renders a terminal summary. With color off the output is plain text.
func Text(r *checker.Report, color bool) string {
	paint := func(st lipgloss.Style, s string) string {
		if !color {
			return s
		}
		return st.Render(s)
	}

	var b strings.Builder
	state := Evaluate(r)
	if state == Error {
		fmt.Fprintf(&b, "%s %v\n", paint(errorStyle, "ERROR"), r.Err)
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s %d/%d (%s), threshold %d%%\n",
		paint(headerStyle, "new code coverage:"),
		paint(stateStyle(state), strings.ToUpper(state.Verdict())),
		r.TotalCoveredLines, r.TotalAddedLines,
		ratio(r.TotalCoveredLines, r.TotalAddedLines), r.Threshold)

	for _, f := range r.Files {
		mark := paint(successStyle, "ok  ")
		if f.Percent() < r.FileThreshold {
			mark = paint(errorStyle, "low ")
		}
		fmt.Fprintf(&b, "  %s %-40s %4d/%-4d %8s\n", mark, f.Path,
			f.CoveredLineCount, f.AddedLineCount, ratio(f.CoveredLineCount, f.AddedLineCount))

		if missed := uncoveredRanges(f); missed != "" {
			fmt.Fprintf(&b, "       %s\n", paint(mutedStyle, "uncovered: "+missed))
		}
	}

	return b.String()
}

func uncoveredRanges(f checker.FileResult) string {
	var parts []string
	for _, r := range f.Ranges {
		if r.Status == coverage.Uncovered {
			parts = append(parts, r.Range.String())
		}
	}
	return strings.Join(parts, ", ")
}

type jsonReport struct {
	*checker.Report
	State   State  `json:"state"`
	Percent int    `json:"percent"`
	Error   string `json:"error,omitempty"`
}

// JSON encodes a report together with its evaluated state.
func JSON(r *checker.Report) ([]byte, error) {
	out := jsonReport{Report: r, State: Evaluate(r), Percent: r.Percent()}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}
