package report

import (
	"fmt"
	"strings"

	"github.com/krysz/cover-checker/internal/checker"
	"github.com/krysz/cover-checker/internal/coverage"
)

const commentTitle = "#### [PR Coverage check]"

var stateIcons = map[State]string{
	Success: ":heart_eyes:",
	Pending: ":confused:",
	Failure: ":sob:",
}

var statusIcons = map[coverage.Status]string{
	coverage.Covered:   ":green_heart:",
	coverage.Condition: ":yellow_heart:",
	coverage.Uncovered: ":heart:",
}

const (
	errorMessage = "coverage check fail. please retry. :fearful:\n\n" +
		"[Please let me know](https://github.com/naver/cover-checker/issues/new) when error again.\n\n"
	detailHeader = "#### file detail\n\n" +
		"|   |path|covered line|new line|coverage|\n" +
		"|----|----|----|----|----|\n"
)

// Markdown renders a report as a pull request comment. Blank lines are part
// of the comment format and must stay as they are.
func Markdown(r *checker.Report) string {
	var b strings.Builder
	b.WriteString(commentTitle + "\n\n")

	state := Evaluate(r)
	if state == Error {
		b.WriteString(errorMessage)
		fmt.Fprintf(&b, "%v", r.Err)
		return b.String()
	}

	headline := fmt.Sprintf("%s **%s** : %d / %d (%s)",
		stateIcons[state], state.Verdict(), r.TotalCoveredLines, r.TotalAddedLines,
		commentRatio(r.TotalCoveredLines, r.TotalAddedLines))

	if len(r.Files) == 0 {
		b.WriteString("\n" + headline + "\n\n\n")
		return b.String()
	}

	b.WriteString(headline + "\n\n\n\n\n")
	b.WriteString(detailHeader)
	for _, f := range r.Files {
		icon := ":large_blue_circle:"
		if f.Percent() < r.FileThreshold {
			icon = ":red_circle:"
		}
		fmt.Fprintf(&b, "|%s|%s|%d|%d|%s|\n",
			icon, fileDetail(f), f.CoveredLineCount, f.AddedLineCount,
			commentRatio(f.CoveredLineCount, f.AddedLineCount))
	}
	b.WriteString("\n\n")

	return b.String()
}

// commentRatio is ratio, except that an empty change reads "0%".
func commentRatio(covered, total int) string {
	if total == 0 {
		return "0%"
	}
	return ratio(covered, total)
}

// fileDetail renders a collapsible list of the file's line ranges. Name is
// already bracketed, so "name(url)" forms a markdown link.
func fileDetail(f checker.FileResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<details close><summary>%s(%s)</summary><ul>", f.Name, f.URL)
	for _, r := range f.Ranges {
		fmt.Fprintf(&b, "<li>%s[Line %s](%s#L%d)</li>", statusIcons[r.Status], r.Range, f.URL, r.Start)
	}
	b.WriteString("</ul></details>")
	return b.String()
}
