// Package checker measures test coverage of newly added lines by correlating
// a diff index with per-line coverage records.
package checker

import (
	"sort"
	"strings"

	"github.com/krysz/cover-checker/internal/coverage"
	"github.com/krysz/cover-checker/internal/diff"
	"github.com/krysz/cover-checker/internal/logger"
)

// Checker correlates coverage records with diffs. The zero value is usable:
// it links files relative to an empty base URL and ignores no test sources.
type Checker struct {
	// BaseURL prefixes every per-file report link.
	BaseURL string

	// TestPrefix marks diff paths of test sources. See diff.DefaultTestPrefix.
	TestPrefix string
}

// New creates a Checker with the default test-source prefix.
func New(baseURL string) *Checker {
	return &Checker{
		BaseURL:    baseURL,
		TestPrefix: diff.DefaultTestPrefix,
	}
}

// Check merges coverage records by file, indexes the diffs and correlates
// the two.
func (c *Checker) Check(files []coverage.FileCoverage, diffs []*diff.Diff, threshold, fileThreshold int) *Report {
	index := diff.BuildIndex(diffs, c.TestPrefix)
	report := c.Correlate(coverage.MergeFiles(files), index, threshold, fileThreshold)
	logger.Debug("coverage %d/%d threshold %d", report.TotalCoveredLines, report.TotalAddedLines, threshold)
	return report
}

// Correlate computes new-code coverage for every file in cov that has a
// matching entry in index.
//
// Files without a diff entry are unchanged and skipped. Files whose added
// lines are all non-executable are skipped too. Results are ordered by
// ascending coverage percentage, ties by path.
func (c *Checker) Correlate(cov map[string][]coverage.LineCoverage, index diff.Index, threshold, fileThreshold int) *Report {
	paths := make([]string, 0, len(cov))
	for p := range cov {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	report := &Report{
		Files:         []FileResult{},
		Threshold:     threshold,
		FileThreshold: fileThreshold,
	}
	for _, p := range paths {
		result, ok := c.checkFile(p, cov[p], index)
		if !ok {
			continue
		}
		report.Files = append(report.Files, result)
		report.TotalAddedLines += result.AddedLineCount
		report.TotalCoveredLines += result.CoveredLineCount
	}

	// paths was sorted, so a stable sort keeps the path tie-break.
	sort.SliceStable(report.Files, func(i, j int) bool {
		return report.Files[i].Percent() < report.Files[j].Percent()
	})

	logger.Debug("result total add line %d, covered line %d", report.TotalAddedLines, report.TotalCoveredLines)
	return report
}

func (c *Checker) checkFile(file string, lines []coverage.LineCoverage, index diff.Index) (FileResult, bool) {
	key, added, ok := index.Lookup(file)
	if !ok || len(added) == 0 {
		logger.Debug("file(%s) is not changed", file)
		return FileResult{}, false
	}
	logger.Debug("check file %s against diff %s", file, key)

	statuses := coverage.ResolveStatuses(lines)

	seen := make(map[int]bool, len(added))
	testable := make([]LineStatus, 0, len(added))
	covered := 0
	for _, n := range added {
		if seen[n] {
			continue
		}
		seen[n] = true

		s, ok := statuses[n]
		if !ok || !s.IsTestable() {
			logger.Debug("%s:%d is not testable", file, n)
			continue
		}
		if s.IsCovered() {
			covered++
		}
		testable = append(testable, LineStatus{Line: n, Status: s})
	}

	if len(testable) == 0 {
		return FileResult{}, false
	}

	sort.Slice(testable, func(i, j int) bool {
		return testable[i].Line < testable[j].Line
	})

	return FileResult{
		Path:             file,
		Name:             DisplayName(file),
		URL:              ReportURL(c.BaseURL, file),
		Ranges:           Compress(testable),
		AddedLineCount:   len(testable),
		CoveredLineCount: covered,
	}, true
}

// DisplayName returns the base name of file wrapped in brackets.
func DisplayName(file string) string {
	return "[" + file[strings.LastIndex(file, "/")+1:] + "]"
}

// ReportURL builds the per-file page of an HTML coverage report: the
// directory part becomes a dotted package name, the last separator is kept,
// and ".html" is appended. "com/x/Foo.java" becomes base+"com.x/Foo.java.html".
func ReportURL(base, file string) string {
	dir, name := "", file
	if i := strings.LastIndex(file, "/"); i >= 0 {
		dir, name = strings.ReplaceAll(file[:i], "/", ".")+"/", file[i+1:]
	}
	return base + dir + name + ".html"
}
