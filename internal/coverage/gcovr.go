package coverage

import (
	"path"
	"strings"

	"github.com/zjy-dev/gcovr-json-util/v2/pkg/gcovr"
)

// FromGcovr converts a gcovr JSON report into file coverage records.
//
// Every line gcovr lists is executable: a positive count is Covered, zero is
// Uncovered. Lines shared by several functions appear once per function and
// are resolved later by ResolveStatuses. sourceRoot, if set, is stripped from
// the front of each file path so the result lines up with repository-relative
// diff paths.
func FromGcovr(report *gcovr.GcovrReport, sourceRoot string) []FileCoverage {
	if report == nil {
		return []FileCoverage{}
	}

	files := make([]FileCoverage, 0, len(report.Files))
	for _, gf := range report.Files {
		file := TrimRoot(gf.FilePath, sourceRoot)

		fc := FileCoverage{
			File:  file,
			Type:  strings.TrimPrefix(path.Ext(file), "."),
			Lines: make([]LineCoverage, 0, len(gf.Lines)),
		}
		for _, l := range gf.Lines {
			status := Uncovered
			if l.Count > 0 {
				status = Covered
			}
			fc.Lines = append(fc.Lines, LineCoverage{Line: l.LineNumber, Status: status})
		}
		files = append(files, fc)
	}

	return files
}

// TrimRoot makes file relative to root. The root is only removed when it is
// a whole leading path component, so "/src/app" does not trim "/src/apps/x".
func TrimRoot(file, root string) string {
	file = path.Clean(file)
	if root == "" {
		return file
	}
	root = strings.TrimSuffix(path.Clean(root), "/")

	switch {
	case file == root:
		return ""
	case root == "" && strings.HasPrefix(file, "/"):
		// root was "/"
		return strings.TrimPrefix(file, "/")
	case strings.HasPrefix(file, root+"/"):
		return file[len(root)+1:]
	default:
		return file
	}
}
