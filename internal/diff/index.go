package diff

import (
	"sort"
	"strings"

	"github.com/krysz/cover-checker/internal/logger"
)

// DefaultTestPrefix marks test sources, which never count toward new-code
// coverage.
const DefaultTestPrefix = "src/test"

// Index maps a changed file path to the line numbers added to it.
type Index map[string][]int

// BuildIndex keeps the added lines of every diff record.
//
// Nil records, records under testPrefix and records without sections are
// dropped. An empty testPrefix disables the test-source filter. When a path
// occurs in more than one record the added lines are concatenated.
func BuildIndex(diffs []*Diff, testPrefix string) Index {
	index := make(Index, len(diffs))
	for _, d := range diffs {
		if d == nil {
			continue
		}
		logger.Debug("diff file %s", d.File)

		if testPrefix != "" && strings.HasPrefix(d.File, testPrefix) {
			logger.Debug("skip test source %s", d.File)
			continue
		}
		if len(d.Sections) == 0 {
			logger.Debug("skip %s: no diff sections", d.File)
			continue
		}

		added := index[d.File]
		if added == nil {
			added = []int{}
		}
		for _, s := range d.Sections {
			for _, l := range s.Lines {
				if l.Type == Add {
					added = append(added, l.Number)
				}
			}
		}
		index[d.File] = added
	}
	return index
}

// Lookup finds the added lines for a path reported by the coverage tool.
//
// An exact key wins. Otherwise any key ending in "/"+file matches, which
// covers multi-module layouts where one tool reports module-relative paths
// and the other repository-relative ones. Among several candidates the
// shortest key wins, then the lexicographically smallest.
func (idx Index) Lookup(file string) (string, []int, bool) {
	if lines, ok := idx[file]; ok {
		return file, lines, true
	}

	suffix := "/" + strings.TrimPrefix(file, "/")
	var candidates []string
	for key := range idx {
		if strings.HasSuffix(key, suffix) {
			candidates = append(candidates, key)
		}
	}
	if len(candidates) == 0 {
		return "", nil, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) < len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0], idx[candidates[0]], true
}
