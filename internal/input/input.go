// Package input loads already-structured diff and coverage records from YAML
// or JSON files, and gcovr JSON reports. It does not parse raw unified diffs.
package input

import (
	"fmt"
	"os"

	"github.com/zjy-dev/gcovr-json-util/v2/pkg/gcovr"
	"gopkg.in/yaml.v3"

	"github.com/krysz/cover-checker/internal/coverage"
	"github.com/krysz/cover-checker/internal/diff"
)

// DiffRecord is the on-disk form of a diff.Diff.
type DiffRecord struct {
	File     string          `yaml:"file"`
	Sections []SectionRecord `yaml:"sections"`
}

// SectionRecord is the on-disk form of a diff.Section.
type SectionRecord struct {
	Lines []DiffLineRecord `yaml:"lines"`
}

// DiffLineRecord is the on-disk form of a diff.Line.
type DiffLineRecord struct {
	Number int    `yaml:"number"`
	Type   string `yaml:"type"`
}

// CoverageRecord is the on-disk form of a coverage.FileCoverage.
type CoverageRecord struct {
	File  string               `yaml:"file"`
	Type  string               `yaml:"type"`
	Lines []CoverageLineRecord `yaml:"lines"`
}

// CoverageLineRecord is the on-disk form of a coverage.LineCoverage.
type CoverageLineRecord struct {
	Number int    `yaml:"number"`
	Status string `yaml:"status"`
}

// LoadDiffs reads diff records from path.
func LoadDiffs(path string) ([]*diff.Diff, error) {
	var records []*DiffRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, err
	}
	return ToDiffs(records)
}

// ToDiffs converts decoded records. Nil records stay nil; the index builder
// drops them.
func ToDiffs(records []*DiffRecord) ([]*diff.Diff, error) {
	diffs := make([]*diff.Diff, 0, len(records))
	for _, r := range records {
		if r == nil {
			diffs = append(diffs, nil)
			continue
		}
		d := &diff.Diff{File: r.File}
		for _, s := range r.Sections {
			section := diff.Section{Lines: make([]diff.Line, 0, len(s.Lines))}
			for _, l := range s.Lines {
				t, err := diff.ParseModifyType(l.Type)
				if err != nil {
					return nil, fmt.Errorf("%s line %d: %w", r.File, l.Number, err)
				}
				section.Lines = append(section.Lines, diff.Line{Number: l.Number, Type: t})
			}
			d.Sections = append(d.Sections, section)
		}
		diffs = append(diffs, d)
	}
	return diffs, nil
}

// LoadCoverage reads coverage records from path.
func LoadCoverage(path string) ([]coverage.FileCoverage, error) {
	var records []CoverageRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, err
	}
	return ToCoverage(records)
}

// LoadGcovr reads a gcovr JSON report (gcovr --json) from path and converts
// it to coverage records relative to sourceRoot.
func LoadGcovr(path, sourceRoot string) ([]coverage.FileCoverage, error) {
	report, err := gcovr.ParseReport(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load gcovr report: %w", err)
	}
	return coverage.FromGcovr(report, sourceRoot), nil
}

// ToCoverage converts decoded records.
func ToCoverage(records []CoverageRecord) ([]coverage.FileCoverage, error) {
	files := make([]coverage.FileCoverage, 0, len(records))
	for _, r := range records {
		fc := coverage.FileCoverage{
			File:  r.File,
			Type:  r.Type,
			Lines: make([]coverage.LineCoverage, 0, len(r.Lines)),
		}
		for _, l := range r.Lines {
			s, err := coverage.ParseStatus(l.Status)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", r.File, l.Number, err)
			}
			fc.Lines = append(fc.Lines, coverage.LineCoverage{Line: l.Number, Status: s})
		}
		files = append(files, fc)
	}
	return files, nil
}

// decodeFile unmarshals a YAML or JSON document. JSON is valid YAML.
func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
