package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diffYAML = `
- file: service/src/main/java/com/example/Foo.java
  sections:
    - lines:
        - {number: 10, type: ADD}
        - {number: 11, type: ADD}
        - {number: 12, type: ADD}
        - {number: 13, type: CONTEXT}
- file: service/src/test/java/com/example/FooTest.java
  sections:
    - lines:
        - {number: 1, type: ADD}
`

const coverageJSON = `[
  {"file": "com/example/Foo.java", "type": "java", "lines": [
    {"number": 10, "status": "COVERED"},
    {"number": 11, "status": "UNCOVERED"},
    {"number": 12, "status": "NOTHING"}
  ]}
]`

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	diffPath := filepath.Join(dir, "diff.yaml")
	covPath := filepath.Join(dir, "coverage.json")
	require.NoError(t, os.WriteFile(diffPath, []byte(diffYAML), 0644))
	require.NoError(t, os.WriteFile(covPath, []byte(coverageJSON), 0644))
	return diffPath, covPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCovercheckCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_Markdown(t *testing.T) {
	diffPath, covPath := writeInputs(t)

	out, err := execute(t, "check", "--diff", diffPath, "--coverage", covPath,
		"--threshold", "50", "--base-url", "https://ci/jacoco/")
	require.NoError(t, err)

	assert.Contains(t, out, ":heart_eyes: **pass** : 1 / 2 (50.00%)")
	assert.Contains(t, out, "<summary>[Foo.java](https://ci/jacoco/com.example/Foo.java.html)</summary>")
	assert.Contains(t, out, ":green_heart:[Line 10](https://ci/jacoco/com.example/Foo.java.html#L10)")
	assert.Contains(t, out, ":heart:[Line 11](https://ci/jacoco/com.example/Foo.java.html#L11)")
}

func TestCheck_JSON(t *testing.T) {
	diffPath, covPath := writeInputs(t)

	out, err := execute(t, "check", "--diff", diffPath, "--coverage", covPath, "--format", "json", "--threshold", "80")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "failure", decoded["state"])
	assert.Equal(t, float64(2), decoded["total_added_lines"])
	assert.Equal(t, float64(1), decoded["total_covered_lines"])
}

func TestCheck_FailBelowThreshold(t *testing.T) {
	diffPath, covPath := writeInputs(t)

	_, err := execute(t, "check", "--diff", diffPath, "--coverage", covPath, "--threshold", "80", "--fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "new code coverage 50% is below threshold 80%")
}

func TestCheck_OutputFile(t *testing.T) {
	diffPath, covPath := writeInputs(t)
	outPath := filepath.Join(t.TempDir(), "report.txt")

	_, err := execute(t, "check", "--diff", diffPath, "--coverage", covPath, "--format", "text", "-o", outPath)
	require.NoError(t, err)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "com/example/Foo.java")
	assert.Contains(t, string(content), "uncovered: 11")
}

func TestCheck_LoadErrorRendersErrorReport(t *testing.T) {
	diffPath, _ := writeInputs(t)
	missing := filepath.Join(t.TempDir(), "missing.json")

	out, err := execute(t, "check", "--diff", diffPath, "--coverage", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load coverage")
	assert.Contains(t, out, "coverage check fail. please retry.")
}

func TestCheck_MissingInputs(t *testing.T) {
	_, err := execute(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both --diff and --coverage are required")
}

func TestCheck_ConfigFile(t *testing.T) {
	diffPath, covPath := writeInputs(t)
	cfgPath := filepath.Join(t.TempDir(), "covercheck.yaml")
	cfg := "threshold: 40\nformat: json\ndiff: " + diffPath + "\ncoverage: " + covPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	out, err := execute(t, "--config", cfgPath, "check")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "success", decoded["state"])
	assert.Equal(t, float64(40), decoded["threshold"])
}

const gcovrDiffYAML = `
- file: src/parser/lexer.c
  sections:
    - lines:
        - {number: 20, type: ADD}
        - {number: 21, type: ADD}
        - {number: 22, type: ADD}
`

const gcovrJSON = `{
  "gcovr/format_version": "0.6",
  "files": [
    {"file": "/build/proj/src/parser/lexer.c", "functions": [], "lines": [
      {"line_number": 20, "function_name": "next_token", "count": 5},
      {"line_number": 21, "function_name": "next_token", "count": 0},
      {"line_number": 22, "function_name": "next_token", "count": 0},
      {"line_number": 22, "function_name": "skip_space", "count": 1}
    ]},
    {"file": "/build/proj/src/parser/lexer.h", "functions": [], "lines": [
      {"line_number": 3, "function_name": "peek", "count": 0}
    ]}
  ]
}`

func TestCheck_GcovrReport(t *testing.T) {
	dir := t.TempDir()
	diffPath := filepath.Join(dir, "diff.yaml")
	covPath := filepath.Join(dir, "gcovr.json")
	require.NoError(t, os.WriteFile(diffPath, []byte(gcovrDiffYAML), 0644))
	require.NoError(t, os.WriteFile(covPath, []byte(gcovrJSON), 0644))

	out, err := execute(t, "check", "--diff", diffPath, "--coverage", covPath,
		"--coverage-format", "gcovr", "--source-root", "/build/proj", "--format", "json", "--threshold", "60")
	require.NoError(t, err)

	var decoded struct {
		State             string `json:"state"`
		TotalAddedLines   int    `json:"total_added_lines"`
		TotalCoveredLines int    `json:"total_covered_lines"`
		Files             []struct {
			Path string `json:"path"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "success", decoded.State)
	assert.Equal(t, 3, decoded.TotalAddedLines)
	assert.Equal(t, 2, decoded.TotalCoveredLines)
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "src/parser/lexer.c", decoded.Files[0].Path)
}

func TestCheck_UnknownCoverageFormat(t *testing.T) {
	diffPath, covPath := writeInputs(t)

	_, err := execute(t, "check", "--diff", diffPath, "--coverage", covPath, "--coverage-format", "lcov")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown coverage format "lcov"`)
}

func TestCheck_OutputFileInMissingDir(t *testing.T) {
	diffPath, covPath := writeInputs(t)
	outPath := filepath.Join(t.TempDir(), "missing", "report.md")

	_, err := execute(t, "check", "--diff", diffPath, "--coverage", covPath, "-o", outPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestCheck_OutputFileKeepsLoadError(t *testing.T) {
	diffPath, _ := writeInputs(t)
	outPath := filepath.Join(t.TempDir(), "report.md")

	_, err := execute(t, "check", "--diff", diffPath, "--coverage", filepath.Join(t.TempDir(), "missing.json"), "-o", outPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load coverage")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "coverage check fail. please retry.")
}
