package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/krysz/cover-checker/internal/checker"
	"github.com/krysz/cover-checker/internal/config"
	"github.com/krysz/cover-checker/internal/coverage"
	"github.com/krysz/cover-checker/internal/input"
	"github.com/krysz/cover-checker/internal/logger"
	"github.com/krysz/cover-checker/internal/report"
)

type checkOptions struct {
	diffPath      string
	coveragePath  string
	coverageFmt   string
	sourceRoot    string
	threshold     int
	fileThreshold int
	baseURL       string
	testPrefix    string
	format        string
	output        string
	failOnLow     bool
	noColor       bool
}

// NewCheckCommand creates the "check" subcommand.
func NewCheckCommand() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check coverage of the lines added by a change.",
		Long: `Check coverage of the lines added by a change.

This command:
  1. Loads structured diff records and keeps the added lines of non-test files
  2. Loads structured line coverage records and merges them per file
  3. Matches each covered file to its diff (exact path, else path suffix)
  4. Counts executable added lines and covered ones, per file and in total
  5. Renders the result as markdown, text or JSON

Input files are YAML or JSON lists of records:
  diff:     [{file, sections: [{lines: [{number, type: ADD|DELETE|CONTEXT}]}]}]
  coverage: [{file, type, lines: [{number, status: NOTHING|UNCOVERED|CONDITION|COVERED}]}]
With --coverage-format gcovr the coverage file is a gcovr --json report instead.

Configuration:
  Defaults are loaded from covercheck.yaml and COVERCHECK_* environment variables.
  Command line flags override the config file values.

Examples:
  # Print a pull request comment
  covercheck check --diff diff.yaml --coverage coverage.json

  # Fail the build below 70% new-code coverage
  covercheck check --diff diff.yaml --coverage coverage.json --threshold 70 --fail

  # Use a gcovr report from a build tree
  covercheck check --diff diff.yaml --coverage gcovr.json --coverage-format gcovr --source-root /build/proj`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			applyConfig(cmd, &opts, cfg)

			logger.SetLevel(cfg.LogLevel)

			if opts.output == "" {
				return runCheck(cmd.OutOrStdout(), opts)
			}

			f, err := os.Create(opts.output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			opts.noColor = true
			runErr := runCheck(f, opts)
			if err := f.Close(); err != nil && runErr == nil {
				return fmt.Errorf("failed to close output file: %w", err)
			}
			return runErr
		},
	}

	// Flags (these are placeholder defaults, actual defaults come from config)
	cmd.Flags().StringVar(&opts.diffPath, "diff", "", "Path to the structured diff records")
	cmd.Flags().StringVar(&opts.coveragePath, "coverage", "", "Path to the structured coverage records")
	cmd.Flags().StringVar(&opts.coverageFmt, "coverage-format", "records", "Coverage input format: records or gcovr (gcovr --json report)")
	cmd.Flags().StringVar(&opts.sourceRoot, "source-root", "", "Directory prefix stripped from gcovr file paths")
	cmd.Flags().IntVar(&opts.threshold, "threshold", 80, "Required overall coverage of added lines, in percent")
	cmd.Flags().IntVar(&opts.fileThreshold, "file-threshold", 0, "Per-file coverage under which a file is flagged, in percent")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Base URL of the HTML coverage report")
	cmd.Flags().StringVar(&opts.testPrefix, "test-prefix", "src/test", "Path prefix of test sources excluded from the check")
	cmd.Flags().StringVar(&opts.format, "format", "markdown", "Output format: markdown, text or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.failOnLow, "fail", false, "Exit with an error when coverage is below the threshold")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored text output")

	return cmd
}

// applyConfig uses config values for every flag the user did not set.
func applyConfig(cmd *cobra.Command, opts *checkOptions, cfg *config.Config) {
	if !cmd.Flags().Changed("diff") {
		opts.diffPath = cfg.Diff
	}
	if !cmd.Flags().Changed("coverage") {
		opts.coveragePath = cfg.Coverage
	}
	if !cmd.Flags().Changed("coverage-format") {
		opts.coverageFmt = cfg.CoverageFormat
	}
	if !cmd.Flags().Changed("source-root") {
		opts.sourceRoot = cfg.SourceRoot
	}
	if !cmd.Flags().Changed("threshold") {
		opts.threshold = cfg.Threshold
	}
	if !cmd.Flags().Changed("file-threshold") {
		opts.fileThreshold = cfg.FileThreshold
	}
	if !cmd.Flags().Changed("base-url") {
		opts.baseURL = cfg.BaseURL
	}
	if !cmd.Flags().Changed("test-prefix") {
		opts.testPrefix = cfg.TestPrefix
	}
	if !cmd.Flags().Changed("format") {
		opts.format = cfg.Format
	}
}

func runCheck(out io.Writer, opts checkOptions) error {
	if opts.diffPath == "" || opts.coveragePath == "" {
		return fmt.Errorf("both --diff and --coverage are required")
	}

	result, loadErr := check(opts)
	if loadErr != nil {
		logger.Error("coverage check failed: %v", loadErr)
		result = &checker.Report{
			Threshold:     opts.threshold,
			FileThreshold: opts.fileThreshold,
			Err:           loadErr,
		}
	}

	rendered, err := render(result, opts.format, !opts.noColor)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, rendered); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if loadErr != nil {
		return loadErr
	}

	state := report.Evaluate(result)
	logger.Info("new code coverage %d/%d (%d%%): %s",
		result.TotalCoveredLines, result.TotalAddedLines, result.Percent(), state.Verdict())
	if opts.failOnLow && state == report.Failure {
		return fmt.Errorf("new code coverage %d%% is below threshold %d%%", result.Percent(), result.Threshold)
	}
	return nil
}

func check(opts checkOptions) (*checker.Report, error) {
	diffs, err := input.LoadDiffs(opts.diffPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load diff: %w", err)
	}
	files, err := loadCoverage(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load coverage: %w", err)
	}

	c := checker.New(opts.baseURL)
	c.TestPrefix = opts.testPrefix
	return c.Check(files, diffs, opts.threshold, opts.fileThreshold), nil
}

func loadCoverage(opts checkOptions) ([]coverage.FileCoverage, error) {
	switch opts.coverageFmt {
	case "records":
		return input.LoadCoverage(opts.coveragePath)
	case "gcovr":
		return input.LoadGcovr(opts.coveragePath, opts.sourceRoot)
	default:
		return nil, fmt.Errorf("unknown coverage format %q", opts.coverageFmt)
	}
}

func render(r *checker.Report, format string, color bool) (string, error) {
	switch format {
	case "markdown":
		return report.Markdown(r), nil
	case "text":
		return report.Text(r, color), nil
	case "json":
		data, err := report.JSON(r)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
