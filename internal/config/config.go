package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings of a coverage check.
type Config struct {
	// Threshold is the required overall new-code coverage, in percent.
	Threshold int `mapstructure:"threshold"`

	// FileThreshold is the per-file coverage under which a file is flagged.
	FileThreshold int `mapstructure:"file_threshold"`

	// BaseURL prefixes per-file links into the HTML coverage report.
	BaseURL string `mapstructure:"base_url"`

	// TestPrefix marks test sources in the diff. Empty disables the filter.
	TestPrefix string `mapstructure:"test_prefix"`

	// Diff and Coverage are paths to the structured record files.
	Diff     string `mapstructure:"diff"`
	Coverage string `mapstructure:"coverage"`

	// CoverageFormat is "records" for structured records or "gcovr" for a
	// gcovr JSON report.
	CoverageFormat string `mapstructure:"coverage_format"`

	// SourceRoot is stripped from gcovr file paths.
	SourceRoot string `mapstructure:"source_root"`

	// Format is one of "markdown", "text", "json".
	Format string `mapstructure:"format"`

	LogLevel string `mapstructure:"log_level"`
}

// EnvPrefix is prepended to environment overrides, e.g. COVERCHECK_THRESHOLD.
const EnvPrefix = "COVERCHECK"

// DefaultConfigName is the base name of the config file searched for when no
// explicit path is given.
const DefaultConfigName = "covercheck"

func setDefaults(v *viper.Viper) {
	v.SetDefault("threshold", 80)
	v.SetDefault("file_threshold", 0)
	v.SetDefault("base_url", "")
	v.SetDefault("test_prefix", "src/test")
	v.SetDefault("diff", "")
	v.SetDefault("coverage", "")
	v.SetDefault("coverage_format", "records")
	v.SetDefault("source_root", "")
	v.SetDefault("format", "markdown")
	v.SetDefault("log_level", "info")
}

// Load reads the configuration.
//
// With an explicit path the file must exist. Otherwise covercheck.yaml is
// looked up in the working directory and in configs/, and a missing file just
// leaves the defaults. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold must be within 0-100, got %d", c.Threshold)
	}
	if c.FileThreshold < 0 || c.FileThreshold > 100 {
		return fmt.Errorf("file_threshold must be within 0-100, got %d", c.FileThreshold)
	}
	switch c.Format {
	case "markdown", "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	switch c.CoverageFormat {
	case "records", "gcovr":
	default:
		return fmt.Errorf("unknown coverage format %q", c.CoverageFormat)
	}
	return nil
}
