package app

import (
	"github.com/spf13/cobra"
)

// NewCovercheckCommand creates the root command for the covercheck tool.
func NewCovercheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covercheck",
		Short: "Measure test coverage of newly added lines.",
		Long: `covercheck correlates a change's diff with a line coverage report and
reports how many of the added, executable lines are covered by tests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to a config file (default: covercheck.yaml in . or configs/)")
	cmd.AddCommand(NewCheckCommand())

	return cmd
}
