package commands

import (
	"github.com/chrisconley/tally/internal/report"

	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var records recordFlags

	cmd := &cobra.Command{
		Use:   "report <definition>",
		Short: "Evaluate a JSON, YAML or TOML report definition",
		Long: `Evaluate every statistic of a report definition and print the merged result.
Reports with a unit produce calendar buckets; reports without one produce totals.`,
		Example: `  tally report monthly.yaml --records students.json
  tally report weekly.toml --sqlite exams.db --query "SELECT * FROM exams"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := report.LoadFile(args[0])
			if err != nil {
				return err
			}
			if !def.Truncate {
				def.Truncate = a.cfg.Truncate
			}
			return a.runReport(cmd, def, records)
		},
	}

	records.register(cmd)
	return cmd
}
