package commands

import (
	specs "github.com/chrisconley/tally/specs"

	"github.com/spf13/cobra"
)

func newTotalCmd(a *app) *cobra.Command {
	var (
		records   recordFlags
		statistic statisticFlags
	)

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Aggregate one statistic over all records",
		Example: `  tally total --records students.json --mode avg --value score --tag avgScore="Average score"
  tally total --records students.json --mode count --dimension class --tags A="Class A" --tags B`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def := specs.ReportSpec{
				Statistics: []specs.StatisticSpec{statistic.spec()},
			}
			return a.runReport(cmd, def, records)
		},
	}

	records.register(cmd)
	statistic.register(cmd)
	_ = cmd.MarkFlagRequired("mode")
	return cmd
}
