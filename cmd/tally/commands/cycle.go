package commands

import (
	specs "github.com/chrisconley/tally/specs"

	"github.com/spf13/cobra"
)

func newCycleCmd(a *app) *cobra.Command {
	var (
		records   recordFlags
		statistic statisticFlags
		window    windowFlags
	)

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Aggregate one statistic per calendar bucket",
		Example: `  tally cycle --records students.json --unit month --begin 2024-01-01 --end 2024-02-29 \
    --time-field examAt --mode sum --value score --tag total`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def := specs.ReportSpec{
				Unit:       window.unit,
				Begin:      window.begin,
				End:        window.end,
				Last:       window.last,
				Truncate:   a.truncateFor(cmd, window.truncate),
				TimeFields: window.timeFields,
				Match:      window.match,
				Statistics: []specs.StatisticSpec{statistic.spec()},
			}
			return a.runReport(cmd, def, records)
		},
	}

	records.register(cmd)
	statistic.register(cmd)
	window.register(cmd)
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}
