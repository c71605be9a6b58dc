package commands

import (
	"github.com/chrisconley/tally/internal"
	"github.com/chrisconley/tally/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSegmentCmd(a *app) *cobra.Command {
	var w windowFlags

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Split a time range into calendar buckets",
		Example: `  tally segment --unit month --begin 2024-01-15 --end "2024-03-10 12:00:00"
  tally segment --unit weekOfMonth --last -1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			truncate := a.truncateFor(cmd, w.truncate)
			window, err := report.ResolveWindow(w.unit, w.begin, w.end, w.last, nil, "", truncate, report.WallClock(a.now()))
			if err != nil {
				return err
			}

			intervals, err := internal.SegmentIntervals(window.Begin, window.End, w.unit, truncate)
			if err != nil {
				return err
			}
			log.Debug().
				Str("unit", window.Unit.String()).
				Time("begin", window.Begin).
				Time("end", window.End).
				Int("buckets", len(intervals)).
				Msg("Segmented range")
			return a.writeJSON(cmd, intervals)
		},
	}

	w.register(cmd)
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}
