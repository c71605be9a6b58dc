package commands

import (
	"github.com/chrisconley/tally/internal/infra"
	"github.com/chrisconley/tally/internal/report"
	specs "github.com/chrisconley/tally/specs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// runReport loads records, evaluates def and prints the merged result.
func (a *app) runReport(cmd *cobra.Command, def specs.ReportSpec, records recordFlags) error {
	ctx := cmd.Context()
	loaded, err := records.load(ctx)
	if err != nil {
		return err
	}

	bus := infra.NewBus()
	bus.Subscribe(infra.StatisticComputed, func(e infra.Event) {
		evt := e.(report.StatisticComputedEvent)
		log.Debug().
			Str("run", evt.RunID).
			Int("index", evt.Index).
			Str("statistic", evt.Statistic.Describe()).
			Dur("duration", evt.Duration).
			Msg("Statistic computed")
	})

	runner := report.NewRunner(bus, a.cfg.Workers).WithClock(a.now)
	result, err := runner.Run(ctx, def, loaded)
	if err != nil {
		return err
	}
	return a.writeJSON(cmd, result.Spec())
}
