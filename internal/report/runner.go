package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrisconley/tally/internal"
	"github.com/chrisconley/tally/internal/infra"
	"github.com/chrisconley/tally/internal/source"
	specs "github.com/chrisconley/tally/specs"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// === EVENTS ===

type RecordsLoadedEvent struct {
	RunID   string
	Report  string
	Records int
}

func (e RecordsLoadedEvent) EventType() infra.EventType {
	return infra.RecordsLoaded
}

type StatisticComputedEvent struct {
	RunID     string
	Index     int
	Statistic specs.StatisticSpec
	Duration  time.Duration
}

func (e StatisticComputedEvent) EventType() infra.EventType {
	return infra.StatisticComputed
}

type StatisticFailedEvent struct {
	RunID     string
	Index     int
	Statistic specs.StatisticSpec
	Err       error
}

func (e StatisticFailedEvent) EventType() infra.EventType {
	return infra.StatisticFailed
}

type ReportMergedEvent struct {
	RunID  string
	Report string
	Result Result
}

func (e ReportMergedEvent) EventType() infra.EventType {
	return infra.ReportMerged
}

// === RESULT ===

// Result is the merged outcome of a report: bucketed when the report declares a
// unit, flat otherwise.
type Result struct {
	RunID    string
	Cyclical bool
	Total    internal.TotalStatisticsResult
	Cycle    internal.CycleStatisticsResult
}

// Spec returns the JSON shape of the result: a bucket array for cyclical
// reports, an items object for totals.
func (r Result) Spec() any {
	if r.Cyclical {
		return r.Cycle.ToSpec()
	}
	return r.Total.ToSpec()
}

// === RUNNER ===

// Runner computes the statistics of a report concurrently and merges them in
// declaration order.
type Runner struct {
	bus     *infra.Bus
	workers int
	now     func() time.Time
}

func NewRunner(bus *infra.Bus, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{bus: bus, workers: workers, now: time.Now}
}

// WithClock returns a copy of r that resolves relative ranges against now.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	c := *r
	c.now = now
	return &c
}

type outcome struct {
	total    internal.TotalStatisticsResult
	cycle    internal.CycleStatisticsResult
	err      error
	duration time.Duration
	done     bool
}

// Run evaluates report over records. Either every statistic succeeds and the
// merged result is returned, or the first failure is returned with no result.
// Events are published on the calling goroutine after all work has finished.
func (r *Runner) Run(ctx context.Context, report specs.ReportSpec, records []source.Record) (Result, error) {
	runID := uuid.NewString()
	logger := log.With().Str("run", runID).Str("report", report.Name).Logger()

	if len(report.Statistics) == 0 {
		return Result{}, fmt.Errorf("%w: report declares no statistics", internal.ErrConfiguration)
	}

	cyclical := report.Unit != ""
	var window Window
	var timeFields []string
	if cyclical {
		var err error
		window, err = ResolveWindow(report.Unit, report.Begin, report.End, report.Last, report.TimeFields, report.Match, report.Truncate, WallClock(r.now()))
		if err != nil {
			return Result{}, err
		}
		timeFields = window.TimeFields
	}

	rows, err := newRows(records, timeFields)
	if err != nil {
		return Result{}, err
	}
	r.bus.Publish(RecordsLoadedEvent{RunID: runID, Report: report.Name, Records: len(rows)})

	logger.Info().
		Int("records", len(rows)).
		Int("statistics", len(report.Statistics)).
		Bool("cyclical", cyclical).
		Msg("Running report")

	outcomes := make([]outcome, len(report.Statistics))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, statistic := range report.Statistics {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			var o outcome
			if cyclical {
				o.cycle, o.err = computeCycle(statistic, rows, window)
			} else {
				o.total, o.err = computeTotal(statistic, rows)
			}
			o.duration = time.Since(started)
			o.done = true
			outcomes[i] = o
			if o.err != nil {
				return fmt.Errorf("statistic %d (%s): %w", i, statistic.Describe(), o.err)
			}
			return nil
		})
	}
	runErr := g.Wait()

	for i, o := range outcomes {
		statistic := report.Statistics[i]
		switch {
		case o.err != nil:
			r.bus.Publish(StatisticFailedEvent{RunID: runID, Index: i, Statistic: statistic, Err: o.err})
		case o.done:
			r.bus.Publish(StatisticComputedEvent{RunID: runID, Index: i, Statistic: statistic, Duration: o.duration})
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			logger.Warn().Err(runErr).Msg("Report cancelled")
		} else {
			logger.Error().Err(runErr).Msg("Report failed")
		}
		return Result{}, runErr
	}

	result := Result{RunID: runID, Cyclical: cyclical}
	for _, o := range outcomes {
		if cyclical {
			result.Cycle = result.Cycle.Merge(o.cycle)
		} else {
			result.Total = result.Total.Merge(o.total)
		}
	}

	r.bus.Publish(ReportMergedEvent{RunID: runID, Report: report.Name, Result: result})
	logger.Debug().Msg("Report merged")
	return result, nil
}

// WallClock reads the clock as a naive UTC wall-clock timestamp, matching how
// record timestamps are parsed.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
