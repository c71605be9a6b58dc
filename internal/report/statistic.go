package report

import (
	"fmt"
	"time"

	"github.com/chrisconley/tally/internal"
	"github.com/chrisconley/tally/internal/source"
	specs "github.com/chrisconley/tally/specs"
)

// row is a record with its time fields parsed once up front.
type row struct {
	record source.Record
	times  []time.Time
}

type params = internal.StatisticsParams[row, string, string]

// Window is the resolved bucketing of a cyclical report.
type Window struct {
	Unit       internal.TimeUnit
	Begin      time.Time
	End        time.Time
	TimeFields []string
	Match      internal.MatchPolicy
	Truncate   bool
}

func newRows(records []source.Record, timeFields []string) ([]row, error) {
	rows := make([]row, len(records))
	for i, record := range records {
		times, err := record.Times(timeFields)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rows[i] = row{record: record, times: times}
	}
	return rows, nil
}

// statisticParams maps a statistic definition onto extractors over rows.
// Definition errors wrap internal.ErrConfiguration.
func statisticParams(spec specs.StatisticSpec, rows []row) (params, error) {
	mode, err := internal.ParseAggregationMode(spec.Mode)
	if err != nil {
		return params{}, fmt.Errorf("%w: %v", internal.ErrConfiguration, err)
	}

	p := params{
		Records: rows,
		Mode:    mode,
	}
	if spec.Value != "" {
		path := spec.Value
		p.Value = func(r row) string { return r.record.Value(path) }
	}

	if !spec.Multidimensional() {
		if spec.Tag != nil {
			tag, err := internal.NewTag(*spec.Tag)
			if err != nil {
				return params{}, fmt.Errorf("%w: %v", internal.ErrConfiguration, err)
			}
			p.Tag = &tag
		}
		return p, nil
	}

	p.Multidimensional = true
	if spec.Dimension != "" {
		path := spec.Dimension
		p.Dimension = func(r row) string { return r.record.Value(path) }
	}
	p.Tags = internal.NewTagDictionary[string]()
	for _, tag := range spec.Tags {
		if tag.Code == "" {
			return params{}, fmt.Errorf("%w: tag code is required", internal.ErrConfiguration)
		}
		if p.Tags.Has(tag.Code) {
			return params{}, fmt.Errorf("%w: duplicate tag %q", internal.ErrConfiguration, tag.Code)
		}
		p.Tags.Set(tag.Code, tag.Name)
	}
	return p, nil
}

func withWindow(p params, window Window) params {
	p.Unit = window.Unit
	p.Begin = window.Begin
	p.End = window.End
	p.Match = window.Match
	p.Truncate = window.Truncate
	p.TimeExtractors = make([]func(row) time.Time, len(window.TimeFields))
	for i := range window.TimeFields {
		idx := i
		p.TimeExtractors[i] = func(r row) time.Time { return r.times[idx] }
	}
	return p
}

func computeTotal(spec specs.StatisticSpec, rows []row) (internal.TotalStatisticsResult, error) {
	p, err := statisticParams(spec, rows)
	if err != nil {
		return internal.TotalStatisticsResult{}, err
	}
	cfg, err := internal.NewTotalStatisticsConfig(p)
	if err != nil {
		return internal.TotalStatisticsResult{}, err
	}
	return internal.TotalStatistics(cfg)
}

func computeCycle(spec specs.StatisticSpec, rows []row, window Window) (internal.CycleStatisticsResult, error) {
	p, err := statisticParams(spec, rows)
	if err != nil {
		return internal.CycleStatisticsResult{}, err
	}
	cfg, err := internal.NewCycleStatisticsConfig(withWindow(p, window))
	if err != nil {
		return internal.CycleStatisticsResult{}, err
	}
	return internal.CycleStatistics(cfg)
}

// ResolveWindow turns a cycle definition into a window. When begin and end are
// both empty the range is the Period of last units around now.
func ResolveWindow(unitCode, begin, end string, last int, timeFields []string, match string, truncate bool, now time.Time) (Window, error) {
	unit, err := internal.ParseTimeUnit(unitCode)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %w", internal.ErrConfiguration, err)
	}

	policy := internal.MatchAnd
	if match != "" {
		policy, err = internal.ParseMatchPolicy(match)
		if err != nil {
			return Window{}, fmt.Errorf("%w: %v", internal.ErrConfiguration, err)
		}
	}

	window := Window{
		Unit:       unit,
		TimeFields: append([]string(nil), timeFields...),
		Match:      policy,
		Truncate:   truncate,
	}

	switch {
	case begin == "" && end == "":
		window.Begin, window.End, err = internal.Period(now, unit, last)
		if err != nil {
			return Window{}, err
		}
	case begin == "" || end == "":
		return Window{}, fmt.Errorf("%w: begin and end must be given together", internal.ErrConfiguration)
	default:
		if window.Begin, err = source.ParseTimestamp(begin); err != nil {
			return Window{}, fmt.Errorf("%w: invalid begin: %v", internal.ErrConfiguration, err)
		}
		if window.End, err = source.ParseTimestamp(end); err != nil {
			return Window{}, fmt.Errorf("%w: invalid end: %v", internal.ErrConfiguration, err)
		}
	}
	return window, nil
}

func recordsFromSpecs(records []specs.RecordSpec) ([]source.Record, error) {
	result := make([]source.Record, len(records))
	for i, raw := range records {
		record, err := source.NewRecord(string(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i, err)
		}
		result[i] = record
	}
	return result, nil
}

// AggregateTotal implements specs.AggregateTotal.
func AggregateTotal(records []specs.RecordSpec, statistic specs.StatisticSpec) (specs.TotalStatisticsResultSpec, error) {
	parsed, err := recordsFromSpecs(records)
	if err != nil {
		return specs.TotalStatisticsResultSpec{}, err
	}
	rows, err := newRows(parsed, nil)
	if err != nil {
		return specs.TotalStatisticsResultSpec{}, err
	}
	result, err := computeTotal(statistic, rows)
	if err != nil {
		return specs.TotalStatisticsResultSpec{}, err
	}
	return result.ToSpec(), nil
}

// AggregateCycle implements specs.AggregateCycle.
func AggregateCycle(records []specs.RecordSpec, cycle specs.CycleSpec, statistic specs.StatisticSpec) (specs.CycleStatisticsResultSpec, error) {
	if cycle.Begin == "" || cycle.End == "" {
		return nil, fmt.Errorf("%w: begin and end are required", internal.ErrConfiguration)
	}
	window, err := ResolveWindow(cycle.Unit, cycle.Begin, cycle.End, 0, cycle.TimeFields, cycle.Match, cycle.Truncate, time.Time{})
	if err != nil {
		return nil, err
	}
	parsed, err := recordsFromSpecs(records)
	if err != nil {
		return nil, err
	}
	rows, err := newRows(parsed, window.TimeFields)
	if err != nil {
		return nil, err
	}
	result, err := computeCycle(statistic, rows, window)
	if err != nil {
		return nil, err
	}
	return result.ToSpec(), nil
}
