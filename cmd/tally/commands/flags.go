package commands

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/chrisconley/tally/internal/source"
	specs "github.com/chrisconley/tally/specs"

	"github.com/spf13/cobra"
)

// recordFlags selects where records come from: a file or a SQLite query.
type recordFlags struct {
	path   string
	sqlite string
	query  string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "records", "", "JSON, JSON-lines or YAML records file")
	cmd.Flags().StringVar(&f.sqlite, "sqlite", "", "SQLite database to read records from")
	cmd.Flags().StringVar(&f.query, "query", "", "SQL query selecting records (with --sqlite)")
}

func (f *recordFlags) load(ctx context.Context) ([]source.Record, error) {
	switch {
	case f.path != "" && f.sqlite != "":
		return nil, errors.New("--records and --sqlite are mutually exclusive")
	case f.path != "":
		return source.LoadFile(f.path)
	case f.sqlite != "":
		return source.LoadSQLite(ctx, f.sqlite, f.query)
	default:
		return nil, errors.New("one of --records or --sqlite is required")
	}
}

// statisticFlags describes a single statistic on the command line.
type statisticFlags struct {
	mode      string
	value     string
	tag       string
	dimension string
	tags      []string
}

func (f *statisticFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "aggregation mode: sum, avg, count or distinctCount")
	cmd.Flags().StringVar(&f.value, "value", "", "record field aggregated by sum, avg and distinctCount")
	cmd.Flags().StringVar(&f.tag, "tag", "", "output tag of a single-dimensional statistic, as code[=name]")
	cmd.Flags().StringVar(&f.dimension, "dimension", "", "record field grouping a multi-dimensional statistic")
	cmd.Flags().StringArrayVar(&f.tags, "tags", nil, "dimension value to report, as code[=name]; repeatable and ordered")
}

func (f *statisticFlags) spec() specs.StatisticSpec {
	statistic := specs.StatisticSpec{
		Mode:      f.mode,
		Value:     f.value,
		Dimension: f.dimension,
	}
	if f.tag != "" {
		tag := parseTag(f.tag)
		statistic.Tag = &tag
	}
	for _, t := range f.tags {
		statistic.Tags = append(statistic.Tags, parseTag(t))
	}
	return statistic
}

// windowFlags describes the bucketing of a cyclical statistic.
type windowFlags struct {
	unit       string
	begin      string
	end        string
	last       int
	timeFields []string
	match      string
	truncate   bool
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.unit, "unit", "", "bucketing unit: hour, day, dayOfWeek, week, weekOfMonth, month, quarter or year")
	cmd.Flags().StringVar(&f.begin, "begin", "", "range start timestamp")
	cmd.Flags().StringVar(&f.end, "end", "", "range end timestamp")
	cmd.Flags().IntVar(&f.last, "last", 0, "without --begin/--end, the unit offset of the range from now (0 is the current unit)")
	cmd.Flags().StringArrayVar(&f.timeFields, "time-field", nil, "record field holding a timestamp; repeatable")
	cmd.Flags().StringVar(&f.match, "match", "", "how several time fields combine: and or or")
	cmd.Flags().BoolVar(&f.truncate, "truncate", false, "truncate sub-second precision of bucket ends")
}

// truncateFor returns the --truncate flag when given, the configured default otherwise.
func (a *app) truncateFor(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("truncate") {
		return flag
	}
	return a.cfg.Truncate
}

func parseTag(value string) specs.TagSpec {
	code, name, _ := strings.Cut(value, "=")
	return specs.TagSpec{Code: code, Name: name}
}

func (a *app) writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if a.cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
