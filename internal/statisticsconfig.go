package internal

import (
	"fmt"
	"time"
)

// StatisticsParams collects the inputs of a statistic before validation.
//
// R is the record type, V the extracted value type and D the dimension key type.
// Single-dimensional statistics that never group may use any comparable D.
type StatisticsParams[R any, V comparable, D comparable] struct {
	Records []R
	Value   func(R) V
	Mode    AggregationMode

	// Single-dimensional.
	Tag *Tag

	// Multi-dimensional.
	Multidimensional bool
	Dimension        func(R) D
	Tags             TagDictionary[D]

	// Cyclical only.
	Unit           TimeUnit
	Begin          time.Time
	End            time.Time
	TimeExtractors []func(R) time.Time
	Match          MatchPolicy
	Truncate       bool
}

// TotalStatisticsConfig is a validated, immutable total statistic.
type TotalStatisticsConfig[R any, V comparable, D comparable] struct {
	records          []R
	value            func(R) V
	mode             AggregationMode
	tag              Tag
	multidimensional bool
	dimension        func(R) D
	tags             TagDictionary[D]
}

// CycleStatisticsConfig is a validated, immutable cyclical statistic.
type CycleStatisticsConfig[R any, V comparable, D comparable] struct {
	base       TotalStatisticsConfig[R, V, D]
	unit       TimeUnit
	begin      time.Time
	end        time.Time
	extractors []func(R) time.Time
	match      MatchPolicy
	truncate   bool
}

// NewTotalStatisticsConfig validates params for a statistic over the whole record set.
// Cyclical fields are ignored. Errors wrap ErrConfiguration.
func NewTotalStatisticsConfig[R any, V comparable, D comparable](params StatisticsParams[R, V, D]) (TotalStatisticsConfig[R, V, D], error) {
	if params.Mode == 0 {
		return TotalStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: mode is required", ErrConfiguration)
	}
	if !params.Mode.IsValid() {
		return TotalStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: unknown mode %d", ErrConfiguration, int(params.Mode))
	}
	if params.Records == nil {
		return TotalStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: records are required", ErrConfiguration)
	}
	if params.Value == nil && params.Mode != ModeCount {
		return TotalStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: value extractor is required for %s", ErrConfiguration, params.Mode)
	}

	cfg := TotalStatisticsConfig[R, V, D]{
		records:          append(make([]R, 0, len(params.Records)), params.Records...),
		value:            params.Value,
		mode:             params.Mode,
		multidimensional: params.Multidimensional,
	}

	if params.Multidimensional {
		if params.Dimension == nil {
			return TotalStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: dimension extractor is required for multi-dimensional statistics", ErrConfiguration)
		}
		if params.Tags.Len() == 0 {
			return TotalStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: tag dictionary is required for multi-dimensional statistics", ErrConfiguration)
		}
		cfg.dimension = params.Dimension
		cfg.tags = params.Tags.clone()
		return cfg, nil
	}

	if params.Tag == nil {
		return TotalStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: tag is required for single-dimensional statistics", ErrConfiguration)
	}
	cfg.tag = *params.Tag
	return cfg, nil
}

// NewCycleStatisticsConfig validates params for a statistic computed per time bucket.
// Errors wrap ErrConfiguration.
func NewCycleStatisticsConfig[R any, V comparable, D comparable](params StatisticsParams[R, V, D]) (CycleStatisticsConfig[R, V, D], error) {
	base, err := NewTotalStatisticsConfig(params)
	if err != nil {
		return CycleStatisticsConfig[R, V, D]{}, err
	}

	if params.Unit == 0 {
		return CycleStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: unit is required", ErrConfiguration)
	}
	if !params.Unit.IsValid() {
		return CycleStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: %w: %d", ErrConfiguration, ErrUnsupportedUnit, int(params.Unit))
	}
	if params.Begin.IsZero() {
		return CycleStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: begin is required", ErrConfiguration)
	}
	if params.End.IsZero() {
		return CycleStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: end is required", ErrConfiguration)
	}
	if len(params.TimeExtractors) == 0 {
		return CycleStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: at least one time extractor is required", ErrConfiguration)
	}
	for i, extractor := range params.TimeExtractors {
		if extractor == nil {
			return CycleStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: time extractor %d is nil", ErrConfiguration, i)
		}
	}
	if params.Match == 0 {
		return CycleStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: match policy is required", ErrConfiguration)
	}
	if !params.Match.IsValid() {
		return CycleStatisticsConfig[R, V, D]{}, fmt.Errorf("%w: unknown match policy %d", ErrConfiguration, int(params.Match))
	}

	return CycleStatisticsConfig[R, V, D]{
		base:       base,
		unit:       params.Unit,
		begin:      params.Begin,
		end:        params.End,
		extractors: append([]func(R) time.Time(nil), params.TimeExtractors...),
		match:      params.Match,
		truncate:   params.Truncate,
	}, nil
}

func (c TotalStatisticsConfig[R, V, D]) Mode() AggregationMode {
	return c.mode
}

func (c TotalStatisticsConfig[R, V, D]) Multidimensional() bool {
	return c.multidimensional
}

func (c TotalStatisticsConfig[R, V, D]) Tag() Tag {
	return c.tag
}

func (c TotalStatisticsConfig[R, V, D]) Tags() TagDictionary[D] {
	return c.tags.clone()
}

func (c TotalStatisticsConfig[R, V, D]) RecordCount() int {
	return len(c.records)
}

func (c CycleStatisticsConfig[R, V, D]) Total() TotalStatisticsConfig[R, V, D] {
	return c.base
}

func (c CycleStatisticsConfig[R, V, D]) Unit() TimeUnit {
	return c.unit
}

func (c CycleStatisticsConfig[R, V, D]) Begin() time.Time {
	return c.begin
}

func (c CycleStatisticsConfig[R, V, D]) End() time.Time {
	return c.end
}

func (c CycleStatisticsConfig[R, V, D]) Match() MatchPolicy {
	return c.match
}

func (c CycleStatisticsConfig[R, V, D]) Truncate() bool {
	return c.truncate
}
