package internal

import (
	"fmt"
	"strconv"
	"time"
)

// TotalStatistics aggregates the whole record set of cfg into a flat result.
func TotalStatistics[R any, V comparable, D comparable](cfg TotalStatisticsConfig[R, V, D]) (TotalStatisticsResult, error) {
	items, err := cfg.aggregate(cfg.records)
	if err != nil {
		return TotalStatisticsResult{}, err
	}
	return TotalStatisticsResult{items: items}, nil
}

// CycleStatistics segments the configured range and aggregates, per interval, the
// records whose extracted timestamps match the interval under the match policy.
// Buckets follow segmentation order; a degenerate range yields no buckets.
func CycleStatistics[R any, V comparable, D comparable](cfg CycleStatisticsConfig[R, V, D]) (CycleStatisticsResult, error) {
	intervals, err := Segment(cfg.begin, cfg.end, cfg.unit, cfg.truncate)
	if err != nil {
		return CycleStatisticsResult{}, err
	}

	buckets := make([]CycleBucket, 0, len(intervals))
	matched := make([]R, 0)
	for _, interval := range intervals {
		matched = matched[:0]
		for _, record := range cfg.base.records {
			if matchesBucket(record, interval, cfg.extractors, cfg.match) {
				matched = append(matched, record)
			}
		}

		items, err := cfg.base.aggregate(matched)
		if err != nil {
			return CycleStatisticsResult{}, fmt.Errorf("bucket %s: %w", interval.Key(), err)
		}
		buckets = append(buckets, CycleBucket{key: interval.Key(), label: interval.Label(), items: items})
	}

	return CycleStatisticsResult{buckets: buckets}, nil
}

func (c TotalStatisticsConfig[R, V, D]) aggregate(records []R) ([]StatisticsItem, error) {
	if c.multidimensional {
		return runMultiDimension(records, c.value, c.dimension, c.tags, c.mode)
	}
	return runSingleDimension(records, c.value, c.mode, c.tag)
}

// matchesBucket reports whether record belongs to interval. With AND every
// extracted timestamp must lie in the closed interval, with OR at least one.
func matchesBucket[R any](record R, interval Interval, extractors []func(R) time.Time, policy MatchPolicy) bool {
	if len(extractors) == 0 {
		return false
	}
	for _, extract := range extractors {
		inside := interval.Contains(extract(record))
		if policy == MatchOr && inside {
			return true
		}
		if policy != MatchOr && !inside {
			return false
		}
	}
	return policy != MatchOr
}

func runSingleDimension[R any, V comparable](records []R, value func(R) V, mode AggregationMode, tag Tag) ([]StatisticsItem, error) {
	aggregate, err := aggregateRecords(records, value, mode)
	if err != nil {
		return nil, fmt.Errorf("tag %s: %w", tag.code, err)
	}
	return []StatisticsItem{{tagCode: tag.code, tagName: tag.name, value: aggregate}}, nil
}

// runMultiDimension emits one item per dictionary entry, in dictionary order.
// Entries without records report "0"; dimension keys missing from the dictionary
// are dropped.
func runMultiDimension[R any, V comparable, D comparable](records []R, value func(R) V, dimension func(R) D, tags TagDictionary[D], mode AggregationMode) ([]StatisticsItem, error) {
	groups := make(map[D][]R, tags.Len())
	for _, record := range records {
		key := dimension(record)
		if !tags.Has(key) {
			continue
		}
		groups[key] = append(groups[key], record)
	}

	items := make([]StatisticsItem, 0, tags.Len())
	for _, key := range tags.keys {
		code := fmt.Sprint(key)
		aggregate := "0"
		if group, ok := groups[key]; ok {
			var err error
			aggregate, err = aggregateRecords(group, value, mode)
			if err != nil {
				return nil, fmt.Errorf("tag %s: %w", code, err)
			}
		}
		items = append(items, StatisticsItem{tagCode: code, tagName: tags.names[key], value: aggregate})
	}
	return items, nil
}

func aggregateRecords[R any, V comparable](records []R, value func(R) V, mode AggregationMode) (string, error) {
	if value == nil {
		// Only count may omit the value extractor.
		return strconv.Itoa(len(records)), nil
	}
	values := make([]V, len(records))
	for i, record := range records {
		values[i] = value(record)
	}
	return computeAggregate(values, mode)
}
