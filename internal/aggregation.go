package internal

import (
	"fmt"
	"strconv"
)

// AggregationMode selects how the values of a bucket combine. The zero value is unset.
type AggregationMode int

const (
	ModeSum AggregationMode = iota + 1
	ModeAvg
	ModeCount
	ModeDistinctCount
)

func (m AggregationMode) String() string {
	switch m {
	case ModeSum:
		return "sum"
	case ModeAvg:
		return "avg"
	case ModeCount:
		return "count"
	case ModeDistinctCount:
		return "distinctCount"
	default:
		return "Unknown"
	}
}

func (m AggregationMode) IsValid() bool {
	return m >= ModeSum && m <= ModeDistinctCount
}

func ParseAggregationMode(value string) (AggregationMode, error) {
	if value == "" {
		return 0, fmt.Errorf("aggregation mode is required")
	}
	for _, m := range []AggregationMode{ModeSum, ModeAvg, ModeCount, ModeDistinctCount} {
		if m.String() == value {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid aggregation mode: %q", value)
}

// MatchPolicy combines several time extractors when testing bucket membership.
// The zero value is unset.
type MatchPolicy int

const (
	MatchAnd MatchPolicy = iota + 1
	MatchOr
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchAnd:
		return "and"
	case MatchOr:
		return "or"
	default:
		return "Unknown"
	}
}

func (p MatchPolicy) IsValid() bool {
	return p == MatchAnd || p == MatchOr
}

func ParseMatchPolicy(value string) (MatchPolicy, error) {
	switch value {
	case "and", "AND":
		return MatchAnd, nil
	case "or", "OR":
		return MatchOr, nil
	case "":
		return 0, fmt.Errorf("match policy is required")
	default:
		return 0, fmt.Errorf("invalid match policy: %q", value)
	}
}

// computeAggregate reduces values to a display-ready decimal string.
// Empty input yields "0" for every mode.
//
//   - sum: exact decimal sum, rounded half-up to 2 places, trailing zeros stripped
//   - avg: sum divided by the number of values, same rounding; a zero sum yields "0"
//   - count: number of values, duplicates included
//   - distinctCount: number of distinct values by ==
func computeAggregate[V comparable](values []V, mode AggregationMode) (string, error) {
	if len(values) == 0 {
		return "0", nil
	}

	switch mode {
	case ModeSum:
		sum, err := sumValues(values)
		if err != nil {
			return "", err
		}
		rounded, err := sum.RoundHalfUp(statisticsScale)
		if err != nil {
			return "", err
		}
		return rounded.PlainString(), nil

	case ModeAvg:
		sum, err := sumValues(values)
		if err != nil {
			return "", err
		}
		avg, err := sum.DivRoundHalfUp(NewDecimalFromInt64(int64(len(values))), statisticsScale)
		if err != nil {
			return "", err
		}
		return avg.PlainString(), nil

	case ModeCount:
		return strconv.Itoa(len(values)), nil

	case ModeDistinctCount:
		distinct := make(map[V]struct{}, len(values))
		for _, v := range values {
			distinct[v] = struct{}{}
		}
		return strconv.Itoa(len(distinct)), nil

	default:
		return "", fmt.Errorf("%w: unsupported aggregation mode %d", ErrConfiguration, int(mode))
	}
}

func sumValues[V comparable](values []V) (Decimal, error) {
	sum := NewDecimalFromInt64(0)
	for i, v := range values {
		d, err := NewDecimalFromValue(v)
		if err != nil {
			return Decimal{}, fmt.Errorf("value %d: %w", i, err)
		}
		sum = sum.Add(d)
	}
	return sum, nil
}
