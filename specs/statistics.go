package specs

import "encoding/json"

// StatisticsItemSpec is one aggregated value attributed to a tag.
//
// For single-dimensional statistics the tag is the one configured on the
// statistic. For multi-dimensional statistics there is one item per entry of the
// tag dictionary, in dictionary order.
type StatisticsItemSpec struct {
	// Code of the tag or dimension key this value belongs to.
	TagCode string `json:"tagCode"`

	// Display name of the tag.
	TagName string `json:"tagName"`

	// Aggregated value as a plain decimal string.
	//
	// Sums and averages are rounded half-up to two fractional digits with
	// trailing zeros stripped ("60", "12.5", "0.33"). Counts are integers.
	// Buckets or dimensions without records report "0".
	Value string `json:"value"`
}

// TotalStatisticsResultSpec is the flat result of a statistic computed over the
// whole record set.
type TotalStatisticsResultSpec struct {
	Items []StatisticsItemSpec `json:"items"`
}

// CycleBucketSpec holds the items computed for one time bucket.
type CycleBucketSpec struct {
	// Bucket key, as in IntervalSpec.Key.
	Key string `json:"key"`

	// Bucket label, as in IntervalSpec.Label.
	Label string `json:"label"`

	Items []StatisticsItemSpec `json:"items"`
}

// CycleStatisticsResultSpec is the bucketed result of a cyclical statistic, one
// entry per bucket in segmentation order.
type CycleStatisticsResultSpec []CycleBucketSpec

// RecordSpec is a single input record: one JSON object whose fields are
// addressed by path (e.g. "score", "student.class", "exam.startedAt").
type RecordSpec = json.RawMessage

// CycleSpec describes the time bucketing of a cyclical statistic.
type CycleSpec struct {
	// Bucketing unit code, as accepted by Segment.
	Unit string `json:"unit"`

	// Range start timestamp. Accepts RFC 3339, "2006-01-02 15:04:05",
	// "2006-01-02", "2006-01", "2006" or epoch milliseconds.
	Begin string `json:"begin"`

	// Range end timestamp, same formats as Begin.
	End string `json:"end"`

	// Paths of the record fields holding the timestamps tested against each bucket.
	// At least one is required.
	TimeFields []string `json:"timeFields"`

	// How several time fields combine: "and" (all inside the bucket) or "or"
	// (at least one inside). Defaults to "and".
	Match string `json:"match,omitempty"`

	// Truncate sub-second precision of the range and bucket ends.
	Truncate bool `json:"truncate,omitempty"`
}

// AggregateTotal computes one statistic over all records.
//
// Process:
//  1. Validate the statistic (mode, tag or dimension plus tag dictionary)
//  2. Extract values (and dimensions) from each record by field path
//  3. Aggregate once for single-dimensional statistics, or once per dictionary
//     entry for multi-dimensional ones, backfilling "0"
//
// Returns error if the statistic is invalid or a value is not numeric for
// "sum"/"avg".
//
// See report.AggregateTotal for the reference implementation.
type AggregateTotal func(records []RecordSpec, statistic StatisticSpec) (TotalStatisticsResultSpec, error)

// AggregateCycle computes one statistic per time bucket.
//
// Records are assigned to every bucket whose closed [Begin, End] range contains
// their time fields under the configured match policy, so a record may count in
// several buckets when its time fields disagree and the policy is "or".
//
// See report.AggregateCycle for the reference implementation.
type AggregateCycle func(records []RecordSpec, cycle CycleSpec, statistic StatisticSpec) (CycleStatisticsResultSpec, error)

// MergeCycle unions two cyclical results by bucket key.
//
// Buckets present in both results keep a's position and label and carry a's
// items followed by b's items; tags declared on both sides appear twice.
// Buckets only present in b are appended in b's order.
//
// See internal.MergeCycleResults for the reference implementation.
type MergeCycle func(a, b CycleStatisticsResultSpec) (CycleStatisticsResultSpec, error)

// MergeTotal concatenates the items of two total results.
//
// See internal.MergeTotalResults for the reference implementation.
type MergeTotal func(a, b TotalStatisticsResultSpec) (TotalStatisticsResultSpec, error)
