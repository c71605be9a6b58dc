package specs

import "time"

// IntervalSpec represents one calendar-aligned bucket of a segmented time range.
//
// Intervals are closed: both Begin and End belong to the bucket. A segmented
// range is a sequence of intervals that are ascending and contiguous, where each
// End is the last instant before the next interval's Begin.
type IntervalSpec struct {
	// Inclusive start of the bucket.
	//
	// The first interval of a segmentation starts at the requested range start,
	// which may fall in the middle of a unit. Every later interval starts on a
	// unit boundary (e.g. 00:00:00 on the first of the month for "month").
	Begin time.Time `json:"begin"`

	// Inclusive end of the bucket.
	//
	// Normally the last instant of the unit (23:59:59.999999999, or 23:59:59 when
	// sub-second precision is truncated). The last interval of a segmentation ends
	// exactly at the requested range end.
	End time.Time `json:"end"`

	// Stable bucket identifier formatted from Begin.
	//
	// Format depends on the unit:
	//   - "year": "2024"
	//   - "quarter": "2024-1"
	//   - "month": "2024-02"
	//   - "week", "weekOfMonth", "day", "dayOfWeek": "2024-02-10"
	//   - "hour": "2024-02-10 13"
	//
	// Keys are what merge uses to line buckets up across results.
	Key string `json:"key"`

	// Human-readable bucket label.
	//
	// Examples: "2024年", "1季度", "2月", "10日", "2月第2周", "13时", "周六".
	Label string `json:"label"`
}

// Segment partitions [begin, end] into IntervalSpecs aligned to unit.
//
// Unit codes: "hour", "day", "dayOfWeek", "week", "weekOfMonth", "month",
// "quarter", "year".
//
// With truncate set, begin moves to the start of its day, end to 23:59:59 of its
// day, and interval ends stop at whole seconds.
//
// Returns an empty slice when begin is after end.
// Returns error if the unit code is unknown.
//
// See internal.SegmentIntervals for the reference implementation.
type Segment func(begin, end time.Time, unit string, truncate bool) ([]IntervalSpec, error)
