package internal

import (
	"fmt"
	"time"

	specs "github.com/chrisconley/tally/specs"
)

// SegmentIntervals implements specs.Segment.
// Resolves the unit code, segments the range, and converts the intervals back to specs.
func SegmentIntervals(begin, end time.Time, unitCode string, truncate bool) ([]specs.IntervalSpec, error) {
	unit, err := ParseTimeUnit(unitCode)
	if err != nil {
		return nil, fmt.Errorf("invalid unit: %w", err)
	}

	intervals, err := Segment(begin, end, unit, truncate)
	if err != nil {
		return nil, err
	}

	result := make([]specs.IntervalSpec, len(intervals))
	for i, interval := range intervals {
		result[i] = interval.ToSpec()
	}
	return result, nil
}

// Segment partitions [begin, end] into ascending, contiguous intervals aligned to
// unit boundaries. The first interval starts at begin and the last one ends at end;
// interior intervals end at their unit's natural end.
//
// With truncate set, begin is moved to the start of its day, end to 23:59:59 of its
// day, and interval ends stop at whole seconds.
//
// Returns an empty slice when begin is after end.
func Segment(begin, end time.Time, unit TimeUnit, truncate bool) ([]Interval, error) {
	s, err := unit.strategy()
	if err != nil {
		return nil, err
	}

	if truncate {
		begin = beginOfDay(begin)
		end = endOfDay(end, true)
	}

	intervals := make([]Interval, 0)
	for cursor := begin; !cursor.After(end); {
		bucketEnd := s.endOf(cursor, truncate)
		if bucketEnd.After(end) {
			bucketEnd = end
		}

		intervals = append(intervals, Interval{
			begin: cursor,
			end:   bucketEnd,
			key:   s.keyOf(cursor),
			label: s.label(cursor),
		})

		// The next bucket starts right after the current unit ends. Using the
		// untruncated end keeps this on the unit boundary, and it always lies
		// strictly after cursor.
		cursor = s.endOf(cursor, false).Add(time.Nanosecond)
	}

	return intervals, nil
}
