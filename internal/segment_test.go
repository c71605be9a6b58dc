package internal

import (
	"testing"
	"time"

	specs "github.com/chrisconley/tally/specs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	t.Run("clips the first and last month to the requested range", func(t *testing.T) {
		begin := date(2024, 1, 15, 10, 0, 0, 0)
		end := date(2024, 3, 10, 8, 0, 0, 0)

		intervals, err := Segment(begin, end, UnitMonth, false)

		require.NoError(t, err)
		require.Len(t, intervals, 3)

		assert.Equal(t, begin, intervals[0].Begin())
		assert.Equal(t, date(2024, 1, 31, 23, 59, 59, 999999999), intervals[0].End())
		assert.Equal(t, "2024-01", intervals[0].Key())
		assert.Equal(t, "1月", intervals[0].Label())

		assert.Equal(t, date(2024, 2, 1, 0, 0, 0, 0), intervals[1].Begin())
		assert.Equal(t, date(2024, 2, 29, 23, 59, 59, 999999999), intervals[1].End())
		assert.Equal(t, "2024-02", intervals[1].Key())

		assert.Equal(t, date(2024, 3, 1, 0, 0, 0, 0), intervals[2].Begin())
		assert.Equal(t, end, intervals[2].End())
		assert.Equal(t, "3月", intervals[2].Label())
	})

	t.Run("covers the range without gaps or overlaps for every unit", func(t *testing.T) {
		begin := date(2023, 12, 28, 7, 30, 0, 0)
		end := date(2024, 3, 5, 18, 15, 0, 0)

		for _, unit := range TimeUnits() {
			intervals, err := Segment(begin, end, unit, false)
			require.NoError(t, err, unit.String())
			require.NotEmpty(t, intervals, unit.String())

			assert.Equal(t, begin, intervals[0].Begin(), unit.String())
			assert.Equal(t, end, intervals[len(intervals)-1].End(), unit.String())
			for i, interval := range intervals {
				assert.False(t, interval.Begin().After(interval.End()), "%s interval %d", unit, i)
				if i > 0 {
					assert.Equal(t, intervals[i-1].End().Add(time.Nanosecond), interval.Begin(), "%s interval %d", unit, i)
				}
			}
		}
	})

	t.Run("with begin after end returns no intervals", func(t *testing.T) {
		intervals, err := Segment(date(2024, 3, 1, 0, 0, 0, 0), date(2024, 2, 1, 0, 0, 0, 0), UnitDay, false)

		require.NoError(t, err)
		assert.Empty(t, intervals)
	})

	t.Run("with begin equal to end returns a single instant interval", func(t *testing.T) {
		at := date(2024, 3, 1, 12, 0, 0, 0)

		intervals, err := Segment(at, at, UnitYear, false)

		require.NoError(t, err)
		require.Len(t, intervals, 1)
		assert.Equal(t, at, intervals[0].Begin())
		assert.Equal(t, at, intervals[0].End())
		assert.Equal(t, "2024", intervals[0].Key())
	})

	t.Run("with truncate widens the range to whole days and ends at whole seconds", func(t *testing.T) {
		intervals, err := Segment(date(2024, 2, 10, 13, 45, 0, 0), date(2024, 2, 12, 8, 0, 0, 0), UnitDay, true)

		require.NoError(t, err)
		require.Len(t, intervals, 3)
		assert.Equal(t, date(2024, 2, 10, 0, 0, 0, 0), intervals[0].Begin())
		assert.Equal(t, date(2024, 2, 10, 23, 59, 59, 0), intervals[0].End())
		assert.Equal(t, date(2024, 2, 11, 0, 0, 0, 0), intervals[1].Begin())
		assert.Equal(t, date(2024, 2, 12, 23, 59, 59, 0), intervals[2].End())
		assert.Equal(t, []string{"10日", "11日", "12日"}, labels(intervals))
	})

	t.Run("weeks of month never cross the month edges", func(t *testing.T) {
		intervals, err := Segment(date(2024, 2, 1, 0, 0, 0, 0), date(2024, 2, 29, 23, 59, 59, 999999999), UnitWeekOfMonth, false)

		require.NoError(t, err)
		require.Len(t, intervals, 5)
		// The partial week before the first Monday shares week 1 with it.
		assert.Equal(t, []string{"2月第1周", "2月第1周", "2月第2周", "2月第3周", "2月第4周"}, labels(intervals))
		assert.Equal(t, date(2024, 2, 4, 23, 59, 59, 999999999), intervals[0].End())
		assert.Equal(t, date(2024, 2, 5, 0, 0, 0, 0), intervals[1].Begin())
		assert.Equal(t, date(2024, 2, 26, 0, 0, 0, 0), intervals[4].Begin())
	})

	t.Run("weeks split at a month edge only for week of month", func(t *testing.T) {
		begin := date(2024, 1, 29, 0, 0, 0, 0)
		end := date(2024, 2, 4, 23, 59, 59, 999999999)

		weeks, err := Segment(begin, end, UnitWeek, false)
		require.NoError(t, err)
		weeksOfMonth, err := Segment(begin, end, UnitWeekOfMonth, false)
		require.NoError(t, err)

		assert.Len(t, weeks, 1)
		require.Len(t, weeksOfMonth, 2)
		assert.Equal(t, date(2024, 1, 31, 23, 59, 59, 999999999), weeksOfMonth[0].End())
		assert.Equal(t, date(2024, 2, 1, 0, 0, 0, 0), weeksOfMonth[1].Begin())
	})

	t.Run("days of week are labelled by weekday", func(t *testing.T) {
		intervals, err := Segment(date(2024, 2, 5, 0, 0, 0, 0), date(2024, 2, 11, 23, 59, 59, 999999999), UnitDayOfWeek, false)

		require.NoError(t, err)
		assert.Equal(t, []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}, labels(intervals))
	})

	t.Run("quarters are keyed by year and quarter", func(t *testing.T) {
		intervals, err := Segment(date(2023, 11, 1, 0, 0, 0, 0), date(2024, 4, 2, 0, 0, 0, 0), UnitQuarter, false)

		require.NoError(t, err)
		assert.Equal(t, []string{"2023-4", "2024-1", "2024-2"}, keys(intervals))
		assert.Equal(t, []string{"4季度", "1季度", "2季度"}, labels(intervals))
	})

	t.Run("hours roll over midnight", func(t *testing.T) {
		intervals, err := Segment(date(2024, 2, 10, 22, 30, 0, 0), date(2024, 2, 11, 0, 10, 0, 0), UnitHour, false)

		require.NoError(t, err)
		assert.Equal(t, []string{"2024-02-10 22", "2024-02-10 23", "2024-02-11 00"}, keys(intervals))
		assert.Equal(t, []string{"22时", "23时", "0时"}, labels(intervals))
	})

	t.Run("is deterministic", func(t *testing.T) {
		begin := date(2023, 6, 15, 0, 0, 0, 0)
		end := date(2024, 6, 15, 0, 0, 0, 0)

		first, err := Segment(begin, end, UnitWeek, false)
		require.NoError(t, err)
		second, err := Segment(begin, end, UnitWeek, false)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("with unsupported unit returns error", func(t *testing.T) {
		_, err := Segment(date(2024, 1, 1, 0, 0, 0, 0), date(2024, 2, 1, 0, 0, 0, 0), TimeUnit(0), false)

		assert.ErrorIs(t, err, ErrUnsupportedUnit)
	})
}

func TestSegmentIntervals(t *testing.T) {
	t.Run("returns interval specs for a unit code", func(t *testing.T) {
		result, err := SegmentIntervals(date(2022, 6, 1, 0, 0, 0, 0), date(2024, 2, 1, 0, 0, 0, 0), "year", false)

		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, "2022", result[0].Key)
		assert.Equal(t, "2022年", result[0].Label)
		assert.Equal(t, date(2023, 1, 1, 0, 0, 0, 0), result[1].Begin)
		assert.Equal(t, date(2024, 2, 1, 0, 0, 0, 0), result[2].End)
	})

	t.Run("with unknown unit code returns error", func(t *testing.T) {
		_, err := SegmentIntervals(date(2022, 6, 1, 0, 0, 0, 0), date(2024, 2, 1, 0, 0, 0, 0), "decade", false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid unit")
		assert.ErrorIs(t, err, ErrUnsupportedUnit)
	})
}

func TestInterval(t *testing.T) {
	t.Run("contains both ends", func(t *testing.T) {
		begin := date(2024, 2, 1, 0, 0, 0, 0)
		end := date(2024, 2, 29, 23, 59, 59, 999999999)
		interval, err := NewInterval(intervalSpec(begin, end, "2024-02"))
		require.NoError(t, err)

		assert.True(t, interval.Contains(begin))
		assert.True(t, interval.Contains(end))
		assert.False(t, interval.Contains(end.Add(time.Nanosecond)))
		assert.False(t, interval.Contains(begin.Add(-time.Nanosecond)))
	})

	t.Run("with begin after end returns error", func(t *testing.T) {
		_, err := NewInterval(intervalSpec(date(2024, 3, 1, 0, 0, 0, 0), date(2024, 2, 1, 0, 0, 0, 0), "x"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "begin must be before or equal to end")
	})

	t.Run("with missing key returns error", func(t *testing.T) {
		_, err := NewInterval(intervalSpec(date(2024, 2, 1, 0, 0, 0, 0), date(2024, 2, 2, 0, 0, 0, 0), ""))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "key is required")
	})

	t.Run("round trips through its spec", func(t *testing.T) {
		spec := intervalSpec(date(2024, 2, 1, 0, 0, 0, 0), date(2024, 2, 2, 0, 0, 0, 0), "2024-02-01")
		spec.Label = "1日"

		interval, err := NewInterval(spec)

		require.NoError(t, err)
		assert.Equal(t, spec, interval.ToSpec())
	})
}

func labels(intervals []Interval) []string {
	result := make([]string, len(intervals))
	for i, interval := range intervals {
		result[i] = interval.Label()
	}
	return result
}

func keys(intervals []Interval) []string {
	result := make([]string, len(intervals))
	for i, interval := range intervals {
		result[i] = interval.Key()
	}
	return result
}

func intervalSpec(begin, end time.Time, key string) specs.IntervalSpec {
	return specs.IntervalSpec{Begin: begin, End: end, Key: key}
}
