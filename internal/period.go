package internal

import "time"

// Period returns the [begin, end] range spanned by offset units around benchmark.
//
//   - offset < 0: from the start of the unit offset units back to the end of
//     benchmark's unit (e.g. the last three months including the current one)
//   - offset > 0: from the start of benchmark's unit to the end of the unit
//     offset units ahead
//   - offset == 0: benchmark's own unit
func Period(benchmark time.Time, unit TimeUnit, offset int) (time.Time, time.Time, error) {
	switch {
	case offset < 0:
		begin, err := OffsetBeginOf(benchmark, offset, unit)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := EndOf(unit, benchmark, false)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return begin, end, nil

	case offset > 0:
		begin, err := BeginOf(unit, benchmark)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := OffsetEndOf(benchmark, offset, unit)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return begin, end, nil

	default:
		begin, err := BeginOf(unit, benchmark)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := EndOf(unit, benchmark, false)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return begin, end, nil
	}
}
