package internal

import (
	"fmt"
	"time"

	specs "github.com/chrisconley/tally/specs"
)

// Interval is one labelled bucket of a segmented time range.
// Membership is closed on both ends.
type Interval struct {
	begin time.Time
	end   time.Time
	key   string
	label string
}

func NewInterval(spec specs.IntervalSpec) (Interval, error) {
	if spec.Begin.IsZero() {
		return Interval{}, fmt.Errorf("begin is required")
	}
	if spec.End.IsZero() {
		return Interval{}, fmt.Errorf("end is required")
	}
	if spec.Begin.After(spec.End) {
		return Interval{}, fmt.Errorf("begin must be before or equal to end")
	}
	if spec.Key == "" {
		return Interval{}, fmt.Errorf("key is required")
	}
	return Interval{
		begin: spec.Begin,
		end:   spec.End,
		key:   spec.Key,
		label: spec.Label,
	}, nil
}

func (i Interval) Begin() time.Time {
	return i.begin
}

func (i Interval) End() time.Time {
	return i.end
}

func (i Interval) Key() string {
	return i.key
}

func (i Interval) Label() string {
	return i.label
}

// Contains reports whether t lies in [Begin, End].
func (i Interval) Contains(t time.Time) bool {
	return Between(t, i.begin, i.end)
}

func (i Interval) ToSpec() specs.IntervalSpec {
	return specs.IntervalSpec{
		Begin: i.begin,
		End:   i.end,
		Key:   i.key,
		Label: i.label,
	}
}

// Between reports whether t lies in the closed range [begin, end].
func Between(t, begin, end time.Time) bool {
	return !t.Before(begin) && !t.After(end)
}
