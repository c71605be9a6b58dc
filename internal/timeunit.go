package internal

import (
	"fmt"
	"time"
)

// TimeUnit is a calendar granularity used to bucket a time range.
// The zero value is not a valid unit.
type TimeUnit int

const (
	UnitHour TimeUnit = iota + 1
	UnitDay
	UnitDayOfWeek
	UnitWeek
	UnitWeekOfMonth
	UnitMonth
	UnitQuarter
	UnitYear
)

// unitStrategy holds the calendar behaviour of one TimeUnit.
type unitStrategy struct {
	code        string
	layout      string
	labelFormat string
	beginOf     func(t time.Time) time.Time
	endOf       func(t time.Time, truncate bool) time.Time
	offset      func(t time.Time, amount int) time.Time
	key         func(t time.Time) string
	label       func(t time.Time) string
}

var weekdayLabels = [...]string{"", "周一", "周二", "周三", "周四", "周五", "周六", "周日"}

var unitStrategies = [...]unitStrategy{
	UnitHour: {
		code:        "hour",
		layout:      "2006-01-02 15",
		labelFormat: "%d时",
		beginOf:     beginOfHour,
		endOf:       endOfHour,
		offset:      func(t time.Time, n int) time.Time { return addHours(t, n) },
		label:       func(t time.Time) string { return fmt.Sprintf("%d时", t.Hour()) },
	},
	UnitDay: {
		code:        "day",
		layout:      "2006-01-02",
		labelFormat: "%d日",
		beginOf:     beginOfDay,
		endOf:       endOfDay,
		offset:      func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
		label:       func(t time.Time) string { return fmt.Sprintf("%d日", t.Day()) },
	},
	UnitDayOfWeek: {
		code:    "dayOfWeek",
		layout:  "2006-01-02",
		beginOf: beginOfDay,
		endOf:   endOfDay,
		offset:  offsetDayOfWeek,
		label:   func(t time.Time) string { return weekdayLabels[isoWeekday(t)] },
	},
	UnitWeek: {
		code:        "week",
		layout:      "2006-01-02",
		labelFormat: "%d月第%d周",
		beginOf:     beginOfWeek,
		endOf:       endOfWeek,
		offset:      func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
		label:       weekLabel,
	},
	UnitWeekOfMonth: {
		code:        "weekOfMonth",
		layout:      "2006-01-02",
		labelFormat: "%d月第%d周",
		beginOf:     beginOfWeekOfMonth,
		endOf:       endOfWeekOfMonth,
		offset:      offsetWeekOfMonth,
		label:       weekLabel,
	},
	UnitMonth: {
		code:        "month",
		layout:      "2006-01",
		labelFormat: "%d月",
		beginOf:     beginOfMonth,
		endOf:       endOfMonth,
		offset:      addMonths,
		label:       func(t time.Time) string { return fmt.Sprintf("%d月", int(t.Month())) },
	},
	UnitQuarter: {
		code:        "quarter",
		layout:      "2006-Q",
		labelFormat: "%d季度",
		beginOf:     beginOfQuarter,
		endOf:       endOfQuarter,
		offset:      func(t time.Time, n int) time.Time { return addMonths(t, 3*n) },
		key:         func(t time.Time) string { return fmt.Sprintf("%d-%d", t.Year(), QuarterOf(t)) },
		label:       func(t time.Time) string { return fmt.Sprintf("%d季度", QuarterOf(t)) },
	},
	UnitYear: {
		code:        "year",
		layout:      "2006",
		labelFormat: "%d年",
		beginOf:     beginOfYear,
		endOf:       endOfYear,
		offset:      func(t time.Time, n int) time.Time { return addMonths(t, 12*n) },
		label:       func(t time.Time) string { return fmt.Sprintf("%d年", t.Year()) },
	},
}

// TimeUnits lists every supported unit in ascending granularity order.
func TimeUnits() []TimeUnit {
	return []TimeUnit{UnitHour, UnitDay, UnitDayOfWeek, UnitWeek, UnitWeekOfMonth, UnitMonth, UnitQuarter, UnitYear}
}

// ParseTimeUnit resolves a canonical unit code such as "month" or "weekOfMonth".
func ParseTimeUnit(code string) (TimeUnit, error) {
	for _, u := range TimeUnits() {
		if unitStrategies[u].code == code {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, code)
}

func (u TimeUnit) strategy() (*unitStrategy, error) {
	if u < UnitHour || u > UnitYear {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedUnit, int(u))
	}
	return &unitStrategies[u], nil
}

// IsValid reports whether u is one of the declared units.
func (u TimeUnit) IsValid() bool {
	_, err := u.strategy()
	return err == nil
}

func (u TimeUnit) String() string {
	s, err := u.strategy()
	if err != nil {
		return fmt.Sprintf("TimeUnit(%d)", int(u))
	}
	return s.code
}

// Layout returns the time layout used to build bucket keys.
// For quarters the "Q" placeholder stands for the quarter number.
func (u TimeUnit) Layout() string {
	s, err := u.strategy()
	if err != nil {
		return ""
	}
	return s.layout
}

// LabelFormat returns the printf template behind bucket labels, empty for units
// labelled by name.
func (u TimeUnit) LabelFormat() string {
	s, err := u.strategy()
	if err != nil {
		return ""
	}
	return s.labelFormat
}

// Key formats the bucket key of t for unit.
func Key(unit TimeUnit, t time.Time) (string, error) {
	s, err := unit.strategy()
	if err != nil {
		return "", err
	}
	return s.keyOf(t), nil
}

func (s *unitStrategy) keyOf(t time.Time) string {
	if s.key != nil {
		return s.key(t)
	}
	return t.Format(s.layout)
}

// Label renders the display label of the bucket starting at t.
func Label(unit TimeUnit, t time.Time) (string, error) {
	s, err := unit.strategy()
	if err != nil {
		return "", err
	}
	return s.label(t), nil
}

// BeginOf returns the start of the unit containing t.
func BeginOf(unit TimeUnit, t time.Time) (time.Time, error) {
	s, err := unit.strategy()
	if err != nil {
		return time.Time{}, err
	}
	return s.beginOf(t), nil
}

// EndOf returns the last instant of the unit containing t. With truncate set the
// result stops at whole seconds (23:59:59); otherwise it is the last nanosecond.
func EndOf(unit TimeUnit, t time.Time, truncate bool) (time.Time, error) {
	s, err := unit.strategy()
	if err != nil {
		return time.Time{}, err
	}
	return s.endOf(t, truncate), nil
}

// Offset moves t by amount units.
//
// DAY_OF_WEEK offsets are clamped to the Monday..Sunday week of t and
// WEEK_OF_MONTH offsets are clamped to the weeks belonging to t's month.
func Offset(t time.Time, amount int, unit TimeUnit) (time.Time, error) {
	s, err := unit.strategy()
	if err != nil {
		return time.Time{}, err
	}
	return s.offset(t, amount), nil
}

// OffsetBeginOf moves t by amount units and returns the start of the unit reached.
func OffsetBeginOf(t time.Time, amount int, unit TimeUnit) (time.Time, error) {
	moved, err := Offset(t, amount, unit)
	if err != nil {
		return time.Time{}, err
	}
	return BeginOf(unit, moved)
}

// OffsetEndOf moves t by amount units and returns the end of the unit reached.
func OffsetEndOf(t time.Time, amount int, unit TimeUnit) (time.Time, error) {
	moved, err := Offset(t, amount, unit)
	if err != nil {
		return time.Time{}, err
	}
	return EndOf(unit, moved, false)
}
