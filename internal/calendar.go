package internal

import (
	"fmt"
	"time"
)

var monthDays = [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days of month in year.
func DaysIn(month time.Month, year int) int {
	if month == time.February && isLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

// isoWeekday numbers weekdays Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// QuarterOf returns the quarter (1..4) of t's month.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

func dayEnd(year int, month time.Month, day int, loc *time.Location, truncate bool) time.Time {
	nsec := 999999999
	if truncate {
		nsec = 0
	}
	return time.Date(year, month, day, 23, 59, 59, nsec, loc)
}

func beginOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func endOfHour(t time.Time, truncate bool) time.Time {
	nsec := 999999999
	if truncate {
		nsec = 0
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 59, 59, nsec, t.Location())
}

func beginOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time, truncate bool) time.Time {
	return dayEnd(t.Year(), t.Month(), t.Day(), t.Location(), truncate)
}

func beginOfWeek(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()-(isoWeekday(t)-1), 0, 0, 0, 0, t.Location())
}

func endOfWeek(t time.Time, truncate bool) time.Time {
	sunday := time.Date(t.Year(), t.Month(), t.Day()+(7-isoWeekday(t)), 0, 0, 0, 0, t.Location())
	return endOfDay(sunday, truncate)
}

func beginOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time, truncate bool) time.Time {
	return dayEnd(t.Year(), t.Month(), DaysIn(t.Month(), t.Year()), t.Location(), truncate)
}

func beginOfQuarter(t time.Time) time.Time {
	first := time.Month((QuarterOf(t)-1)*3 + 1)
	return time.Date(t.Year(), first, 1, 0, 0, 0, 0, t.Location())
}

func endOfQuarter(t time.Time, truncate bool) time.Time {
	last := time.Month(QuarterOf(t) * 3)
	return dayEnd(t.Year(), last, DaysIn(last, t.Year()), t.Location(), truncate)
}

func beginOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func endOfYear(t time.Time, truncate bool) time.Time {
	return dayEnd(t.Year(), time.December, 31, t.Location(), truncate)
}

// firstMondayOfMonth returns the day-of-month (1..7) of the first Monday in t's month.
func firstMondayOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return 1 + (8-isoWeekday(first))%7
}

// lastSundayOfMonth returns the day-of-month of the last Sunday in t's month.
func lastSundayOfMonth(t time.Time) int {
	days := DaysIn(t.Month(), t.Year())
	last := time.Date(t.Year(), t.Month(), days, 0, 0, 0, 0, t.Location())
	return days - isoWeekday(last)%7
}

// MondayOfFirstWeekOfMonth returns the start of the first week that belongs to
// t's month: its first Monday. Days before that Monday form a partial week whose
// start is pulled in to day 1 of the month.
func MondayOfFirstWeekOfMonth(t time.Time) time.Time {
	monday := firstMondayOfMonth(t)
	if t.Day() < monday {
		return beginOfMonth(t)
	}
	return time.Date(t.Year(), t.Month(), monday, 0, 0, 0, 0, t.Location())
}

// SundayOfLastWeekOfMonth returns the end of the last week that belongs to t's
// month: its last Sunday. Days after that Sunday form a partial week whose end is
// pulled in to the last day of the month.
func SundayOfLastWeekOfMonth(t time.Time, truncate bool) time.Time {
	sunday := lastSundayOfMonth(t)
	if t.Day() > sunday {
		return endOfMonth(t, truncate)
	}
	return dayEnd(t.Year(), t.Month(), sunday, t.Location(), truncate)
}

func beginOfWeekOfMonth(t time.Time) time.Time {
	begin := beginOfWeek(t)
	if floor := MondayOfFirstWeekOfMonth(t); begin.Before(floor) {
		return floor
	}
	return begin
}

func endOfWeekOfMonth(t time.Time, truncate bool) time.Time {
	end := endOfWeek(t, truncate)
	if ceiling := SundayOfLastWeekOfMonth(t, truncate); end.After(ceiling) {
		return ceiling
	}
	return end
}

// weekOfMonth counts the Mondays of t's month from MondayOfFirstWeekOfMonth,
// starting at 1. Days before the first Monday are in week 1.
func weekOfMonth(t time.Time) int {
	return (t.Day()-MondayOfFirstWeekOfMonth(t).Day())/7 + 1
}

func weekLabel(t time.Time) string {
	return fmt.Sprintf("%d月第%d周", int(t.Month()), weekOfMonth(t))
}

// addMonths adds calendar months keeping the day of month, clamped to the length
// of the target month (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	total := t.Year()*12 + int(t.Month()) - 1 + n
	year := total / 12
	if total%12 < 0 {
		year--
	}
	month := time.Month(total - year*12 + 1)
	day := t.Day()
	if days := DaysIn(month, year); day > days {
		day = days
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// addHours moves the wall clock by n hours.
func addHours(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+n, t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// offsetDayOfWeek moves t by n days without leaving t's Monday..Sunday week.
func offsetDayOfWeek(t time.Time, n int) time.Time {
	wd := isoWeekday(t)
	switch {
	case n > 7-wd:
		return t.AddDate(0, 0, 7-wd)
	case n < -(wd - 1):
		return t.AddDate(0, 0, -(wd - 1))
	default:
		return t.AddDate(0, 0, n)
	}
}

// offsetWeekOfMonth moves t by n weeks without leaving the weeks of t's month.
func offsetWeekOfMonth(t time.Time, n int) time.Time {
	switch {
	case n > 0:
		moved := t.AddDate(0, 0, 7*n)
		if limit := SundayOfLastWeekOfMonth(t, false); moved.After(limit) {
			return limit
		}
		return moved
	case n < 0:
		moved := t.AddDate(0, 0, 7*n)
		if limit := MondayOfFirstWeekOfMonth(t); moved.Before(limit) {
			return limit
		}
		return moved
	default:
		return t
	}
}
