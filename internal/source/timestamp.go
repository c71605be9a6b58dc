package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC
// wall-clock time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02 15",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseTimestamp reads a timestamp in one of the accepted layouts or as epoch
// milliseconds.
//
// Timestamps are handled as naive wall-clock values: a zoned input keeps its
// clock reading and is moved to UTC without conversion, so "10:00+08:00" and
// "10:00" land in the same bucket.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	if millis, err := strconv.ParseInt(value, 10, 64); err == nil && len(value) > 8 {
		return time.UnixMilli(millis).UTC(), nil
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return wallClock(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
