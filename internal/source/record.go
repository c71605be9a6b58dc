package source

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Record is one input row: a JSON object whose fields are addressed with gjson
// paths such as "score", "student.class" or "tags.0".
type Record struct {
	raw string
}

func NewRecord(raw string) (Record, error) {
	if !gjson.Valid(raw) {
		return Record{}, fmt.Errorf("record is not valid JSON")
	}
	if !gjson.Parse(raw).IsObject() {
		return Record{}, fmt.Errorf("record must be a JSON object")
	}
	return Record{raw: raw}, nil
}

func (r Record) Raw() string {
	return r.raw
}

func (r Record) Get(path string) gjson.Result {
	return gjson.Get(r.raw, path)
}

// Value returns the field at path as a comparable string. Numbers keep their
// literal form so decimal aggregation stays exact; missing fields yield "".
func (r Record) Value(path string) string {
	result := r.Get(path)
	switch result.Type {
	case gjson.Number:
		return result.Raw
	case gjson.Null:
		return ""
	default:
		return result.String()
	}
}

// Time parses the field at path as a timestamp.
func (r Record) Time(path string) (time.Time, error) {
	result := r.Get(path)
	if !result.Exists() {
		return time.Time{}, fmt.Errorf("field %q is missing", path)
	}
	t, err := timeFromResult(result)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %q: %w", path, err)
	}
	return t, nil
}

// Times parses every path of paths, in order.
func (r Record) Times(paths []string) ([]time.Time, error) {
	times := make([]time.Time, len(paths))
	for i, path := range paths {
		t, err := r.Time(path)
		if err != nil {
			return nil, err
		}
		times[i] = t
	}
	return times, nil
}

func timeFromResult(result gjson.Result) (time.Time, error) {
	switch result.Type {
	case gjson.Number:
		return time.UnixMilli(result.Int()).UTC(), nil
	case gjson.String:
		return ParseTimestamp(result.Str)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp %s", result.Raw)
	}
}
