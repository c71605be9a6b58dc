package specs

import "fmt"

// ReportSpec describes several statistics computed over the same records and,
// when Unit is set, the same time buckets. Their results are merged in
// declaration order.
//
// Reports are read from JSON, YAML or TOML files:
//
//	unit: month
//	begin: "2023-01-01"
//	end: "2023-12-31"
//	timeFields: [examAt]
//	statistics:
//	  - mode: avg
//	    value: score
//	    tag: {code: avgScore, name: Average score}
type ReportSpec struct {
	// Optional report name, used in logs.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Bucketing unit code. Empty computes total statistics instead of cyclical ones.
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty" toml:"unit,omitempty"`

	// Range start. When both Begin and End are empty the range is derived from
	// Last relative to the current time.
	Begin string `json:"begin,omitempty" yaml:"begin,omitempty" toml:"begin,omitempty"`

	// Range end.
	End string `json:"end,omitempty" yaml:"end,omitempty" toml:"end,omitempty"`

	// Number of units to look back (negative) or ahead (positive) from now when no
	// explicit range is given. Zero means the current unit only.
	Last int `json:"last,omitempty" yaml:"last,omitempty" toml:"last,omitempty"`

	// Truncate sub-second precision of the range and bucket ends.
	Truncate bool `json:"truncate,omitempty" yaml:"truncate,omitempty" toml:"truncate,omitempty"`

	// Paths of record time fields tested against each bucket.
	TimeFields []string `json:"timeFields,omitempty" yaml:"timeFields,omitempty" toml:"timeFields,omitempty"`

	// "and" or "or"; defaults to "and".
	Match string `json:"match,omitempty" yaml:"match,omitempty" toml:"match,omitempty"`

	Statistics []StatisticSpec `json:"statistics" yaml:"statistics" toml:"statistics"`
}

// StatisticSpec describes one statistic of a report.
//
// A statistic is either single-dimensional (Tag set) or multi-dimensional
// (Dimension and Tags set).
type StatisticSpec struct {
	// Aggregation mode: "sum", "avg", "count" or "distinctCount".
	Mode string `json:"mode" yaml:"mode" toml:"mode"`

	// Path of the record field holding the aggregated value. Optional for "count".
	Value string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`

	// Tag of the single item produced by a single-dimensional statistic.
	Tag *TagSpec `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty"`

	// Path of the record field holding the dimension key.
	Dimension string `json:"dimension,omitempty" yaml:"dimension,omitempty" toml:"dimension,omitempty"`

	// Tag dictionary of a multi-dimensional statistic: the complete, ordered set
	// of dimension keys reported. Keys found in records but missing here are
	// dropped; entries without records report "0".
	Tags []TagSpec `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
}

// TagSpec names a result item.
type TagSpec struct {
	Code string `json:"code" yaml:"code" toml:"code"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

// Multidimensional reports whether the statistic groups records by dimension.
func (s StatisticSpec) Multidimensional() bool {
	return s.Dimension != "" || len(s.Tags) > 0
}

// Describe returns a short identifier of the statistic for logs and errors.
func (s StatisticSpec) Describe() string {
	switch {
	case s.Multidimensional():
		return fmt.Sprintf("%s(%s) by %s", s.Mode, s.Value, s.Dimension)
	case s.Tag != nil:
		return fmt.Sprintf("%s(%s) as %s", s.Mode, s.Value, s.Tag.Code)
	default:
		return fmt.Sprintf("%s(%s)", s.Mode, s.Value)
	}
}
