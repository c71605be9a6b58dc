package internal

import (
	"fmt"

	specs "github.com/chrisconley/tally/specs"
)

// StatisticsItem is one aggregated value attributed to a tag.
type StatisticsItem struct {
	tagCode string
	tagName string
	value   string
}

func NewStatisticsItem(spec specs.StatisticsItemSpec) (StatisticsItem, error) {
	if spec.TagCode == "" {
		return StatisticsItem{}, fmt.Errorf("tag code is required")
	}
	if spec.Value == "" {
		return StatisticsItem{}, fmt.Errorf("value is required")
	}
	return StatisticsItem{tagCode: spec.TagCode, tagName: spec.TagName, value: spec.Value}, nil
}

func (i StatisticsItem) TagCode() string {
	return i.tagCode
}

func (i StatisticsItem) TagName() string {
	return i.tagName
}

func (i StatisticsItem) Value() string {
	return i.value
}

func (i StatisticsItem) ToSpec() specs.StatisticsItemSpec {
	return specs.StatisticsItemSpec{TagCode: i.tagCode, TagName: i.tagName, Value: i.value}
}

func newStatisticsItems(specItems []specs.StatisticsItemSpec) ([]StatisticsItem, error) {
	items := make([]StatisticsItem, len(specItems))
	for i, s := range specItems {
		item, err := NewStatisticsItem(s)
		if err != nil {
			return nil, fmt.Errorf("invalid item %d: %w", i, err)
		}
		items[i] = item
	}
	return items, nil
}

func itemsToSpec(items []StatisticsItem) []specs.StatisticsItemSpec {
	result := make([]specs.StatisticsItemSpec, len(items))
	for i, item := range items {
		result[i] = item.ToSpec()
	}
	return result
}

func concatItems(a, b []StatisticsItem) []StatisticsItem {
	items := make([]StatisticsItem, 0, len(a)+len(b))
	items = append(items, a...)
	return append(items, b...)
}

// TotalStatisticsResult is the flat result of a total statistic.
type TotalStatisticsResult struct {
	items []StatisticsItem
}

func NewTotalStatisticsResult(spec specs.TotalStatisticsResultSpec) (TotalStatisticsResult, error) {
	items, err := newStatisticsItems(spec.Items)
	if err != nil {
		return TotalStatisticsResult{}, err
	}
	return TotalStatisticsResult{items: items}, nil
}

func (r TotalStatisticsResult) Items() []StatisticsItem {
	return concatItems(r.items, nil)
}

// Merge returns r's items followed by other's items.
func (r TotalStatisticsResult) Merge(other TotalStatisticsResult) TotalStatisticsResult {
	return TotalStatisticsResult{items: concatItems(r.items, other.items)}
}

func (r TotalStatisticsResult) ToSpec() specs.TotalStatisticsResultSpec {
	return specs.TotalStatisticsResultSpec{Items: itemsToSpec(r.items)}
}

// CycleBucket holds the items computed for one interval.
type CycleBucket struct {
	key   string
	label string
	items []StatisticsItem
}

func NewCycleBucket(spec specs.CycleBucketSpec) (CycleBucket, error) {
	if spec.Key == "" {
		return CycleBucket{}, fmt.Errorf("key is required")
	}
	items, err := newStatisticsItems(spec.Items)
	if err != nil {
		return CycleBucket{}, err
	}
	return CycleBucket{key: spec.Key, label: spec.Label, items: items}, nil
}

func (b CycleBucket) Key() string {
	return b.key
}

func (b CycleBucket) Label() string {
	return b.label
}

func (b CycleBucket) Items() []StatisticsItem {
	return concatItems(b.items, nil)
}

func (b CycleBucket) ToSpec() specs.CycleBucketSpec {
	return specs.CycleBucketSpec{Key: b.key, Label: b.label, Items: itemsToSpec(b.items)}
}

// CycleStatisticsResult is the bucketed result of a cyclical statistic.
type CycleStatisticsResult struct {
	buckets []CycleBucket
}

func NewCycleStatisticsResult(spec specs.CycleStatisticsResultSpec) (CycleStatisticsResult, error) {
	buckets := make([]CycleBucket, len(spec))
	seen := make(map[string]struct{}, len(spec))
	for i, s := range spec {
		bucket, err := NewCycleBucket(s)
		if err != nil {
			return CycleStatisticsResult{}, fmt.Errorf("invalid bucket %d: %w", i, err)
		}
		if _, dup := seen[bucket.key]; dup {
			return CycleStatisticsResult{}, fmt.Errorf("invalid bucket %d: duplicate key %q", i, bucket.key)
		}
		seen[bucket.key] = struct{}{}
		buckets[i] = bucket
	}
	return CycleStatisticsResult{buckets: buckets}, nil
}

func (r CycleStatisticsResult) Buckets() []CycleBucket {
	buckets := make([]CycleBucket, len(r.buckets))
	copy(buckets, r.buckets)
	return buckets
}

// Bucket returns the bucket with the given key.
func (r CycleStatisticsResult) Bucket(key string) (CycleBucket, bool) {
	for _, b := range r.buckets {
		if b.key == key {
			return b, true
		}
	}
	return CycleBucket{}, false
}

// Merge unions r and other by bucket key.
//
// Buckets in both results keep r's position and label; their items are r's
// followed by other's, without de-duplicating tags. Buckets only in other are
// appended in other's order.
func (r CycleStatisticsResult) Merge(other CycleStatisticsResult) CycleStatisticsResult {
	index := make(map[string]int, len(other.buckets))
	for i, b := range other.buckets {
		index[b.key] = i
	}

	merged := make([]CycleBucket, 0, len(r.buckets)+len(other.buckets))
	used := make(map[string]struct{}, len(r.buckets))
	for _, b := range r.buckets {
		items := concatItems(b.items, nil)
		if j, ok := index[b.key]; ok {
			items = concatItems(b.items, other.buckets[j].items)
		}
		merged = append(merged, CycleBucket{key: b.key, label: b.label, items: items})
		used[b.key] = struct{}{}
	}
	for _, b := range other.buckets {
		if _, ok := used[b.key]; ok {
			continue
		}
		merged = append(merged, CycleBucket{key: b.key, label: b.label, items: concatItems(b.items, nil)})
	}

	return CycleStatisticsResult{buckets: merged}
}

func (r CycleStatisticsResult) ToSpec() specs.CycleStatisticsResultSpec {
	result := make(specs.CycleStatisticsResultSpec, len(r.buckets))
	for i, b := range r.buckets {
		result[i] = b.ToSpec()
	}
	return result
}

// MergeCycleResults implements specs.MergeCycle.
func MergeCycleResults(a, b specs.CycleStatisticsResultSpec) (specs.CycleStatisticsResultSpec, error) {
	left, err := NewCycleStatisticsResult(a)
	if err != nil {
		return nil, fmt.Errorf("invalid first result: %w", err)
	}
	right, err := NewCycleStatisticsResult(b)
	if err != nil {
		return nil, fmt.Errorf("invalid second result: %w", err)
	}
	return left.Merge(right).ToSpec(), nil
}

// MergeTotalResults implements specs.MergeTotal.
func MergeTotalResults(a, b specs.TotalStatisticsResultSpec) (specs.TotalStatisticsResultSpec, error) {
	left, err := NewTotalStatisticsResult(a)
	if err != nil {
		return specs.TotalStatisticsResultSpec{}, fmt.Errorf("invalid first result: %w", err)
	}
	right, err := NewTotalStatisticsResult(b)
	if err != nil {
		return specs.TotalStatisticsResultSpec{}, fmt.Errorf("invalid second result: %w", err)
	}
	return left.Merge(right).ToSpec(), nil
}
