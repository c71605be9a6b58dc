package internal

import (
	"fmt"

	specs "github.com/chrisconley/tally/specs"
)

// Tag identifies the single item produced by a single-dimensional statistic.
type Tag struct {
	code string
	name string
}

func NewTag(spec specs.TagSpec) (Tag, error) {
	if spec.Code == "" {
		return Tag{}, fmt.Errorf("tag code is required")
	}
	return Tag{code: spec.Code, name: spec.Name}, nil
}

func (t Tag) Code() string {
	return t.code
}

func (t Tag) Name() string {
	return t.name
}

// TagDictionary maps dimension keys to display names. Its keys are the complete
// set of dimensions reported by a multi-dimensional statistic, in insertion order.
type TagDictionary[D comparable] struct {
	keys  []D
	names map[D]string
}

func NewTagDictionary[D comparable]() TagDictionary[D] {
	return TagDictionary[D]{
		names: make(map[D]string),
	}
}

// Set adds key or renames it; a renamed key keeps its original position.
func (d *TagDictionary[D]) Set(key D, name string) {
	if d.names == nil {
		d.names = make(map[D]string)
	}
	if _, exists := d.names[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.names[key] = name
}

func (d TagDictionary[D]) Get(key D) (string, bool) {
	name, ok := d.names[key]
	return name, ok
}

func (d TagDictionary[D]) Has(key D) bool {
	_, ok := d.names[key]
	return ok
}

// Keys returns the dimension keys in insertion order.
func (d TagDictionary[D]) Keys() []D {
	keys := make([]D, len(d.keys))
	copy(keys, d.keys)
	return keys
}

func (d TagDictionary[D]) Len() int {
	return len(d.keys)
}

func (d TagDictionary[D]) clone() TagDictionary[D] {
	c := NewTagDictionary[D]()
	for _, k := range d.keys {
		c.Set(k, d.names[k])
	}
	return c
}
