// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"strings"
)

// TagKind classifies the raw value of an embedded tag.
type TagKind string

const (
	TagText     TagKind = "text"
	TagNumber   TagKind = "number"
	TagRational TagKind = "rational"
	TagTuple    TagKind = "tuple"
	TagNested   TagKind = "nested"
	TagBinary   TagKind = "binary"
)

// TagValue is the raw value of one embedded tag. Only the members matching
// Kind are meaningful.
type TagValue struct {
	Kind TagKind

	Text  string
	Int   int64
	Float float64
	// IsFloat selects Float over Int for TagNumber values.
	IsFloat bool
	Num     int64
	Den     int64
	Items   []TagValue
	Nested  *TagMap
	Bytes   []byte
}

// TextValue returns a text tag value.
func TextValue(s string) TagValue { return TagValue{Kind: TagText, Text: s} }

// IntValue returns an integer tag value.
func IntValue(n int64) TagValue { return TagValue{Kind: TagNumber, Int: n} }

// FloatValue returns a floating point tag value.
func FloatValue(f float64) TagValue { return TagValue{Kind: TagNumber, Float: f, IsFloat: true} }

// RationalValue returns a num/den tag value.
func RationalValue(num, den int64) TagValue { return TagValue{Kind: TagRational, Num: num, Den: den} }

// TupleValue returns a tag value holding several scalar items.
func TupleValue(items ...TagValue) TagValue { return TagValue{Kind: TagTuple, Items: items} }

// NestedValue returns a tag value holding a sub-block of tags.
func NestedValue(m *TagMap) TagValue { return TagValue{Kind: TagNested, Nested: m} }

// BinaryValue returns a raw byte-sequence tag value.
func BinaryValue(b []byte) TagValue { return TagValue{Kind: TagBinary, Bytes: b} }

// IsScalar reports whether the value has a textual rendering. Nested
// structures and byte sequences are not scalar.
func (v TagValue) IsScalar() bool {
	switch v.Kind {
	case TagText, TagNumber, TagRational:
		return true
	case TagTuple:
		for _, it := range v.Items {
			if !it.IsScalar() {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value as text. Numbers are decimal, rationals are
// "num/den" and tuples are "(a, b, c)".
func (v TagValue) String() string {
	switch v.Kind {
	case TagText:
		return v.Text
	case TagNumber:
		if v.IsFloat {
			return strconv.FormatFloat(v.Float, 'g', -1, 64)
		}
		return strconv.FormatInt(v.Int, 10)
	case TagRational:
		return strconv.FormatInt(v.Num, 10) + "/" + strconv.FormatInt(v.Den, 10)
	case TagTuple:
		parts := make([]string, len(v.Items))
		for i, it := range v.Items {
			parts[i] = it.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TagNested:
		return "<nested>"
	case TagBinary:
		return "<binary>"
	}
	return ""
}

// TagMap maps tag names to raw values, keeping first-insertion order.
// The zero value is ready to use.
type TagMap struct {
	names  []string
	values map[string]TagValue
}

// NewTagMap returns an empty TagMap.
func NewTagMap() *TagMap { return &TagMap{} }

// Set stores v under name. An existing name keeps its position.
func (m *TagMap) Set(name string, v TagValue) {
	if m.values == nil {
		m.values = make(map[string]TagValue)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = v
}

// Get returns the value stored under name.
func (m *TagMap) Get(name string) (TagValue, bool) {
	if m == nil {
		return TagValue{}, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of tags.
func (m *TagMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the tag names in insertion order.
func (m *TagMap) Names() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

// Scalars returns a new TagMap with only the scalar entries, in the same
// order.
func (m *TagMap) Scalars() *TagMap {
	out := NewTagMap()
	if m == nil {
		return out
	}
	for _, name := range m.names {
		if v := m.values[name]; v.IsScalar() {
			out.Set(name, v)
		}
	}
	return out
}
