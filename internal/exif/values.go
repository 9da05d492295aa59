// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exif

import (
	"strings"

	"github.com/rwcarlsen/goexif/tiff"

	"github.com/pdiddy/metadata-extender/pkg/types"
)

// tagValue converts a decoded IFD entry into a raw TagValue. Byte-typed
// and undefined entries stay binary; no attempt is made to interpret them.
func tagValue(t *tiff.Tag) types.TagValue {
	switch t.Type {
	case tiff.DTAscii:
		s, err := t.StringVal()
		if err != nil {
			s = string(t.Val)
		}
		return types.TextValue(strings.TrimRight(s, "\x00"))

	case tiff.DTByte, tiff.DTSByte, tiff.DTUndefined:
		return types.BinaryValue(append([]byte(nil), t.Val...))

	case tiff.DTShort, tiff.DTLong, tiff.DTSShort, tiff.DTSLong:
		return collect(t, func(i int) (types.TagValue, error) {
			n, err := t.Int64(i)
			return types.IntValue(n), err
		})

	case tiff.DTRational, tiff.DTSRational:
		return collect(t, func(i int) (types.TagValue, error) {
			num, den, err := t.Rat2(i)
			return types.RationalValue(num, den), err
		})

	case tiff.DTFloat, tiff.DTDouble:
		return collect(t, func(i int) (types.TagValue, error) {
			f, err := t.Float(i)
			return types.FloatValue(f), err
		})
	}
	return types.BinaryValue(append([]byte(nil), t.Val...))
}

// collect reads every component of t. A single component is returned as
// is; several become a tuple.
func collect(t *tiff.Tag, at func(i int) (types.TagValue, error)) types.TagValue {
	items := make([]types.TagValue, 0, t.Count)
	for i := 0; i < int(t.Count); i++ {
		v, err := at(i)
		if err != nil {
			break
		}
		items = append(items, v)
	}
	if len(items) == 1 {
		return items[0]
	}
	return types.TupleValue(items...)
}
