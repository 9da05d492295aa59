// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selector resolves which descriptive sections of a
// ConfigurationRecord are active and extracts their fields.
package selector

import (
	"strings"

	"github.com/pdiddy/metadata-extender/pkg/types"
)

// membership decides which record keys belong to each section.
var membership = map[types.SectionName]func(key string) bool{
	types.SectionPhotographer: func(k string) bool { return strings.HasPrefix(k, types.PhotographerPrefix) },
	types.SectionClient:       func(k string) bool { return strings.HasPrefix(k, types.ClientPrefix) },
	types.SectionAbstract:     func(k string) bool { return k == types.KeyAbstract },
	types.SectionProcess:      func(k string) bool { return k == types.KeyProcess },
}

// Select returns the enabled sections of rec in document order. An enabled
// section carries every one of its fields in declared order, empty values
// included; a disabled section is absent.
func Select(rec types.ConfigurationRecord) []types.Section {
	var out []types.Section
	for _, name := range types.SectionNames {
		if !rec.Toggle(name) {
			continue
		}
		out = append(out, types.Section{
			Name:   name,
			Fields: fieldsOf(rec, membership[name]),
		})
	}
	return out
}

func fieldsOf(rec types.ConfigurationRecord, member func(string) bool) []types.Field {
	fields := []types.Field{}
	for _, f := range rec.Fields {
		if member(f.Key) {
			fields = append(fields, f)
		}
	}
	return fields
}
