// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name   string
		id     uint16
		want   string
		wantOK bool
	}{
		{"make", 0x010f, "Make", true},
		{"exif pointer", ExifIFDPointer, "ExifOffset", true},
		{"gps pointer", GPSIFDPointer, "GPSInfo", true},
		{"date time original", 0x9003, "DateTimeOriginal", true},
		{"maker note", 0x927c, "MakerNote", true},
		{"unknown", 0xfffe, "", false},
		{"zero", 0x0000, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Name(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// xmlName matches the subset of XML names used for element tags.
var xmlName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

func TestNamesAreElementNames(t *testing.T) {
	for _, e := range Entries() {
		assert.Regexp(t, xmlName, e.Name, "tag 0x%04x", e.ID)
	}
}

func TestEntriesSorted(t *testing.T) {
	entries := Entries()
	assert.Len(t, entries, Len())
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].ID, entries[i].ID)
	}
}
