// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metadata-extender/pkg/types"
)

func sectionNames(sections []types.Section) []types.SectionName {
	names := make([]types.SectionName, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}

func TestSelect_Toggles(t *testing.T) {
	tests := []struct {
		name    string
		toggles types.SectionToggles
		want    []types.SectionName
	}{
		{
			name:    "all enabled",
			toggles: types.SectionToggles{Photographer: true, Client: true, Abstract: true, Process: true},
			want:    []types.SectionName{types.SectionPhotographer, types.SectionClient, types.SectionAbstract, types.SectionProcess},
		},
		{
			name:    "photographer disabled",
			toggles: types.SectionToggles{Client: true, Abstract: true, Process: true},
			want:    []types.SectionName{types.SectionClient, types.SectionAbstract, types.SectionProcess},
		},
		{
			name:    "only process",
			toggles: types.SectionToggles{Process: true},
			want:    []types.SectionName{types.SectionProcess},
		},
		{
			name:    "none",
			toggles: types.SectionToggles{},
			want:    []types.SectionName{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := types.NewConfigurationRecord()
			rec.Toggles = tt.toggles
			assert.Equal(t, tt.want, sectionNames(Select(rec)))
		})
	}
}

func TestSelect_Fields(t *testing.T) {
	rec := types.NewConfigurationRecord()
	require.NoError(t, rec.Set("p_Name", "Pete"))
	require.NoError(t, rec.Set("c_Email", "client@example.com"))
	require.NoError(t, rec.Set("Abstract", "A set of photos."))

	sections := Select(rec)
	require.Len(t, sections, 4)

	photographer := sections[0]
	require.Len(t, photographer.Fields, 8)
	assert.Equal(t, "p_Organization", photographer.Fields[0].Key)
	assert.Equal(t, types.Field{Key: "p_Name", Value: "Pete"}, photographer.Fields[1])
	assert.Equal(t, "p_Email", photographer.Fields[7].Key)
	for _, f := range photographer.Fields {
		assert.Contains(t, f.Key, "p_")
	}

	client := sections[1]
	require.Len(t, client.Fields, 8)
	assert.Equal(t, types.Field{Key: "c_Email", Value: "client@example.com"}, client.Fields[7])

	assert.Equal(t, []types.Field{{Key: "Abstract", Value: "A set of photos."}}, sections[2].Fields)
	// Empty values are still selected.
	assert.Equal(t, []types.Field{{Key: "Process", Value: ""}}, sections[3].Fields)
}
