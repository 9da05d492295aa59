// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metadata-extender/internal/selector"
	"github.com/pdiddy/metadata-extender/pkg/types"
)

func fixedAssembler() *Assembler {
	return &Assembler{Now: func() time.Time {
		return time.Date(2014, time.June, 1, 12, 0, 0, 0, time.Local)
	}}
}

func sampleTags() *types.TagMap {
	m := types.NewTagMap()
	m.Set("Make", types.TextValue("Canon"))
	m.Set("ExposureTime", types.RationalValue(1, 250))
	m.Set("GPSInfo", types.NestedValue(types.NewTagMap()))
	m.Set("MakerNote", types.BinaryValue([]byte{1, 2, 3}))
	m.Set("BitsPerSample", types.TupleValue(types.IntValue(8), types.IntValue(8), types.IntValue(8)))
	return m
}

func TestAssemble_Structure(t *testing.T) {
	rec := types.NewConfigurationRecord()
	require.NoError(t, rec.Set("p_Name", "Pete"))
	require.NoError(t, rec.SetToggle(types.SectionClient, false))

	doc := fixedAssembler().Assemble("a.jpg", sampleTags(), selector.Select(rec))

	assert.Equal(t, RootElement, doc.Root().Tag)
	assert.Equal(t, []string{"header", "exif", "photographer", "abstract", "process-steps"}, doc.Nodes())
	assert.Equal(t, "a.jpg", doc.ImageName())
	assert.Equal(t, "06012014", doc.PubDate())

	assert.Equal(t, []types.Field{
		{Key: "Make", Value: "Canon"},
		{Key: "ExposureTime", Value: "1/250"},
		{Key: "BitsPerSample", Value: "(8, 8, 8)"},
	}, doc.Exif())

	photographer, ok := doc.Section(types.SectionPhotographer)
	require.True(t, ok)
	require.Len(t, photographer, 8)
	assert.Equal(t, types.Field{Key: "p_Name", Value: "Pete"}, photographer[1])
	assert.Equal(t, types.Field{Key: "p_Email", Value: ""}, photographer[7])

	_, ok = doc.Section(types.SectionClient)
	assert.False(t, ok)
}

func TestAssemble_NoSectionsNoTags(t *testing.T) {
	doc := fixedAssembler().Assemble("b.jpg", nil, nil)

	assert.Equal(t, []string{"header", "exif"}, doc.Nodes())
	assert.Empty(t, doc.Exif())
}

func TestAssemble_DefaultClock(t *testing.T) {
	before := time.Now().Local().Format(PubDateLayout)
	doc := NewAssembler().Assemble("c.jpg", nil, nil)
	after := time.Now().Local().Format(PubDateLayout)

	assert.Contains(t, []string{before, after}, doc.PubDate())
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.xml")

	rec := types.NewConfigurationRecord()
	require.NoError(t, rec.Set("Abstract", "Line one\nLine two & <more>"))
	doc := fixedAssembler().Assemble("a.jpg", sampleTags(), selector.Select(rec))

	require.NoError(t, Write(doc, path, DefaultIndent))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, text, "\n  <header>\n    <image-name>a.jpg</image-name>")
	assert.Contains(t, text, "&amp; &lt;more&gt;")

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Nodes(), got.Nodes())
	assert.Equal(t, doc.Exif(), got.Exif())
	abstract, ok := got.Section(types.SectionAbstract)
	require.True(t, ok)
	assert.Equal(t, []types.Field{{Key: "Abstract", Value: "Line one\nLine two & <more>"}}, abstract)
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.xml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale ", 1000)), 0o644))

	doc := fixedAssembler().Assemble("a.jpg", nil, nil)
	require.NoError(t, Write(doc, path, DefaultIndent))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "stale")
}

func TestWrite_Errors(t *testing.T) {
	dir := t.TempDir()
	asDir := filepath.Join(dir, "a.xml")
	require.NoError(t, os.Mkdir(asDir, 0o755))

	tests := []struct {
		name string
		path string
	}{
		{"destination is a directory", asDir},
		{"missing parent", filepath.Join(dir, "missing", "b.xml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fixedAssembler().Assemble("a.jpg", nil, nil)
			err := Write(doc, tt.path, DefaultIndent)
			var werr *types.WriteError
			require.True(t, errors.As(err, &werr), "want WriteError, got %v", err)
			assert.Equal(t, tt.path, werr.Path)
		})
	}
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	wrongRoot := filepath.Join(dir, "other.xml")
	require.NoError(t, os.WriteFile(wrongRoot, []byte("<paper/>"), 0o644))

	_, err := Read(filepath.Join(dir, "missing.xml"))
	assert.Error(t, err)
	_, err = Read(wrongRoot)
	assert.ErrorContains(t, err, "root element")
}
