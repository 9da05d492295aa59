// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package templates

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metadata-extender/pkg/types"
)

func sampleRecord(t *testing.T) types.ConfigurationRecord {
	t.Helper()
	rec := types.NewConfigurationRecord()
	require.NoError(t, rec.Set("p_Organization", "Studio North"))
	require.NoError(t, rec.Set("p_Email", "pete@example.com"))
	require.NoError(t, rec.Set("c_Name", "O'Brien & Sons"))
	require.NoError(t, rec.Set("Abstract", "Line one\nLine two: \"quoted\""))
	require.NoError(t, rec.SetToggle(types.SectionClient, false))
	require.NoError(t, rec.SetToggle(types.SectionProcess, false))
	return rec
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"t.yaml", FormatYAML},
		{"t.yml", FormatYAML},
		{"t.txt", FormatYAML},
		{"t", FormatYAML},
		{"t.toml", FormatTOML},
		{"T.TOML", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFor(tt.path))
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"studio.yaml", "studio.toml", "studio.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := sampleRecord(t)

			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveLoad_NewRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")
	require.NoError(t, Save(path, types.NewConfigurationRecord()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.NewConfigurationRecord(), got)
}

func TestEncode_YAMLShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleRecord(t), FormatYAML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "version: 1\n"))
	assert.Contains(t, out, "  client: false\n")
	assert.Contains(t, out, "- key: p_Organization\n")
}

func encodeFile(t *testing.T, mutate func(f *File)) string {
	t.Helper()
	f := toFile(types.NewConfigurationRecord())
	mutate(&f)
	data, err := yaml.Marshal(f)
	require.NoError(t, err)
	return string(data)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		wantKey string
	}{
		{
			name:   "empty",
			format: FormatYAML,
			input:  "",
		},
		{
			name:    "unsupported version",
			format:  FormatYAML,
			input:   encodeFile(t, func(f *File) { f.Version = 7 }),
			wantKey: "version",
		},
		{
			name:   "unknown document key",
			format: FormatYAML,
			input:  encodeFile(t, func(*File) {}) + "gallery: true\n",
		},
		{
			name:    "missing toggle",
			format:  FormatYAML,
			input:   encodeFile(t, func(f *File) { f.Sections.Abstract = nil }),
			wantKey: "sections.abstract",
		},
		{
			name:    "unknown field key",
			format:  FormatYAML,
			input:   encodeFile(t, func(f *File) { f.Fields[5].Key = "p_Postcode" }),
			wantKey: "p_Postcode",
		},
		{
			name:    "missing field key",
			format:  FormatYAML,
			input:   encodeFile(t, func(f *File) { f.Fields = f.Fields[:17] }),
			wantKey: "Process",
		},
		{
			name:   "unknown toml key",
			format: FormatTOML,
			input:  "version = 1\nextra = 2\n",
		},
		{
			name:   "malformed toml",
			format: FormatTOML,
			input:  "version = = 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			var cerr *types.ConfigurationError
			require.True(t, errors.As(err, &cerr), "want ConfigurationError, got %v", err)
			assert.Equal(t, tt.wantKey, cerr.Key)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: 2\n"), 0o644))
	_, err = Load(bad)
	var cerr *types.ConfigurationError
	assert.True(t, errors.As(err, &cerr))
}

func TestSave_RejectsInvalidRecord(t *testing.T) {
	rec := types.NewConfigurationRecord()
	rec.Fields = rec.Fields[:3]

	path := filepath.Join(t.TempDir(), "t.yaml")
	err := Save(path, rec)
	var cerr *types.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.NoFileExists(t, path)
}
