// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metadata-extender/internal/document"
	"github.com/pdiddy/metadata-extender/internal/exif/exiftest"
	"github.com/pdiddy/metadata-extender/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestTemplateAndGenerate(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "studio.yaml")
	abstract := filepath.Join(dir, "abstract.txt")
	require.NoError(t, os.WriteFile(abstract, []byte("Morning light.\nShot on film.\n"), 0o644))

	images := filepath.Join(dir, "photos")
	require.NoError(t, os.Mkdir(images, 0o755))
	data, err := exiftest.JPEG(exiftest.TIFF([]exiftest.Entry{exiftest.ASCII(0x010f, "Leica")}))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(images, "a.jpg"), data, 0o644))

	out, err := execute(t, "template", "new", tpl)
	require.NoError(t, err)
	assert.Contains(t, out, "created:")

	_, err = execute(t, "template", "new", tpl)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "template", "set", tpl, "p_Name=Pete", "Abstract=@"+abstract)
	require.NoError(t, err)
	_, err = execute(t, "template", "set", tpl, "p_Fax=555")
	assert.Error(t, err)

	_, err = execute(t, "template", "toggle", tpl, "client", "off")
	require.NoError(t, err)
	_, err = execute(t, "template", "toggle", tpl, "gallery", "off")
	assert.ErrorContains(t, err, "unknown section")

	out, err = execute(t, "template", "show", tpl)
	require.NoError(t, err)
	assert.Contains(t, out, "client         off")
	assert.Contains(t, out, "p_Name           Pete")

	out, err = execute(t, "generate", images, "--template", tpl)
	require.NoError(t, err)
	assert.Contains(t, out, "found 1 image(s)")
	assert.Contains(t, out, "wrote: a.xml")

	doc, err := document.Read(filepath.Join(images, "a.xml"))
	require.NoError(t, err)
	assert.Equal(t, []types.Field{{Key: "Make", Value: "Leica"}}, doc.Exif())
	_, hasClient := doc.Section(types.SectionClient)
	assert.False(t, hasClient)
	abstractFields, ok := doc.Section(types.SectionAbstract)
	require.True(t, ok)
	assert.Equal(t, "Morning light.\nShot on film.", abstractFields[0].Value)

	out, err = execute(t, "inspect", "--document", filepath.Join(images, "a.xml"))
	require.NoError(t, err)
	assert.Contains(t, out, "image-name: a.jpg")
	assert.NotContains(t, out, "client:")
}

func TestInspectAndTags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	data, err := exiftest.JPEG(exiftest.TIFF([]exiftest.Entry{
		exiftest.ASCII(0x010f, "Canon"),
		exiftest.Undefined(0x927c, []byte{1, 2, 3, 4, 5}),
	}))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, "inspect", "--document=false", "--all=false", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Make")
	assert.Contains(t, out, "Canon")
	assert.NotContains(t, out, "MakerNote")

	out, err = execute(t, "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "0x010f  Make\n")
}

func TestGenerate_EmptyDirectory(t *testing.T) {
	out, err := execute(t, "generate", t.TempDir(), "--template", "")
	require.NoError(t, err)
	assert.Contains(t, out, "found 0 image(s)")
	assert.Contains(t, out, "no images to process")
}

func TestConfigFileLoggedAfterLoggingSetup(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "false"))
		require.NoError(t, rootCmd.PersistentFlags().Set("config", ""))
	})
	cfg := filepath.Join(t.TempDir(), "metadata-extender.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_level: warn\n"), 0o644))

	tests := []struct {
		name    string
		verbose string
		want    bool
	}{
		{name: "quiet", verbose: "--verbose=false", want: false},
		{name: "verbose", verbose: "--verbose=true", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "--config", cfg, tt.verbose, "version")
			require.NoError(t, err)
			assert.Contains(t, out, "metadata-extender ")
			assert.Equal(t, tt.want, strings.Contains(out, "using config file"))
			assert.NotContains(t, out, `"level"`)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{name: "short", value: "Pete", limit: 10, want: "Pete"},
		{name: "exact", value: "abcdefghij", limit: 10, want: "abcdefghij"},
		{name: "ascii", value: "abcdefghijk", limit: 10, want: "abcdefg..."},
		{name: "multi-byte", value: "ééééééééééé", limit: 10, want: "ééééééé..."},
		{name: "multi-byte fits", value: "éééééééééé", limit: 10, want: "éééééééééé"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.value, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
