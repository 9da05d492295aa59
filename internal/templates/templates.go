// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package templates saves and loads ConfigurationRecords as versioned
// template files. A template stores every field, empty or not, and all four
// section toggles, so a loaded template reproduces the saved record exactly.
//
// YAML is the default format:
//
//	version: 1
//	sections:
//	  photographer: true
//	  client: false
//	  abstract: true
//	  process: true
//	fields:
//	  - key: p_Organization
//	    value: Studio North
//	  ...
//
// Files ending in .toml use the same shape in TOML.
package templates

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metadata-extender/pkg/types"
)

// Version is the template format version written by Save.
const Version = 1

// Format selects the template encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from the file extension. Anything other than
// .toml is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// File is the on-disk shape of a template. Toggles are pointers so a
// missing toggle can be told apart from a false one.
type File struct {
	Version  int           `yaml:"version" toml:"version"`
	Sections FileSections  `yaml:"sections" toml:"sections"`
	Fields   []types.Field `yaml:"fields" toml:"fields"`
}

// FileSections holds the section toggles of a template file.
type FileSections struct {
	Photographer *bool `yaml:"photographer" toml:"photographer"`
	Client       *bool `yaml:"client" toml:"client"`
	Abstract     *bool `yaml:"abstract" toml:"abstract"`
	Process      *bool `yaml:"process" toml:"process"`
}

func toFile(rec types.ConfigurationRecord) File {
	t := rec.Toggles
	fields := make([]types.Field, len(rec.Fields))
	copy(fields, rec.Fields)
	return File{
		Version: Version,
		Sections: FileSections{
			Photographer: &t.Photographer,
			Client:       &t.Client,
			Abstract:     &t.Abstract,
			Process:      &t.Process,
		},
		Fields: fields,
	}
}

func (f File) record() (types.ConfigurationRecord, error) {
	var rec types.ConfigurationRecord
	if f.Version != Version {
		return rec, &types.ConfigurationError{
			Key:    "version",
			Reason: fmt.Sprintf("unsupported template version %d", f.Version),
		}
	}

	toggles := []struct {
		name types.SectionName
		val  *bool
		dst  *bool
	}{
		{types.SectionPhotographer, f.Sections.Photographer, &rec.Toggles.Photographer},
		{types.SectionClient, f.Sections.Client, &rec.Toggles.Client},
		{types.SectionAbstract, f.Sections.Abstract, &rec.Toggles.Abstract},
		{types.SectionProcess, f.Sections.Process, &rec.Toggles.Process},
	}
	for _, tg := range toggles {
		if tg.val == nil {
			return rec, &types.ConfigurationError{
				Key:    "sections." + string(tg.name),
				Reason: "missing section toggle",
			}
		}
		*tg.dst = *tg.val
	}

	rec.Fields = f.Fields
	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// Encode writes rec to w in the given format.
func Encode(w io.Writer, rec types.ConfigurationRecord, format Format) error {
	f := toFile(rec)
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return fmt.Errorf("encoding template: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding template: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding template: %w", err)
		}
	}
	return nil
}

// Decode reads a template from r. Unknown document keys, unsupported
// versions and any deviation from the fixed field key set are returned as
// *types.ConfigurationError.
func Decode(r io.Reader, format Format) (types.ConfigurationRecord, error) {
	var f File
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&f); err != nil {
			return types.ConfigurationRecord{}, &types.ConfigurationError{Reason: "invalid TOML template", Err: err}
		}
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return types.ConfigurationRecord{}, &types.ConfigurationError{Reason: "empty template"}
			}
			return types.ConfigurationRecord{}, &types.ConfigurationError{Reason: "invalid YAML template", Err: err}
		}
	}
	return f.record()
}

// Save writes rec to path, choosing the format from the extension.
func Save(path string, rec types.ConfigurationRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating template %s: %w", path, err)
	}
	if err := Encode(out, rec, FormatFor(path)); err != nil {
		out.Close()
		return fmt.Errorf("saving template %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("saving template %s: %w", path, err)
	}
	return nil
}

// Load reads the template at path.
func Load(path string) (types.ConfigurationRecord, error) {
	in, err := os.Open(path)
	if err != nil {
		return types.ConfigurationRecord{}, fmt.Errorf("opening template %s: %w", path, err)
	}
	defer in.Close()

	rec, err := Decode(in, FormatFor(path))
	if err != nil {
		return rec, fmt.Errorf("loading template %s: %w", path, err)
	}
	return rec, nil
}
