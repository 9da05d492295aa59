// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
)

// DocumentExt is the extension of every output document.
const DocumentExt = ".xml"

// Section is one entry of the ordered section list built from a
// ConfigurationRecord: the section name and the fields it carries.
type Section struct {
	Name   SectionName `json:"name" yaml:"name"`
	Fields []Field     `json:"fields" yaml:"fields"`
}

// ImageRecord pairs a source image with the document written for it.
type ImageRecord struct {
	// Name is the image filename exactly as supplied.
	Name string `json:"name" yaml:"name"`

	// SourcePath is the full path of the image.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is the document path: same directory, extension replaced.
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// NewImageRecord derives the source and output paths of name in dir.
func NewImageRecord(dir, name string) ImageRecord {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return ImageRecord{
		Name:       name,
		SourcePath: filepath.Join(dir, name),
		OutputPath: filepath.Join(dir, base+DocumentExt),
	}
}

// ImageOutcome is the result of running the pipeline over one image.
type ImageOutcome struct {
	ImageRecord `yaml:",inline"`

	// ExifTags is the number of tags written to the exif node.
	ExifTags int `json:"exif_tags" yaml:"exif_tags"`

	// Sections lists the descriptive sections written.
	Sections []SectionName `json:"sections" yaml:"sections"`

	// Err is the failure, nil when the document was written.
	Err error `json:"-" yaml:"-"`
}

// Failed reports whether the image did not produce a document.
func (o ImageOutcome) Failed() bool { return o.Err != nil }
