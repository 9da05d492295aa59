// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exif reads the embedded tag block of an image and turns it into
// named, textual tags.
//
// The tag block is decoded as a TIFF directory tree. Entries of the Exif
// sub-directory are merged into the top level next to IFD0; the GPS
// sub-directory is kept as a nested value. Tags missing from the registry
// are dropped, and only scalar values (text, numbers, rationals and tuples
// of them) survive extraction.
package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/tiff"

	"github.com/pdiddy/metadata-extender/internal/registry"
	"github.com/pdiddy/metadata-extender/pkg/types"
)

// Extract opens the image at path and returns its scalar tags.
func Extract(path string) (*types.TagMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	return ExtractFrom(f, path)
}

// ExtractFrom returns the scalar tags of the image read from r. name is
// used in errors and logs only. An image without a tag block yields an
// empty TagMap.
func ExtractFrom(r io.ReadSeeker, name string) (*types.TagMap, error) {
	m, err := ReadTags(r, name)
	if err != nil {
		return nil, err
	}
	scalars := m.Scalars()
	if dropped := m.Len() - scalars.Len(); dropped > 0 {
		log.Debug().Str("image", name).Int("dropped", dropped).Msg("dropped non-scalar tags")
	}
	return scalars, nil
}

// ReadTags returns every registered tag of the image read from r with its
// raw value, nested and binary values included.
func ReadTags(r io.ReadSeeker, name string) (*types.TagMap, error) {
	if _, _, err := image.DecodeConfig(r); err != nil {
		return nil, &types.ExtractionError{Path: name, Err: fmt.Errorf("decoding image: %w", err)}
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, &types.ExtractionError{Path: name, Err: fmt.Errorf("rewinding: %w", err)}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &types.ExtractionError{Path: name, Err: fmt.Errorf("reading: %w", err)}
	}

	block := findTagBlock(data)
	if block == nil {
		log.Debug().Str("image", name).Msg("no tag block")
		return types.NewTagMap(), nil
	}

	m, err := decodeBlock(block, name)
	if err != nil {
		return nil, &types.ExtractionError{Path: name, Err: err}
	}
	return m, nil
}

// decodeBlock decodes a TIFF-formatted tag block into a TagMap keyed by
// registry names.
func decodeBlock(block []byte, name string) (*types.TagMap, error) {
	t, err := tiff.Decode(bytes.NewReader(block))
	if err != nil {
		return nil, fmt.Errorf("decoding tag block: %w", err)
	}

	m := types.NewTagMap()
	if len(t.Dirs) == 0 {
		return m, nil
	}
	ifd0 := t.Dirs[0]
	r := bytes.NewReader(block)

	for _, tag := range ifd0.Tags {
		setTag(m, tag, name)
	}

	if ptr := findTag(ifd0, registry.ExifIFDPointer); ptr != nil {
		dir, err := subDir(r, t.Order, ptr)
		if err != nil {
			log.Warn().Str("image", name).Err(err).Msg("skipping exif sub-directory")
		} else {
			for _, tag := range dir.Tags {
				setTag(m, tag, name)
			}
		}
	}

	if ptr := findTag(ifd0, registry.GPSIFDPointer); ptr != nil {
		gps := types.NewTagMap()
		dir, err := subDir(r, t.Order, ptr)
		if err != nil {
			log.Warn().Str("image", name).Err(err).Msg("skipping gps sub-directory")
		} else {
			for _, tag := range dir.Tags {
				gps.Set(fmt.Sprintf("0x%04x", tag.Id), tagValue(tag))
			}
		}
		gpsName, _ := registry.Name(registry.GPSIFDPointer)
		m.Set(gpsName, types.NestedValue(gps))
	}

	return m, nil
}

func setTag(m *types.TagMap, tag *tiff.Tag, src string) {
	name, ok := registry.Name(tag.Id)
	if !ok {
		log.Debug().Str("image", src).Str("tag", fmt.Sprintf("0x%04x", tag.Id)).Msg("dropping unregistered tag")
		return
	}
	m.Set(name, tagValue(tag))
}

func findTag(d *tiff.Dir, id uint16) *tiff.Tag {
	for _, tag := range d.Tags {
		if tag.Id == id {
			return tag
		}
	}
	return nil
}

// subDir decodes the directory that the pointer tag ptr refers to.
func subDir(r *bytes.Reader, order binary.ByteOrder, ptr *tiff.Tag) (*tiff.Dir, error) {
	off, err := ptr.Int64(0)
	if err != nil {
		return nil, fmt.Errorf("reading pointer 0x%04x: %w", ptr.Id, err)
	}
	if off <= 0 || off >= r.Size() {
		return nil, fmt.Errorf("pointer 0x%04x offset %d out of range", ptr.Id, off)
	}
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}
	dir, _, err := tiff.DecodeDir(r, order)
	if err != nil {
		return nil, fmt.Errorf("decoding directory at %d: %w", off, err)
	}
	return dir, nil
}
