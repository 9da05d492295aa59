// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package exif

import (
	"bytes"
	"encoding/binary"
)

const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP1 = 0xE1
	markerTEM  = 0x01
	markerRST0 = 0xD0
	markerRST7 = 0xD7
)

var (
	exifHeader = []byte("Exif\x00\x00")
	tiffLE     = []byte("II*\x00")
	tiffBE     = []byte("MM\x00*")
)

// findTagBlock returns the TIFF-formatted tag block embedded in data, or nil
// when there is none. A TIFF file is its own tag block; a JPEG carries it in
// an APP1 segment that starts with "Exif\0\0". The scan stops at the first
// start-of-scan marker since tag blocks precede the image data.
func findTagBlock(data []byte) []byte {
	if bytes.HasPrefix(data, tiffLE) || bytes.HasPrefix(data, tiffBE) {
		return data
	}
	if len(data) < 4 || data[0] != 0xFF || data[1] != markerSOI {
		return nil
	}

	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			return nil
		}
		marker := data[i+1]
		if marker == 0xFF {
			// Fill byte before the real marker.
			i++
			continue
		}
		i += 2

		switch {
		case marker == markerEOI || marker == markerSOS:
			return nil
		case marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7):
			continue
		}

		segLen := int(binary.BigEndian.Uint16(data[i : i+2]))
		if segLen < 2 || i+segLen > len(data) {
			return nil
		}
		seg := data[i+2 : i+segLen]
		if marker == markerAPP1 && bytes.HasPrefix(seg, exifHeader) {
			return seg[len(exifHeader):]
		}
		i += segLen
	}
	return nil
}
