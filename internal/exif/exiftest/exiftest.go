// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exiftest builds JPEG images with hand-made tag blocks for tests.
package exiftest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
)

// TIFF field types.
const (
	TypeByte      uint16 = 1
	TypeASCII     uint16 = 2
	TypeShort     uint16 = 3
	TypeLong      uint16 = 4
	TypeRational  uint16 = 5
	TypeUndefined uint16 = 7
)

var order = binary.BigEndian

// Entry is one IFD entry. When Dir is positive the entry is a LONG pointer
// to the directory with that index and Data is ignored.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte
	Dir   int
}

// ASCII returns a NUL-terminated string entry.
func ASCII(tag uint16, s string) Entry {
	b := append([]byte(s), 0)
	return Entry{Tag: tag, Type: TypeASCII, Count: uint32(len(b)), Data: b}
}

// Short returns a SHORT entry with one or more values.
func Short(tag uint16, vals ...uint16) Entry {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		order.PutUint16(b[2*i:], v)
	}
	return Entry{Tag: tag, Type: TypeShort, Count: uint32(len(vals)), Data: b}
}

// Long returns a single LONG entry.
func Long(tag uint16, v uint32) Entry {
	b := make([]byte, 4)
	order.PutUint32(b, v)
	return Entry{Tag: tag, Type: TypeLong, Count: 1, Data: b}
}

// Rational returns a single RATIONAL entry.
func Rational(tag uint16, num, den uint32) Entry {
	b := make([]byte, 8)
	order.PutUint32(b, num)
	order.PutUint32(b[4:], den)
	return Entry{Tag: tag, Type: TypeRational, Count: 1, Data: b}
}

// Bytes returns a BYTE entry.
func Bytes(tag uint16, b ...byte) Entry {
	return Entry{Tag: tag, Type: TypeByte, Count: uint32(len(b)), Data: b}
}

// Undefined returns an UNDEFINED entry.
func Undefined(tag uint16, b []byte) Entry {
	return Entry{Tag: tag, Type: TypeUndefined, Count: uint32(len(b)), Data: b}
}

// Pointer returns a sub-directory pointer entry to dirs[dir].
func Pointer(tag uint16, dir int) Entry {
	return Entry{Tag: tag, Type: TypeLong, Count: 1, Dir: dir}
}

// TIFF lays out a big-endian TIFF block. dirs[0] is IFD0; the other
// directories are only reachable through Pointer entries.
func TIFF(dirs ...[]Entry) []byte {
	offs := make([]uint32, len(dirs))
	cur := uint32(8)
	for i, d := range dirs {
		offs[i] = cur
		cur += 2 + 12*uint32(len(d)) + 4
	}
	dataStart := cur

	buf := make([]byte, dataStart)
	copy(buf, "MM\x00*")
	order.PutUint32(buf[4:], 8)

	var extra []byte
	for i, d := range dirs {
		p := offs[i]
		order.PutUint16(buf[p:], uint16(len(d)))
		p += 2
		for _, e := range d {
			val := e.Data
			if e.Dir > 0 {
				val = make([]byte, 4)
				order.PutUint32(val, offs[e.Dir])
			}
			order.PutUint16(buf[p:], e.Tag)
			order.PutUint16(buf[p+2:], e.Type)
			order.PutUint32(buf[p+4:], e.Count)
			if len(val) <= 4 {
				copy(buf[p+8:p+12], val)
			} else {
				order.PutUint32(buf[p+8:], dataStart+uint32(len(extra)))
				extra = append(extra, val...)
				if len(extra)%2 == 1 {
					extra = append(extra, 0)
				}
			}
			p += 12
		}
		// Next-IFD offset stays zero.
	}
	return append(buf, extra...)
}

// JPEG encodes a small image and, when block is non-nil, embeds block as
// an Exif APP1 segment right after the start-of-image marker.
func JPEG(block []byte) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, img, nil); err != nil {
		return nil, err
	}
	raw := enc.Bytes()
	if block == nil {
		return raw, nil
	}

	payload := append([]byte("Exif\x00\x00"), block...)
	seg := make([]byte, 4, 4+len(payload))
	seg[0], seg[1] = 0xFF, 0xE1
	order.PutUint16(seg[2:], uint16(len(payload)+2))
	seg = append(seg, payload...)

	out := make([]byte, 0, len(raw)+len(seg))
	out = append(out, raw[:2]...)
	out = append(out, seg...)
	return append(out, raw[2:]...), nil
}
