// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package container parses the outer binary envelope of a font file: the
// sfnt Offset Table, TrueType Collections, and the WOFF1/WOFF2 web font
// wrappers. It produces a flat table directory (tag -> raw bytes) that the
// sfnt/* subpackages can decode without caring which envelope the bytes
// originally came from.
package container

import (
	"encoding/binary"

	"github.com/glyphkit/glyphkit/font"
)

// Tags of the four envelope formats this package recognises, identified by
// the first four bytes of the file.
const (
	tagTrueType  = 0x00010000
	tagOpenType  = 0x4F54544F // "OTTO"
	tagTrueType2 = 0x74727565 // "true", used by some old Mac TrueType fonts
	tagWOFF1     = 0x774F4646 // "wOFF"
	tagWOFF2     = 0x774F4632 // "wOF2"
	tagTTC       = 0x74746366 // "ttcf"
)

// TableHeader describes one entry of an sfnt table directory.
type TableHeader struct {
	Tag      string
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

// FontFile is the result of unwrapping a font file's container format. It
// holds the raw, uncompressed bytes of every table, keyed by tag, plus the
// original sfnt version tag (0x00010000 for TrueType, "OTTO" for CFF-flavored
// OpenType).
type FontFile struct {
	SfntVersion uint32
	Tables      map[string][]byte
	Headers     map[string]TableHeader
}

// Table returns the raw bytes of the table with the given tag, or nil if the
// font file does not contain that table.
func (ff *FontFile) Table(tag string) []byte {
	return ff.Tables[tag]
}

// Collection represents a parsed TrueType Collection: a single byte stream
// shared by several sfnt fonts, each described by a directory offset.
type Collection struct {
	Fonts []*FontFile
}

// Open detects the envelope format of data (plain sfnt, WOFF1, WOFF2, or a
// TrueType Collection) from its magic number and returns every font it
// contains. A plain sfnt or WOFF file always yields a single-element slice.
func Open(data []byte) ([]*FontFile, error) {
	if len(data) < 4 {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "file too short"}
	}

	switch magic := binary.BigEndian.Uint32(data[:4]); magic {
	case tagTrueType, tagOpenType, tagTrueType2:
		ff, err := parseSfnt(data)
		if err != nil {
			return nil, err
		}
		return []*FontFile{ff}, nil
	case tagWOFF1:
		ff, err := parseWOFF1(data)
		if err != nil {
			return nil, err
		}
		return []*FontFile{ff}, nil
	case tagWOFF2:
		ff, err := parseWOFF2(data)
		if err != nil {
			return nil, err
		}
		return []*FontFile{ff}, nil
	case tagTTC:
		coll, err := parseTTC(data)
		if err != nil {
			return nil, err
		}
		return coll.Fonts, nil
	default:
		return nil, &font.NotSupportedError{SubSystem: "container", Feature: "unknown file signature"}
	}
}
