// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

// Package base reads the OpenType "BASE" baseline table: the per-script
// baseline tag coordinates a layout engine uses to align text set in
// different scripts (for example Latin's roman baseline against a
// CJK's ideographic-center baseline) on a shared line.
//
// Only the default baseline coordinates reachable from each script's
// BaseValues table are decoded (BaseCoord format 1, a plain design-unit
// offset). Per-language overrides (BaseLangSysRecords) and the min/max
// extent table are not: nothing elsewhere in this module positions text
// relative to a script's recorded extent, only relative to a named
// baseline, which the BaseValues table already supplies in full.
// https://docs.microsoft.com/en-us/typography/opentype/spec/base
package base

import "github.com/glyphkit/glyphkit/font"

// Tag is a four-byte OpenType baseline tag, such as "romn" or "ideo".
type Tag [4]byte

func (t Tag) String() string { return string(t[:]) }

// Script holds the baseline coordinates for a single OpenType script,
// keyed by baseline tag.
type Script struct {
	DefaultBaseline Tag
	Coords          map[Tag]int16
}

// Axis holds one direction's (horizontal or vertical) baseline data.
type Axis struct {
	Tags    []Tag
	Scripts map[[4]byte]*Script // keyed by script tag
}

// Table holds the axes decoded from a "BASE" table.
type Table struct {
	Horiz *Axis
	Vert  *Axis
}

// Decode parses a "BASE" table.
func Decode(data []byte) (*Table, error) {
	if len(data) < 8 {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "table too short"}
	}
	major, minor := be16(data, 0), be16(data, 2)
	if major != 1 || (minor != 0 && minor != 1) {
		return nil, &font.NotSupportedError{SubSystem: "sfnt/base", Feature: "BASE table version"}
	}
	horizOffset := int(be16(data, 4))
	vertOffset := int(be16(data, 6))

	t := &Table{}
	var err error
	if horizOffset != 0 {
		if t.Horiz, err = decodeAxis(data, horizOffset); err != nil {
			return nil, err
		}
	}
	if vertOffset != 0 {
		if t.Vert, err = decodeAxis(data, vertOffset); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func decodeAxis(data []byte, axisOffset int) (*Axis, error) {
	if axisOffset < 0 || axisOffset+4 > len(data) {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "axis table out of range"}
	}
	tagListOffset := axisOffset + int(be16(data, axisOffset))
	scriptListOffset := axisOffset + int(be16(data, axisOffset+2))

	tags, err := decodeBaseTagList(data, tagListOffset)
	if err != nil {
		return nil, err
	}
	scripts, err := decodeBaseScriptList(data, scriptListOffset, tags)
	if err != nil {
		return nil, err
	}
	return &Axis{Tags: tags, Scripts: scripts}, nil
}

func decodeBaseTagList(data []byte, offset int) ([]Tag, error) {
	if offset == 0 {
		return nil, nil
	}
	if offset < 0 || offset+2 > len(data) {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "base tag list out of range"}
	}
	count := int(be16(data, offset))
	end := offset + 2 + 4*count
	if end > len(data) {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "base tag list truncated"}
	}
	tags := make([]Tag, count)
	for i := 0; i < count; i++ {
		copy(tags[i][:], data[offset+2+4*i:offset+2+4*i+4])
	}
	return tags, nil
}

func decodeBaseScriptList(data []byte, offset int, tags []Tag) (map[[4]byte]*Script, error) {
	if offset < 0 || offset+2 > len(data) {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "base script list out of range"}
	}
	count := int(be16(data, offset))
	const recordSize = 6
	end := offset + 2 + recordSize*count
	if end > len(data) {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "base script list truncated"}
	}

	scripts := make(map[[4]byte]*Script, count)
	for i := 0; i < count; i++ {
		p := offset + 2 + recordSize*i
		var scriptTag [4]byte
		copy(scriptTag[:], data[p:p+4])
		scriptOffset := offset + int(be16(data, p+4))

		sc, err := decodeBaseScript(data, scriptOffset, tags)
		if err != nil {
			return nil, err
		}
		scripts[scriptTag] = sc
	}
	return scripts, nil
}

func decodeBaseScript(data []byte, offset int, tags []Tag) (*Script, error) {
	if offset < 0 || offset+2 > len(data) {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "base script table out of range"}
	}
	baseValuesOffset := int(be16(data, offset))
	if baseValuesOffset == 0 {
		return &Script{Coords: map[Tag]int16{}}, nil
	}

	abs := offset + baseValuesOffset
	if abs < 0 || abs+4 > len(data) {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "base values table out of range"}
	}
	defaultIndex := int(be16(data, abs))
	coordCount := int(be16(data, abs+2))
	end := abs + 4 + 2*coordCount
	if end > len(data) {
		return nil, &font.InvalidTableError{Tag: "BASE", Reason: "base coord offset array truncated"}
	}

	coords := make(map[Tag]int16, coordCount)
	var defaultTag Tag
	for i := 0; i < coordCount; i++ {
		coordOffset := abs + int(be16(data, abs+4+2*i))
		v, ok := decodeBaseCoord(data, coordOffset)
		if !ok {
			continue
		}
		if i < len(tags) {
			coords[tags[i]] = v
			if i == defaultIndex {
				defaultTag = tags[i]
			}
		}
	}
	return &Script{DefaultBaseline: defaultTag, Coords: coords}, nil
}

// decodeBaseCoord reads only format 1 (a plain design-unit coordinate).
// Formats 2 (glyph-contour-point-relative) and 3 (device-table-adjusted)
// are skipped rather than misread, since nothing in this module
// resolves glyph outline points or device tables at this layer.
func decodeBaseCoord(data []byte, offset int) (int16, bool) {
	if offset < 0 || offset+4 > len(data) {
		return 0, false
	}
	format := be16(data, offset)
	if format != 1 {
		return 0, false
	}
	return int16(be16(data, offset+2)), true
}

func be16(data []byte, off int) uint16 {
	return uint16(data[off])<<8 | uint16(data[off+1])
}
