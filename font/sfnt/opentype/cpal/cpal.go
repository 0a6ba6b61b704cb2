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

// Package cpal reads the OpenType "CPAL" color palette table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cpal
package cpal

import "github.com/glyphkit/glyphkit/font"

// Color is one color entry, in straight (not premultiplied) RGBA.
type Color struct {
	R, G, B, A uint8
}

// Table holds the palettes decoded from a "CPAL" table. Palette type,
// label and entry-label arrays (CPAL version 1) are not decoded: nothing
// in this module composites or names palettes, only enumerates colors by
// index, which the version 0 layout already provides in full.
type Table struct {
	NumPaletteEntries int
	Palettes          [][]Color
}

// Palette returns the colors of the i'th palette, or nil if i is out of
// range.
func (t *Table) Palette(i int) []Color {
	if t == nil || i < 0 || i >= len(t.Palettes) {
		return nil
	}
	return t.Palettes[i]
}

// Decode parses a "CPAL" table.
func Decode(data []byte) (*Table, error) {
	if len(data) < 12 {
		return nil, &font.InvalidTableError{Tag: "CPAL", Reason: "table too short"}
	}
	version := be16(data, 0)
	if version > 1 {
		return nil, &font.NotSupportedError{SubSystem: "sfnt/cpal", Feature: "CPAL version"}
	}
	numPaletteEntries := int(be16(data, 2))
	numPalettes := int(be16(data, 4))
	numColorRecords := int(be16(data, 6))
	offsetFirstColorRecord := int(be32(data, 8))

	indicesStart := 12
	if len(data) < indicesStart+2*numPalettes {
		return nil, &font.InvalidTableError{Tag: "CPAL", Reason: "truncated color record indices"}
	}
	if offsetFirstColorRecord < 0 || offsetFirstColorRecord+4*numColorRecords > len(data) {
		return nil, &font.InvalidTableError{Tag: "CPAL", Reason: "color record array out of range"}
	}

	colors := make([]Color, numColorRecords)
	for i := 0; i < numColorRecords; i++ {
		p := offsetFirstColorRecord + 4*i
		// Color records are stored blue, green, red, alpha.
		colors[i] = Color{B: data[p], G: data[p+1], R: data[p+2], A: data[p+3]}
	}

	palettes := make([][]Color, numPalettes)
	for i := 0; i < numPalettes; i++ {
		firstIndex := int(be16(data, indicesStart+2*i))
		if firstIndex+numPaletteEntries > len(colors) {
			return nil, &font.InvalidTableError{Tag: "CPAL", Reason: "palette index out of range"}
		}
		pal := make([]Color, numPaletteEntries)
		copy(pal, colors[firstIndex:firstIndex+numPaletteEntries])
		palettes[i] = pal
	}

	return &Table{NumPaletteEntries: numPaletteEntries, Palettes: palettes}, nil
}

func be16(data []byte, off int) uint16 {
	return uint16(data[off])<<8 | uint16(data[off+1])
}

func be32(data []byte, off int) uint32 {
	return uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
}
