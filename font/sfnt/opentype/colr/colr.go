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

// Package colr reads the OpenType "COLR" color layer table, version 0:
// the mapping from a glyph ID to an ordered list of (glyph, palette
// index) layers that a renderer composites on top of each other. The
// gradient-based extensions introduced in COLR version 1 are not
// decoded; spec.md only contracts version 0 layer enumeration, and a
// version 1 table's version field is rejected rather than silently
// misread as version 0.
// https://docs.microsoft.com/en-us/typography/opentype/spec/colr
package colr

import (
	"sort"

	"github.com/glyphkit/glyphkit/font"
)

// Layer is one glyph drawn with one palette entry, in back-to-front
// paint order.
type Layer struct {
	GlyphID      font.GlyphID
	PaletteIndex uint16
}

// Table holds the base-glyph-to-layer mapping decoded from a "COLR"
// table.
type Table struct {
	layers       []Layer
	baseGlyph    []font.GlyphID // parallel to firstLayer/numLayers, sorted
	firstLayer   []int
	numLayers    []int
}

// Layers returns the layers to paint for gid, in order, or nil if gid
// has no color entry (the glyph should be rendered with its own outline
// instead).
func (t *Table) Layers(gid font.GlyphID) []Layer {
	if t == nil {
		return nil
	}
	i := sort.Search(len(t.baseGlyph), func(i int) bool { return t.baseGlyph[i] >= gid })
	if i == len(t.baseGlyph) || t.baseGlyph[i] != gid {
		return nil
	}
	return t.layers[t.firstLayer[i] : t.firstLayer[i]+t.numLayers[i]]
}

// Decode parses a "COLR" table.
func Decode(data []byte) (*Table, error) {
	if len(data) < 14 {
		return nil, &font.InvalidTableError{Tag: "COLR", Reason: "table too short"}
	}
	version := be16(data, 0)
	if version != 0 {
		return nil, &font.NotSupportedError{SubSystem: "sfnt/colr", Feature: "COLR version 1 (gradient paints)"}
	}
	numBaseGlyphRecords := int(be16(data, 2))
	offsetBaseGlyphRecords := int(be32(data, 4))
	offsetLayerRecords := int(be32(data, 8))
	numLayerRecords := int(be16(data, 12))

	const baseGlyphRecordSize = 6
	baseEnd := offsetBaseGlyphRecords + baseGlyphRecordSize*numBaseGlyphRecords
	if offsetBaseGlyphRecords < 0 || baseEnd > len(data) {
		return nil, &font.InvalidTableError{Tag: "COLR", Reason: "base glyph record array out of range"}
	}
	const layerRecordSize = 4
	layerEnd := offsetLayerRecords + layerRecordSize*numLayerRecords
	if offsetLayerRecords < 0 || layerEnd > len(data) {
		return nil, &font.InvalidTableError{Tag: "COLR", Reason: "layer record array out of range"}
	}

	layers := make([]Layer, numLayerRecords)
	for i := 0; i < numLayerRecords; i++ {
		p := offsetLayerRecords + layerRecordSize*i
		layers[i] = Layer{
			GlyphID:      font.GlyphID(be16(data, p)),
			PaletteIndex: be16(data, p+2),
		}
	}

	t := &Table{
		layers:     layers,
		baseGlyph:  make([]font.GlyphID, numBaseGlyphRecords),
		firstLayer: make([]int, numBaseGlyphRecords),
		numLayers:  make([]int, numBaseGlyphRecords),
	}
	prevGID := -1
	for i := 0; i < numBaseGlyphRecords; i++ {
		p := offsetBaseGlyphRecords + baseGlyphRecordSize*i
		gid := int(be16(data, p))
		if gid <= prevGID {
			return nil, &font.InvalidTableError{Tag: "COLR", Reason: "base glyph records are not sorted by glyph ID"}
		}
		prevGID = gid

		first := int(be16(data, p+2))
		num := int(be16(data, p+4))
		if first < 0 || first+num > len(layers) {
			return nil, &font.InvalidTableError{Tag: "COLR", Reason: "layer range out of bounds"}
		}
		t.baseGlyph[i] = font.GlyphID(gid)
		t.firstLayer[i] = first
		t.numLayers[i] = num
	}

	return t, nil
}

func be16(data []byte, off int) uint16 {
	return uint16(data[off])<<8 | uint16(data[off+1])
}

func be32(data []byte, off int) uint32 {
	return uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
}
