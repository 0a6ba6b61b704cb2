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

package colr

import "testing"

// buildCOLR builds a version 0 COLR table mapping base glyph 5 to two
// layers and base glyph 9 to one layer.
func buildCOLR() []byte {
	data := []byte{
		0x00, 0x00, // version 0
		0x00, 0x02, // numBaseGlyphRecords = 2
		0x00, 0x00, 0x00, 0x0E, // offsetBaseGlyphRecords = 14
		0x00, 0x00, 0x00, 0x1A, // offsetLayerRecords = 26
		0x00, 0x03, // numLayerRecords = 3
	}
	// base glyph records (gid, firstLayerIndex, numLayers), sorted by gid
	data = append(data,
		0x00, 0x05, 0x00, 0x00, 0x00, 0x02, // gid 5: layers [0,2)
		0x00, 0x09, 0x00, 0x02, 0x00, 0x01, // gid 9: layers [2,3)
	)
	// layer records (gid, paletteIndex)
	data = append(data,
		0x00, 0x64, 0x00, 0x00, // layer 0: glyph 100, palette 0
		0x00, 0x65, 0x00, 0x01, // layer 1: glyph 101, palette 1
		0x00, 0x66, 0x00, 0x02, // layer 2: glyph 102, palette 2
	)
	return data
}

func TestCOLRLayers(t *testing.T) {
	table, err := Decode(buildCOLR())
	if err != nil {
		t.Fatal(err)
	}

	layers := table.Layers(5)
	want := []Layer{
		{GlyphID: 100, PaletteIndex: 0},
		{GlyphID: 101, PaletteIndex: 1},
	}
	if len(layers) != len(want) {
		t.Fatalf("got %d layers, want %d", len(layers), len(want))
	}
	for i := range want {
		if layers[i] != want[i] {
			t.Errorf("layer %d = %+v, want %+v", i, layers[i], want[i])
		}
	}

	single := table.Layers(9)
	if len(single) != 1 || single[0] != (Layer{GlyphID: 102, PaletteIndex: 2}) {
		t.Errorf("Layers(9) = %+v, want a single layer {102 2}", single)
	}
}

func TestCOLRLayersMissingGlyph(t *testing.T) {
	table, err := Decode(buildCOLR())
	if err != nil {
		t.Fatal(err)
	}
	if layers := table.Layers(42); layers != nil {
		t.Errorf("Layers(42) = %v, want nil", layers)
	}
}

func TestCOLRLayersNilTable(t *testing.T) {
	var table *Table
	if layers := table.Layers(5); layers != nil {
		t.Errorf("Layers on a nil table = %v, want nil", layers)
	}
}

func TestCOLRDecodeRejectsVersion1(t *testing.T) {
	data := buildCOLR()
	data[1] = 1 // version 1 (gradient paints) is not decoded
	if _, err := Decode(data); err == nil {
		t.Fatal("expected an error for COLR version 1")
	}
}

func TestCOLRDecodeUnsortedBaseGlyphs(t *testing.T) {
	data := buildCOLR()
	// Swap the two base glyph IDs so they are no longer sorted.
	data[14], data[15], data[20], data[21] = data[20], data[21], data[14], data[15]
	if _, err := Decode(data); err == nil {
		t.Fatal("expected an error for unsorted base glyph records")
	}
}
