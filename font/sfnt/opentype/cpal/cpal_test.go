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

package cpal

import "testing"

// buildCPAL builds a version 0 CPAL table with two 2-entry palettes
// sharing no color records.
func buildCPAL() []byte {
	data := []byte{
		0x00, 0x00, // version 0
		0x00, 0x02, // numPaletteEntries = 2
		0x00, 0x02, // numPalettes = 2
		0x00, 0x04, // numColorRecords = 4
		0x00, 0x00, 0x00, 0x10, // offsetFirstColorRecord = 16
	}
	// colorRecordIndices: palette 0 starts at 0, palette 1 starts at 2
	data = append(data, 0x00, 0x00, 0x00, 0x02)
	// color records (B, G, R, A), 4 of them
	data = append(data,
		0x01, 0x02, 0x03, 0xFF, // palette 0 entry 0
		0x04, 0x05, 0x06, 0xFF, // palette 0 entry 1
		0x07, 0x08, 0x09, 0x80, // palette 1 entry 0
		0x0A, 0x0B, 0x0C, 0x80, // palette 1 entry 1
	)
	return data
}

func TestCPALDecode(t *testing.T) {
	table, err := Decode(buildCPAL())
	if err != nil {
		t.Fatal(err)
	}
	if table.NumPaletteEntries != 2 {
		t.Fatalf("NumPaletteEntries = %d, want 2", table.NumPaletteEntries)
	}
	if len(table.Palettes) != 2 {
		t.Fatalf("got %d palettes, want 2", len(table.Palettes))
	}

	p0 := table.Palette(0)
	want0 := []Color{{R: 0x03, G: 0x02, B: 0x01, A: 0xFF}, {R: 0x06, G: 0x05, B: 0x04, A: 0xFF}}
	for i := range want0 {
		if p0[i] != want0[i] {
			t.Errorf("palette 0 entry %d = %+v, want %+v", i, p0[i], want0[i])
		}
	}

	p1 := table.Palette(1)
	want1 := []Color{{R: 0x09, G: 0x08, B: 0x07, A: 0x80}, {R: 0x0C, G: 0x0B, B: 0x0A, A: 0x80}}
	for i := range want1 {
		if p1[i] != want1[i] {
			t.Errorf("palette 1 entry %d = %+v, want %+v", i, p1[i], want1[i])
		}
	}
}

func TestCPALPaletteOutOfRange(t *testing.T) {
	table, err := Decode(buildCPAL())
	if err != nil {
		t.Fatal(err)
	}
	if p := table.Palette(5); p != nil {
		t.Errorf("Palette(5) = %v, want nil", p)
	}
	if p := table.Palette(-1); p != nil {
		t.Errorf("Palette(-1) = %v, want nil", p)
	}
}

func TestCPALDecodeTooShort(t *testing.T) {
	if _, err := Decode([]byte{0x00, 0x00}); err == nil {
		t.Fatal("expected an error for a truncated table")
	}
}

func TestCPALDecodeUnsupportedVersion(t *testing.T) {
	data := buildCPAL()
	data[1] = 2 // version 2 does not exist
	if _, err := Decode(data); err == nil {
		t.Fatal("expected an error for an unsupported version")
	}
}
