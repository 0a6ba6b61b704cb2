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

package sfnt

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/container"
)

type testHhea struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	Reserved1           int16
	Reserved2           int16
	Reserved3           int16
	Reserved4           int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}

func makeTestFont(numGlyphs int, widths []uint16) *Font {
	maxp := make([]byte, 6)
	binary.BigEndian.PutUint32(maxp[0:], 0x00005000)
	binary.BigEndian.PutUint16(maxp[4:], uint16(numGlyphs))

	hheaBuf := &bytes.Buffer{}
	_ = binary.Write(hheaBuf, binary.BigEndian, &testHhea{
		Version:             0x00010000,
		Ascent:              1900,
		Descent:             -500,
		LineGap:             0,
		NumOfLongHorMetrics: uint16(len(widths)),
	})

	hmtxBuf := &bytes.Buffer{}
	for _, w := range widths {
		_ = binary.Write(hmtxBuf, binary.BigEndian, w)
		_ = binary.Write(hmtxBuf, binary.BigEndian, int16(0)) // lsb
	}

	raw := &container.FontFile{
		Tables: map[string][]byte{
			"maxp": maxp,
			"hhea": hheaBuf.Bytes(),
			"hmtx": hmtxBuf.Bytes(),
		},
	}
	return New(raw)
}

func TestFontNumGlyphs(t *testing.T) {
	f := makeTestFont(3, []uint16{500, 600, 700})
	n, err := f.NumGlyphs()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("NumGlyphs() = %d, want 3", n)
	}
}

func TestFontAdvanceRepeatsLastWidth(t *testing.T) {
	f := makeTestFont(3, []uint16{500, 600, 700})

	cases := []struct {
		gid  font.GlyphID
		want int32
	}{
		{0, 500},
		{1, 600},
		{2, 700},
		{5, 700}, // beyond the directory repeats the final width
	}
	for _, c := range cases {
		got, err := f.Advance(c.gid)
		if err != nil {
			t.Fatalf("Advance(%d): %v", c.gid, err)
		}
		if got != c.want {
			t.Errorf("Advance(%d) = %d, want %d", c.gid, got, c.want)
		}
	}
}

func TestFontMissingTable(t *testing.T) {
	raw := &container.FontFile{Tables: map[string][]byte{}}
	f := New(raw)
	if _, err := f.Head(); err == nil {
		t.Fatal("expected a MissingTableError for an absent head table")
	}
	if _, err := f.NumGlyphs(); err == nil {
		t.Fatal("expected a MissingTableError for an absent maxp table")
	}
}

func TestFontColorTablesAbsent(t *testing.T) {
	f := New(&container.FontFile{Tables: map[string][]byte{}})
	if c, err := f.COLR(); c != nil || err != nil {
		t.Errorf("COLR() = %v, %v, want nil, nil", c, err)
	}
	if c, err := f.CPAL(); c != nil || err != nil {
		t.Errorf("CPAL() = %v, %v, want nil, nil", c, err)
	}
	if b, err := f.BASE(); b != nil || err != nil {
		t.Errorf("BASE() = %v, %v, want nil, nil", b, err)
	}
}

func TestFontColorTablesDecoded(t *testing.T) {
	colrData := []byte{
		0x00, 0x00, // version 0
		0x00, 0x01, // numBaseGlyphRecords = 1
		0x00, 0x00, 0x00, 0x0E, // offsetBaseGlyphRecords = 14
		0x00, 0x00, 0x00, 0x14, // offsetLayerRecords = 20
		0x00, 0x01, // numLayerRecords = 1
		0x00, 0x07, 0x00, 0x00, 0x00, 0x01, // gid 7: layers [0,1)
		0x00, 0x2A, 0x00, 0x00, // layer 0: glyph 42, palette 0
	}
	cpalData := []byte{
		0x00, 0x00, // version 0
		0x00, 0x01, // numPaletteEntries = 1
		0x00, 0x01, // numPalettes = 1
		0x00, 0x01, // numColorRecords = 1
		0x00, 0x00, 0x00, 0x0E, // offsetFirstColorRecord = 14
		0x00, 0x00, // colorRecordIndices[0] = 0
		0x01, 0x02, 0x03, 0xFF, // one BGRA color record
	}

	f := New(&container.FontFile{Tables: map[string][]byte{
		"COLR": colrData,
		"CPAL": cpalData,
	}})

	colrTable, err := f.COLR()
	if err != nil {
		t.Fatal(err)
	}
	layers := colrTable.Layers(7)
	if len(layers) != 1 || layers[0].GlyphID != 42 {
		t.Errorf("Layers(7) = %+v, want a single layer for glyph 42", layers)
	}

	cpalTable, err := f.CPAL()
	if err != nil {
		t.Fatal(err)
	}
	palette := cpalTable.Palette(0)
	if len(palette) != 1 || palette[0].R != 0x03 || palette[0].G != 0x02 || palette[0].B != 0x01 {
		t.Errorf("Palette(0) = %+v, want {R:3 G:2 B:1 A:255}", palette)
	}
}

func TestFontOutlineKind(t *testing.T) {
	ttf := New(&container.FontFile{Tables: map[string][]byte{}})
	if ttf.OutlineKind() != OutlineTrueType {
		t.Errorf("expected OutlineTrueType when no CFF table is present")
	}

	cffFont := New(&container.FontFile{Tables: map[string][]byte{"CFF ": {}}})
	if cffFont.OutlineKind() != OutlineCFF {
		t.Errorf("expected OutlineCFF when a CFF table is present")
	}
}
