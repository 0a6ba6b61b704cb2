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

package glyf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

// compositeGlyphHeader builds the 10-byte glyph header with a negative
// contour count, the convention that marks a glyph as composite.
func compositeGlyphHeader() []byte {
	return []byte{
		0xFF, 0xFF, // numberOfContours = -1
		0x00, 0x00, // xMin
		0x00, 0x00, // yMin
		0x00, 0x64, // xMax = 100
		0x00, 0x64, // yMax = 100
	}
}

func TestGlyphOutlineRejectsComposite(t *testing.T) {
	enc := &Encoded{
		GlyfData:   compositeGlyphHeader(),
		LocaData:   []byte{0x00, 0x00, 0x00, 0x05}, // offsets 0 and 5 (10 bytes / 2)
		LocaFormat: 0,
	}
	gg, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if len(gg) != 1 {
		t.Fatalf("got %d glyphs, want 1", len(gg))
	}
	if !gg[0].IsComposite() {
		t.Fatal("expected glyph to be composite")
	}

	_, err = gg[0].Outline()
	if err == nil {
		t.Fatal("expected an error for a composite glyph outline")
	}
}

func TestGlyphOutlineNilGlyph(t *testing.T) {
	var g *Glyph
	info, err := g.Outline()
	if err != nil {
		t.Fatal(err)
	}
	if info == nil || len(info.Contours) != 0 {
		t.Errorf("got %+v, want an empty GlyphInfo", info)
	}
}

func FuzzGlyf(f *testing.F) {
	names, err := filepath.Glob("../../../demo/try-all-fonts/glyf/*.glyf")
	if err != nil {
		f.Fatal(err)
	}
	for _, name := range names {
		glyfData, err := os.ReadFile(name)
		if err != nil {
			f.Error(err)
			continue
		}
		locaName := strings.TrimSuffix(name, ".glyf") + ".loca"
		locaData, err := os.ReadFile(locaName)
		if err != nil {
			f.Error(err)
			continue
		}
		locaFormat := int16(0)
		if len(glyfData) > 0xFFFF {
			locaFormat = 1
		}
		f.Add(glyfData, locaData, locaFormat)
	}

	f.Fuzz(func(t *testing.T, glyfData, locaData []byte, locaFormat int16) {
		info, err := Decode(&Encoded{GlyfData: glyfData, LocaData: locaData, LocaFormat: locaFormat})
		if err != nil {
			return
		}

		enc2, err := info.Encode()
		if err != nil {
			t.Fatal(err)
		}
		glyfData2 := enc2.GlyfData
		locaData2 := enc2.LocaData

		info2, err := Decode(enc2)
		if err != nil {
			t.Fatal(err)
		}

		different := false
		for _, diff := range deep.Equal(info, info2) {
			fmt.Println(diff)
			different = true
		}
		if different {
			fmt.Println("A.g", glyfData)
			fmt.Println("A.l", locaData)
			fmt.Println("B.g", glyfData2)
			fmt.Println("B.l", locaData2)
			fmt.Println(info)
			fmt.Println(info2)
			t.Error("not equal")
		}
	})
}
