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

package hmtx

import (
	"math"
	"testing"

	"github.com/glyphkit/glyphkit/font"
)

func TestRoundtrip(t *testing.T) {
	i1 := &Info{
		Width:       []uint16{500, 600, 0, 1000},
		GlyphExtent: []font.Rect{{}, {}, {}, {}},
		LSB:         []int16{10, -5, 0, 20},
		Ascent:      800,
		Descent:     -200,
		LineGap:     100,
		CaretAngle:  0,
		CaretOffset: 0,
	}

	hhea, hmtx := i1.Encode()
	i2, err := Decode(hhea, hmtx)
	if err != nil {
		t.Fatal(err)
	}

	if len(i2.Width) != len(i1.Width) {
		t.Fatalf("width length mismatch: got %d, want %d", len(i2.Width), len(i1.Width))
	}
	for i, w := range i1.Width {
		if i2.Width[i] != w {
			t.Errorf("width[%d] = %d, want %d", i, i2.Width[i], w)
		}
	}
	if i2.Ascent != i1.Ascent || i2.Descent != i1.Descent || i2.LineGap != i1.LineGap {
		t.Errorf("vertical metrics mismatch: got %+v, want %+v", i2, i1)
	}
}

func TestAngle(t *testing.T) {
	cases := []float64{0, math.Pi / 4, -math.Pi / 4, math.Pi / 2, -math.Pi / 2}
	for _, want := range cases {
		rise, run := fromAngle(want)
		got := toAngle(rise, run)
		if math.Abs(got-want) > 1e-3 {
			t.Errorf("toAngle(fromAngle(%v)) = %v, want close to %v", want, got, want)
		}
	}
}

func TestRationalApproximation(t *testing.T) {
	p, q := bestRationalApproximation(0.5, 100)
	if float64(p)/float64(q) != 0.5 {
		t.Errorf("bestRationalApproximation(0.5, 100) = %d/%d, want 1/2", p, q)
	}
}
