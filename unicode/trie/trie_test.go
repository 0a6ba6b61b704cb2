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

package trie

import "testing"

func TestBuilderFreezeLiteralScenario(t *testing.T) {
	b := NewBuilder(10, 666)
	b.SetRange(13, 6665, 7788, false)
	b.SetRange(6000, 6999, 9900, true)
	tr := b.Freeze()

	cases := []struct {
		cp   rune
		want uint32
	}{
		{12, 10},
		{13, 7788},
		{5999, 7788},
		{6000, 9900},
		{7000, 10},
		{0x110000, 666},
	}
	for _, c := range cases {
		if got := tr.Get(c.cp); got != c.want {
			t.Errorf("Get(%#x) = %d, want %d", c.cp, got, c.want)
		}
	}
}

func TestBuilderOverwriteFalseProtectsExisting(t *testing.T) {
	b := NewBuilder(0, 0)
	b.SetRange(100, 200, 1, false)
	b.SetRange(150, 160, 2, false) // overwrite=false: cells already at 1 stay at 1
	tr := b.Freeze()

	if got := tr.Get(149); got != 1 {
		t.Errorf("Get(149) = %d, want 1", got)
	}
	if got := tr.Get(155); got != 1 {
		t.Errorf("Get(155) = %d, want 1 (overwrite=false must not touch cells already set)", got)
	}
	if got := tr.Get(99); got != 0 {
		t.Errorf("Get(99) = %d, want 0 (untouched, still initial value)", got)
	}
}

func TestSetRangeInvariant(t *testing.T) {
	ranges := []struct {
		lo, hi rune
		value  uint32
	}{
		{0, 100, 1},
		{5000, 5100, 2},
		{0xFF00, 0xFFFF, 3},
		{0x10000, 0x10500, 4},
		{0x2FFFF, 0x30100, 5},
	}
	b := NewBuilder(0, 0xFFFFFFFF)
	for _, r := range ranges {
		b.SetRange(r.lo, r.hi, r.value, true)
	}
	tr := b.Freeze()

	for _, r := range ranges {
		for _, cp := range []rune{r.lo, (r.lo + r.hi) / 2, r.hi} {
			if got := tr.Get(cp); got != r.value {
				t.Errorf("Get(%#x) = %d, want %d (range [%#x,%#x])", cp, got, r.value, r.lo, r.hi)
			}
		}
	}
}

func TestTrieRoundTrip(t *testing.T) {
	b := NewBuilder(10, 666)
	b.SetRange(13, 6665, 7788, false)
	b.SetRange(6000, 6999, 9900, true)
	b.SetRange(0x10400, 0x10FFFF, 42, true)
	orig := b.Freeze()

	decoded, err := Decode(orig.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	probes := []rune{0, 12, 13, 5999, 6000, 6999, 7000, 0x10000, 0x103FF, 0x10400, 0x10FFFF, -1, 0xD800, 0x110000}
	for _, cp := range probes {
		want := orig.Get(cp)
		got := decoded.Get(cp)
		if got != want {
			t.Errorf("round trip mismatch at %#x: got %d, want %d", cp, got, want)
		}
	}
}

func TestGetRejectsSurrogatesAndOutOfRange(t *testing.T) {
	b := NewBuilder(1, 999)
	tr := b.Freeze()

	for _, cp := range []rune{-1, 0xD800, 0xDFFF, 0xDC00, 0x110000, 0x200000} {
		if got := tr.Get(cp); got != 999 {
			t.Errorf("Get(%#x) = %d, want errorValue 999", cp, got)
		}
	}
}
