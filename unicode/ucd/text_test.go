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

package ucd

import (
	"testing"
	"unicode/utf16"
)

func TestDecodeMatchesStdlibForValidText(t *testing.T) {
	s := "Hello, 世界 \U0001F600!"
	units := utf16.Encode([]rune(s))

	got := Decode(units)
	want := []rune(s)
	if len(got) != len(want) {
		t.Fatalf("Decode returned %d codepoints, want %d", len(got), len(want))
	}
	for i, r := range want {
		if got[i].Rune() != r {
			t.Errorf("codepoint %d: got %#x, want %#x", i, got[i].Rune(), r)
		}
	}
}

func TestTextIteratorWidths(t *testing.T) {
	units := utf16.Encode([]rune("A\U0001F600B"))
	it := NewTextIterator(units)

	cp, w, ok := it.Next()
	if !ok || cp.Rune() != 'A' || w != 1 {
		t.Fatalf("first codepoint: cp=%v w=%d ok=%v", cp, w, ok)
	}
	cp, w, ok = it.Next()
	if !ok || cp.Rune() != 0x1F600 || w != 2 {
		t.Fatalf("second codepoint: cp=%#x w=%d ok=%v", cp.Rune(), w, ok)
	}
	cp, w, ok = it.Next()
	if !ok || cp.Rune() != 'B' || w != 1 {
		t.Fatalf("third codepoint: cp=%v w=%d ok=%v", cp, w, ok)
	}
	if _, _, ok = it.Next(); ok {
		t.Fatalf("expected iterator to be exhausted")
	}
}

func TestTextIteratorUnpairedSurrogates(t *testing.T) {
	units := []uint16{0xD800, 'x', 0xDC00}
	it := NewTextIterator(units)

	cp, w, ok := it.Next()
	if !ok || cp != replacementChar || w != 1 {
		t.Fatalf("lone high surrogate: cp=%#x w=%d ok=%v", cp, w, ok)
	}
	cp, w, ok = it.Next()
	if !ok || cp.Rune() != 'x' || w != 1 {
		t.Fatalf("plain unit after lone surrogate: cp=%v w=%d ok=%v", cp, w, ok)
	}
	cp, w, ok = it.Next()
	if !ok || cp != replacementChar || w != 1 {
		t.Fatalf("lone low surrogate: cp=%#x w=%d ok=%v", cp, w, ok)
	}
}

func TestTextIteratorResetAndPos(t *testing.T) {
	units := utf16.Encode([]rune("ab"))
	it := NewTextIterator(units)
	it.Next()
	if it.Pos() != 1 {
		t.Fatalf("Pos() = %d, want 1", it.Pos())
	}
	it.Reset()
	if it.Pos() != 0 {
		t.Fatalf("Pos() after Reset = %d, want 0", it.Pos())
	}
}
