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
	"errors"
	"testing"
)

func TestNewRejectsSurrogatesAndOutOfRange(t *testing.T) {
	for _, cp := range []rune{-1, 0xD800, 0xDFFF, 0xDC00, 0x110000, 0x200000} {
		if _, err := New(cp); err == nil {
			t.Errorf("New(%#x): expected an error", cp)
		} else {
			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Errorf("New(%#x): error %v is not an OutOfRangeError", cp, err)
			}
		}
	}
}

func TestNewAcceptsValidScalars(t *testing.T) {
	for _, cp := range []rune{0, 0x41, 0xD7FF, 0xE000, 0xFFFF, 0x10000, 0x10FFFF} {
		got, err := New(cp)
		if err != nil {
			t.Errorf("New(%#x): unexpected error %v", cp, err)
		}
		if got.Rune() != cp {
			t.Errorf("New(%#x).Rune() = %#x", cp, got.Rune())
		}
	}
}

func TestCodepointQueries(t *testing.T) {
	cases := []struct {
		cp       rune
		utf8Len  int
		utf16Len int
		plane    int
		ascii    bool
		bmp      bool
	}{
		{0x41, 1, 1, 0, true, true},
		{0x7FF, 2, 1, 0, false, true},
		{0x800, 3, 1, 0, false, true},
		{0xFFFF, 3, 1, 0, false, true},
		{0x10000, 4, 2, 1, false, false},
		{0x10FFFF, 4, 2, 16, false, false},
	}
	for _, c := range cases {
		cp, err := New(c.cp)
		if err != nil {
			t.Fatalf("New(%#x): %v", c.cp, err)
		}
		if got := cp.UTF8Len(); got != c.utf8Len {
			t.Errorf("%#x.UTF8Len() = %d, want %d", c.cp, got, c.utf8Len)
		}
		if got := cp.UTF16Len(); got != c.utf16Len {
			t.Errorf("%#x.UTF16Len() = %d, want %d", c.cp, got, c.utf16Len)
		}
		if got := cp.Plane(); got != c.plane {
			t.Errorf("%#x.Plane() = %d, want %d", c.cp, got, c.plane)
		}
		if got := cp.IsASCII(); got != c.ascii {
			t.Errorf("%#x.IsASCII() = %v, want %v", c.cp, got, c.ascii)
		}
		if got := cp.IsBMP(); got != c.bmp {
			t.Errorf("%#x.IsBMP() = %v, want %v", c.cp, got, c.bmp)
		}
	}
}
