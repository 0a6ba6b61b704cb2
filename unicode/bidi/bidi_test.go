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

package bidi

import (
	"testing"
	"unicode/utf16"

	"github.com/glyphkit/glyphkit/unicode/ucd"
)

func codepointsOf(t *testing.T, s string) []ucd.Codepoint {
	t.Helper()
	return ucd.Decode(utf16.Encode([]rune(s)))
}

func TestResolvePureLTR(t *testing.T) {
	cps := codepointsOf(t, "hello")
	runs, err := Resolve(cps)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Direction != LeftToRight || runs[0].Start != 0 || runs[0].End != 5 {
		t.Errorf("run = %+v, want {LeftToRight 0 5}", runs[0])
	}
}

func TestResolveMixedDirection(t *testing.T) {
	// "ab" + two Hebrew letters (strong RTL) + "cd"
	text := "ab" + string(rune(0x05D0)) + string(rune(0x05D1)) + "cd"
	cps := codepointsOf(t, text)

	runs, err := Resolve(cps)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3: %+v", len(runs), runs)
	}
	want := []Run{
		{LeftToRight, 0, 2},
		{RightToLeft, 2, 4},
		{LeftToRight, 4, 6},
	}
	for i, w := range want {
		if runs[i] != w {
			t.Errorf("run %d = %+v, want %+v", i, runs[i], w)
		}
	}
}

func TestParagraphDirection(t *testing.T) {
	ltr, err := ParagraphDirection(codepointsOf(t, "hello world"))
	if err != nil {
		t.Fatal(err)
	}
	if !ltr {
		t.Errorf("expected left-to-right paragraph direction for plain Latin text")
	}

	rtlText := string(rune(0x05D0)) + string(rune(0x05D1)) + string(rune(0x05D2))
	ltr, err = ParagraphDirection(codepointsOf(t, rtlText))
	if err != nil {
		t.Fatal(err)
	}
	if ltr {
		t.Errorf("expected right-to-left paragraph direction for Hebrew text")
	}
}

func TestResolveEmpty(t *testing.T) {
	runs, err := Resolve(nil)
	if err != nil {
		t.Fatal(err)
	}
	if runs != nil {
		t.Errorf("Resolve(nil) = %+v, want nil", runs)
	}
}
