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

// Package ucd decodes UTF-16 text into validated Unicode scalar values and
// looks up character properties over the tries in the sibling trie
// package.
package ucd

import "fmt"

// Codepoint is a validated Unicode scalar value: an integer in
// U+0000..U+10FFFF that is never a UTF-16 surrogate.
type Codepoint rune

const (
	// MaxCodepoint is the highest valid Unicode scalar value.
	MaxCodepoint Codepoint = 0x10FFFF

	replacementChar Codepoint = 0xFFFD
)

// OutOfRangeError reports that a raw integer is not a valid Unicode
// scalar value: negative, above U+10FFFF, or a surrogate.
type OutOfRangeError struct {
	Value int32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("ucd: codepoint %#x is out of range", uint32(e.Value))
}

// New validates cp and returns it as a Codepoint. It fails with
// OutOfRangeError if cp is negative, greater than U+10FFFF, or a
// surrogate (U+D800..U+DFFF).
func New(cp rune) (Codepoint, error) {
	if !valid(cp) {
		return 0, &OutOfRangeError{Value: int32(cp)}
	}
	return Codepoint(cp), nil
}

// FromUTF16 wraps a rune already produced by decoding a UTF-16 surrogate
// pair or lone unit without re-validating it. Callers that assemble
// codepoints this way (see TextIterator) are trusted to have done the
// surrogate arithmetic correctly.
func FromUTF16(cp rune) Codepoint {
	return Codepoint(cp)
}

func valid(cp rune) bool {
	return cp >= 0 && cp <= rune(MaxCodepoint) && !(cp >= 0xD800 && cp <= 0xDFFF)
}

// Rune returns the codepoint as a Go rune.
func (c Codepoint) Rune() rune { return rune(c) }

// UTF8Len returns the number of bytes c occupies when encoded as UTF-8:
// 1, 2, 3, or 4.
func (c Codepoint) UTF8Len() int {
	switch {
	case c < 0x80:
		return 1
	case c < 0x800:
		return 2
	case c < 0x10000:
		return 3
	default:
		return 4
	}
}

// UTF16Len returns the number of 16-bit code units c occupies when
// encoded as UTF-16: 1 for the BMP, 2 for a surrogate pair.
func (c Codepoint) UTF16Len() int {
	if c < 0x10000 {
		return 1
	}
	return 2
}

// Plane returns the Unicode plane number, 0 (BMP) through 16.
func (c Codepoint) Plane() int {
	return int(c) >> 16
}

// IsASCII reports whether c is in the ASCII range U+0000..U+007F.
func (c Codepoint) IsASCII() bool { return c < 0x80 }

// IsBMP reports whether c lies in the Basic Multilingual Plane.
func (c Codepoint) IsBMP() bool { return c < 0x10000 }
