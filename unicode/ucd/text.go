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

// TextIterator walks a UTF-16 code unit sequence, pairing surrogates into
// scalar codepoints. Unlike unicode/utf16.Decode it also reports how many
// code units each returned codepoint consumed, which the layout engine
// needs to keep cluster indices aligned with the caller's original text
// buffer.
type TextIterator struct {
	units []uint16
	pos   int
}

// NewTextIterator returns an iterator over units.
func NewTextIterator(units []uint16) *TextIterator {
	return &TextIterator{units: units}
}

// Next returns the next codepoint, how many UTF-16 code units it
// consumed (1 or 2), and whether a codepoint was available. An unpaired
// surrogate consumes one unit and decodes to U+FFFD, matching the
// replacement behaviour of the standard library's utf16.Decode.
func (it *TextIterator) Next() (cp Codepoint, width int, ok bool) {
	if it.pos >= len(it.units) {
		return 0, 0, false
	}

	u := it.units[it.pos]
	switch {
	case u >= 0xD800 && u <= 0xDBFF:
		if it.pos+1 < len(it.units) {
			u2 := it.units[it.pos+1]
			if u2 >= 0xDC00 && u2 <= 0xDFFF {
				r := (rune(u-0xD800) << 10) | rune(u2-0xDC00)
				r += 0x10000
				it.pos += 2
				return FromUTF16(r), 2, true
			}
		}
		it.pos++
		return replacementChar, 1, true
	case u >= 0xDC00 && u <= 0xDFFF:
		it.pos++
		return replacementChar, 1, true
	default:
		it.pos++
		return FromUTF16(rune(u)), 1, true
	}
}

// Pos returns the iterator's current offset into units.
func (it *TextIterator) Pos() int { return it.pos }

// Reset rewinds the iterator to the start of its text.
func (it *TextIterator) Reset() { it.pos = 0 }

// Decode decodes units into a slice of codepoints in one pass.
func Decode(units []uint16) []Codepoint {
	it := NewTextIterator(units)
	out := make([]Codepoint, 0, len(units))
	for {
		cp, _, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, cp)
	}
	return out
}
