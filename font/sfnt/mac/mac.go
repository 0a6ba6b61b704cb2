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

// Package mac implements the Macintosh Roman encoding used by the
// platform-1 "name" and "cmap" tables of sfnt fonts.
package mac

import "golang.org/x/text/encoding/charmap"

// DecodeOne decodes a single Macintosh Roman byte into a rune.
func DecodeOne(b byte) rune {
	return charmap.Macintosh.DecodeByte(b)
}

// Decode converts a Macintosh Roman encoded byte string into a Go string.
func Decode(buf []byte) string {
	runes := make([]rune, len(buf))
	for i, b := range buf {
		runes[i] = DecodeOne(b)
	}
	return string(runes)
}

// Encode converts s into Macintosh Roman bytes. Runes without a
// representation in Macintosh Roman are replaced by '?'.
func Encode(s string) []byte {
	runes := []rune(s)
	res := make([]byte, len(runes))
	for i, r := range runes {
		b, ok := charmap.Macintosh.EncodeRune(r)
		if !ok {
			b = '?'
		}
		res[i] = b
	}
	return res
}
