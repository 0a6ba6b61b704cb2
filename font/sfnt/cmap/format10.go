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

package cmap

import (
	"errors"

	"github.com/glyphkit/glyphkit/font"
)

// format10 represents a format 10 cmap subtable (trimmed array).
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-10-trimmed-array
type format10 struct {
	startCharCode rune
	glyphIDArray  []font.GlyphID
}

func decodeFormat10(data []byte, code2rune func(c int) rune) (Subtable, error) {
	if code2rune != nil {
		return nil, errors.New("cmap/format10: code2rune not supported")
	}
	if len(data) < 20 {
		return nil, errMalformedSubtable
	}

	startCharCode := uint32(data[12])<<24 | uint32(data[13])<<16 | uint32(data[14])<<8 | uint32(data[15])
	numChars := uint32(data[16])<<24 | uint32(data[17])<<16 | uint32(data[18])<<8 | uint32(data[19])
	if numChars > 1e6 || uint64(len(data)) != 20+2*uint64(numChars) {
		return nil, errMalformedSubtable
	}
	if uint64(startCharCode)+uint64(numChars) > 0x10FFFF {
		return nil, errMalformedSubtable
	}

	res := &format10{
		startCharCode: rune(startCharCode),
		glyphIDArray:  make([]font.GlyphID, numChars),
	}
	body := data[20:]
	for i := uint32(0); i < numChars; i++ {
		res.glyphIDArray[i] = font.GlyphID(body[2*i])<<8 | font.GlyphID(body[2*i+1])
	}
	return res, nil
}

// Lookup implements the Subtable interface.
func (cmap *format10) Lookup(r rune) font.GlyphID {
	idx := int64(r) - int64(cmap.startCharCode)
	if idx < 0 || idx >= int64(len(cmap.glyphIDArray)) {
		return 0
	}
	return cmap.glyphIDArray[idx]
}

// Encode implements the Subtable interface.
func (cmap *format10) Encode(language uint16) []byte {
	numChars := len(cmap.glyphIDArray)
	length := uint32(20 + 2*numChars)
	buf := make([]byte, length)
	buf[0], buf[1] = 0, 10
	buf[4] = byte(length >> 24)
	buf[5] = byte(length >> 16)
	buf[6] = byte(length >> 8)
	buf[7] = byte(length)
	buf[10] = byte(language >> 8)
	buf[11] = byte(language)
	start := uint32(cmap.startCharCode)
	buf[12] = byte(start >> 24)
	buf[13] = byte(start >> 16)
	buf[14] = byte(start >> 8)
	buf[15] = byte(start)
	n := uint32(numChars)
	buf[16] = byte(n >> 24)
	buf[17] = byte(n >> 16)
	buf[18] = byte(n >> 8)
	buf[19] = byte(n)
	for i, gid := range cmap.glyphIDArray {
		buf[20+2*i] = byte(gid >> 8)
		buf[20+2*i+1] = byte(gid)
	}
	return buf
}

// CodeRange implements the Subtable interface.
func (cmap *format10) CodeRange() (low, high rune) {
	if len(cmap.glyphIDArray) == 0 {
		return 0, 0
	}
	return cmap.startCharCode, cmap.startCharCode + rune(len(cmap.glyphIDArray)) - 1
}
