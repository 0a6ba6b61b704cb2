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
	"sort"

	"github.com/glyphkit/glyphkit/font"
)

// format13 represents a format 13 cmap subtable (many-to-one range
// mappings), typically seen in "last resort" fonts.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-13-many-to-one-range-mappings
type format13 []format13group

type format13group struct {
	startCharCode rune
	endCharCode   rune
	glyphID       font.GlyphID
}

func decodeFormat13(data []byte, code2rune func(c int) rune) (Subtable, error) {
	if code2rune != nil {
		return nil, errors.New("cmap/format13: code2rune not supported")
	}
	if len(data) < 16 {
		return nil, errMalformedSubtable
	}

	nGroups := uint32(data[12])<<24 | uint32(data[13])<<16 | uint32(data[14])<<8 | uint32(data[15])
	if len(data) != 16+int(nGroups)*12 || nGroups > 1e6 {
		return nil, errMalformedSubtable
	}

	groups := make(format13, nGroups)
	prevEnd := rune(-1)
	for i := uint32(0); i < nGroups; i++ {
		base := 16 + i*12
		start := rune(data[base])<<24 | rune(data[base+1])<<16 | rune(data[base+2])<<8 | rune(data[base+3])
		end := rune(data[base+4])<<24 | rune(data[base+5])<<16 | rune(data[base+6])<<8 | rune(data[base+7])
		gid := uint32(data[base+8])<<24 | uint32(data[base+9])<<16 | uint32(data[base+10])<<8 | uint32(data[base+11])
		if start <= prevEnd || end < start || gid > 0xFFFF {
			return nil, errMalformedSubtable
		}
		groups[i] = format13group{startCharCode: start, endCharCode: end, glyphID: font.GlyphID(gid)}
		prevEnd = end
	}
	return groups, nil
}

// Lookup implements the Subtable interface.
func (cmap format13) Lookup(r rune) font.GlyphID {
	idx := sort.Search(len(cmap), func(i int) bool {
		return r <= cmap[i].endCharCode
	})
	if idx == len(cmap) || cmap[idx].startCharCode > r {
		return 0
	}
	return cmap[idx].glyphID
}

// Encode implements the Subtable interface.
func (cmap format13) Encode(language uint16) []byte {
	nGroups := len(cmap)
	length := uint32(16 + nGroups*12)
	buf := make([]byte, length)
	buf[0], buf[1] = 0, 13
	buf[4] = byte(length >> 24)
	buf[5] = byte(length >> 16)
	buf[6] = byte(length >> 8)
	buf[7] = byte(length)
	buf[10] = byte(language >> 8)
	buf[11] = byte(language)
	n := uint32(nGroups)
	buf[12] = byte(n >> 24)
	buf[13] = byte(n >> 16)
	buf[14] = byte(n >> 8)
	buf[15] = byte(n)
	for i, g := range cmap {
		base := 16 + i*12
		buf[base] = byte(g.startCharCode >> 24)
		buf[base+1] = byte(g.startCharCode >> 16)
		buf[base+2] = byte(g.startCharCode >> 8)
		buf[base+3] = byte(g.startCharCode)
		buf[base+4] = byte(g.endCharCode >> 24)
		buf[base+5] = byte(g.endCharCode >> 16)
		buf[base+6] = byte(g.endCharCode >> 8)
		buf[base+7] = byte(g.endCharCode)
		buf[base+10] = byte(g.glyphID >> 8)
		buf[base+11] = byte(g.glyphID)
	}
	return buf
}

// CodeRange implements the Subtable interface.
func (cmap format13) CodeRange() (low, high rune) {
	if len(cmap) == 0 {
		return 0, 0
	}
	return cmap[0].startCharCode, cmap[len(cmap)-1].endCharCode
}
