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

// format14 represents a format 14 cmap subtable (Unicode Variation
// Sequences). Unlike the other subtable formats it does not map a single
// codepoint to a glyph: resolving a variation sequence needs both the base
// character and the variation selector, so callers use Resolve instead of
// the single-argument Lookup required by the Subtable interface.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-14-unicode-variation-sequences
type format14 struct {
	selectors []varSelectorRecord
}

type varSelectorRecord struct {
	selector   rune
	defaultUVS []unicodeRange
	nonDefault []uvsMapping
}

type unicodeRange struct {
	start rune
	count uint8
}

type uvsMapping struct {
	value rune
	gid   font.GlyphID
}

func decodeFormat14(data []byte, code2rune func(c int) rune) (Subtable, error) {
	if code2rune != nil {
		return nil, errors.New("cmap/format14: code2rune not supported")
	}
	if len(data) < 10 {
		return nil, errMalformedSubtable
	}

	numRecords := uint32(data[6])<<24 | uint32(data[7])<<16 | uint32(data[8])<<8 | uint32(data[9])
	if numRecords > 1e6 || uint64(len(data)) < 10+uint64(numRecords)*11 {
		return nil, errMalformedSubtable
	}

	res := &format14{selectors: make([]varSelectorRecord, numRecords)}
	for i := uint32(0); i < numRecords; i++ {
		base := 10 + i*11
		selector := rune(data[base])<<16 | rune(data[base+1])<<8 | rune(data[base+2])
		defaultOffs := uint32(data[base+3])<<24 | uint32(data[base+4])<<16 | uint32(data[base+5])<<8 | uint32(data[base+6])
		nonDefaultOffs := uint32(data[base+7])<<24 | uint32(data[base+8])<<16 | uint32(data[base+9])<<8 | uint32(data[base+10])

		rec := varSelectorRecord{selector: selector}

		if defaultOffs != 0 {
			ranges, err := decodeDefaultUVSTable(data, defaultOffs)
			if err != nil {
				return nil, err
			}
			rec.defaultUVS = ranges
		}
		if nonDefaultOffs != 0 {
			mappings, err := decodeNonDefaultUVSTable(data, nonDefaultOffs)
			if err != nil {
				return nil, err
			}
			rec.nonDefault = mappings
		}

		res.selectors[i] = rec
	}
	return res, nil
}

func decodeDefaultUVSTable(data []byte, offs uint32) ([]unicodeRange, error) {
	if uint64(offs)+4 > uint64(len(data)) {
		return nil, errMalformedSubtable
	}
	n := uint32(data[offs])<<24 | uint32(data[offs+1])<<16 | uint32(data[offs+2])<<8 | uint32(data[offs+3])
	if n > 1e6 || uint64(offs)+4+uint64(n)*4 > uint64(len(data)) {
		return nil, errMalformedSubtable
	}
	res := make([]unicodeRange, n)
	for i := uint32(0); i < n; i++ {
		base := offs + 4 + i*4
		start := rune(data[base])<<16 | rune(data[base+1])<<8 | rune(data[base+2])
		res[i] = unicodeRange{start: start, count: data[base+3]}
	}
	return res, nil
}

func decodeNonDefaultUVSTable(data []byte, offs uint32) ([]uvsMapping, error) {
	if uint64(offs)+4 > uint64(len(data)) {
		return nil, errMalformedSubtable
	}
	n := uint32(data[offs])<<24 | uint32(data[offs+1])<<16 | uint32(data[offs+2])<<8 | uint32(data[offs+3])
	if n > 1e6 || uint64(offs)+4+uint64(n)*5 > uint64(len(data)) {
		return nil, errMalformedSubtable
	}
	res := make([]uvsMapping, n)
	for i := uint32(0); i < n; i++ {
		base := offs + 4 + i*5
		value := rune(data[base])<<16 | rune(data[base+1])<<8 | rune(data[base+2])
		gid := font.GlyphID(data[base+3])<<8 | font.GlyphID(data[base+4])
		res[i] = uvsMapping{value: value, gid: gid}
	}
	return res, nil
}

// Resolve looks up the glyph for a (base character, variation selector)
// pair. useDefault reports whether base has no variation-specific glyph and
// the caller should fall back to the font's main cmap subtable instead.
func (cmap *format14) Resolve(base, selector rune) (gid font.GlyphID, useDefault, ok bool) {
	i := sort.Search(len(cmap.selectors), func(i int) bool {
		return cmap.selectors[i].selector >= selector
	})
	if i == len(cmap.selectors) || cmap.selectors[i].selector != selector {
		return 0, false, false
	}
	rec := cmap.selectors[i]

	for _, m := range rec.nonDefault {
		if m.value == base {
			return m.gid, false, true
		}
	}
	for _, r := range rec.defaultUVS {
		if base >= r.start && int64(base) <= int64(r.start)+int64(r.count) {
			return 0, true, true
		}
	}
	return 0, false, false
}

// Lookup implements the Subtable interface. Format 14 subtables cannot
// resolve a glyph from a single codepoint; use Resolve instead.
func (cmap *format14) Lookup(r rune) font.GlyphID {
	return 0
}

// Encode implements the Subtable interface.
func (cmap *format14) Encode(language uint16) []byte {
	headerLen := uint32(10 + 11*len(cmap.selectors))
	tailOffs := make([]uint32, len(cmap.selectors))
	nonDefaultOffs := make([]uint32, len(cmap.selectors))

	pos := headerLen
	var tail []byte
	for i, rec := range cmap.selectors {
		if len(rec.defaultUVS) > 0 {
			tailOffs[i] = pos
			pos += 4 + 4*uint32(len(rec.defaultUVS))
			n := uint32(len(rec.defaultUVS))
			tail = append(tail, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
			for _, r := range rec.defaultUVS {
				tail = append(tail,
					byte(r.start>>16), byte(r.start>>8), byte(r.start), r.count,
				)
			}
		}
		if len(rec.nonDefault) > 0 {
			nonDefaultOffs[i] = pos
			pos += 4 + 5*uint32(len(rec.nonDefault))
			n := uint32(len(rec.nonDefault))
			tail = append(tail, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
			for _, m := range rec.nonDefault {
				tail = append(tail,
					byte(m.value>>16), byte(m.value>>8), byte(m.value),
					byte(m.gid>>8), byte(m.gid),
				)
			}
		}
	}

	length := pos
	buf := make([]byte, headerLen, length)
	buf[0], buf[1] = 0, 14
	buf[2] = byte(length >> 24)
	buf[3] = byte(length >> 16)
	buf[4] = byte(length >> 8)
	buf[5] = byte(length)
	n := uint32(len(cmap.selectors))
	buf[6] = byte(n >> 24)
	buf[7] = byte(n >> 16)
	buf[8] = byte(n >> 8)
	buf[9] = byte(n)

	for i, rec := range cmap.selectors {
		base := 10 + i*11
		buf[base] = byte(rec.selector >> 16)
		buf[base+1] = byte(rec.selector >> 8)
		buf[base+2] = byte(rec.selector)
		d := tailOffs[i]
		buf[base+3] = byte(d >> 24)
		buf[base+4] = byte(d >> 16)
		buf[base+5] = byte(d >> 8)
		buf[base+6] = byte(d)
		nd := nonDefaultOffs[i]
		buf[base+7] = byte(nd >> 24)
		buf[base+8] = byte(nd >> 16)
		buf[base+9] = byte(nd >> 8)
		buf[base+10] = byte(nd)
	}

	return append(buf, tail...)
}

// CodeRange implements the Subtable interface. Format 14 subtables do not
// participate in ordinary character-to-glyph lookup, so no range applies.
func (cmap *format14) CodeRange() (low, high rune) {
	return 0, 0
}
