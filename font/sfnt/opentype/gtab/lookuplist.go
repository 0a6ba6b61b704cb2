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

package gtab

import (
	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/parser"
)

// LookupIndex enumerates lookups.
// It is used as an index into a LookupList.
type LookupIndex uint16

// LookupList contains the information from a Lookup List Table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-list-table
type LookupList []*LookupTable

// LookupTable represents a lookup table inside a "GSUB" or "GPOS" table of a
// font.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-table
type LookupTable struct {
	Meta      *LookupMetaInfo
	Subtables Subtables
}

// LookupMetaInfo contains information associated with a lookup but not
// specific to a subtable.
type LookupMetaInfo struct {
	LookupType       uint16
	LookupFlag       LookupFlags
	MarkFilteringSet uint16
}

// LookupFlags contains bits which modify application of a lookup to a glyph string.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#lookupFlags
type LookupFlags uint16

// Bit values for LookupFlag.
const (
	LookupRightToLeft         LookupFlags = 0x0001
	LookupIgnoreBaseGlyphs    LookupFlags = 0x0002
	LookupIgnoreLigatures     LookupFlags = 0x0004
	LookupIgnoreMarks         LookupFlags = 0x0008
	LookupUseMarkFilteringSet LookupFlags = 0x0010
	LookupMarkAttachTypeMask  LookupFlags = 0xFF00
)

// Subtable represents a subtable of a "GSUB" or "GPOS" lookup table.
type Subtable interface {
	EncodeLen() int

	Encode() []byte

	// Apply attempts to apply the subtable at position a, using glyphs
	// up to b.  It returns the resulting match, or nil if the subtable
	// cannot be applied.
	Apply(keep KeepGlyphFn, seq []font.Glyph, a, b int) *Match
}

// Subtables is a slice of Subtable.
type Subtables []Subtable

// Apply tries the subtables one by one and applies the first one that
// matches, returning its match.  If no subtable matches, nil is returned.
func (ss Subtables) Apply(keep KeepGlyphFn, seq []font.Glyph, pos, b int) *Match {
	for _, subtable := range ss {
		match := subtable.Apply(keep, seq, pos, b)
		if match != nil {
			return match
		}
	}
	return nil
}

// subtableReader is a function that can decode a subtable.
// Different functions are required for "GSUB" and "GPOS" tables.
type subtableReader func(*parser.Parser, int64, *LookupMetaInfo) (Subtable, error)

func readLookupList(p *parser.Parser, pos int64, sr subtableReader) (LookupList, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}

	lookupOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	res := make(LookupList, len(lookupOffsets))

	numLookups := 0
	numSubTables := 0

	var subtableOffsets []uint16
	for i, offs := range lookupOffsets {
		lookupTablePos := pos + int64(offs)
		err := p.SeekPos(lookupTablePos)
		if err != nil {
			return nil, err
		}
		buf, err := p.ReadBytes(6)
		if err != nil {
			return nil, err
		}
		lookupType := uint16(buf[0])<<8 | uint16(buf[1])
		lookupFlag := LookupFlags(buf[2])<<8 | LookupFlags(buf[3])
		subTableCount := uint16(buf[4])<<8 | uint16(buf[5])
		numLookups++
		numSubTables += int(subTableCount)
		if numLookups+numSubTables > 6000 {
			// The condition ensures that we can always store the lookup
			// data (using extension subtables if necessary), without
			// exceeding the maximum offset size in the lookup list table.
			return nil, &font.InvalidFontError{
				SubSystem: "sfnt/opentype/gtab",
				Reason:    "too many lookup (sub-)tables",
			}
		}
		subtableOffsets = subtableOffsets[:0]
		for j := 0; j < int(subTableCount); j++ {
			subtableOffset, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			subtableOffsets = append(subtableOffsets, subtableOffset)
		}
		var markFilteringSet uint16
		if lookupFlag&LookupUseMarkFilteringSet != 0 {
			markFilteringSet, err = p.ReadUint16()
			if err != nil {
				return nil, err
			}
		}

		meta := &LookupMetaInfo{
			LookupType:       lookupType,
			LookupFlag:       lookupFlag,
			MarkFilteringSet: markFilteringSet,
		}

		subtables := make(Subtables, subTableCount)
		for j, subtableOffset := range subtableOffsets {
			subtable, err := sr(p, lookupTablePos+int64(subtableOffset), meta)
			if err != nil {
				return nil, err
			}
			subtables[j] = subtable
		}

		if tp, ok := isExtension(subtables); ok {
			if tp == meta.LookupType {
				return nil, &font.InvalidFontError{
					SubSystem: "sfnt/opentype/gtab",
					Reason:    "invalid extension subtable",
				}
			}
			meta.LookupType = tp
			for j, subtable := range subtables {
				l, ok := subtable.(*extensionSubtable)
				if !ok || l.ExtensionLookupType != tp {
					return nil, &font.InvalidFontError{
						SubSystem: "sfnt/opentype/gtab",
						Reason:    "inconsistent extension subtables",
					}
				}
				pos := lookupTablePos + int64(subtableOffsets[j]) + l.ExtensionOffset
				subtable, err := sr(p, pos, meta)
				if err != nil {
					return nil, err
				}
				subtables[j] = subtable
			}
		}

		res[i] = &LookupTable{
			Meta:      meta,
			Subtables: subtables,
		}
	}
	return res, nil
}

func isExtension(ss Subtables) (uint16, bool) {
	if len(ss) == 0 {
		return 0, false
	}
	l, ok := ss[0].(*extensionSubtable)
	if !ok {
		return 0, false
	}
	return l.ExtensionLookupType, true
}

// encode returns the binary representation of the lookup list.  tableName
// must be "GSUB" or "GPOS"; it selects the lookup type (7 or 9,
// respectively) used to mark lookups whose subtables had to be moved out
// of line behind an extension record, see selectExtensionLookups.
func (info LookupList) encode(tableName string) []byte {
	if info == nil {
		return nil
	}

	wrapped := info.selectExtensionLookups()

	extType := uint16(7) // GSUB extension lookup type
	if tableName == "GPOS" {
		extType = 9
	}

	lookupCount := len(info)
	lookupHeaderLen := make([]int, lookupCount)
	subtableLen := make([][]int, lookupCount)
	for i, l := range info {
		hLen := 6 + 2*len(l.Subtables)
		if l.Meta.LookupFlag&LookupUseMarkFilteringSet != 0 {
			hLen += 2
		}
		lookupHeaderLen[i] = hLen

		lens := make([]int, len(l.Subtables))
		for j, s := range l.Subtables {
			if wrapped[i] {
				lens[j] = 8 // extension record: format, type, 32-bit offset
			} else {
				lens[j] = s.EncodeLen()
			}
		}
		subtableLen[i] = lens
	}

	lookupOffset := make([]int, lookupCount)
	subtableOffset := make([][]int, lookupCount)
	pos := 2 + 2*lookupCount
	for i, l := range info {
		lookupOffset[i] = pos
		base := pos
		pos += lookupHeaderLen[i]

		offs := make([]int, len(l.Subtables))
		for j := range l.Subtables {
			offs[j] = pos - base
			pos += subtableLen[i][j]
		}
		subtableOffset[i] = offs
	}

	// subtables of wrapped lookups are stored out of line, after every
	// lookup header, since the 32-bit extension offset has no 0xFFFF limit.
	tailOffset := make([][]int, lookupCount)
	for i, l := range info {
		tailOffset[i] = make([]int, len(l.Subtables))
		if !wrapped[i] {
			continue
		}
		for j, s := range l.Subtables {
			tailOffset[i][j] = pos
			pos += s.EncodeLen()
		}
	}
	total := pos

	buf := make([]byte, total)
	buf[0] = byte(lookupCount >> 8)
	buf[1] = byte(lookupCount)
	for i := range info {
		off := lookupOffset[i]
		buf[2+2*i] = byte(off >> 8)
		buf[2+2*i+1] = byte(off)
	}

	for i, l := range info {
		p := lookupOffset[i]
		lookupType := l.Meta.LookupType
		if wrapped[i] {
			lookupType = extType
		}
		subCount := len(l.Subtables)
		buf[p] = byte(lookupType >> 8)
		buf[p+1] = byte(lookupType)
		buf[p+2] = byte(l.Meta.LookupFlag >> 8)
		buf[p+3] = byte(l.Meta.LookupFlag)
		buf[p+4] = byte(subCount >> 8)
		buf[p+5] = byte(subCount)

		q := p + 6
		for j := range l.Subtables {
			off := subtableOffset[i][j]
			buf[q] = byte(off >> 8)
			buf[q+1] = byte(off)
			q += 2
		}
		if l.Meta.LookupFlag&LookupUseMarkFilteringSet != 0 {
			buf[q] = byte(l.Meta.MarkFilteringSet >> 8)
			buf[q+1] = byte(l.Meta.MarkFilteringSet)
		}

		for j, s := range l.Subtables {
			subPos := p + subtableOffset[i][j]
			if !wrapped[i] {
				copy(buf[subPos:], s.Encode())
				continue
			}
			actualPos := tailOffset[i][j]
			offset := uint32(actualPos - subPos)
			buf[subPos] = 0
			buf[subPos+1] = 1
			buf[subPos+2] = byte(l.Meta.LookupType >> 8)
			buf[subPos+3] = byte(l.Meta.LookupType)
			buf[subPos+4] = byte(offset >> 24)
			buf[subPos+5] = byte(offset >> 16)
			buf[subPos+6] = byte(offset >> 8)
			buf[subPos+7] = byte(offset)
			copy(buf[actualPos:], s.Encode())
		}
	}

	return buf
}

// lookupByteSize returns the number of bytes the subtables of lookup i
// occupy when encoded inline, without extension wrapping.
func (info LookupList) lookupByteSize(i int) int {
	total := 0
	for _, s := range info[i].Subtables {
		total += s.EncodeLen()
	}
	return total
}

// selectExtensionLookups decides which lookups must have their subtables
// moved behind an extension record so that every Lookup table offset from
// the start of the lookup list fits into the 16 bits available in the
// LookupList table.  readLookupList's 6000 lookup-and-subtable limit
// guarantees that wrapping every lookup (shrinking each subtable slot
// down to the fixed 8-byte extension record) always fits, so this loop is
// guaranteed to terminate with a valid layout.
func (info LookupList) selectExtensionLookups() map[int]bool {
	wrapped := make(map[int]bool)
	for {
		offsets := info.lookupOffsets(wrapped)

		worst := -1
		for i, off := range offsets {
			if off <= 0xFFFF || wrapped[i] {
				continue
			}
			if worst < 0 || info.lookupByteSize(i) > info.lookupByteSize(worst) {
				worst = i
			}
		}
		if worst < 0 {
			return wrapped
		}
		wrapped[worst] = true
	}
}

// lookupOffsets computes the offset of each Lookup table from the start
// of the lookup list, for the given set of extension-wrapped lookups.
func (info LookupList) lookupOffsets(wrapped map[int]bool) []int {
	offsets := make([]int, len(info))
	pos := 2 + 2*len(info)
	for i, l := range info {
		offsets[i] = pos

		hLen := 6 + 2*len(l.Subtables)
		if l.Meta.LookupFlag&LookupUseMarkFilteringSet != 0 {
			hLen += 2
		}
		pos += hLen

		for _, s := range l.Subtables {
			if wrapped[i] {
				pos += 8
			} else {
				pos += s.EncodeLen()
			}
		}
	}
	return offsets
}

// Extension Substitution Subtable Format 1
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub#71-extension-substitution-subtable-format-1
type extensionSubtable struct {
	ExtensionLookupType uint16
	ExtensionOffset     int64
}

func readExtensionSubtable(p *parser.Parser, subtablePos int64) (Subtable, error) {
	buf, err := p.ReadBytes(6)
	if err != nil {
		return nil, err
	}
	extensionLookupType := uint16(buf[0])<<8 | uint16(buf[1])
	extensionOffset := int64(buf[2])<<24 | int64(buf[3])<<16 | int64(buf[4])<<8 | int64(buf[5])
	res := &extensionSubtable{
		ExtensionLookupType: extensionLookupType,
		ExtensionOffset:     extensionOffset,
	}
	return res, nil
}

func (l *extensionSubtable) Apply(KeepGlyphFn, []font.Glyph, int, int) *Match {
	panic("unreachable")
}

func (l *extensionSubtable) EncodeLen() int {
	return 8
}

func (l *extensionSubtable) Encode() []byte {
	return []byte{
		0, 1, // format
		byte(l.ExtensionLookupType >> 8), byte(l.ExtensionLookupType),
		byte(l.ExtensionOffset >> 24), byte(l.ExtensionOffset >> 16), byte(l.ExtensionOffset >> 8), byte(l.ExtensionOffset),
	}
}
