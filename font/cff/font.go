// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package cff reads "Compact Font Format" tables, either standalone or
// embedded in an OpenType "CFF " table.
package cff

import (
	"fmt"

	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/parser"
	"github.com/glyphkit/glyphkit/font/type1"
)

// Font represents a parsed CFF font.
type Font struct {
	FontName  string
	IsCIDFont bool

	// GlyphName maps glyph indices to glyph names, or to empty strings for
	// CID-keyed fonts (where glyphs are identified by CID, not by name).
	GlyphName []string

	// CID maps glyph indices to CIDs, for CID-keyed fonts.
	CID []int32

	NumGlyphs int

	Private []*type1.PrivateDict

	Encoding font.Encoding

	charStrings cffIndex
	gsubrs      cffIndex
	subrs       cffIndex
	fdSubrs     []cffIndex
	privateDict cffDict
	fdSelect    FdSelectFn
	strings     *cffStrings
}

// Read decodes a CFF font from r. r must hold exactly one font; CFF
// FontSets with more than one top-level font are not supported.
func Read(r parser.ReadSeekSizer) (*Font, error) {
	p := parser.New("CFF", r)

	length := p.Size()
	err := p.SetRegion("CFF", 0, length)
	if err != nil {
		return nil, err
	}

	x, err := p.ReadUInt32()
	if err != nil {
		return nil, err
	}
	major := x >> 24
	minor := (x >> 16) & 0xFF
	hdrSize := int64((x >> 8) & 0xFF)
	if major != 1 {
		return nil, invalidSince(fmt.Sprintf("unsupported CFF version %d.%d", major, minor))
	}

	cff := &Font{}

	err = p.SeekPos(hdrSize)
	if err != nil {
		return nil, err
	}
	names, err := readIndex(p)
	if err != nil {
		return nil, err
	}
	if len(names) != 1 {
		return nil, invalidSince("CFF FontSets with more than one font are not supported")
	}
	cff.FontName = string(names[0])

	topDicts, err := readIndex(p)
	if err != nil {
		return nil, err
	}
	if len(topDicts) != 1 {
		return nil, invalidSince("missing Top DICT")
	}

	stringIndex, err := readIndex(p)
	if err != nil {
		return nil, err
	}
	strings := &cffStrings{data: make([]string, len(stringIndex))}
	for i, s := range stringIndex {
		strings.data[i] = string(s)
	}
	cff.strings = strings

	topDict, err := decodeDict(topDicts[0], strings)
	if err != nil {
		return nil, err
	}

	if charstringType := topDict.getInt(opCharstringType, 2); charstringType != 2 {
		return nil, notSupported(fmt.Sprintf("charstring type %d", charstringType))
	}

	cff.gsubrs, err = readIndex(p)
	if err != nil {
		return nil, err
	}

	cff.IsCIDFont = len(topDict[opROS]) > 0

	csOffs := topDict.getInt(opCharStrings, 0)
	if csOffs <= 0 {
		return nil, invalidSince("missing CharStrings")
	}
	err = p.SeekPos(int64(csOffs))
	if err != nil {
		return nil, err
	}
	cff.charStrings, err = readIndex(p)
	if err != nil {
		return nil, err
	}
	cff.NumGlyphs = len(cff.charStrings)
	if cff.NumGlyphs == 0 {
		return nil, invalidSince("font has no glyphs")
	}

	var charset []int32
	charsetOffs := topDict.getInt(opCharset, 0)
	switch charsetOffs {
	case 0:
		charset = sidsForPredefinedCharset(isoAdobeCharset, strings, cff.NumGlyphs)
	case 1:
		charset = sidsForPredefinedCharset(expertCharset, strings, cff.NumGlyphs)
	case 2:
		charset = sidsForPredefinedCharset(expertSubsetCharset, strings, cff.NumGlyphs)
	default:
		err = p.SeekPos(int64(charsetOffs))
		if err != nil {
			return nil, err
		}
		charset, err = readCharset(p, cff.NumGlyphs)
		if err != nil {
			return nil, err
		}
	}

	if cff.IsCIDFont {
		cff.CID = charset
		cff.GlyphName = make([]string, cff.NumGlyphs)
	} else {
		cff.GlyphName = make([]string, cff.NumGlyphs)
		for i, sidVal := range charset {
			name, ok := strings.get(sid(sidVal))
			if ok {
				cff.GlyphName[i] = name
			}
		}
	}

	if cff.IsCIDFont {
		fdArrayOffs := topDict.getInt(opFDArray, 0)
		fdSelectOffs := topDict.getInt(opFDSelect, 0)
		if fdArrayOffs <= 0 || fdSelectOffs <= 0 {
			return nil, invalidSince("CID-keyed font without FDArray/FDSelect")
		}

		err = p.SeekPos(int64(fdArrayOffs))
		if err != nil {
			return nil, err
		}
		fdDicts, err := readIndex(p)
		if err != nil {
			return nil, err
		}
		cff.Private = make([]*type1.PrivateDict, len(fdDicts))
		cff.fdSubrs = make([]cffIndex, len(fdDicts))
		for i, raw := range fdDicts {
			fd, err := decodeDict(raw, strings)
			if err != nil {
				return nil, err
			}
			info, err := fd.readPrivate(p, strings)
			if err != nil {
				return nil, err
			}
			cff.Private[i] = info.private
			cff.fdSubrs[i] = info.subrs
		}

		err = p.SeekPos(int64(fdSelectOffs))
		if err != nil {
			return nil, err
		}
		cff.fdSelect, err = readFDSelect(p, cff.NumGlyphs, len(fdDicts))
		if err != nil {
			return nil, err
		}
	} else {
		info, err := topDict.readPrivate(p, strings)
		if err != nil {
			return nil, err
		}
		cff.Private = []*type1.PrivateDict{info.private}
		cff.subrs = info.subrs
		cff.privateDict = cffDict{
			opDefaultWidthX: {int32(info.defaultWidth)},
			opNominalWidthX: {int32(info.nominalWidth)},
		}

		encOffs := topDict.getInt(opEncoding, 0)
		switch encOffs {
		case 0:
			cff.Encoding = StandardEncoding(cff)
		case 1:
			cff.Encoding = ExpertEncoding(cff)
		default:
			err = p.SeekPos(int64(encOffs))
			if err != nil {
				return nil, err
			}
			cff.Encoding, err = cff.readEncoding(p)
			if err != nil {
				return nil, err
			}
		}
	}

	return cff, nil
}

// ReadCFF is a deprecated alias for Read.
func ReadCFF(r parser.ReadSeekSizer) (*Font, error) {
	return Read(r)
}

// GID returns the glyph index for a given CID, or 0 (".notdef") if the
// CID-keyed font has no glyph for that CID.
func (cff *Font) GID(cid int32) font.GlyphID {
	for gid, c := range cff.CID {
		if c == cid {
			return font.GlyphID(gid)
		}
	}
	return 0
}

// sidsForPredefinedCharset converts a predefined charset's ordered glyph
// name list (".notdef" first, as found in charset.go) into a SID-keyed
// charset of length nGlyphs, padding with ".notdef" (SID 0) when the font
// has more glyphs than the predefined charset defines.
func sidsForPredefinedCharset(names []string, strings *cffStrings, nGlyphs int) []int32 {
	cs := make([]int32, nGlyphs)
	for i := 0; i < nGlyphs && i < len(names); i++ {
		cs[i] = int32(strings.lookup(names[i]))
	}
	return cs
}
