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

package cff

import (
	"fmt"

	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/parser"
)

// readEncoding decodes a CFF "Encoding" (format 0 or 1, with optional
// supplements) into a code-to-glyph map for a non-CID-keyed font.
func (cff *Font) readEncoding(p *parser.Parser) (font.Encoding, error) {
	format, err := p.ReadUInt8()
	if err != nil {
		return nil, err
	}

	supplement := format&0x80 != 0
	format &= 0x7F

	enc := make(font.Encoding)

	switch format {
	case 0:
		nCodes, err := p.ReadUInt8()
		if err != nil {
			return nil, err
		}
		codes, err := p.ReadBlob(int(nCodes))
		if err != nil {
			return nil, err
		}
		for i, code := range codes {
			gid := font.GlyphID(i + 1)
			if int(gid) >= cff.NumGlyphs {
				continue
			}
			enc[code] = gid
		}

	case 1:
		nRanges, err := p.ReadUInt8()
		if err != nil {
			return nil, err
		}
		gid := font.GlyphID(1)
		for i := 0; i < int(nRanges); i++ {
			first, err := p.ReadUInt8()
			if err != nil {
				return nil, err
			}
			nLeft, err := p.ReadUInt8()
			if err != nil {
				return nil, err
			}
			for c := int(first); c <= int(first)+int(nLeft); c++ {
				if c > 255 || int(gid) >= cff.NumGlyphs {
					break
				}
				enc[byte(c)] = gid
				gid++
			}
		}

	default:
		return nil, &font.NotSupportedError{
			SubSystem: "cff",
			Feature:   fmt.Sprintf("encoding format %d", format),
		}
	}

	if supplement {
		nSups, err := p.ReadUInt8()
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(nSups); i++ {
			code, err := p.ReadUInt8()
			if err != nil {
				return nil, err
			}
			sid, err := p.ReadUInt16()
			if err != nil {
				return nil, err
			}
			gid := cff.gidForSID(sid)
			if gid != 0 {
				enc[code] = gid
			}
		}
	}

	return enc, nil
}

// gidForSID finds the glyph whose name equals the string with the given
// string ID. Returns 0 (".notdef") if no glyph matches.
func (cff *Font) gidForSID(id uint16) font.GlyphID {
	name, ok := cff.strings.get(sid(id))
	if !ok {
		return 0
	}
	return cff.gidForName(name)
}

// StandardEncoding is Adobe's StandardEncoding, used when a CFF font's
// Encoding offset is 0.
var StandardEncoding = buildPredefinedEncoding(standardEncodingNames)

// ExpertEncoding is Adobe's ExpertEncoding, used when the Encoding offset
// is 1.
var ExpertEncoding = buildPredefinedEncoding(expertEncodingNames)

func buildPredefinedEncoding(names [256]string) func(*Font) font.Encoding {
	return func(cff *Font) font.Encoding {
		enc := make(font.Encoding)
		for code, name := range names {
			if name == "" {
				continue
			}
			gid := cff.gidForName(name)
			if gid != 0 {
				enc[byte(code)] = gid
			}
		}
		return enc
	}
}

func (cff *Font) gidForName(name string) font.GlyphID {
	for gid, n := range cff.GlyphName {
		if n == name {
			return font.GlyphID(gid)
		}
	}
	return 0
}
