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

package container

import (
	"encoding/binary"

	"github.com/glyphkit/glyphkit/font"
)

// parseTTC reads a TrueType Collection header ("ttcf") and decodes each of
// the fonts it references. Several fonts in a collection commonly share the
// same glyf/loca/CFF tables and differ only in their name/cmap/hmtx tables;
// this package does not attempt to detect or dedupe that sharing, it simply
// returns one independent FontFile per offset table.
func parseTTC(data []byte) (*Collection, error) {
	if len(data) < 16 {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "TTC header truncated"}
	}

	majorVersion := binary.BigEndian.Uint16(data[4:])
	if majorVersion != 1 && majorVersion != 2 {
		return nil, &font.NotSupportedError{SubSystem: "container", Feature: "TTC version"}
	}

	numFonts := binary.BigEndian.Uint32(data[8:])
	if numFonts == 0 {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "TTC has no fonts"}
	}

	offsetsEnd := 12 + int(numFonts)*4
	if offsetsEnd > len(data) {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "TTC offset table truncated"}
	}

	coll := &Collection{Fonts: make([]*FontFile, numFonts)}
	for i := 0; i < int(numFonts); i++ {
		off := binary.BigEndian.Uint32(data[12+i*4:])
		ff, err := parseSfntAt(data, off)
		if err != nil {
			return nil, err
		}
		coll.Fonts[i] = ff
	}
	return coll, nil
}
