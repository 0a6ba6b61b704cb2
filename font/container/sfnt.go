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

// parseSfnt reads a plain (uncompressed) sfnt file: Offset Table followed by
// numTables TableRecord entries, followed by the table data itself.
func parseSfnt(data []byte) (*FontFile, error) {
	return parseSfntAt(data, 0)
}

// parseSfntAt parses an sfnt Offset Table starting at byte offset base
// within data. This is shared with the TrueType Collection reader, where
// each font in the collection has its own Offset Table at a different
// offset into the same byte stream.
func parseSfntAt(data []byte, base uint32) (*FontFile, error) {
	if int(base)+12 > len(data) {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "offset table truncated"}
	}

	sfntVersion := binary.BigEndian.Uint32(data[base:])
	numTables := binary.BigEndian.Uint16(data[base+4:])

	dirStart := int(base) + 12
	dirEnd := dirStart + int(numTables)*16
	if dirEnd > len(data) {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "table directory truncated"}
	}

	ff := &FontFile{
		SfntVersion: sfntVersion,
		Tables:      make(map[string][]byte, numTables),
		Headers:     make(map[string]TableHeader, numTables),
	}

	for i := 0; i < int(numTables); i++ {
		rec := data[dirStart+i*16:]
		tag := string(rec[:4])
		checkSum := binary.BigEndian.Uint32(rec[4:])
		offset := binary.BigEndian.Uint32(rec[8:])
		length := binary.BigEndian.Uint32(rec[12:])

		end := uint64(offset) + uint64(length)
		if end > uint64(len(data)) {
			return nil, &font.InvalidTableError{Tag: tag, Reason: "table data extends past end of file"}
		}

		ff.Headers[tag] = TableHeader{Tag: tag, CheckSum: checkSum, Offset: offset, Length: length}
		ff.Tables[tag] = data[offset : offset+length]
	}

	return ff, nil
}

// calcTableChecksum computes the sfnt checksum of a table's bytes: the
// 32-bit sum of the table treated as a sequence of big-endian uint32s, the
// final partial word padded with zero bytes.
func calcTableChecksum(data []byte) uint32 {
	var sum uint32
	n := len(data)
	for i := 0; i+4 <= n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i:])
	}
	if rem := n % 4; rem != 0 {
		var last [4]byte
		copy(last[:], data[n-rem:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}
