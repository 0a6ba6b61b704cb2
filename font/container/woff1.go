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
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"

	"github.com/glyphkit/glyphkit/font"
)

// woff1Header mirrors the 44-byte WOFFHeader of the WOFF1 spec.
// https://www.w3.org/TR/WOFF/#WOFFHeader
type woff1Header struct {
	Signature       uint32
	Flavor          uint32
	Length          uint32
	NumTables       uint16
	Reserved        uint16
	TotalSfntSize   uint32
	MajorVersion    uint16
	MinorVersion    uint16
	MetaOffset      uint32
	MetaLength      uint32
	MetaOrigLength  uint32
	PrivOffset      uint32
	PrivLength      uint32
}

// woff1TableEntry mirrors the 20-byte TableDirectoryEntry of the WOFF1 spec.
type woff1TableEntry struct {
	Tag          [4]byte
	Offset       uint32
	CompLength   uint32
	OrigLength   uint32
	OrigChecksum uint32
}

// parseWOFF1 decodes a WOFF1 file into its constituent sfnt tables. Each
// table is independently zlib-compressed (or stored raw, when compression
// would not have helped) and is padded to a 4-byte boundary within the file.
func parseWOFF1(data []byte) (*FontFile, error) {
	const headerSize = 44
	if len(data) < headerSize {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "WOFF header truncated"}
	}

	var hdr woff1Header
	hdr.Signature = binary.BigEndian.Uint32(data[0:])
	hdr.Flavor = binary.BigEndian.Uint32(data[4:])
	hdr.Length = binary.BigEndian.Uint32(data[8:])
	hdr.NumTables = binary.BigEndian.Uint16(data[12:])
	hdr.Reserved = binary.BigEndian.Uint16(data[14:])
	hdr.TotalSfntSize = binary.BigEndian.Uint32(data[16:])

	if hdr.Reserved != 0 {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "WOFF reserved field must be zero"}
	}
	if int(hdr.Length) != len(data) {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "WOFF length field does not match file size"}
	}

	dirStart := headerSize
	dirEnd := dirStart + int(hdr.NumTables)*20
	if dirEnd > len(data) {
		return nil, &font.InvalidFontError{SubSystem: "container", Reason: "WOFF table directory truncated"}
	}

	ff := &FontFile{
		SfntVersion: hdr.Flavor,
		Tables:      make(map[string][]byte, hdr.NumTables),
		Headers:     make(map[string]TableHeader, hdr.NumTables),
	}

	for i := 0; i < int(hdr.NumTables); i++ {
		rec := data[dirStart+i*20:]
		tag := string(rec[0:4])
		offset := binary.BigEndian.Uint32(rec[4:])
		compLength := binary.BigEndian.Uint32(rec[8:])
		origLength := binary.BigEndian.Uint32(rec[12:])
		origChecksum := binary.BigEndian.Uint32(rec[16:])

		end := uint64(offset) + uint64(compLength)
		if end > uint64(len(data)) {
			return nil, &font.InvalidTableError{Tag: tag, Reason: "table data extends past end of file"}
		}
		raw := data[offset : offset+compLength]

		var tableData []byte
		if compLength == origLength {
			// Stored uncompressed.
			tableData = raw
		} else {
			zr, err := zlib.NewReader(bytes.NewReader(raw))
			if err != nil {
				return nil, &font.InvalidTableError{Tag: tag, Reason: "zlib stream: " + err.Error()}
			}
			tableData = make([]byte, origLength)
			_, err = io.ReadFull(zr, tableData)
			zr.Close()
			if err != nil {
				return nil, &font.InvalidTableError{Tag: tag, Reason: "zlib stream: " + err.Error()}
			}
		}

		ff.Headers[tag] = TableHeader{Tag: tag, CheckSum: origChecksum, Offset: offset, Length: uint32(len(tableData))}
		ff.Tables[tag] = tableData
	}

	return ff, nil
}
