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
	"encoding/binary"
	"io"
	"sort"

	"github.com/andybalholm/brotli"

	"github.com/glyphkit/glyphkit/font"
)

// woff2TableTags are the 63 tags that may appear abbreviated as a 6-bit
// index in a WOFF2 table directory entry flag byte. Index 63 always means
// "the tag is spelled out in full immediately after the flag byte".
// https://www.w3.org/TR/WOFF2/#table_dir_format
var woff2TableTags = [63]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

// woff2Reader is a cursor over an in-memory byte slice, used both for the
// WOFF2 header/table directory (big-endian fixed-width fields and
// UIntBase128 varints) and for the glyf/loca/hmtx transform streams.
type woff2Reader struct {
	b   []byte
	pos int
}

func (r *woff2Reader) eof() bool { return r.pos > len(r.b) }

func (r *woff2Reader) byte() byte {
	if r.pos >= len(r.b) {
		r.pos = len(r.b) + 1
		return 0
	}
	c := r.b[r.pos]
	r.pos++
	return c
}

func (r *woff2Reader) bytes(n int) []byte {
	if n < 0 || r.pos+n > len(r.b) {
		r.pos = len(r.b) + 1
		return nil
	}
	out := r.b[r.pos : r.pos+n]
	r.pos += n
	return out
}

func (r *woff2Reader) uint16() uint16 {
	buf := r.bytes(2)
	if buf == nil {
		return 0
	}
	return binary.BigEndian.Uint16(buf)
}

func (r *woff2Reader) int16() int16 { return int16(r.uint16()) }

func (r *woff2Reader) uint32() uint32 {
	buf := r.bytes(4)
	if buf == nil {
		return 0
	}
	return binary.BigEndian.Uint32(buf)
}

// uintBase128 reads a UIntBase128 variable-length integer: up to 5 bytes,
// 7 bits of payload per byte, most significant byte first, continuation
// indicated by the top bit. A leading zero byte and values that overflow
// 32 bits are rejected, per the WOFF2 spec.
func (r *woff2Reader) uintBase128() (uint32, error) {
	var accum uint32
	for i := 0; i < 5; i++ {
		b := r.byte()
		if r.eof() {
			return 0, &font.InvalidFontError{SubSystem: "woff2", Reason: "UIntBase128: truncated"}
		}
		if i == 0 && b == 0x80 {
			return 0, &font.InvalidFontError{SubSystem: "woff2", Reason: "UIntBase128: leading zero byte"}
		}
		if accum&0xFE000000 != 0 {
			return 0, &font.InvalidFontError{SubSystem: "woff2", Reason: "UIntBase128: overflow"}
		}
		accum = accum<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return accum, nil
		}
	}
	return 0, &font.InvalidFontError{SubSystem: "woff2", Reason: "UIntBase128: too long"}
}

// read255UInt16 reads the variable-length point-count/instruction-length
// encoding used inside the transformed glyf table.
// https://www.w3.org/TR/WOFF2/#255UInt16
func (r *woff2Reader) read255UInt16() (uint16, error) {
	const (
		oneMoreByteCode1 = 255
		oneMoreByteCode2 = 254
		wordCode         = 253
		lowestUCode      = 253
	)
	code := r.byte()
	switch {
	case code == wordCode:
		return r.uint16(), nil
	case code == oneMoreByteCode1:
		return uint16(r.byte()) + lowestUCode, nil
	case code == oneMoreByteCode2:
		return uint16(r.byte()) + lowestUCode*2, nil
	default:
		return uint16(code), nil
	}
}

// parseWOFF2 decodes a WOFF2 file by reconstructing a complete, flat sfnt
// table set: the file's single combined Brotli stream is decompressed and
// sliced per table, and the glyf/loca/hmtx tables are rebuilt from their
// transformed representation when present.
func parseWOFF2(data []byte) (*FontFile, error) {
	r := &woff2Reader{b: data}

	signature := r.uint32()
	if signature != tagWOFF2 {
		return nil, &font.InvalidFontError{SubSystem: "woff2", Reason: "bad signature"}
	}
	flavor := r.uint32()
	if flavor == tagTTC {
		return nil, &font.NotSupportedError{SubSystem: "woff2", Feature: "WOFF2 collections"}
	}
	_ = r.uint32() // length, not needed once we have the full byte slice
	numTables := r.uint16()
	reserved := r.uint16()
	if reserved != 0 {
		return nil, &font.InvalidFontError{SubSystem: "woff2", Reason: "reserved field must be zero"}
	}
	_ = r.uint32() // totalSfntSize
	totalCompressedSize := r.uint32()
	_ = r.uint16() // majorVersion
	_ = r.uint16() // minorVersion
	metaOffset := r.uint32()
	metaLength := r.uint32()
	_ = r.uint32() // metaOrigLength
	privOffset := r.uint32()
	privLength := r.uint32()
	_ = metaOffset
	_ = metaLength
	_ = privOffset
	_ = privLength

	type tableEntry struct {
		tag              string
		transformVersion uint8
		origLength       uint32
		hasTransform     bool
		transformLength  uint32
	}

	entries := make([]tableEntry, numTables)
	var uncompressedSize uint32
	haveGlyf, haveLoca := false, false
	glyfTransformed, locaTransformVersion := false, uint8(0)

	for i := 0; i < int(numTables); i++ {
		flags := r.byte()
		tagIndex := flags & 0x3F
		transformVersion := (flags & 0xC0) >> 6

		var tag string
		if tagIndex == 0x3F {
			tag = string(r.bytes(4))
		} else {
			tag = woff2TableTags[tagIndex]
		}

		origLength, err := r.uintBase128()
		if err != nil {
			return nil, err
		}

		e := tableEntry{tag: tag, transformVersion: transformVersion, origLength: origLength}

		needsTransformLength := (tag == "glyf" || tag == "loca") && transformVersion == 0 ||
			tag == "hmtx" && transformVersion == 1
		if needsTransformLength {
			tl, err := r.uintBase128()
			if err != nil {
				return nil, err
			}
			e.hasTransform = true
			e.transformLength = tl
			uncompressedSize += tl
		} else {
			uncompressedSize += origLength
		}

		if tag == "glyf" {
			haveGlyf = true
			glyfTransformed = transformVersion == 0
		}
		if tag == "loca" {
			haveLoca = true
			locaTransformVersion = transformVersion
		}

		entries[i] = e
	}
	if r.eof() {
		return nil, &font.InvalidFontError{SubSystem: "woff2", Reason: "table directory truncated"}
	}
	if haveGlyf != haveLoca {
		return nil, &font.InvalidFontError{SubSystem: "woff2", Reason: "glyf and loca must both be present or both absent"}
	}

	compStart := r.pos
	compEnd := compStart + int(totalCompressedSize)
	if compEnd > len(data) {
		return nil, &font.InvalidFontError{SubSystem: "woff2", Reason: "compressed data truncated"}
	}
	compData := data[compStart:compEnd]

	br := brotli.NewReader(bytes.NewReader(compData))
	body := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, &font.InvalidFontError{SubSystem: "woff2", Reason: "brotli stream: " + err.Error()}
	}

	ff := &FontFile{
		SfntVersion: flavor,
		Tables:      make(map[string][]byte, numTables),
		Headers:     make(map[string]TableHeader, numTables),
	}

	rawTables := make(map[string][]byte, numTables)
	offset := 0
	for _, e := range entries {
		size := e.origLength
		if e.hasTransform {
			size = e.transformLength
		}
		if e.tag == "loca" && locaTransformVersion == 0 {
			// Reconstructed below from the transformed glyf stream; the
			// (empty) transformLength for loca is not stored in the body.
			continue
		}
		if int(offset)+int(size) > len(body) {
			return nil, &font.InvalidTableError{Tag: e.tag, Reason: "transform stream truncated"}
		}
		rawTables[e.tag] = body[offset : offset+int(size)]
		offset += int(size)
	}

	if haveGlyf && glyfTransformed {
		var locaOrigLength uint32
		for _, e := range entries {
			if e.tag == "loca" {
				locaOrigLength = e.origLength
			}
		}
		glyfData, locaData, err := reconstructGlyfLoca(rawTables["glyf"], locaOrigLength)
		if err != nil {
			return nil, err
		}
		rawTables["glyf"] = glyfData
		rawTables["loca"] = locaData
	}

	for _, e := range entries {
		if e.tag == "hmtx" && e.hasTransform {
			head, glyf, loca, maxp, hhea := rawTables["head"], rawTables["glyf"], rawTables["loca"], rawTables["maxp"], rawTables["hhea"]
			if head == nil || glyf == nil || loca == nil || maxp == nil || hhea == nil {
				return nil, &font.InvalidFontError{SubSystem: "woff2", Reason: "hmtx transform requires head, glyf, loca, maxp and hhea"}
			}
			hmtxData, err := reconstructHmtx(rawTables["hmtx"], head, glyf, loca, maxp, hhea)
			if err != nil {
				return nil, err
			}
			rawTables["hmtx"] = hmtxData
		}
	}

	if head := rawTables["head"]; len(head) >= 54 {
		headCopy := make([]byte, len(head))
		copy(headCopy, head)
		// checkSumAdjustment is zeroed; it is not recomputed for the
		// reassembled font.
		binary.BigEndian.PutUint32(headCopy[8:], 0)
		rawTables["head"] = headCopy
	}

	if _, ok := rawTables["DSIG"]; ok {
		return nil, &font.NotSupportedError{SubSystem: "woff2", Feature: "fonts with a DSIG table"}
	}

	tags := make([]string, 0, len(rawTables))
	for tag := range rawTables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	sfntOffset := uint32(12 + 16*len(tags))
	for _, tag := range tags {
		tableData := rawTables[tag]
		ff.Headers[tag] = TableHeader{
			Tag:      tag,
			CheckSum: calcTableChecksum(tableData),
			Offset:   sfntOffset,
			Length:   uint32(len(tableData)),
		}
		ff.Tables[tag] = tableData
		sfntOffset += uint32((len(tableData) + 3) &^ 3)
	}

	return ff, nil
}
