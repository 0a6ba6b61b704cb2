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

// bitReader reads a single bit per glyph from a packed, MSB-first bitmap,
// as used for the WOFF2 transformed-glyf bbox and overlap-simple bitmaps.
type bitReader struct {
	data []byte
	pos  int
}

func (b *bitReader) read() bool {
	byteIdx := b.pos >> 3
	if byteIdx >= len(b.data) {
		b.pos++
		return false
	}
	bit := b.data[byteIdx]&(0x80>>uint(b.pos&7)) != 0
	b.pos++
	return bit
}

// reconstructGlyfLoca rebuilds the standard glyf and loca tables from a
// WOFF2 transformed glyf table. b is the (already Brotli-decompressed)
// transformed glyf payload; origLocaLength is the announced original size
// of the loca table and is not used: the loca index format (short or long
// offsets) comes from the indexFormat field of the transform header.
func reconstructGlyfLoca(b []byte, origLocaLength uint32) ([]byte, []byte, error) {
	r := &woff2Reader{b: b}

	_ = r.uint16() // reserved version field
	optionFlags := r.uint16()
	numGlyphs := int(r.uint16())
	indexFormat := r.int16()

	nContourStreamSize := int(r.uint32())
	nPointsStreamSize := int(r.uint32())
	flagStreamSize := int(r.uint32())
	glyphStreamSize := int(r.uint32())
	compositeStreamSize := int(r.uint32())
	bboxStreamSize := int(r.uint32())
	instructionStreamSize := int(r.uint32())

	if nContourStreamSize != 2*numGlyphs {
		return nil, nil, &font.InvalidTableError{Tag: "glyf", Reason: "nContourStream has the wrong size"}
	}
	if r.eof() {
		return nil, nil, &font.InvalidTableError{Tag: "glyf", Reason: "transform header truncated"}
	}

	bitmapSize := ((numGlyphs + 31) >> 5) << 2

	nContourStream := &woff2Reader{b: r.bytes(nContourStreamSize)}
	nPointsStream := &woff2Reader{b: r.bytes(nPointsStreamSize)}
	flagStream := &woff2Reader{b: r.bytes(flagStreamSize)}
	glyphStream := &woff2Reader{b: r.bytes(glyphStreamSize)}
	compositeStream := &woff2Reader{b: r.bytes(compositeStreamSize)}
	bboxBitmap := &bitReader{data: r.bytes(bitmapSize)}
	if bboxStreamSize < bitmapSize {
		return nil, nil, &font.InvalidTableError{Tag: "glyf", Reason: "bboxStream smaller than its bitmap"}
	}
	bboxStream := &woff2Reader{b: r.bytes(bboxStreamSize - bitmapSize)}
	instructionStream := &woff2Reader{b: r.bytes(instructionStreamSize)}

	var overlapBitmap *bitReader
	if optionFlags&1 != 0 {
		overlapBitmap = &bitReader{data: r.bytes(bitmapSize)}
	}
	if r.eof() {
		return nil, nil, &font.InvalidTableError{Tag: "glyf", Reason: "transform streams truncated"}
	}

	var glyf []byte
	loca := make([]uint32, 0, numGlyphs+1)

	for i := 0; i < numGlyphs; i++ {
		loca = append(loca, uint32(len(glyf)))

		explicitBbox := bboxBitmap.read()
		var overlapBit bool
		if overlapBitmap != nil {
			overlapBit = overlapBitmap.read()
		}
		nContours := nContourStream.int16()

		switch {
		case nContours == 0:
			if explicitBbox {
				return nil, nil, &font.InvalidTableError{Tag: "glyf", Reason: "empty glyph must not have an explicit bbox"}
			}
			continue

		case nContours > 0:
			var xMin, yMin, xMax, yMax int16
			if explicitBbox {
				xMin, yMin, xMax, yMax = bboxStream.int16(), bboxStream.int16(), bboxStream.int16(), bboxStream.int16()
			}

			endPts := make([]uint16, nContours)
			nPoints := 0
			for c := 0; c < int(nContours); c++ {
				np, err := nPointsStream.read255UInt16()
				if err != nil {
					return nil, nil, err
				}
				nPoints += int(np)
				endPts[c] = uint16(nPoints - 1)
			}

			flags := make([]byte, nPoints)
			dxs := make([]int16, nPoints)
			dys := make([]int16, nPoints)
			var x, y int
			for p := 0; p < nPoints; p++ {
				raw := flagStream.byte()
				onCurve := raw&0x80 == 0
				flag := raw & 0x7F

				var dx, dy int
				switch {
				case flag < 10:
					b1 := int(glyphStream.byte())
					dy = int(flag&14)<<7 + b1
					if flag&1 == 0 {
						dy = -dy
					}
				case flag < 20:
					f := flag - 10
					b1 := int(glyphStream.byte())
					dx = int(f&14)<<7 + b1
					if f&1 == 0 {
						dx = -dx
					}
				case flag < 84:
					f := int(flag - 20)
					b1 := int(glyphStream.byte())
					dx = 1 + (f & 48) + (b1 >> 4)
					dy = 1 + ((f & 12) << 2) + (b1 & 15)
					if f&1 == 0 {
						dx = -dx
					}
					if f&2 == 0 {
						dy = -dy
					}
				case flag < 120:
					f := int(flag - 84)
					b1 := int(glyphStream.byte())
					b2 := int(glyphStream.byte())
					dx = 1 + ((f/12)<<8) + b1
					dy = 1 + (((f%12)/4)<<8) + b2
					if f&1 == 0 {
						dx = -dx
					}
					if f&2 == 0 {
						dy = -dy
					}
				case flag < 124:
					f := int(flag - 120)
					b1 := int(glyphStream.byte())
					b2 := int(glyphStream.byte())
					b3 := int(glyphStream.byte())
					dx = (b1 << 4) + (b2 >> 4)
					dy = ((b2 & 15) << 8) + b3
					if f&1 == 0 {
						dx = -dx
					}
					if f&2 == 0 {
						dy = -dy
					}
				default:
					b1 := int(glyphStream.byte())
					b2 := int(glyphStream.byte())
					b3 := int(glyphStream.byte())
					b4 := int(glyphStream.byte())
					dx = (b1 << 8) + b2
					dy = (b3 << 8) + b4
					if flag&1 == 0 {
						dx = -dx
					}
					if flag&2 == 0 {
						dy = -dy
					}
				}

				x += dx
				y += dy
				dxs[p] = int16(dx)
				dys[p] = int16(dy)

				var f byte
				if onCurve {
					f |= 0x01
				}
				if p == 0 && overlapBit {
					f |= 0x40
				}
				flags[p] = f

				if !explicitBbox {
					if p == 0 || x < int(xMin) {
						xMin = int16(x)
					}
					if p == 0 || y < int(yMin) {
						yMin = int16(y)
					}
					if p == 0 || x > int(xMax) {
						xMax = int16(x)
					}
					if p == 0 || y > int(yMax) {
						yMax = int16(y)
					}
				}
			}

			instrLen, err := glyphStream.read255UInt16()
			if err != nil {
				return nil, nil, err
			}
			instr := instructionStream.bytes(int(instrLen))
			if instr == nil && instrLen != 0 {
				return nil, nil, &font.InvalidTableError{Tag: "glyf", Reason: "instructionStream truncated"}
			}

			buf := make([]byte, 0, 10+2*int(nContours)+2+len(instr)+nPoints+2*nPoints)
			buf = appendUint16(buf, uint16(nContours))
			buf = appendInt16(buf, xMin)
			buf = appendInt16(buf, yMin)
			buf = appendInt16(buf, xMax)
			buf = appendInt16(buf, yMax)
			for _, e := range endPts {
				buf = appendUint16(buf, e)
			}
			buf = appendUint16(buf, instrLen)
			buf = append(buf, instr...)
			buf = append(buf, flags...)
			for _, dx := range dxs {
				buf = appendInt16(buf, dx)
			}
			for _, dy := range dys {
				buf = appendInt16(buf, dy)
			}
			glyf = append(glyf, buf...)

		default: // composite glyph
			if !explicitBbox {
				return nil, nil, &font.InvalidTableError{Tag: "glyf", Reason: "composite glyph must have an explicit bbox"}
			}
			xMin, yMin, xMax, yMax := bboxStream.int16(), bboxStream.int16(), bboxStream.int16(), bboxStream.int16()

			buf := make([]byte, 0, 32)
			buf = appendUint16(buf, uint16(nContours))
			buf = appendInt16(buf, xMin)
			buf = appendInt16(buf, yMin)
			buf = appendInt16(buf, xMax)
			buf = appendInt16(buf, yMax)

			needInstructions := false
			for {
				compFlags := compositeStream.uint16()
				argsAreWords := compFlags&0x0001 != 0
				haveScale := compFlags&0x0008 != 0
				moreComponents := compFlags&0x0020 != 0
				haveXYScale := compFlags&0x0040 != 0
				have2x2 := compFlags&0x0080 != 0
				haveInstructions := compFlags&0x0100 != 0

				numBytes := 4
				if argsAreWords {
					numBytes += 2
				}
				switch {
				case have2x2:
					numBytes += 8
				case haveXYScale:
					numBytes += 4
				case haveScale:
					numBytes += 2
				}

				compBytes := compositeStream.bytes(numBytes)
				if compBytes == nil {
					return nil, nil, &font.InvalidTableError{Tag: "glyf", Reason: "compositeStream truncated"}
				}
				buf = appendUint16(buf, compFlags)
				buf = append(buf, compBytes...)

				if haveInstructions {
					needInstructions = true
				}
				if !moreComponents {
					break
				}
			}

			if needInstructions {
				instrLen, err := glyphStream.read255UInt16()
				if err != nil {
					return nil, nil, err
				}
				instr := instructionStream.bytes(int(instrLen))
				buf = appendUint16(buf, instrLen)
				buf = append(buf, instr...)
			}

			glyf = append(glyf, buf...)
		}

		if pad := len(glyf) % 4; pad != 0 {
			glyf = append(glyf, make([]byte, 4-pad)...)
		}
	}
	loca = append(loca, uint32(len(glyf)))

	var locaBytes []byte
	if indexFormat == 0 {
		locaBytes = make([]byte, 2*len(loca))
		for i, off := range loca {
			binary.BigEndian.PutUint16(locaBytes[2*i:], uint16(off/2))
		}
	} else {
		locaBytes = make([]byte, 4*len(loca))
		for i, off := range loca {
			binary.BigEndian.PutUint32(locaBytes[4*i:], off)
		}
	}
	_ = origLocaLength

	return glyf, locaBytes, nil
}

func appendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

func appendInt16(b []byte, v int16) []byte {
	return appendUint16(b, uint16(v))
}

// reconstructHmtx rebuilds the hmtx table from its WOFF2 transformed form.
// The transform omits the left side bearings that equal a glyph's xMin
// bounding-box coordinate (the common case); those are recovered from the
// reconstructed glyf/loca tables.
func reconstructHmtx(b, head, glyf, loca, maxp, hhea []byte) ([]byte, error) {
	if len(head) < 52 {
		return nil, &font.InvalidTableError{Tag: "head", Reason: "table too short"}
	}
	indexFormat := int16(binary.BigEndian.Uint16(head[50:]))

	if len(maxp) < 6 {
		return nil, &font.InvalidTableError{Tag: "maxp", Reason: "table too short"}
	}
	numGlyphs := int(binary.BigEndian.Uint16(maxp[4:]))

	if len(hhea) < 36 {
		return nil, &font.InvalidTableError{Tag: "hhea", Reason: "table too short"}
	}
	numHMetrics := int(binary.BigEndian.Uint16(hhea[34:]))
	if numHMetrics < 1 {
		return nil, &font.InvalidTableError{Tag: "hmtx", Reason: "must have at least one entry"}
	}
	if numGlyphs < numHMetrics {
		return nil, &font.InvalidTableError{Tag: "hmtx", Reason: "more metrics than glyphs"}
	}

	wantLocaLen := (numGlyphs + 1) * 2
	if indexFormat != 0 {
		wantLocaLen = (numGlyphs + 1) * 4
	}
	if len(loca) != wantLocaLen {
		return nil, &font.InvalidTableError{Tag: "loca", Reason: "unexpected length"}
	}

	r := &woff2Reader{b: b}
	flags := r.byte()
	reconstructProportional := flags&0x01 != 0
	reconstructMonospaced := flags&0x02 != 0
	if flags&0xFC != 0 {
		return nil, &font.InvalidTableError{Tag: "hmtx", Reason: "reserved flag bits set"}
	}
	if !reconstructProportional && !reconstructMonospaced {
		return nil, &font.InvalidTableError{Tag: "hmtx", Reason: "must reconstruct at least one side-bearing array"}
	}

	advanceWidths := make([]uint16, numHMetrics)
	lsbs := make([]int16, numGlyphs)
	for i := 0; i < numHMetrics; i++ {
		advanceWidths[i] = r.uint16()
	}
	if !reconstructProportional {
		for i := 0; i < numHMetrics; i++ {
			lsbs[i] = r.int16()
		}
	}
	if !reconstructMonospaced {
		for i := numHMetrics; i < numGlyphs; i++ {
			lsbs[i] = r.int16()
		}
	}
	if r.eof() {
		return nil, &font.InvalidTableError{Tag: "hmtx", Reason: "transform stream truncated"}
	}

	locaOffset := func(i int) uint32 {
		if indexFormat == 0 {
			return uint32(binary.BigEndian.Uint16(loca[2*i:])) << 1
		}
		return binary.BigEndian.Uint32(loca[4*i:])
	}

	iMin, iMax := 0, numGlyphs
	if !reconstructProportional {
		iMin = numHMetrics
	} else if !reconstructMonospaced {
		iMax = numHMetrics
	}
	for i := iMin; i < iMax; i++ {
		start, end := locaOffset(i), locaOffset(i+1)
		if start == end {
			lsbs[i] = 0
			continue
		}
		if int(start)+4 > len(glyf) {
			return nil, &font.InvalidTableError{Tag: "hmtx", Reason: "glyf data out of range"}
		}
		lsbs[i] = int16(binary.BigEndian.Uint16(glyf[start+2:]))
	}

	out := make([]byte, 4*numHMetrics+2*(numGlyphs-numHMetrics))
	pos := 0
	for i := 0; i < numHMetrics; i++ {
		binary.BigEndian.PutUint16(out[pos:], advanceWidths[i])
		binary.BigEndian.PutUint16(out[pos+2:], uint16(lsbs[i]))
		pos += 4
	}
	for i := numHMetrics; i < numGlyphs; i++ {
		binary.BigEndian.PutUint16(out[pos:], uint16(lsbs[i]))
		pos += 2
	}
	return out, nil
}
