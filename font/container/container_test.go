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
	"testing"
)

func TestOpenUnknownSignature(t *testing.T) {
	_, err := Open([]byte("junk"))
	if err == nil {
		t.Fatal("expected an error for an unrecognised signature")
	}
}

func TestOpenTooShort(t *testing.T) {
	_, err := Open([]byte{0, 1})
	if err == nil {
		t.Fatal("expected an error for a truncated file")
	}
}

func TestParseSfntRoundTrip(t *testing.T) {
	tableData := []byte("hello world, this is a test table")
	body := make([]byte, len(tableData)+3) // padded to a multiple of 4
	copy(body, tableData)

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(0x00010000)) // sfnt version
	_ = binary.Write(&buf, binary.BigEndian, uint16(1))          // numTables
	_ = binary.Write(&buf, binary.BigEndian, uint16(0))          // searchRange
	_ = binary.Write(&buf, binary.BigEndian, uint16(0))          // entrySelector
	_ = binary.Write(&buf, binary.BigEndian, uint16(0))          // rangeShift

	const tableStart = 12 + 16
	buf.WriteString("TEST")
	_ = binary.Write(&buf, binary.BigEndian, calcTableChecksum(body))
	_ = binary.Write(&buf, binary.BigEndian, uint32(tableStart))
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(tableData)))
	buf.Write(body)

	fonts, err := Open(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(fonts) != 1 {
		t.Fatalf("expected 1 font, got %d", len(fonts))
	}
	got := fonts[0].Table("TEST")
	if !bytes.Equal(got, tableData) {
		t.Errorf("table data mismatch: got %q, want %q", got, tableData)
	}
}

func TestUintBase128(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x3F}, 63},
		{[]byte{0x81, 0x00}, 128},
		{[]byte{0xFF, 0x7F}, 1<<14 - 1},
	}
	for _, c := range cases {
		r := &woff2Reader{b: c.bytes}
		got, err := r.uintBase128()
		if err != nil {
			t.Fatalf("uintBase128(%v): %v", c.bytes, err)
		}
		if got != c.want {
			t.Errorf("uintBase128(%v) = %d, want %d", c.bytes, got, c.want)
		}
	}
}

func TestUintBase128RejectsLeadingZero(t *testing.T) {
	r := &woff2Reader{b: []byte{0x80, 0x00}}
	_, err := r.uintBase128()
	if err == nil {
		t.Fatal("expected an error for a leading zero byte")
	}
}

func TestRead255UInt16(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  uint16
	}{
		{[]byte{10}, 10},
		{[]byte{252}, 252},
		{[]byte{255, 0}, 253},
		{[]byte{254, 0}, 506},
		{[]byte{253, 0x01, 0x00}, 256},
	}
	for _, c := range cases {
		r := &woff2Reader{b: c.bytes}
		got, err := r.read255UInt16()
		if err != nil {
			t.Fatalf("read255UInt16(%v): %v", c.bytes, err)
		}
		if got != c.want {
			t.Errorf("read255UInt16(%v) = %d, want %d", c.bytes, got, c.want)
		}
	}
}

func TestBitReader(t *testing.T) {
	r := &bitReader{data: []byte{0b10100000}}
	want := []bool{true, false, true, false, false, false, false, false}
	for i, w := range want {
		if got := r.read(); got != w {
			t.Errorf("bit %d: got %v, want %v", i, got, w)
		}
	}
}
