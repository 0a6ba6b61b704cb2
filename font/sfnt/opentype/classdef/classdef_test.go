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

package classdef

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"
)

func FuzzClassDef(f *testing.F) {
	f.Add([]byte{0, 1, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1})
	f.Add([]byte{0, 1, 0, 0, 0, 0})
	f.Add([]byte{0, 2, 0, 0})
	f.Fuzz(func(t *testing.T, data []byte) {
		table, err := Read(bytes.NewReader(data), nil)
		if err != nil {
			return
		}

		data2 := table.Encode()

		table2, err := Read(bytes.NewReader(data2), nil)
		if err != nil {
			fmt.Printf("A % x\n", data)
			fmt.Printf("B % x\n", data2)
			fmt.Println(table)
			t.Fatal(err)
		}

		if !reflect.DeepEqual(table, table2) {
			fmt.Printf("A % x\n", data)
			fmt.Printf("B % x\n", data2)
			fmt.Println(table)
			fmt.Println(table2)
			t.Error("different")
		}
	})
}

func TestClassDefFormat1RoundTrip(t *testing.T) {
	table := Table{5: 1, 6: 1, 7: 2}
	data := table.Encode()

	got, err := Read(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table, got) {
		t.Errorf("got %v, want %v", got, table)
	}
}

func TestClassDefFormat2RoundTrip(t *testing.T) {
	table := Table{5: 1, 100: 2, 101: 2, 102: 2, 9000: 3}
	data := table.Encode()

	got, err := Read(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(table, got) {
		t.Errorf("got %v, want %v", got, table)
	}
}

func TestClassDefEmpty(t *testing.T) {
	table := Table{}
	data := table.Encode()

	got, err := Read(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty table", got)
	}
}
