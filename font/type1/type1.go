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

// Package type1 holds the small set of hinting parameters that CFF fonts
// inherit from the Type 1 font format's Private dictionary.
package type1

// FontInfo holds the descriptive fields of a CFF/Type 1 top-level font
// dictionary: version, naming and legal notices, plus the slant and
// underline parameters inherited from Type 1.
type FontInfo struct {
	Version    string
	Notice     string
	Copyright  string
	FullName   string
	FamilyName string
	Weight     string

	IsFixedPitch bool
	ItalicAngle  float64

	UnderlinePosition  int32
	UnderlineThickness int32
}

// PrivateDict holds the hinting parameters of a CFF Private DICT.
type PrivateDict struct {
	BlueValues []int32
	OtherBlues []int32

	BlueScale float64
	BlueShift int32
	BlueFuzz  int32

	StdHW float64
	StdVW float64

	ForceBold bool
}
