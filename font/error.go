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

package font

import "fmt"

// InvalidFontError indicates a problem with font data.
type InvalidFontError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// NotSupportedError indicates that a font file seems valid but uses a
// feature which is not supported by this library.
type NotSupportedError struct {
	SubSystem string
	Feature   string
}

func (err *NotSupportedError) Error() string {
	return err.SubSystem + ": " + err.Feature + " not supported"
}

// IsUnsupported returns true if the error is a NotSupportedError.
func IsUnsupported(err error) bool {
	_, ok := err.(*NotSupportedError)
	return ok
}

// MissingTableError is returned when a required sfnt table is absent.
type MissingTableError struct {
	Tag string
}

func (err *MissingTableError) Error() string {
	return fmt.Sprintf("font: missing required table %q", err.Tag)
}

// InvalidTableError is returned when a table is present but malformed.
type InvalidTableError struct {
	Tag    string
	Reason string
}

func (err *InvalidTableError) Error() string {
	return fmt.Sprintf("font: invalid %q table: %s", err.Tag, err.Reason)
}

// GlyphNotFoundError is returned by APIs that require an existing glyph.
type GlyphNotFoundError struct {
	CodePoint rune
}

func (err *GlyphNotFoundError) Error() string {
	return fmt.Sprintf("font: no glyph for U+%04X", err.CodePoint)
}

// InvalidCodePointError indicates that a rune does not encode a valid
// Unicode scalar value (it is negative, beyond U+10FFFF, or a surrogate).
type InvalidCodePointError struct {
	Value int32
}

func (err *InvalidCodePointError) Error() string {
	return fmt.Sprintf("font: invalid code point %#x", err.Value)
}
