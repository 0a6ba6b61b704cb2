// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

// Package font holds the small set of types shared by every sfnt table
// parser and by the shaping engine: glyph identifiers, glyph records and
// the error kinds raised while reading a font file.
package font

// GlyphID identifies a glyph within a font. Glyph 0 is always ".notdef".
type GlyphID uint16

// Glyph is a single glyph produced while shaping, carrying its id, the
// cluster it belongs to, and the positioning deltas accumulated by GPOS.
type Glyph struct {
	Gid GlyphID

	// Text is the sequence of runes this glyph (or ligature) represents,
	// used for accessibility / extraction, not for rendering.
	Text []rune

	// Cluster identifies the originating codepoint group. Ligatures carry
	// the cluster of their first component; multiple substitutions repeat
	// the cluster of their origin.
	Cluster uint32

	XOffset, YOffset int32

	// Advance is the horizontal advance used for left-to-right and
	// right-to-left layout, in font design units.
	Advance int32
	// YAdvance is the vertical advance used for top-to-bottom layout.
	YAdvance int32

	// MarkAttachClass is the GDEF mark attachment class of this glyph, or 0.
	MarkAttachClass uint8

	// LigatureID groups the components of a single ligature substitution;
	// LigatureComponent records which component of that ligature a mark
	// that attached via Mark-to-Ligature (GPOS type 5) binds to.
	LigatureID        uint16
	LigatureComponent uint8

	// IsMark is true if GDEF classifies this glyph as a combining mark.
	IsMark bool
	// IsLigature is true if GDEF classifies this glyph as a ligature.
	IsLigature bool
}
