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

// Package sfnt ties the container parser and the individual table decoders
// together into a single ParsedFont-shaped handle: Font. Every table is
// decoded lazily, on first request, and the result is memoized for the
// lifetime of the Font, per the write-once/read-many discipline the
// surrounding packages already use table-by-table.
package sfnt

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/cff"
	"github.com/glyphkit/glyphkit/font/container"
	"github.com/glyphkit/glyphkit/font/sfnt/cmap"
	"github.com/glyphkit/glyphkit/font/sfnt/glyf"
	"github.com/glyphkit/glyphkit/font/sfnt/head"
	"github.com/glyphkit/glyphkit/font/sfnt/hmtx"
	"github.com/glyphkit/glyphkit/font/sfnt/name"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/base"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/colr"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/cpal"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/gdef"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/gtab"
	"github.com/glyphkit/glyphkit/font/sfnt/os2"
	"github.com/glyphkit/glyphkit/font/sfnt/post"
	"github.com/glyphkit/glyphkit/font/sfnt/table"
)

// OutlineKind distinguishes the two glyph-outline formats sfnt containers
// may carry.
type OutlineKind int

const (
	// OutlineTrueType means glyph outlines live in "glyf"/"loca".
	OutlineTrueType OutlineKind = iota
	// OutlineCFF means glyph outlines live in a "CFF " (or "CFF2") table.
	OutlineCFF
)

// Font is a lazily-decoded view of one font inside a container.FontFile.
// Open a byte stream with font/container.Open, then wrap each resulting
// *container.FontFile in a Font to access its tables.
type Font struct {
	raw    *container.FontFile
	logger *slog.Logger

	once struct {
		head, maxp, hmtx, os2, post, name      sync.Once
		cmapTable, glyphs, cffFont             sync.Once
		gsub, gpos, gdef                       sync.Once
		colr, cpal, base                       sync.Once
	}
	cached struct {
		head      *head.Info
		headErr   error
		numGlyphs int
		maxpErr   error
		hmtx      *hmtx.Info
		hmtxErr   error
		os2       *os2.Info
		os2Err    error
		post      *post.Info
		postErr   error
		name      *name.Info
		nameErr   error
		cmap      cmap.Table
		cmapErr   error
		best      cmap.Subtable
		glyphs    glyf.Glyphs
		glyphsErr error
		cffFont   *cff.Font
		cffErr    error
		gsub      *gtab.Info
		gsubErr   error
		gpos      *gtab.Info
		gposErr   error
		gdef      *gdef.Table
		gdefErr   error
		colr      *colr.Table
		colrErr   error
		cpal      *cpal.Table
		cpalErr   error
		base      *base.Table
		baseErr   error
	}
}

// New wraps an already-unwrapped table directory in a Font. Use
// font/container.Open to turn a raw byte stream into one or more
// *container.FontFile values first.
func New(raw *container.FontFile) *Font {
	return &Font{raw: raw, logger: slog.Default()}
}

// SetLogger overrides the logger used for tier-2 degrade-and-continue
// diagnostics (malformed optional tables silently worked around rather
// than rejected, such as a truncated ClassDef offset). The default is
// slog.Default().
func (f *Font) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	f.logger = logger
}

// OutlineKind reports whether this font's glyphs are TrueType contours or
// CFF charstrings.
func (f *Font) OutlineKind() OutlineKind {
	if f.raw.Table("CFF ") != nil || f.raw.Table("CFF2") != nil {
		return OutlineCFF
	}
	return OutlineTrueType
}

func reader(data []byte) *bytes.Reader {
	return bytes.NewReader(data)
}

// Head returns the decoded "head" table.
func (f *Font) Head() (*head.Info, error) {
	f.once.head.Do(func() {
		data := f.raw.Table("head")
		if data == nil {
			f.cached.headErr = &font.MissingTableError{Tag: "head"}
			return
		}
		f.cached.head, f.cached.headErr = head.Read(reader(data))
	})
	return f.cached.head, f.cached.headErr
}

// NumGlyphs returns the glyph count from the "maxp" table.
func (f *Font) NumGlyphs() (int, error) {
	f.once.maxp.Do(func() {
		data := f.raw.Table("maxp")
		if data == nil {
			f.cached.maxpErr = &font.MissingTableError{Tag: "maxp"}
			return
		}
		info, err := table.ReadMaxp(reader(data))
		if err != nil {
			f.cached.maxpErr = &font.InvalidTableError{Tag: "maxp", Reason: err.Error()}
			return
		}
		f.cached.numGlyphs = int(info.NumGlyphs)
	})
	return f.cached.numGlyphs, f.cached.maxpErr
}

// Hmtx returns the decoded "hhea"/"hmtx" metrics tables.
func (f *Font) Hmtx() (*hmtx.Info, error) {
	f.once.hmtx.Do(func() {
		hheaData := f.raw.Table("hhea")
		hmtxData := f.raw.Table("hmtx")
		if hheaData == nil {
			f.cached.hmtxErr = &font.MissingTableError{Tag: "hhea"}
			return
		}
		if hmtxData == nil {
			f.cached.hmtxErr = &font.MissingTableError{Tag: "hmtx"}
			return
		}
		f.cached.hmtx, f.cached.hmtxErr = hmtx.Decode(hheaData, hmtxData)
	})
	return f.cached.hmtx, f.cached.hmtxErr
}

// OS2 returns the decoded "OS/2" table.
func (f *Font) OS2() (*os2.Info, error) {
	f.once.os2.Do(func() {
		data := f.raw.Table("OS/2")
		if data == nil {
			f.cached.os2Err = &font.MissingTableError{Tag: "OS/2"}
			return
		}
		f.cached.os2, f.cached.os2Err = os2.Read(reader(data))
	})
	return f.cached.os2, f.cached.os2Err
}

// Post returns the decoded "post" table.
func (f *Font) Post() (*post.Info, error) {
	f.once.post.Do(func() {
		data := f.raw.Table("post")
		if data == nil {
			f.cached.postErr = &font.MissingTableError{Tag: "post"}
			return
		}
		f.cached.post, f.cached.postErr = post.Read(reader(data))
	})
	return f.cached.post, f.cached.postErr
}

// Name returns the decoded "name" table.
func (f *Font) Name() (*name.Info, error) {
	f.once.name.Do(func() {
		data := f.raw.Table("name")
		if data == nil {
			f.cached.nameErr = &font.MissingTableError{Tag: "name"}
			return
		}
		f.cached.name, f.cached.nameErr = name.Decode(data)
	})
	return f.cached.name, f.cached.nameErr
}

// CmapTable returns every subtable of the "cmap" table.
func (f *Font) CmapTable() (cmap.Table, error) {
	f.once.cmapTable.Do(func() {
		data := f.raw.Table("cmap")
		if data == nil {
			f.cached.cmapErr = &font.MissingTableError{Tag: "cmap"}
			return
		}
		f.cached.cmap, f.cached.cmapErr = cmap.Decode(data)
	})
	return f.cached.cmap, f.cached.cmapErr
}

// BestCmap selects and decodes the highest-priority cmap subtable, per the
// platform/encoding preference list in font/sfnt/cmap.
func (f *Font) BestCmap() (cmap.Subtable, error) {
	tbl, err := f.CmapTable()
	if err != nil {
		return nil, err
	}
	if f.cached.best != nil {
		return f.cached.best, nil
	}
	sub, err := tbl.GetBest()
	if err != nil {
		return nil, err
	}
	f.cached.best = sub
	return sub, nil
}

// Glyphs returns the decoded TrueType outlines. It returns
// font.NotSupportedError if this font uses CFF outlines; use CFF instead.
func (f *Font) Glyphs() (glyf.Glyphs, error) {
	f.once.glyphs.Do(func() {
		if f.OutlineKind() != OutlineTrueType {
			f.cached.glyphsErr = &font.NotSupportedError{SubSystem: "sfnt", Feature: "glyf outlines on a CFF font"}
			return
		}
		h, err := f.Head()
		if err != nil {
			f.cached.glyphsErr = err
			return
		}
		glyfData := f.raw.Table("glyf")
		locaData := f.raw.Table("loca")
		if glyfData == nil {
			f.cached.glyphsErr = &font.MissingTableError{Tag: "glyf"}
			return
		}
		if locaData == nil {
			f.cached.glyphsErr = &font.MissingTableError{Tag: "loca"}
			return
		}
		locaFormat := int16(0)
		if h.HasLongOffsets {
			locaFormat = 1
		}
		f.cached.glyphs, f.cached.glyphsErr = glyf.Decode(&glyf.Encoded{
			GlyfData:   glyfData,
			LocaData:   locaData,
			LocaFormat: locaFormat,
		})
	})
	return f.cached.glyphs, f.cached.glyphsErr
}

// CFF returns the decoded CFF font. It returns font.NotSupportedError if
// this font uses TrueType outlines; use Glyphs instead.
func (f *Font) CFF() (*cff.Font, error) {
	f.once.cffFont.Do(func() {
		if f.OutlineKind() != OutlineCFF {
			f.cached.cffErr = &font.NotSupportedError{SubSystem: "sfnt", Feature: "CFF outlines on a TrueType font"}
			return
		}
		data := f.raw.Table("CFF ")
		if data == nil {
			data = f.raw.Table("CFF2")
		}
		if data == nil {
			f.cached.cffErr = &font.MissingTableError{Tag: "CFF "}
			return
		}
		f.cached.cffFont, f.cached.cffErr = cff.Read(reader(data))
	})
	return f.cached.cffFont, f.cached.cffErr
}

// GSUB returns the decoded "GSUB" table, or (nil, nil) if the font has
// none (a font with no glyph substitutions, per spec.md §7 tier 3).
func (f *Font) GSUB() (*gtab.Info, error) {
	f.once.gsub.Do(func() {
		data := f.raw.Table("GSUB")
		if data == nil {
			return
		}
		f.cached.gsub, f.cached.gsubErr = gtab.Read("GSUB", reader(data))
	})
	return f.cached.gsub, f.cached.gsubErr
}

// GPOS returns the decoded "GPOS" table, or (nil, nil) if the font has
// none.
func (f *Font) GPOS() (*gtab.Info, error) {
	f.once.gpos.Do(func() {
		data := f.raw.Table("GPOS")
		if data == nil {
			return
		}
		f.cached.gpos, f.cached.gposErr = gtab.Read("GPOS", reader(data))
	})
	return f.cached.gpos, f.cached.gposErr
}

// GDEF returns the decoded "GDEF" table, or (nil, nil) if the font has
// none.
func (f *Font) GDEF() (*gdef.Table, error) {
	f.once.gdef.Do(func() {
		data := f.raw.Table("GDEF")
		if data == nil {
			return
		}
		f.cached.gdef, f.cached.gdefErr = gdef.Read(reader(data))
	})
	return f.cached.gdef, f.cached.gdefErr
}

// COLR returns the decoded "COLR" color layer table, or nil if the font
// carries none.
func (f *Font) COLR() (*colr.Table, error) {
	f.once.colr.Do(func() {
		data := f.raw.Table("COLR")
		if data == nil {
			return
		}
		f.cached.colr, f.cached.colrErr = colr.Decode(data)
	})
	return f.cached.colr, f.cached.colrErr
}

// CPAL returns the decoded "CPAL" color palette table, or nil if the
// font carries none.
func (f *Font) CPAL() (*cpal.Table, error) {
	f.once.cpal.Do(func() {
		data := f.raw.Table("CPAL")
		if data == nil {
			return
		}
		f.cached.cpal, f.cached.cpalErr = cpal.Decode(data)
	})
	return f.cached.cpal, f.cached.cpalErr
}

// BASE returns the decoded "BASE" baseline table, or nil if the font
// carries none.
func (f *Font) BASE() (*base.Table, error) {
	f.once.base.Do(func() {
		data := f.raw.Table("BASE")
		if data == nil {
			return
		}
		f.cached.base, f.cached.baseErr = base.Decode(data)
	})
	return f.cached.base, f.cached.baseErr
}

// Advance returns the horizontal advance width of gid, in font design
// units. Glyph indices beyond the last explicit hmtx entry repeat the
// final width, per the sfnt "hmtx" specification.
func (f *Font) Advance(gid font.GlyphID) (int32, error) {
	m, err := f.Hmtx()
	if err != nil {
		return 0, err
	}
	widths := m.Width
	if len(widths) == 0 {
		return 0, nil
	}
	idx := int(gid)
	if idx >= len(widths) {
		idx = len(widths) - 1
	}
	return int32(widths[idx]), nil
}

// BBox returns the bounding box of gid in font design units. For CFF
// fonts, where the outline is a charstring rather than a parsed contour
// list, this returns the zero rectangle: metric correctness (advance
// widths) is guaranteed per spec.md §8, but charstring bounding-box
// extraction is not implemented.
func (f *Font) BBox(gid font.GlyphID) (font.Rect, error) {
	if f.OutlineKind() != OutlineTrueType {
		return font.Rect{}, nil
	}
	glyphs, err := f.Glyphs()
	if err != nil {
		return font.Rect{}, err
	}
	if int(gid) >= len(glyphs) {
		return font.Rect{}, &font.GlyphNotFoundError{CodePoint: rune(gid)}
	}
	return glyphs[gid].BBox(), nil
}

// Lookup maps a Unicode scalar value to a glyph ID using the font's
// preferred cmap subtable. Missing codepoints map to glyph 0 (".notdef"),
// per spec.md §4.3.
func (f *Font) Lookup(r rune) (font.GlyphID, error) {
	sub, err := f.BestCmap()
	if err != nil {
		return 0, err
	}
	return sub.Lookup(r), nil
}
