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

// Package layout turns a paragraph of UTF-16 text into a sequence of
// positioned glyphs: it splits the text into bidi and script runs, hands
// each run to a shaping.Shaper, and accumulates the shaped glyphs along a
// pen position with tab expansion, line breaking and alignment.
//
// Script run splitting treats a registered Unicode Script property trie's
// values as locale.Script codes directly, not as raw ISO 15924 numbers: a
// caller that loads a Script trie for this engine is expected to encode
// script values using this module's locale.Script constants, so the same
// vocabulary flows from Unicode property data through to the OpenType
// script tag the shaper selects, without a second translation table.
//
// Word wrapping here is a single greedy break-on-space mechanism, not a
// general text-wrapping or justification policy: no hyphenation, no
// script-specific line-break classes (see the LineBreak Unicode
// property, which this package does not consult), and an unbreakable run
// longer than the wrap width simply overflows it. Full typesetting
// policy is explicitly a host concern layered on top of this engine.
package layout

import (
	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/locale"
	"github.com/glyphkit/glyphkit/shaping"
	"github.com/glyphkit/glyphkit/unicode/bidi"
	"github.com/glyphkit/glyphkit/unicode/ucd"
)

// Alignment is the horizontal placement of a line's glyphs relative to
// its available width: the wrap width if Options.WrappingLength is set,
// or the widest line in the laid-out text otherwise.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// Point is a position in font design units.
type Point struct {
	X, Y int32
}

// Options configures a single call to Engine.Layout.
type Options struct {
	// Direction forces the paragraph's base direction, skipping UAX #9
	// resolution entirely. Nil lets Engine.Layout resolve bidi runs from
	// the text itself.
	Direction *bidi.Direction

	// ScriptOverride forces every run to the given script, skipping
	// script-run splitting. Nil splits on the registered Script property
	// trie, falling back to locale.ScriptUndefined where none is set.
	ScriptOverride *locale.Script

	Language locale.Language
	Features map[string]bool

	// TabWidth is the number of space advances a tab character expands
	// to. Zero defaults to 8.
	TabWidth int

	// WrappingLength is the maximum line width, in font design units,
	// before a greedy break at the preceding space. Zero disables
	// wrapping.
	WrappingLength int32

	Origin    Point
	Alignment Alignment
}

// PositionedGlyph is one glyph placed in layout space.
type PositionedGlyph struct {
	GlyphID font.GlyphID

	// Origin is the glyph's pen position, including the GPOS offsets
	// already folded in by shaping.
	Origin Point

	// Bounds is the glyph's bounding box in font design units, relative
	// to the glyph's own origin (add Origin to translate into layout
	// space). It is the zero rectangle for CFF-outline fonts, where
	// bounding-box extraction from charstrings is not implemented (see
	// sfnt.Font.BBox).
	Bounds font.Rect
}

// Engine lays out paragraphs against a single shaper.
type Engine struct {
	shaper *shaping.Shaper
	tables *ucd.Tables
}

// New returns an Engine that shapes runs with s.
func New(s *shaping.Shaper) *Engine {
	return &Engine{shaper: s}
}

// SetUnicodeTables registers the Unicode property tables used for both
// script-run splitting here and the shaper's own script-specific feature
// preprocessing, so a caller only has to load and register tries once.
func (e *Engine) SetUnicodeTables(t *ucd.Tables) {
	e.tables = t
	e.shaper.SetUnicodeTables(t)
}

type lineBreak struct {
	start, end int
	width      int32
}

// Layout decodes units as UTF-16, shapes it under opts, and returns the
// resulting glyphs positioned in font design units starting at
// opts.Origin.
func (e *Engine) Layout(units []uint16, opts Options) ([]PositionedGlyph, error) {
	cps := ucd.Decode(units)
	if len(cps) == 0 {
		return nil, nil
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 8
	}

	tabAdvance, err := e.tabAdvance(opts.TabWidth)
	if err != nil {
		return nil, err
	}
	lineAdvance, err := e.lineAdvance()
	if err != nil {
		return nil, err
	}
	f := e.shaper.Font()

	var out []PositionedGlyph
	var lines []lineBreak
	pen := opts.Origin
	lineStart := 0
	lastBreak := -1
	lastBreakPenX := pen.X

	appendGlyph := func(g font.Glyph) error {
		bounds, err := f.BBox(g.Gid)
		if err != nil {
			return err
		}
		out = append(out, PositionedGlyph{
			GlyphID: g.Gid,
			Origin:  Point{pen.X + g.XOffset, pen.Y + g.YOffset},
			Bounds:  bounds,
		})
		pen.X += g.Advance
		pen.Y += g.YAdvance

		if len(g.Text) == 1 && g.Text[0] == ' ' {
			lastBreak = len(out) - 1
			lastBreakPenX = pen.X
		}

		if opts.WrappingLength > 0 && pen.X-opts.Origin.X > opts.WrappingLength &&
			lastBreak >= 0 && lastBreak+1 > lineStart && lastBreak+1 < len(out) {
			breakAt := lastBreak + 1
			shiftX := out[breakAt].Origin.X - opts.Origin.X
			for i := breakAt; i < len(out); i++ {
				out[i].Origin.X -= shiftX
				out[i].Origin.Y += lineAdvance
			}
			lines = append(lines, lineBreak{start: lineStart, end: breakAt, width: lastBreakPenX - opts.Origin.X})
			lineStart = breakAt
			pen.X -= shiftX
			pen.Y += lineAdvance
			lastBreak = -1
		}
		return nil
	}

	i, n := 0, len(cps)
	for i < n {
		j := i
		for j < n && cps[j] != '\t' && cps[j] != '\n' {
			j++
		}
		if j > i {
			glyphs, err := e.shapeSpan(cps[i:j], opts)
			if err != nil {
				return nil, err
			}
			for _, g := range glyphs {
				if err := appendGlyph(g); err != nil {
					return nil, err
				}
			}
		}
		if j == n {
			break
		}
		switch cps[j] {
		case '\t':
			pen.X += tabAdvance
		case '\n':
			lines = append(lines, lineBreak{start: lineStart, end: len(out), width: pen.X - opts.Origin.X})
			lineStart = len(out)
			pen.X = opts.Origin.X
			pen.Y += lineAdvance
			lastBreak = -1
		}
		i = j + 1
	}
	lines = append(lines, lineBreak{start: lineStart, end: len(out), width: pen.X - opts.Origin.X})

	applyAlignment(out, lines, opts)
	return out, nil
}

// shapeSpan shapes a control-character-free span of codepoints and
// returns its glyphs in left-to-right visual order: bidi runs are placed
// in the order unicode/bidi.Resolve reports them, and the glyphs of each
// right-to-left run are reversed so pen accumulation reads correctly.
//
// This handles one level of bidi embedding correctly; it does not
// implement UAX #9's full multi-level reordering (L2) for text that
// nests a run of one direction inside a run of the other more than one
// level deep. See DESIGN.md.
func (e *Engine) shapeSpan(cps []ucd.Codepoint, opts Options) ([]font.Glyph, error) {
	bidiRuns, err := e.bidiRuns(cps, opts)
	if err != nil {
		return nil, err
	}

	var glyphs []font.Glyph
	for _, br := range bidiRuns {
		dir := shaping.LeftToRight
		if br.Direction == bidi.RightToLeft {
			dir = shaping.RightToLeft
		}

		var runGlyphs []font.Glyph
		for _, sp := range e.scriptRuns(cps[br.Start:br.End], opts.ScriptOverride) {
			sub := cps[br.Start+sp.start : br.Start+sp.end]
			g, err := e.shaper.Shape(shaping.Run{
				Codepoints: sub,
				Options: shaping.Options{
					Script:    sp.script,
					Language:  opts.Language,
					Direction: dir,
					Features:  opts.Features,
				},
			})
			if err != nil {
				return nil, err
			}
			runGlyphs = append(runGlyphs, g...)
		}

		if br.Direction == bidi.RightToLeft {
			reverseGlyphs(runGlyphs)
		}
		glyphs = append(glyphs, runGlyphs...)
	}
	return glyphs, nil
}

func (e *Engine) bidiRuns(cps []ucd.Codepoint, opts Options) ([]bidi.Run, error) {
	if opts.Direction != nil {
		return []bidi.Run{{Direction: *opts.Direction, Start: 0, End: len(cps)}}, nil
	}
	return bidi.Resolve(cps)
}

type scriptSpan struct {
	start, end int
	script     locale.Script
}

func (e *Engine) scriptRuns(cps []ucd.Codepoint, override *locale.Script) []scriptSpan {
	if override != nil {
		return []scriptSpan{{0, len(cps), *override}}
	}
	if e.tables == nil || !e.tables.Has(ucd.Script) {
		return []scriptSpan{{0, len(cps), locale.ScriptUndefined}}
	}

	spans := make([]scriptSpan, 0, 1)
	start := 0
	cur := e.scriptOf(cps[0])
	for i := 1; i < len(cps); i++ {
		s := e.scriptOf(cps[i])
		if s != cur {
			spans = append(spans, scriptSpan{start, i, cur})
			start = i
			cur = s
		}
	}
	return append(spans, scriptSpan{start, len(cps), cur})
}

func (e *Engine) scriptOf(cp ucd.Codepoint) locale.Script {
	v, _ := e.tables.ScriptClass(cp)
	return locale.Script(v)
}

func (e *Engine) tabAdvance(tabWidth int) (int32, error) {
	f := e.shaper.Font()
	gid, err := f.Lookup(' ')
	if err != nil {
		return 0, err
	}
	adv, err := f.Advance(gid)
	if err != nil {
		return 0, err
	}
	return adv * int32(tabWidth), nil
}

func (e *Engine) lineAdvance() (int32, error) {
	m, err := e.shaper.Font().Hmtx()
	if err != nil {
		return 0, err
	}
	return int32(m.Ascent) - int32(m.Descent) + int32(m.LineGap), nil
}

func applyAlignment(out []PositionedGlyph, lines []lineBreak, opts Options) {
	if opts.Alignment == AlignStart {
		return
	}

	available := opts.WrappingLength
	if available <= 0 {
		for _, ln := range lines {
			if ln.width > available {
				available = ln.width
			}
		}
	}

	for _, ln := range lines {
		if ln.end <= ln.start {
			continue
		}
		var shift int32
		switch opts.Alignment {
		case AlignCenter:
			shift = (available - ln.width) / 2
		case AlignEnd:
			shift = available - ln.width
		}
		if shift == 0 {
			continue
		}
		for i := ln.start; i < ln.end; i++ {
			out[i].Origin.X += shift
		}
	}
}

func reverseGlyphs(g []font.Glyph) {
	for i, j := 0, len(g)-1; i < j; i, j = i+1, j-1 {
		g[i], g[j] = g[j], g[i]
	}
}
