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

// Package render drives an external GlyphRenderer over a sequence of
// positioned glyphs, resolving each glyph's outline from the font's
// TrueType contours or CFF charstring and replaying it as move/line/
// curve callbacks translated into layout space.
//
// Float32 coordinates appear only at this boundary. Every other package
// in this module works in font design units (int32/int16), leaving
// pixel or point conversion to the host; here the callback interface
// itself is specified in floating point, so Facade converts at the last
// possible moment rather than introducing a second coordinate type
// earlier in the pipeline.
package render

import (
	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/sfnt"
	"github.com/glyphkit/glyphkit/font/sfnt/glyf"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/cpal"
	"github.com/glyphkit/glyphkit/layout"
)

// Vec2 is a point in layout space, in font design units.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis-aligned bounding box in layout space.
type Rect struct {
	LLx, LLy, URx, URy float32
}

// GlyphRenderer receives the outline of each glyph in a run, already
// translated into layout space. Implementations are the caller's
// rasterizer or vector-path builder; this module never draws pixels
// itself.
type GlyphRenderer interface {
	BeginText(bounds Rect)
	BeginGlyph(glyphID font.GlyphID, bounds Rect)
	MoveTo(p Vec2)
	LineTo(p Vec2)
	QuadraticTo(c, p Vec2)
	CubicTo(c1, c2, p Vec2)
	EndFigure()
	EndGlyph()
	EndText()
}

// pathSink is the subset of GlyphRenderer the outline walkers below
// need; it lets offsetRenderer avoid forwarding the per-glyph and
// per-text bracketing calls it never needs to translate.
type pathSink interface {
	MoveTo(p Vec2)
	LineTo(p Vec2)
	QuadraticTo(c, p Vec2)
	CubicTo(c1, c2, p Vec2)
	EndFigure()
}

// Facade feeds the glyphs a layout.Engine positions to a GlyphRenderer,
// resolving outlines from a single font.
type Facade struct {
	font *sfnt.Font
}

// New returns a Facade that resolves outlines from f.
func New(f *sfnt.Font) *Facade {
	return &Facade{font: f}
}

// ColorLayer is one layer of a color glyph: an outline glyph paired with
// the resolved color it should be filled with.
type ColorLayer struct {
	GlyphID font.GlyphID
	Color   cpal.Color
}

// ColorLayers returns gid's COLR layers, with each layer's palette index
// already resolved against palette paletteIndex in the font's CPAL
// table. It reports ok=false when the font carries no COLR/CPAL tables
// or gid has no color entry, in which case the caller should fall back
// to RenderText's plain outline for gid. Compositing the returned layers
// (painting them back to front) is left to the caller, per this
// module's color-rasterization non-goal.
func (fc *Facade) ColorLayers(gid font.GlyphID, paletteIndex int) ([]ColorLayer, bool, error) {
	colrTable, err := fc.font.COLR()
	if err != nil {
		return nil, false, err
	}
	if colrTable == nil {
		return nil, false, nil
	}
	layers := colrTable.Layers(gid)
	if len(layers) == 0 {
		return nil, false, nil
	}

	cpalTable, err := fc.font.CPAL()
	if err != nil {
		return nil, false, err
	}
	palette := cpalTable.Palette(paletteIndex)
	if palette == nil {
		return nil, false, &font.InvalidTableError{Tag: "CPAL", Reason: "palette index out of range"}
	}

	out := make([]ColorLayer, len(layers))
	for i, l := range layers {
		if int(l.PaletteIndex) >= len(palette) {
			return nil, false, &font.InvalidTableError{Tag: "CPAL", Reason: "layer palette index out of range"}
		}
		out[i] = ColorLayer{GlyphID: l.GlyphID, Color: palette[l.PaletteIndex]}
	}
	return out, true, nil
}

// RenderText replays every glyph in glyphs against r, in order, bracketed
// by a single BeginText/EndText pair whose bounds are the union of every
// glyph's bounding box.
func (fc *Facade) RenderText(glyphs []layout.PositionedGlyph, r GlyphRenderer) error {
	r.BeginText(textBounds(glyphs))
	for _, g := range glyphs {
		r.BeginGlyph(g.GlyphID, glyphBounds(g))
		if err := fc.renderOutline(g, r); err != nil {
			return err
		}
		r.EndGlyph()
	}
	r.EndText()
	return nil
}

func glyphBounds(g layout.PositionedGlyph) Rect {
	return Rect{
		LLx: float32(g.Origin.X) + float32(g.Bounds.LLx),
		LLy: float32(g.Origin.Y) + float32(g.Bounds.LLy),
		URx: float32(g.Origin.X) + float32(g.Bounds.URx),
		URy: float32(g.Origin.Y) + float32(g.Bounds.URy),
	}
}

func textBounds(glyphs []layout.PositionedGlyph) Rect {
	if len(glyphs) == 0 {
		return Rect{}
	}
	bounds := glyphBounds(glyphs[0])
	for _, g := range glyphs[1:] {
		b := glyphBounds(g)
		if b.LLx < bounds.LLx {
			bounds.LLx = b.LLx
		}
		if b.LLy < bounds.LLy {
			bounds.LLy = b.LLy
		}
		if b.URx > bounds.URx {
			bounds.URx = b.URx
		}
		if b.URy > bounds.URy {
			bounds.URy = b.URy
		}
	}
	return bounds
}

func (fc *Facade) renderOutline(g layout.PositionedGlyph, r GlyphRenderer) error {
	pen := Vec2{X: float32(g.Origin.X), Y: float32(g.Origin.Y)}
	sink := offsetRenderer{r: r, dx: pen.X, dy: pen.Y}

	switch fc.font.OutlineKind() {
	case sfnt.OutlineTrueType:
		return fc.renderTrueType(g.GlyphID, sink)
	default:
		return fc.renderCFF(g.GlyphID, sink)
	}
}

func (fc *Facade) renderTrueType(gid font.GlyphID, sink pathSink) error {
	glyphs, err := fc.font.Glyphs()
	if err != nil {
		return err
	}
	if int(gid) >= len(glyphs) {
		return &font.GlyphNotFoundError{CodePoint: rune(gid)}
	}
	info, err := glyphs[gid].Outline()
	if err != nil {
		return err
	}
	for _, c := range info.Contours {
		walkTrueTypeContour(c, sink)
	}
	return nil
}

func (fc *Facade) renderCFF(gid font.GlyphID, sink pathSink) error {
	cffFont, err := fc.font.CFF()
	if err != nil {
		return err
	}
	adapter := &cffPathAdapter{sink: sink}
	if err := cffFont.DecodeCharString(adapter, int(gid)); err != nil {
		return err
	}
	if adapter.started {
		sink.EndFigure()
	}
	return nil
}

// offsetRenderer translates every coordinate it forwards by a fixed
// amount, turning a glyph-local outline into one positioned in layout
// space.
type offsetRenderer struct {
	r      GlyphRenderer
	dx, dy float32
}

func (o offsetRenderer) shift(p Vec2) Vec2 { return Vec2{X: p.X + o.dx, Y: p.Y + o.dy} }

func (o offsetRenderer) MoveTo(p Vec2)              { o.r.MoveTo(o.shift(p)) }
func (o offsetRenderer) LineTo(p Vec2)              { o.r.LineTo(o.shift(p)) }
func (o offsetRenderer) QuadraticTo(c, p Vec2)      { o.r.QuadraticTo(o.shift(c), o.shift(p)) }
func (o offsetRenderer) CubicTo(c1, c2, p Vec2)     { o.r.CubicTo(o.shift(c1), o.shift(c2), o.shift(p)) }
func (o offsetRenderer) EndFigure()                 { o.r.EndFigure() }

// walkTrueTypeContour replays a glyf contour's on/off-curve points as
// move/line/quadratic calls, synthesizing the implied on-curve midpoint
// between two consecutive off-curve points per the TrueType outline
// convention.
func walkTrueTypeContour(contour glyf.Contour, sink pathSink) {
	n := len(contour)
	if n == 0 {
		return
	}

	type pt struct {
		x, y float32
		on   bool
	}
	raw := make([]pt, n)
	for i, p := range contour {
		raw[i] = pt{x: float32(p.X), y: float32(p.Y), on: p.OnCurve}
	}

	start := -1
	for i, p := range raw {
		if p.on {
			start = i
			break
		}
	}

	var pts []pt
	if start < 0 {
		mid := pt{x: (raw[0].x + raw[n-1].x) / 2, y: (raw[0].y + raw[n-1].y) / 2, on: true}
		pts = append([]pt{mid}, raw...)
	} else {
		pts = append(append([]pt{}, raw[start:]...), raw[:start]...)
	}
	pts = append(pts, pts[0])

	sink.MoveTo(Vec2{X: pts[0].x, Y: pts[0].y})
	for i := 1; i < len(pts); i++ {
		p := pts[i]
		if p.on {
			sink.LineTo(Vec2{X: p.x, Y: p.y})
			continue
		}
		var end pt
		if i+1 < len(pts) && !pts[i+1].on {
			end = pt{x: (p.x + pts[i+1].x) / 2, y: (p.y + pts[i+1].y) / 2, on: true}
		} else {
			end = pts[i+1]
			i++
		}
		sink.QuadraticTo(Vec2{X: p.x, Y: p.y}, Vec2{X: end.x, Y: end.y})
	}
	sink.EndFigure()
}

// cffPathAdapter implements font/cff.Renderer, translating the relative
// moves and curves a Type 2 charstring produces into the same pathSink
// the TrueType walker drives, so both outline formats feed RenderText
// through one code path.
type cffPathAdapter struct {
	sink    pathSink
	x, y    float32
	started bool
}

func (a *cffPathAdapter) SetWidth(w int) {}

func (a *cffPathAdapter) RMoveTo(dx, dy float64) {
	if a.started {
		a.sink.EndFigure()
	}
	a.x += float32(dx)
	a.y += float32(dy)
	a.sink.MoveTo(Vec2{X: a.x, Y: a.y})
	a.started = true
}

func (a *cffPathAdapter) RLineTo(dx, dy float64) {
	a.x += float32(dx)
	a.y += float32(dy)
	a.sink.LineTo(Vec2{X: a.x, Y: a.y})
}

func (a *cffPathAdapter) RCurveTo(dxa, dya, dxb, dyb, dxc, dyc float64) {
	c1 := Vec2{X: a.x + float32(dxa), Y: a.y + float32(dya)}
	c2 := Vec2{X: c1.X + float32(dxb), Y: c1.Y + float32(dyb)}
	a.x = c2.X + float32(dxc)
	a.y = c2.Y + float32(dyc)
	a.sink.CubicTo(c1, c2, Vec2{X: a.x, Y: a.y})
}
