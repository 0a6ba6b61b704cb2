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

package render

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"testing"

	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/container"
	"github.com/glyphkit/glyphkit/font/funit"
	"github.com/glyphkit/glyphkit/font/sfnt"
	"github.com/glyphkit/glyphkit/font/sfnt/cmap"
	"github.com/glyphkit/glyphkit/font/sfnt/glyf"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/cpal"
	"github.com/glyphkit/glyphkit/layout"
)

// recordingSink implements pathSink, recording every call it receives as a
// string so tests can assert on call order and arguments without a second
// parallel type per test.
type recordingSink struct {
	calls []string
}

func (r *recordingSink) MoveTo(p Vec2) {
	r.calls = append(r.calls, fmtCall("MoveTo", p))
}
func (r *recordingSink) LineTo(p Vec2) {
	r.calls = append(r.calls, fmtCall("LineTo", p))
}
func (r *recordingSink) QuadraticTo(c, p Vec2) {
	r.calls = append(r.calls, fmtCall("QuadraticTo", c, p))
}
func (r *recordingSink) CubicTo(c1, c2, p Vec2) {
	r.calls = append(r.calls, fmtCall("CubicTo", c1, c2, p))
}
func (r *recordingSink) EndFigure() {
	r.calls = append(r.calls, "EndFigure")
}

func fmtCall(name string, pts ...Vec2) string {
	s := name
	for _, p := range pts {
		s += fmtVec(p)
	}
	return s
}

func fmtVec(p Vec2) string {
	return "(" + fmtCoord(p.X) + "," + fmtCoord(p.Y) + ")"
}

func fmtCoord(f float32) string {
	return strconv.Itoa(int(f))
}

func mkPoint(x, y float32, on bool) glyf.Point {
	return glyf.Point{X: funit.Int16(x), Y: funit.Int16(y), OnCurve: on}
}

func TestWalkTrueTypeContourAllOnCurve(t *testing.T) {
	c := glyf.Contour{
		mkPoint(0, 0, true),
		mkPoint(1, 0, true),
		mkPoint(1, 1, true),
	}
	sink := &recordingSink{}
	walkTrueTypeContour(c, sink)

	want := []string{
		"MoveTo(0,0)",
		"LineTo(1,0)",
		"LineTo(1,1)",
		"LineTo(0,0)",
		"EndFigure",
	}
	assertCalls(t, sink.calls, want)
}

func TestWalkTrueTypeContourSingleOffCurve(t *testing.T) {
	c := glyf.Contour{
		mkPoint(0, 0, true),
		mkPoint(1, 1, false),
		mkPoint(2, 0, true),
	}
	sink := &recordingSink{}
	walkTrueTypeContour(c, sink)

	want := []string{
		"MoveTo(0,0)",
		"QuadraticTo(1,1)(2,0)",
		"LineTo(0,0)",
		"EndFigure",
	}
	assertCalls(t, sink.calls, want)
}

func TestWalkTrueTypeContourConsecutiveOffCurve(t *testing.T) {
	c := glyf.Contour{
		mkPoint(0, 0, true),
		mkPoint(1, 1, false),
		mkPoint(2, 1, false),
		mkPoint(3, 0, true),
	}
	sink := &recordingSink{}
	walkTrueTypeContour(c, sink)

	want := []string{
		"MoveTo(0,0)",
		"QuadraticTo(1,1)(1,1)",
		"QuadraticTo(2,1)(3,0)",
		"LineTo(0,0)",
		"EndFigure",
	}
	assertCalls(t, sink.calls, want)
}

func TestWalkTrueTypeContourAllOffCurve(t *testing.T) {
	c := glyf.Contour{
		mkPoint(0, 0, false),
		mkPoint(1, 1, false),
	}
	sink := &recordingSink{}
	walkTrueTypeContour(c, sink)

	if len(sink.calls) == 0 || sink.calls[0] != "MoveTo(0,0)" {
		t.Fatalf("expected contour to start at synthesized on-curve midpoint, got %v", sink.calls)
	}
	if sink.calls[len(sink.calls)-1] != "EndFigure" {
		t.Errorf("expected the contour to close with EndFigure, got %v", sink.calls)
	}
	count := 0
	for _, c := range sink.calls {
		if len(c) >= 12 && c[:12] == "QuadraticTo(" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 quadratic segments, got %d in %v", count, sink.calls)
	}
}

func TestWalkTrueTypeContourEmpty(t *testing.T) {
	sink := &recordingSink{}
	walkTrueTypeContour(nil, sink)
	if len(sink.calls) != 0 {
		t.Errorf("expected no calls for an empty contour, got %v", sink.calls)
	}
}

func TestCFFPathAdapterSingleFigure(t *testing.T) {
	sink := &recordingSink{}
	a := &cffPathAdapter{sink: sink}

	a.RMoveTo(10, 10)
	a.RLineTo(5, 0)
	a.RCurveTo(1, 1, 1, 1, 1, 1)

	want := []string{
		"MoveTo(10,10)",
		"LineTo(15,10)",
		"CubicTo(16,11)(17,12)(18,13)",
	}
	assertCalls(t, sink.calls, want)
}

func TestCFFPathAdapterClosesPriorFigureOnMoveTo(t *testing.T) {
	sink := &recordingSink{}
	a := &cffPathAdapter{sink: sink}

	a.RMoveTo(0, 0)
	a.RLineTo(1, 0)
	a.RMoveTo(5, 5)
	a.RLineTo(1, 0)

	want := []string{
		"MoveTo(0,0)",
		"LineTo(1,0)",
		"EndFigure",
		"MoveTo(6,5)",
		"LineTo(7,5)",
	}
	assertCalls(t, sink.calls, want)
}

func TestCFFPathAdapterIgnoresSetWidth(t *testing.T) {
	sink := &recordingSink{}
	a := &cffPathAdapter{sink: sink}
	a.SetWidth(500)
	if len(sink.calls) != 0 {
		t.Errorf("SetWidth should not reach the sink, got %v", sink.calls)
	}
}

func TestGlyphBoundsAddsOrigin(t *testing.T) {
	g := layout.PositionedGlyph{
		Origin: layout.Point{X: 100, Y: 200},
		Bounds: font.Rect{LLx: -1, LLy: -2, URx: 3, URy: 4},
	}
	b := glyphBounds(g)
	want := Rect{LLx: 99, LLy: 198, URx: 103, URy: 204}
	if b != want {
		t.Errorf("glyphBounds = %+v, want %+v", b, want)
	}
}

func TestTextBoundsUnionsGlyphs(t *testing.T) {
	glyphs := []layout.PositionedGlyph{
		{Origin: layout.Point{X: 0, Y: 0}, Bounds: font.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}},
		{Origin: layout.Point{X: 100, Y: -5}, Bounds: font.Rect{LLx: 0, LLy: 0, URx: 20, URy: 20}},
	}
	b := textBounds(glyphs)
	want := Rect{LLx: 0, LLy: -5, URx: 120, URy: 15}
	if b != want {
		t.Errorf("textBounds = %+v, want %+v", b, want)
	}
}

func TestTextBoundsEmpty(t *testing.T) {
	if b := textBounds(nil); b != (Rect{}) {
		t.Errorf("textBounds(nil) = %+v, want zero Rect", b)
	}
}

// --- a minimal TrueType test font exercising Facade.RenderText end to end ---

type testHead struct {
	Version            uint32
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

type testMaxp struct {
	Version   uint32
	NumGlyphs uint16
}

// triangleGlyph is a single-contour, all-on-curve triangle at glyph index 1;
// glyph 0 (.notdef) is empty.
func triangleGlyph() []byte {
	data := []byte{
		0x00, 0x01, // 1 contour
		0x00, 0x00, // xMin
		0x00, 0x00, // yMin
		0x00, 0x0A, // xMax = 10
		0x00, 0x0A, // yMax = 10
	}
	data = append(data, 0x00, 0x02) // endPtsOfContours[0] = 2 (3 points)
	data = append(data, 0x00, 0x00) // instructionLength = 0
	const onCurve, xShort, xSame, yShort, ySame = 0x01, 0x02, 0x10, 0x04, 0x20
	flags := byte(onCurve | xShort | xSame | yShort | ySame)
	data = append(data, flags, flags, flags)
	data = append(data, 0, 10, 0) // x deltas: 0 -> +10 -> +0, absolute (0,10,10)
	data = append(data, 0, 0, 10) // y deltas: 0 -> +0 -> +10, absolute (0,0,10)
	if len(data)%2 != 0 {
		data = append(data, 0) // glyf entries are padded to an even length
	}
	return data
}

func trueTypeTestTables() map[string][]byte {
	head := &testHead{
		Version:     0x00010000,
		MagicNumber: 0x5F0F3CF5,
		UnitsPerEm:  1000,
	}
	headBuf := &bytes.Buffer{}
	_ = binary.Write(headBuf, binary.BigEndian, head)

	maxp := &testMaxp{Version: 0x00010000, NumGlyphs: 2}
	maxpBuf := &bytes.Buffer{}
	_ = binary.Write(maxpBuf, binary.BigEndian, maxp)

	tri := triangleGlyph()
	glyfData := append([]byte{}, tri...) // glyph 0 is empty (zero length)

	locaData := []byte{
		0x00, 0x00, // glyph 0 starts at 0
		0x00, 0x00, // glyph 1 starts at 0 (glyph 0 is empty)
		byte((len(tri) / 2) >> 8), byte(len(tri) / 2), // end of glyph 1
	}

	cmapSub := cmap.Format4{}
	cmapSub[uint16('A')] = font.GlyphID(1)
	cmapTable := cmap.Table{
		{PlatformID: 3, EncodingID: 1, Language: 0}: cmapSub.Encode(0),
	}
	cmapBuf := &bytes.Buffer{}
	_ = cmapTable.Write(cmapBuf)

	return map[string][]byte{
		"head": headBuf.Bytes(),
		"maxp": maxpBuf.Bytes(),
		"glyf": glyfData,
		"loca": locaData,
		"cmap": cmapBuf.Bytes(),
	}
}

func buildTrueTypeTestFont() *sfnt.Font {
	return sfnt.New(&container.FontFile{Tables: trueTypeTestTables()})
}

type recordingRenderer struct {
	events []string
	sink   recordingSink
}

func (r *recordingRenderer) BeginText(b Rect)                 { r.events = append(r.events, "BeginText") }
func (r *recordingRenderer) BeginGlyph(g font.GlyphID, b Rect) { r.events = append(r.events, "BeginGlyph") }
func (r *recordingRenderer) MoveTo(p Vec2)                     { r.sink.MoveTo(p) }
func (r *recordingRenderer) LineTo(p Vec2)                     { r.sink.LineTo(p) }
func (r *recordingRenderer) QuadraticTo(c, p Vec2)             { r.sink.QuadraticTo(c, p) }
func (r *recordingRenderer) CubicTo(c1, c2, p Vec2)            { r.sink.CubicTo(c1, c2, p) }
func (r *recordingRenderer) EndFigure()                        { r.sink.EndFigure() }
func (r *recordingRenderer) EndGlyph()                         { r.events = append(r.events, "EndGlyph") }
func (r *recordingRenderer) EndText()                          { r.events = append(r.events, "EndText") }

func TestFacadeRenderTextTrueType(t *testing.T) {
	f := buildTrueTypeTestFont()
	fc := New(f)

	glyphs := []layout.PositionedGlyph{
		{GlyphID: 1, Origin: layout.Point{X: 100, Y: 200}},
	}
	r := &recordingRenderer{}
	if err := fc.RenderText(glyphs, r); err != nil {
		t.Fatal(err)
	}

	wantEvents := []string{"BeginText", "BeginGlyph", "EndGlyph", "EndText"}
	assertCalls(t, r.events, wantEvents)

	want := []string{
		"MoveTo(100,200)",
		"LineTo(110,200)",
		"LineTo(110,210)",
		"MoveTo(100,200)",
		"EndFigure",
	}
	assertCalls(t, r.sink.calls, want)
}

func TestFacadeColorLayers(t *testing.T) {
	colrData := []byte{
		0x00, 0x00, // version 0
		0x00, 0x01, // numBaseGlyphRecords = 1
		0x00, 0x00, 0x00, 0x0E, // offsetBaseGlyphRecords = 14
		0x00, 0x00, 0x00, 0x14, // offsetLayerRecords = 20
		0x00, 0x02, // numLayerRecords = 2
		0x00, 0x01, 0x00, 0x00, 0x00, 0x02, // gid 1: layers [0,2)
		0x00, 0x02, 0x00, 0x00, // layer 0: glyph 2, palette 0
		0x00, 0x03, 0x00, 0x01, // layer 1: glyph 3, palette 1
	}
	cpalData := []byte{
		0x00, 0x00, // version 0
		0x00, 0x02, // numPaletteEntries = 2
		0x00, 0x01, // numPalettes = 1
		0x00, 0x02, // numColorRecords = 2
		0x00, 0x00, 0x00, 0x0E, // offsetFirstColorRecord = 14
		0x00, 0x00, // colorRecordIndices[0] = 0
		0x00, 0xFF, 0x00, 0xFF, // palette 0 entry 0: BGRA -> R=0,G=FF,B=0,A=FF (green)
		0xFF, 0x00, 0x00, 0xFF, // palette 0 entry 1: BGRA -> R=0,G=0,B=FF,A=FF (blue)
	}

	tables := trueTypeTestTables()
	tables["COLR"] = colrData
	tables["CPAL"] = cpalData
	f := sfnt.New(&container.FontFile{Tables: tables})

	fc := New(f)
	layers, ok, err := fc.ColorLayers(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected ColorLayers to report a color glyph")
	}
	want := []ColorLayer{
		{GlyphID: 2, Color: cpal.Color{R: 0, G: 0xFF, B: 0, A: 0xFF}},
		{GlyphID: 3, Color: cpal.Color{R: 0, G: 0, B: 0xFF, A: 0xFF}},
	}
	if len(layers) != len(want) {
		t.Fatalf("got %d layers, want %d", len(layers), len(want))
	}
	for i := range want {
		if layers[i] != want[i] {
			t.Errorf("layer %d = %+v, want %+v", i, layers[i], want[i])
		}
	}

	if _, ok, err := fc.ColorLayers(0, 0); ok || err != nil {
		t.Errorf("ColorLayers(0, 0) = %v, %v, want ok=false, err=nil for a glyph with no color entry", ok, err)
	}
}

func assertCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d calls %v, want %d calls %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}
