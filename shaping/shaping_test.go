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

package shaping

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/container"
	"github.com/glyphkit/glyphkit/font/sfnt"
	"github.com/glyphkit/glyphkit/font/sfnt/cmap"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/classdef"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/gdef"
	"github.com/glyphkit/glyphkit/locale"
	"github.com/glyphkit/glyphkit/unicode/trie"
	"github.com/glyphkit/glyphkit/unicode/ucd"
)

type testHhea struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	Reserved1           int16
	Reserved2           int16
	Reserved3           int16
	Reserved4           int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}

// makeTestFont builds a minimal font with a Windows BMP cmap mapping ASCII
// codes onto glyph IDs one past the code (so 'A' == 65 maps to glyph 66),
// plus maxp/hhea/hmtx. It carries no GSUB, GPOS or GDEF table, exercising
// the tier-3 no-op path those tables take when absent.
func makeTestFont(widths []uint16) *sfnt.Font {
	maxp := make([]byte, 6)
	binary.BigEndian.PutUint32(maxp[0:], 0x00005000)
	binary.BigEndian.PutUint16(maxp[4:], uint16(len(widths)))

	hheaBuf := &bytes.Buffer{}
	_ = binary.Write(hheaBuf, binary.BigEndian, &testHhea{
		Version:             0x00010000,
		NumOfLongHorMetrics: uint16(len(widths)),
	})

	hmtxBuf := &bytes.Buffer{}
	for _, w := range widths {
		_ = binary.Write(hmtxBuf, binary.BigEndian, w)
		_ = binary.Write(hmtxBuf, binary.BigEndian, int16(0))
	}

	sub := cmap.Format4{}
	for c := 0; c < 256; c++ {
		if c+1 < len(widths) {
			sub[uint16(c)] = font.GlyphID(c + 1)
		}
	}
	cmapTable := cmap.Table{
		{PlatformID: 3, EncodingID: 1, Language: 0}: sub.Encode(0),
	}
	cmapBuf := &bytes.Buffer{}
	_ = cmapTable.Write(cmapBuf)

	raw := &container.FontFile{
		Tables: map[string][]byte{
			"maxp": maxp,
			"hhea": hheaBuf.Bytes(),
			"hmtx": hmtxBuf.Bytes(),
			"cmap": cmapBuf.Bytes(),
		},
	}
	return sfnt.New(raw)
}

func TestShapeMapsCodepointsWithoutGsubGpos(t *testing.T) {
	widths := make([]uint16, 130)
	for i := range widths {
		widths[i] = uint16(500 + i)
	}
	f := makeTestFont(widths)
	s := New(f)

	cps := []ucd.Codepoint{mustCP(t, 'A'), mustCP(t, 'B'), mustCP(t, 'C')}
	run := Run{Codepoints: cps, Options: Options{Script: locale.ScriptLatin, Language: locale.LangEnglish}}

	glyphs, err := s.Shape(run)
	if err != nil {
		t.Fatal(err)
	}
	if len(glyphs) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(glyphs))
	}
	for i, g := range glyphs {
		wantGid := font.GlyphID('A') + font.GlyphID(i) + 1
		if g.Gid != wantGid {
			t.Errorf("glyph %d: Gid = %d, want %d", i, g.Gid, wantGid)
		}
		if g.Cluster != uint32(i) {
			t.Errorf("glyph %d: Cluster = %d, want %d", i, g.Cluster, i)
		}
		wantAdvance := int32(widths[wantGid])
		if g.Advance != wantAdvance {
			t.Errorf("glyph %d: Advance = %d, want %d", i, g.Advance, wantAdvance)
		}
		if g.IsMark || g.IsLigature {
			t.Errorf("glyph %d: expected no GDEF classification without a GDEF table", i)
		}
	}
}

func TestShapeEmptyRun(t *testing.T) {
	f := makeTestFont([]uint16{500})
	s := New(f)
	glyphs, err := s.Shape(Run{})
	if err != nil {
		t.Fatal(err)
	}
	if len(glyphs) != 0 {
		t.Errorf("got %d glyphs, want 0", len(glyphs))
	}
}

func TestClassifyGlyphsFillsGdefFields(t *testing.T) {
	gdefTable := &gdef.Table{
		GlyphClass: classdef.Table{
			10: gdef.GlyphClassMark,
			20: gdef.GlyphClassLigature,
		},
		MarkAttachClass: classdef.Table{
			10: 3,
		},
	}
	glyphs := []font.Glyph{{Gid: 10}, {Gid: 20}, {Gid: 30}}
	classifyGlyphs(glyphs, gdefTable)

	if !glyphs[0].IsMark || glyphs[0].MarkAttachClass != 3 {
		t.Errorf("glyph 0 = %+v, want IsMark=true MarkAttachClass=3", glyphs[0])
	}
	if !glyphs[1].IsLigature {
		t.Errorf("glyph 1 = %+v, want IsLigature=true", glyphs[1])
	}
	if glyphs[2].IsMark || glyphs[2].IsLigature || glyphs[2].MarkAttachClass != 0 {
		t.Errorf("glyph 2 = %+v, want no classification", glyphs[2])
	}
}

func TestClassifyGlyphsNilGdefIsNoop(t *testing.T) {
	glyphs := []font.Glyph{{Gid: 10}}
	classifyGlyphs(glyphs, nil)
	if glyphs[0].IsMark || glyphs[0].IsLigature {
		t.Errorf("expected classification to be skipped for a nil GDEF table")
	}
}

func TestDefaultFeatureSetIsScriptDependent(t *testing.T) {
	latin := defaultFeatureSet(locale.ScriptLatin)
	if latin["init"] {
		t.Errorf("Latin default feature set should not request Arabic joining features")
	}
	if !latin["liga"] || !latin["kern"] {
		t.Errorf("Latin default feature set should request liga and kern")
	}

	arabic := defaultFeatureSet(locale.ScriptArabic)
	for _, tag := range []string{"init", "medi", "fina", "isol"} {
		if !arabic[tag] {
			t.Errorf("Arabic default feature set missing %q", tag)
		}
	}
}

func TestMergeFeaturesOverridesBase(t *testing.T) {
	base := map[string]bool{"liga": true, "kern": true}
	overrides := map[string]bool{"kern": false, "smcp": true}
	got := mergeFeatures(base, overrides)
	want := map[string]bool{"liga": true, "kern": false, "smcp": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("merged[%q] = %v, want %v", k, got[k], v)
		}
	}
}

func TestPreprocessScriptEnablesArabicFeaturesFromProperty(t *testing.T) {
	b := trie.NewBuilder(0, 0)
	b.SetRange(0x0621, 0x064A, 1, true) // treat the Arabic letter block as joining
	joining := b.Freeze()

	tables := ucd.NewTables()
	tables.Set(ucd.ArabicJoining, joining)

	s := &Shaper{tables: tables}
	features := map[string]bool{}
	s.preprocessScript([]ucd.Codepoint{mustCP(t, 0x0628)}, features) // beh

	for _, tag := range []string{"init", "medi", "fina", "isol", "rlig"} {
		if !features[tag] {
			t.Errorf("expected preprocessScript to enable %q for a joining Arabic letter", tag)
		}
	}
}

func TestPreprocessScriptNoopWithoutTables(t *testing.T) {
	s := &Shaper{}
	features := map[string]bool{}
	s.preprocessScript([]ucd.Codepoint{mustCP(t, 'a')}, features)
	if len(features) != 0 {
		t.Errorf("expected no features to be added without registered Unicode tables, got %v", features)
	}
}

func mustCP(t *testing.T, r rune) ucd.Codepoint {
	t.Helper()
	cp, err := ucd.New(r)
	if err != nil {
		t.Fatal(err)
	}
	return cp
}
