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

// Package shaping turns a run of codepoints that share a script, language
// and direction into a sequence of positioned glyphs, by driving a font's
// GSUB and GPOS lookups over a cmap-mapped glyph buffer.
//
// The lookup-application engine itself (font/sfnt/opentype/gtab) already
// implements the hard part: coverage matching, context chaining, mark
// filtering against GDEF, and in-place advance/offset adjustment from GPOS
// value records. This package supplies what sits around that engine: the
// initial character-to-glyph mapping, the feature set a run requests, the
// order lookups run in, and the post-substitution glyph classification
// that the engine itself never performs.
package shaping

import (
	"github.com/glyphkit/glyphkit/font"
	"github.com/glyphkit/glyphkit/font/sfnt"
	"github.com/glyphkit/glyphkit/font/sfnt/opentype/gdef"
	"github.com/glyphkit/glyphkit/locale"
	"github.com/glyphkit/glyphkit/unicode/ucd"
)

// Direction is the direction codepoints in a Run should flow.
//
// This is narrower than unicode/bidi.Direction: by the time text reaches
// the shaper, a layout engine has already split it into runs of a single
// resolved direction, so Mixed and Neutral no longer apply.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Options configures how a Run is shaped.
type Options struct {
	Script    locale.Script
	Language  locale.Language
	Direction Direction

	// Features lists OpenType feature tags to force on or off, overriding
	// the shaper's own script-dependent default set. A true value enables
	// the feature, false disables it even if the default set would have
	// turned it on.
	Features map[string]bool
}

// Run is a maximal span of codepoints to shape together: one script, one
// language, one direction. Callers that have bidi- and script-split their
// text (see unicode/bidi and the layout package) pass one Run per span.
type Run struct {
	Codepoints []ucd.Codepoint
	Options    Options
}

// Shaper maps codepoints to glyphs and positions them using a single
// font's substitution and positioning tables.
type Shaper struct {
	font   *sfnt.Font
	tables *ucd.Tables
}

// New returns a Shaper backed by f.
func New(f *sfnt.Font) *Shaper {
	return &Shaper{font: f}
}

// Font returns the font this shaper maps and positions glyphs with, for
// callers such as the layout engine that need metrics (advances,
// bounding boxes, line metrics) shaping itself has no reason to expose.
func (s *Shaper) Font() *sfnt.Font {
	return s.font
}

// SetUnicodeTables supplies the Unicode property tables the shaper
// consults when deciding which script-specific OpenType features to
// request (see preprocessScript). A nil table set, the default, disables
// that preprocessing: GSUB/GPOS still run with the script's static
// default feature set.
func (s *Shaper) SetUnicodeTables(t *ucd.Tables) {
	s.tables = t
}

// Shape maps run's codepoints to glyphs using the font's cmap, then
// applies the font's GSUB and GDEF-driven GPOS lookups for run's script
// and language. The returned glyphs are in the same logical order as
// run.Codepoints; run.Options.Direction records which way they should be
// laid out but does not itself reorder anything here, since OpenType
// lookups always match against logical, not visual, order.
func (s *Shaper) Shape(run Run) ([]font.Glyph, error) {
	glyphs, err := s.mapCodepoints(run.Codepoints)
	if err != nil {
		return nil, err
	}
	if len(glyphs) == 0 {
		return glyphs, nil
	}

	features := mergeFeatures(defaultFeatureSet(run.Options.Script), run.Options.Features)
	s.preprocessScript(run.Codepoints, features)

	loc := &locale.Locale{Script: run.Options.Script, Language: run.Options.Language}

	gdefTable, err := s.font.GDEF()
	if err != nil {
		return nil, err
	}

	gsub, err := s.font.GSUB()
	if err != nil {
		return nil, err
	}
	if gsub != nil {
		for _, li := range gsub.FindLookups(loc, features) {
			glyphs = gsub.LookupList.ApplyLookup(glyphs, li, gdefTable)
		}
	}

	classifyGlyphs(glyphs, gdefTable)

	gpos, err := s.font.GPOS()
	if err != nil {
		return nil, err
	}
	if gpos != nil {
		for _, li := range gpos.FindLookups(loc, features) {
			glyphs = gpos.LookupList.ApplyLookup(glyphs, li, gdefTable)
		}
	}

	return glyphs, nil
}

// mapCodepoints builds the initial one-glyph-per-codepoint buffer that
// GSUB then expands, contracts or reorders.
func (s *Shaper) mapCodepoints(cps []ucd.Codepoint) ([]font.Glyph, error) {
	glyphs := make([]font.Glyph, len(cps))
	for i, cp := range cps {
		gid, err := s.font.Lookup(cp.Rune())
		if err != nil {
			return nil, err
		}
		advance, err := s.font.Advance(gid)
		if err != nil {
			return nil, err
		}
		glyphs[i] = font.Glyph{
			Gid:     gid,
			Text:    []rune{cp.Rune()},
			Cluster: uint32(i),
			Advance: advance,
		}
	}
	return glyphs, nil
}

// classifyGlyphs fills in the per-glyph GDEF-derived fields that nothing
// in font/sfnt/opentype/gtab populates: that package's own mark filtering
// (see gtab's filter.go) queries GDEF by glyph ID directly at lookup time
// and never writes its result back onto the glyph, since it has no reason
// to. Downstream consumers (cursor placement, diacritic-aware rendering)
// do need it on the glyph itself, so the shaper stamps it on once, after
// GSUB has settled which glyphs exist.
func classifyGlyphs(glyphs []font.Glyph, gdefTable *gdef.Table) {
	if gdefTable == nil {
		return
	}
	for i := range glyphs {
		gid := glyphs[i].Gid
		glyphs[i].IsMark = gdefTable.IsMark(gid)
		if gdefTable.GlyphClass != nil {
			glyphs[i].IsLigature = gdefTable.GlyphClass[gid] == gdef.GlyphClassLigature
		}
		if gdefTable.MarkAttachClass != nil {
			glyphs[i].MarkAttachClass = uint8(gdefTable.MarkAttachClass[gid])
		}
	}
}

// defaultFeatureSet returns the OpenType features a run of the given
// script requests unless Options.Features overrides them.
func defaultFeatureSet(script locale.Script) map[string]bool {
	f := map[string]bool{
		"ccmp": true,
		"liga": true,
		"clig": true,
		"kern": true,
		"mark": true,
		"mkmk": true,
		"curs": true,
	}
	switch script {
	case locale.ScriptArabic:
		f["init"] = true
		f["medi"] = true
		f["fina"] = true
		f["isol"] = true
		f["rlig"] = true
		f["calt"] = true
	}
	return f
}

// preprocessScript widens features with script-specific joining/reordering
// features when the codepoints themselves carry the relevant Unicode
// property, in addition to whatever defaultFeatureSet already chose from
// the script tag alone.
//
// This is a simplification relative to a full Arabic or Indic shaper:
// font/sfnt/opentype/gtab.LookupList.ApplyLookup applies a lookup wherever
// its coverage matches across the whole sequence in one pass, there is no
// per-glyph "request exactly this feature at exactly this position" knob
// to drive a real isol/init/medi/fina or USE reordering state machine
// through this engine. What preprocessScript can do, and does, is decide
// which feature tags a run needs at all, using the real Arabic_Joining_Type
// and Indic_Syllabic_Category properties when a caller has loaded them via
// SetUnicodeTables. See DESIGN.md for the scope decision.
func (s *Shaper) preprocessScript(cps []ucd.Codepoint, features map[string]bool) {
	if s.tables == nil {
		return
	}
	if s.tables.Has(ucd.ArabicJoining) && hasNonzeroProperty(s.tables, ucd.ArabicJoining, cps) {
		for _, tag := range []string{"init", "medi", "fina", "isol", "rlig"} {
			features[tag] = true
		}
	}
	if s.tables.Has(ucd.IndicSyllabic) && hasNonzeroProperty(s.tables, ucd.IndicSyllabic, cps) {
		for _, tag := range []string{"nukt", "akhn", "rphf", "blwf", "half", "pstf", "vatu", "cjct", "pres", "abvs", "blws", "psts", "haln"} {
			features[tag] = true
		}
	}
}

func hasNonzeroProperty(tables *ucd.Tables, name ucd.Property, cps []ucd.Codepoint) bool {
	for _, cp := range cps {
		if v, ok := tables.Lookup(name, cp); ok && v != 0 {
			return true
		}
	}
	return false
}

func mergeFeatures(base, overrides map[string]bool) map[string]bool {
	out := make(map[string]bool, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
