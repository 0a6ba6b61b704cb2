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

package ucd

import "github.com/glyphkit/glyphkit/unicode/trie"

// Property names a single Unicode character property backed by a trie.
type Property string

// The property names the shaper and layout engine query during a run.
// Each is a codepoint -> uint32 function; the meaning of the returned
// value (a General_Category enum member, a script tag, a bidi class,
// and so on) is defined by whichever trie the caller loads under that
// name, not by this package.
const (
	GeneralCategory     Property = "GeneralCategory"
	Script              Property = "Script"
	BidiClass           Property = "BidiClass"
	LineBreak           Property = "LineBreak"
	GraphemeCluster     Property = "GraphemeCluster"
	IndicSyllabic       Property = "IndicSyllabic"
	IndicPositional     Property = "IndicPositional"
	ArabicJoining       Property = "ArabicJoining"
	VerticalOrientation Property = "VerticalOrientation"
	BidiMirror          Property = "BidiMirror"
)

// Tables is a named collection of property tries. glyphkit supplies the
// trie codec (package trie) and this lookup surface; it does not embed
// Unicode Character Database content itself, since no such binary
// resource ships in this module's source tree. Callers load their own
// pre-built tries, one per property (see trie.Decode, or trie.NewBuilder
// for building one from a UCD data file at generation time), and
// register them here before running the shaper or layout engine.
type Tables struct {
	byName map[Property]*trie.Trie
}

// NewTables returns an empty Tables.
func NewTables() *Tables {
	return &Tables{byName: make(map[Property]*trie.Trie)}
}

// Set registers the trie backing the named property, replacing any
// previous trie under that name.
func (t *Tables) Set(name Property, tr *trie.Trie) {
	t.byName[name] = tr
}

// Has reports whether a trie has been registered for name.
func (t *Tables) Has(name Property) bool {
	_, ok := t.byName[name]
	return ok
}

// Lookup returns the named property's value for cp, and false if no
// trie has been registered under that name.
func (t *Tables) Lookup(name Property, cp Codepoint) (uint32, bool) {
	tr, ok := t.byName[name]
	if !ok {
		return 0, false
	}
	return tr.Get(cp.Rune()), true
}

// GeneralCategory returns cp's General_Category value, or false if that
// property table has not been loaded.
func (t *Tables) GeneralCategory(cp Codepoint) (uint32, bool) {
	return t.Lookup(GeneralCategory, cp)
}

// ScriptClass returns cp's Script value, or false if that property table
// has not been loaded.
func (t *Tables) ScriptClass(cp Codepoint) (uint32, bool) {
	return t.Lookup(Script, cp)
}

// BidiClassOf returns cp's Bidi_Class value, or false if that property
// table has not been loaded.
func (t *Tables) BidiClassOf(cp Codepoint) (uint32, bool) {
	return t.Lookup(BidiClass, cp)
}
