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

// Package bidi splits a codepoint sequence into directional runs under
// the Unicode Bidirectional Algorithm (UAX #9), for the layout engine to
// order and shape independently.
package bidi

import (
	xbidi "golang.org/x/text/unicode/bidi"

	"github.com/glyphkit/glyphkit/unicode/ucd"
)

// Direction is the resolved flow of a single run.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Run is a maximal span of codepoints carrying one resolved direction,
// reported in logical (not visual) order.
type Run struct {
	Direction  Direction
	Start, End int // codepoint indices into the slice passed to Resolve; End exclusive
}

// Resolve splits cps into directional runs. The weak/neutral resolution
// passes (W1-W7, N0-N2), isolate handling, and bracket pairing that UAX #9
// requires are delegated to golang.org/x/text/unicode/bidi rather than
// re-derived here: that package already carries the Unicode Character
// Database's Bidi_Class and Bidi_Paired_Bracket tables, and duplicating
// them in a second trie resource this module does not otherwise ship
// would be pure repetition for no behavioral gain.
//
// Resolve treats cps as a single paragraph; a caller presenting text that
// spans multiple paragraphs should split on hard line breaks first, the
// same granularity golang.org/x/text/unicode/bidi.Paragraph expects.
func Resolve(cps []ucd.Codepoint) ([]Run, error) {
	if len(cps) == 0 {
		return nil, nil
	}

	var p xbidi.Paragraph
	if _, err := p.SetString(runesOf(cps)); err != nil {
		return nil, err
	}
	ordering, err := p.Order()
	if err != nil {
		return nil, err
	}

	runs := make([]Run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		start, end := r.Pos()
		dir := LeftToRight
		if r.Direction() == xbidi.RightToLeft {
			dir = RightToLeft
		}
		runs = append(runs, Run{Direction: dir, Start: start, End: end + 1})
	}
	return runs, nil
}

// ParagraphDirection reports the base direction UAX #9 assigns to cps as
// a whole: true for left-to-right, false for right-to-left. Paragraphs
// with no strong directional characters default to left-to-right,
// matching golang.org/x/text/unicode/bidi.Paragraph.IsLeftToRight.
func ParagraphDirection(cps []ucd.Codepoint) (leftToRight bool, err error) {
	if len(cps) == 0 {
		return true, nil
	}
	var p xbidi.Paragraph
	if _, err := p.SetString(runesOf(cps)); err != nil {
		return true, err
	}
	if _, err := p.Order(); err != nil {
		return true, err
	}
	return p.IsLeftToRight(), nil
}

func runesOf(cps []ucd.Codepoint) string {
	runes := make([]rune, len(cps))
	for i, cp := range cps {
		runes[i] = cp.Rune()
	}
	return string(runes)
}
