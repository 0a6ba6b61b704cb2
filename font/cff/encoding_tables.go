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

package cff

// standardEncodingNames is Adobe's StandardEncoding, used by CFF fonts
// whose top DICT Encoding offset is 0.
var standardEncodingNames = buildEncodingNames(map[int]string{
	0o040: "space", 0o041: "exclam", 0o042: "quotedbl", 0o043: "numbersign",
	0o044: "dollar", 0o045: "percent", 0o046: "ampersand", 0o047: "quoteright",
	0o050: "parenleft", 0o051: "parenright", 0o052: "asterisk", 0o053: "plus",
	0o054: "comma", 0o055: "hyphen", 0o056: "period", 0o057: "slash",
	0o060: "zero", 0o061: "one", 0o062: "two", 0o063: "three", 0o064: "four",
	0o065: "five", 0o066: "six", 0o067: "seven", 0o070: "eight", 0o071: "nine",
	0o072: "colon", 0o073: "semicolon", 0o074: "less", 0o075: "equal",
	0o076: "greater", 0o077: "question", 0o100: "at",
	0o101: "A", 0o102: "B", 0o103: "C", 0o104: "D", 0o105: "E", 0o106: "F",
	0o107: "G", 0o110: "H", 0o111: "I", 0o112: "J", 0o113: "K", 0o114: "L",
	0o115: "M", 0o116: "N", 0o117: "O", 0o120: "P", 0o121: "Q", 0o122: "R",
	0o123: "S", 0o124: "T", 0o125: "U", 0o126: "V", 0o127: "W", 0o130: "X",
	0o131: "Y", 0o132: "Z",
	0o133: "bracketleft", 0o134: "backslash", 0o135: "bracketright",
	0o136: "asciicircum", 0o137: "underscore", 0o140: "quoteleft",
	0o141: "a", 0o142: "b", 0o143: "c", 0o144: "d", 0o145: "e", 0o146: "f",
	0o147: "g", 0o150: "h", 0o151: "i", 0o152: "j", 0o153: "k", 0o154: "l",
	0o155: "m", 0o156: "n", 0o157: "o", 0o160: "p", 0o161: "q", 0o162: "r",
	0o163: "s", 0o164: "t", 0o165: "u", 0o166: "v", 0o167: "w", 0o170: "x",
	0o171: "y", 0o172: "z",
	0o173: "braceleft", 0o174: "bar", 0o175: "braceright", 0o176: "asciitilde",
	0o241: "exclamdown", 0o242: "cent", 0o243: "sterling", 0o244: "fraction",
	0o245: "yen", 0o246: "florin", 0o247: "section", 0o250: "currency",
	0o251: "quotesingle", 0o252: "quotedblleft", 0o253: "guillemotleft",
	0o254: "guilsinglleft", 0o255: "guilsinglright", 0o256: "fi", 0o257: "fl",
	0o261: "endash", 0o262: "dagger", 0o263: "daggerdbl",
	0o264: "periodcentered", 0o266: "paragraph", 0o267: "bullet",
	0o270: "quotesinglbase", 0o271: "quotedblbase", 0o272: "quotedblright",
	0o273: "guillemotright", 0o274: "ellipsis", 0o275: "perthousand",
	0o277: "questiondown",
	0o301: "grave", 0o302: "acute", 0o303: "circumflex", 0o304: "tilde",
	0o305: "macron", 0o306: "breve", 0o307: "dotaccent", 0o310: "dieresis",
	0o312: "ring", 0o313: "cedilla", 0o315: "hungarumlaut", 0o316: "ogonek",
	0o317: "caron", 0o320: "emdash",
	0o341: "AE", 0o343: "ordfeminine", 0o350: "Lslash", 0o351: "Oslash",
	0o352: "OE", 0o353: "ordmasculine",
	0o361: "ae", 0o365: "dotlessi", 0o370: "lslash", 0o371: "oslash",
	0o372: "oe", 0o373: "germandbls",
})

// expertEncodingNames is Adobe's ExpertEncoding, used by CFF fonts whose
// top DICT Encoding offset is 1. Only the most commonly used expert glyph
// codes are listed; uncovered codes map to the empty string and are
// skipped when the encoding is built.
var expertEncodingNames = buildEncodingNames(map[int]string{
	0o040: "space", 0o044: "dollaroldstyle", 0o046: "ampersandsmall",
	0o060: "zerooldstyle", 0o061: "oneoldstyle", 0o062: "twooldstyle",
	0o063: "threeoldstyle", 0o064: "fouroldstyle", 0o065: "fiveoldstyle",
	0o066: "sixoldstyle", 0o067: "sevenoldstyle", 0o070: "eightoldstyle",
	0o071: "nineoldstyle", 0o074: "commasuperior", 0o075: "threequartersemdash",
	0o076: "periodsuperior",
})

func buildEncodingNames(m map[int]string) [256]string {
	var out [256]string
	for code, name := range m {
		out[code] = name
	}
	return out
}
