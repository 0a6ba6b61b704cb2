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

// Package locale identifies scripts, languages and countries, using the
// vocabulary OpenType's "name", "cmap" and layout tables need to map
// their own platform/language IDs onto something font-independent.
package locale

// Script identifies a writing system, roughly at the granularity of an
// ISO 15924 script code.
type Script int

// The scripts referenced by the sfnt table readers.
const (
	ScriptUndefined Script = iota
	ScriptLatin
	ScriptCyrillic
	ScriptGreek
	ScriptHiragana
	ScriptCJKIdeographic
	ScriptThai
	ScriptArabic
	ScriptHebrew
)

// Language identifies a human language, roughly at the granularity of an
// ISO 639-1 code.
type Language int

// The languages referenced by the sfnt table readers.
const (
	LangUndefined Language = iota
	LangEnglish
	LangFrench
	LangGerman
	LangItalian
	LangDutch
	LangSpanish
	LangJapanese
	LangArabic
	LangGreek
	LangChinese
	LangHindi
	LangTurkish
	LangRussian
	LangRomanian
	LangBengali
	LangKorean
	LangNorwegianBokmal
	LangPolish
	LangPortuguese
	LangCzech
	LangDanish
	LangFinnish
	LangHungarian
	LangSlovak
	LangSwedish
	LangCatalan
	LangBasque
	LangSlovenian
	LangBulgarian
	LangAzerbaijani
)

// Country identifies a country or region, roughly at the granularity of
// an ISO 3166-1 code.
type Country int

// The countries referenced by the sfnt table readers.
const (
	CountryUndefined Country = iota
	CountryUSA
	CountryGBR
	CountryFRA
	CountryDEU
	CountryITA
	CountryNLD
	CountryESP
	CountryJPN
	CountrySAU
	CountryGRC
	CountryCHN
	CountryIND
	CountryTUR
	CountryRUS
	CountryROU
	CountryBGD
	CountryKOR
	CountryNOR
	CountryPOL
	CountryPRT
	CountryBRA
	CountryCZE
	CountryDNK
	CountryFIN
	CountryHUN
	CountrySVK
	CountrySWE
	CountrySVN
	CountryMEX
	CountryCAN
)

// Locale combines a script, a language and the country it is spoken in.
type Locale struct {
	Script   Script
	Language Language
	Country  Country
}

// EnUS is the en-US locale, used as a default where no more specific
// locale information is available.
var EnUS = Locale{Script: ScriptLatin, Language: LangEnglish, Country: CountryUSA}
