// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package model holds the central records threaded through every phase of
// font import, registration and emission: FontEntry, its descriptor, and
// the small value types it is built from.
//
// Each phase consumes and produces a typed FontEntry. The fields assigned
// after loading (N, set by the registry when the entry is registered, and
// DiffN, the entry's index in the registry's diff pool) are plain ints,
// zero until assigned.
package model

// Type identifies which of the five font mechanisms an entry uses.
type Type int

const (
	Core Type = iota
	Type1
	TrueType
	TrueTypeUnicode
	CIDFontType0
)

func (t Type) String() string {
	switch t {
	case Core:
		return "Core"
	case Type1:
		return "Type1"
	case TrueType:
		return "TrueType"
	case TrueTypeUnicode:
		return "TrueTypeUnicode"
	case CIDFontType0:
		return "CIDFontType0"
	default:
		return "Unknown"
	}
}

// ParseType maps a font-definition JSON "type" string onto a Type.
func ParseType(s string) (Type, bool) {
	switch s {
	case "Core":
		return Core, true
	case "Type1":
		return Type1, true
	case "TrueType":
		return TrueType, true
	case "TrueTypeUnicode":
		return TrueTypeUnicode, true
	case "cidfont0":
		return CIDFontType0, true
	default:
		return 0, false
	}
}

// Rect is an axis-aligned glyph or font bounding box, in 1000-unit PDF
// glyph space unless documented otherwise.
type Rect struct {
	LLx, LLy, URx, URy int
}

// Descriptor holds the PDF /FontDescriptor fields, always expressed in
// 1000-units-per-em space.
type Descriptor struct {
	Ascent, Descent, Leading  int
	CapHeight, XHeight        int
	ItalicAngle               int
	Flags                     int
	FontBBox                  Rect
	StemV, StemH              int
	AvgWidth, MaxWidth        int
	MissingWidth              int
}

// Descriptor flag bits (PDF 32000-1:2008 Table 123).
const (
	FlagFixedPitch = 1 << 0
	FlagSerif      = 1 << 1
	FlagSymbolic   = 1 << 2
	FlagScript     = 1 << 3
	FlagNonsymbolic = 1 << 5
	FlagItalic     = 1 << 6
)

// Mode is the set of style toggles a font instance can be pushed with.
type Mode struct {
	Bold, Italic, Underline, Linethrough, Overline bool
}

// CIDInfo describes the character collection of a CID-keyed font.
type CIDInfo struct {
	Registry, Ordering string
	Supplement         int
	Uni2CID            map[rune]int
}

// FontEntry is the central record: one per loaded, registered font
// instance, carrying everything later phases (measurement, subsetting,
// emission) need without re-deriving it.
type FontEntry struct {
	Key, Family, Name, Style string
	Type                     Type

	Unicode, PDFA, Subset, Compress, Fakestyle bool
	Mode                                       Mode

	Desc Descriptor

	CW    map[int]int
	CBBox map[int]Rect
	DW    int

	UP, UT int

	Enc, Diff string
	DiffN     int

	CIDInfo CIDInfo

	SubsetChars map[int]bool

	File, Dir string
	Length1   int
	Length2   *int

	I, N int
}

// NewFontEntry returns a zero-value FontEntry with its maps initialized.
func NewFontEntry() *FontEntry {
	return &FontEntry{
		CW:          make(map[int]int),
		CBBox:       make(map[int]Rect),
		SubsetChars: make(map[int]bool),
	}
}

// IsSymbolic reports whether family is one of the two built-in symbolic
// Core families, for which /Encoding is never emitted.
func IsSymbolic(family string) bool {
	return family == "symbol" || family == "zapfdingbats"
}

// AddSubsetChar records that character code c is used by this font
// instance, growing the union the subsetter and width emitter read from.
func (fe *FontEntry) AddSubsetChar(c int) {
	if fe.SubsetChars == nil {
		fe.SubsetChars = make(map[int]bool)
	}
	fe.SubsetChars[c] = true
}
