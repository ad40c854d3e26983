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

package sfnt

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/inkfont/fontembed/model"
)

// sfntTable is one named table body handed to buildSfnt.
type sfntTable struct {
	tag  string
	body []byte
}

// buildSfnt assembles a minimal, well-formed sfnt header and table
// directory around the given table bodies. Table checksums are left
// zero: nothing in this package validates them.
func buildSfnt(tables []sfntTable) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(ScalerTrueType))
	binary.Write(&buf, binary.BigEndian, uint16(len(tables)))
	binary.Write(&buf, binary.BigEndian, uint16(0)) // searchRange
	binary.Write(&buf, binary.BigEndian, uint16(0)) // entrySelector
	binary.Write(&buf, binary.BigEndian, uint16(0)) // rangeShift

	headerLen := 12 + 16*len(tables)
	offset := headerLen
	type placed struct {
		tag          string
		offset, size int
	}
	var placements []placed
	for _, tbl := range tables {
		placements = append(placements, placed{tbl.tag, offset, len(tbl.body)})
		offset += len(tbl.body)
	}
	for _, p := range placements {
		buf.WriteString(p.tag)
		binary.Write(&buf, binary.BigEndian, uint32(0)) // checksum
		binary.Write(&buf, binary.BigEndian, uint32(p.offset))
		binary.Write(&buf, binary.BigEndian, uint32(p.size))
	}
	for _, tbl := range tables {
		buf.Write(tbl.body)
	}
	return buf.Bytes()
}

func be16(v int) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(v))
	return b
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// buildHead assembles a "head" table with unitsPerEm=1000 (urk==1, so
// font-design units pass through to 1000-unit PDF space unchanged).
func buildHead(indexToLocFormat int) []byte {
	body := make([]byte, 54)
	binary.BigEndian.PutUint32(body[12:], HeadMagic)
	binary.BigEndian.PutUint16(body[18:], 1000) // unitsPerEm
	binary.BigEndian.PutUint16(body[44:], 0)    // macStyle: not italic
	binary.BigEndian.PutUint16(body[50:], uint16(indexToLocFormat))
	return body
}

func buildHhea(numHMetrics int) []byte {
	body := make([]byte, 36)
	binary.BigEndian.PutUint16(body[4:], uint16(800))  // ascent
	binary.BigEndian.PutUint16(body[6:], uint16(-200)) // descent
	binary.BigEndian.PutUint16(body[10:], uint16(1000)) // maxWidth
	binary.BigEndian.PutUint16(body[34:], uint16(numHMetrics))
	return body
}

func buildMaxp(numGlyphs int) []byte {
	body := make([]byte, 6)
	binary.BigEndian.PutUint16(body[4:], uint16(numGlyphs))
	return body
}

func buildHmtx(advances []int) []byte {
	body := make([]byte, len(advances)*4)
	for i, w := range advances {
		binary.BigEndian.PutUint16(body[i*4:], uint16(w))
		// leftSideBearing left at zero
	}
	return body
}

// buildLoca encodes the given byte-offset boundaries in short (u16/2)
// form.
func buildLoca(byteOffsets []int) []byte {
	body := make([]byte, len(byteOffsets)*2)
	for i, o := range byteOffsets {
		binary.BigEndian.PutUint16(body[i*2:], uint16(o/2))
	}
	return body
}

// buildGlyf writes one 10-byte simple-glyph header per entry.
func buildGlyf(headers [][5]int16) []byte {
	body := make([]byte, len(headers)*10)
	for i, h := range headers {
		binary.BigEndian.PutUint16(body[i*10:], uint16(h[0]))
		binary.BigEndian.PutUint16(body[i*10+2:], uint16(h[1]))
		binary.BigEndian.PutUint16(body[i*10+4:], uint16(h[2]))
		binary.BigEndian.PutUint16(body[i*10+6:], uint16(h[3]))
		binary.BigEndian.PutUint16(body[i*10+8:], uint16(h[4]))
	}
	return body
}

// buildName writes a single nameID=6 (PostScript name) record, Windows
// platform, encoded as UTF-16BE.
func buildName(psName string) []byte {
	var utf16be []byte
	for _, r := range psName {
		utf16be = append(utf16be, byte(r>>8), byte(r))
	}

	var buf bytes.Buffer
	buf.Write(be16(0))           // format
	buf.Write(be16(1))           // count
	buf.Write(be16(6 + 12*1))    // stringOffset, relative to table start
	// record 0
	buf.Write(be16(3))              // platformID (Windows)
	buf.Write(be16(1))              // encodingID (Unicode BMP)
	buf.Write(be16(0x0409))         // languageID (en-US)
	buf.Write(be16(6))              // nameID (PostScript name)
	buf.Write(be16(len(utf16be)))   // length
	buf.Write(be16(0))              // offset into storage
	buf.Write(utf16be)
	return buf.Bytes()
}

// buildCmapFormat0 maps every byte code 0-255 through a table, producing
// exactly 256 entries — the shape that triggers the TrueTypeUnicode ->
// TrueType downgrade rule.
func buildCmapFormat0(glyphs [256]byte) []byte {
	sub := make([]byte, 0, 262)
	sub = append(sub, be16(0)...)   // format
	sub = append(sub, be16(262)...) // length
	sub = append(sub, be16(0)...)   // language
	sub = append(sub, glyphs[:]...)

	var buf bytes.Buffer
	buf.Write(be16(0)) // version
	buf.Write(be16(1)) // numTables
	buf.Write(be16(3)) // platformID
	buf.Write(be16(1)) // encodingID
	buf.Write(be32(12))
	buf.Write(sub)
	return buf.Bytes()
}

// buildCmapFormat12 maps a small, explicit set of code points, for
// fixtures that must NOT trigger the 256-entry downgrade rule.
func buildCmapFormat12(groups [][3]uint32) []byte {
	sub := make([]byte, 0, 16+len(groups)*12)
	sub = append(sub, be16(12)...) // format
	sub = append(sub, be16(0)...)  // reserved
	sub = append(sub, be32(0)...)  // length
	sub = append(sub, be32(0)...)  // language
	sub = append(sub, be32(uint32(len(groups)))...)
	for _, g := range groups {
		sub = append(sub, be32(g[0])...)
		sub = append(sub, be32(g[1])...)
		sub = append(sub, be32(g[2])...)
	}

	var buf bytes.Buffer
	buf.Write(be16(0)) // version
	buf.Write(be16(1)) // numTables
	buf.Write(be16(3)) // platformID
	buf.Write(be16(1)) // encodingID
	buf.Write(be32(12))
	buf.Write(sub)
	return buf.Bytes()
}

// baseTables returns the non-cmap tables shared by every fixture in this
// file: three glyphs (notdef, 'x', 'H'), no "OS/2" and no "post" table.
func baseTables() []sfntTable {
	loca := buildLoca([]int{0, 0, 10, 20})
	glyf := buildGlyf([][5]int16{
		{0, 0, 0, 500, 450}, // glyph 1 ('x'): height 450
		{0, 0, 0, 600, 700}, // glyph 2 ('H'): height 700
	})
	return []sfntTable{
		{"head", buildHead(0)},
		{"hhea", buildHhea(3)},
		{"maxp", buildMaxp(3)},
		{"hmtx", buildHmtx([]int{500, 600, 700})},
		{"loca", loca},
		{"glyf", glyf},
		{"name", buildName("TestFont")},
	}
}

func glyphsFor120and72() [256]byte {
	var g [256]byte
	g['x'] = 1
	g['H'] = 2
	return g
}

func TestParsePostlessFixtureDoesNotPanic(t *testing.T) {
	tables := append(baseTables(), sfntTable{"cmap", buildCmapFormat0(glyphsFor120and72())})
	data := buildSfnt(tables)

	font, _, err := Parse(data, model.TrueType, ParseOptions{PlatformID: 3, EncodingID: 1})
	if err != nil {
		t.Fatalf("Parse on a post-less font: %v", err)
	}
	if font.Desc.ItalicAngle != 0 {
		t.Errorf("ItalicAngle = %d, want 0 when post is absent", font.Desc.ItalicAngle)
	}
	if font.Desc.Flags&model.FlagFixedPitch != 0 {
		t.Errorf("Flags has FlagFixedPitch set, want unset when post is absent")
	}
}

func TestParseDowngradesTrueTypeUnicodeWith256Mappings(t *testing.T) {
	tables := append(baseTables(), sfntTable{"cmap", buildCmapFormat0(glyphsFor120and72())})
	data := buildSfnt(tables)

	_, resultType, err := Parse(data, model.TrueTypeUnicode, ParseOptions{PlatformID: 3, EncodingID: 1})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if resultType != model.TrueType {
		t.Errorf("resultType = %v, want TrueType (downgraded from TrueTypeUnicode)", resultType)
	}
}

func TestParseKeepsTrueTypeUnicodeWithSparseCmap(t *testing.T) {
	tables := append(baseTables(), sfntTable{"cmap", buildCmapFormat12([][3]uint32{
		{'x', 'x', 1},
		{'H', 'H', 2},
	})})
	data := buildSfnt(tables)

	_, resultType, err := Parse(data, model.TrueTypeUnicode, ParseOptions{PlatformID: 3, EncodingID: 1})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if resultType != model.TrueTypeUnicode {
		t.Errorf("resultType = %v, want TrueTypeUnicode (no downgrade for a sparse cmap)", resultType)
	}
}

func TestComputeHeightsRefinesFromGlyphBBox(t *testing.T) {
	tables := append(baseTables(), sfntTable{"cmap", buildCmapFormat0(glyphsFor120and72())})
	data := buildSfnt(tables)

	font, _, err := Parse(data, model.TrueType, ParseOptions{PlatformID: 3, EncodingID: 1})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if font.Desc.XHeight != 450 {
		t.Errorf("XHeight = %d, want 450 (from the 'x' glyph bbox)", font.Desc.XHeight)
	}
	if font.Desc.CapHeight != 700 {
		t.Errorf("CapHeight = %d, want 700 (from the 'H' glyph bbox)", font.Desc.CapHeight)
	}
}

func TestComputeHeightsDefaultsWhenGlyphsAreUnmapped(t *testing.T) {
	var empty [256]byte
	tables := append(baseTables(), sfntTable{"cmap", buildCmapFormat0(empty)})
	data := buildSfnt(tables)

	font, _, err := Parse(data, model.TrueType, ParseOptions{PlatformID: 3, EncodingID: 1})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := font.Desc.Ascent + font.Desc.Descent
	if font.Desc.XHeight != want {
		t.Errorf("XHeight = %d, want Ascent+Descent (%d) when 'x' is unmapped", font.Desc.XHeight, want)
	}
	if font.Desc.CapHeight != want {
		t.Errorf("CapHeight = %d, want Ascent+Descent (%d) when 'H' is unmapped", font.Desc.CapHeight, want)
	}
}
