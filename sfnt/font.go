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
	"math"

	"github.com/inkfont/fontembed/model"
	"github.com/inkfont/fontembed/sfnt/cmap"
)

// Font is the fully decoded, normalized output of parsing a TrueType
// file: everything the font-definition loader and registry need, with
// all dimensions already scaled to 1000 units per em.
type Font struct {
	Tables *Tables

	PostScriptName string
	Desc           model.Descriptor

	// CharToGlyph is the cmap's character-code-to-glyph-index map for
	// the configured (platformID, encodingID) pair, after the notdef
	// fallback has been inserted.
	CharToGlyph map[int]int

	Loca             *Loca
	HasOutline       map[int]bool
	IndexToLocFormat int16
	URK              float64
	NumGlyphs        int

	// CW and CBBox hold the per-character advance width and glyph
	// bounding box, populated by computeWidths for every character in
	// CharToGlyph whose code lies in 0..0xFFFF; higher codes are skipped.
	CW    map[int]int
	CBBox map[int]model.Rect
}

// ParseOptions selects which cmap subtable to read, by its (platformID,
// encodingID) pair. Whether the font is loaded as TrueType or
// TrueTypeUnicode is given by Parse's typeHint, not here.
type ParseOptions struct {
	PlatformID, EncodingID uint16
}

// Parse runs every decoding phase over a raw TrueType file in dependency
// order and returns the normalized result. typeHint names the font
// mechanism the caller is loading this file for (TrueType or
// TrueTypeUnicode); Parse returns the possibly-downgraded type alongside
// the font record, per the 256-mapping downgrade rule.
func Parse(data []byte, typeHint model.Type, opts ParseOptions) (*Font, model.Type, error) {
	tables, err := ReadHeader(data)
	if err != nil {
		return nil, typeHint, err
	}

	head, err := tables.readHead()
	if err != nil {
		return nil, typeHint, err
	}

	loca, hasOutline, err := tables.readLoca(head.IndexToLocFormat == 0)
	if err != nil {
		return nil, typeHint, err
	}

	cmapDir, err := tables.readCmapDirectory()
	if err != nil {
		return nil, typeHint, err
	}

	os2, err := tables.readOS2(head.URK)
	if err != nil {
		return nil, typeHint, err
	}

	name, err := tables.readName()
	if err != nil {
		return nil, typeHint, err
	}

	post, err := tables.readPost(head.URK)
	if err != nil {
		return nil, typeHint, err
	}

	hhea, err := tables.readHhea(head.URK)
	if err != nil {
		return nil, typeHint, err
	}

	numGlyphs, err := tables.readMaxp()
	if err != nil {
		return nil, typeHint, err
	}

	charToGlyph, err := decodeCmap(tables, cmapDir, opts.PlatformID, opts.EncodingID)
	if err != nil {
		return nil, typeHint, err
	}

	desc := model.Descriptor{
		Ascent:   hhea.Ascent,
		Descent:  hhea.Descent,
		Leading:  hhea.Leading,
		FontBBox: head.BBox,
		MaxWidth: hhea.MaxWidth,
	}
	if os2 != nil {
		desc.AvgWidth = os2.AvgCharWidth
		desc.StemV = os2.StemV
		desc.StemH = os2.StemH
	}
	if post != nil {
		desc.ItalicAngle = post.ItalicAngle
		if post.IsFixedPitch {
			desc.Flags |= model.FlagFixedPitch
		}
	}
	if head.isItalic() {
		desc.Flags |= model.FlagItalic
	}

	f := &Font{
		Tables:           tables,
		PostScriptName:   name,
		Desc:             desc,
		CharToGlyph:      charToGlyph,
		Loca:             loca,
		HasOutline:       hasOutline,
		IndexToLocFormat: head.IndexToLocFormat,
		URK:              head.URK,
		NumGlyphs:        numGlyphs,
	}

	if err := f.computeHeights(); err != nil {
		return nil, typeHint, err
	}

	cw, cbbox, missingWidth, err := f.computeWidths(hhea.NumHMetrics)
	if err != nil {
		return nil, typeHint, err
	}
	f.CW, f.CBBox = cw, cbbox
	f.Desc.MissingWidth = missingWidth

	resultType := typeHint
	if typeHint == model.TrueTypeUnicode && len(charToGlyph) == 256 {
		resultType = model.TrueType
	}

	return f, resultType, nil
}

// decodeCmap finds and decodes the subtable matching the configured
// platform/encoding pair and inserts the notdef fallback.
func decodeCmap(t *Tables, dir []cmapSubtable, platformID, encodingID uint16) (map[int]int, error) {
	if !t.Has("cmap") {
		return map[int]int{0: 0}, nil
	}
	offset, ok := findCmapSubtable(dir, platformID, encodingID)
	if !ok {
		return map[int]int{0: 0}, nil
	}
	m, err := cmap.Decode(t.Reader(), offset)
	if err != nil {
		return nil, err
	}
	if _, ok := m[0]; !ok {
		m[0] = 0
	}
	return m, nil
}

// computeHeights fills Desc.XHeight and Desc.CapHeight, per phase 12:
// default to Ascent+Descent, refined from the 'x'/'H' glyph bbox when
// those characters are mapped.
func (f *Font) computeHeights() error {
	f.Desc.XHeight = f.Desc.Ascent + f.Desc.Descent
	f.Desc.CapHeight = f.Desc.Ascent + f.Desc.Descent

	if h, err := f.glyphYExtent('x'); err == nil && h != nil {
		f.Desc.XHeight = int(math.Round(float64(h.YMax-h.YMin) * f.URK))
	}
	if h, err := f.glyphYExtent('H'); err == nil && h != nil {
		f.Desc.CapHeight = int(math.Round(float64(h.YMax-h.YMin) * f.URK))
	}
	return nil
}

func (f *Font) glyphYExtent(char int) (*GlyphHeader, error) {
	glyph, ok := f.CharToGlyph[char]
	if !ok {
		return nil, nil
	}
	start, end, ok := f.Loca.GlyphRange(glyph)
	if !ok {
		return nil, nil
	}
	glyfOffset, err := f.glyfOffset()
	if err != nil {
		return nil, err
	}
	_ = end
	return f.Tables.readGlyphHeader(glyfOffset, start)
}

func (f *Font) glyfOffset() (int, error) {
	rec, ok := f.Tables.Records["glyf"]
	if !ok {
		return 0, model.NewError(model.ErrBounds, "missing glyf table")
	}
	return int(rec.Offset), nil
}
