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
)

// HeadMagic is the magic number required at head.offset+12.
const HeadMagic = 0x5F0F3CF5

// Head holds the normalized contents of the "head" table.
type Head struct {
	UnitsPerEm       uint16
	URK              float64 // 1000 / UnitsPerEm, the scale to 1000-unit PDF space
	BBox             model.Rect
	MacStyle         uint16
	IndexToLocFormat int16 // 0 = short (u16) loca offsets, 1 = long (u32)
}

// readHead decodes the "head" table.
func (t *Tables) readHead() (*Head, error) {
	rec, ok := t.Records["head"]
	if !ok {
		return nil, model.NewError(model.ErrBounds, "missing head table")
	}
	r := t.Reader()
	base := int(rec.Offset)

	magic, err := r.U32(base + 12)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "head magic")
	}
	if magic != HeadMagic {
		return nil, model.NewError(model.ErrBadMagic, "head magic mismatch: got 0x%08x", magic)
	}

	unitsPerEm, err := r.U16(base + 18)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "unitsPerEm")
	}
	if unitsPerEm < 16 || unitsPerEm > 16384 {
		return nil, model.NewError(model.ErrBadMagic, "unitsPerEm %d out of range [16,16384]", unitsPerEm)
	}
	urk := 1000 / float64(unitsPerEm)

	xMin, err1 := r.FWord(base + 36)
	yMin, err2 := r.FWord(base + 38)
	xMax, err3 := r.FWord(base + 40)
	yMax, err4 := r.FWord(base + 42)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, model.NewError(model.ErrBounds, "head FontBBox")
	}

	macStyle, err := r.U16(base + 44)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "macStyle")
	}

	indexToLocFormat, err := r.I16(base + 50)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "indexToLocFormat")
	}

	round := func(v int16) int {
		return int(math.Round(float64(v) * urk))
	}

	return &Head{
		UnitsPerEm: unitsPerEm,
		URK:        urk,
		BBox: model.Rect{
			LLx: round(xMin), LLy: round(yMin),
			URx: round(xMax), URy: round(yMax),
		},
		MacStyle:         macStyle,
		IndexToLocFormat: indexToLocFormat,
	}, nil
}

// macStyleItalicBit is bit 1 of macStyle; when set, flag bit 64 (Italic)
// is OR'd into the descriptor's Flags.
const macStyleItalicBit = 1 << 1

func (h *Head) isItalic() bool {
	return h.MacStyle&macStyleItalicBit != 0
}
