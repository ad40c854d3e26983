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

// GlyphHeader is the fixed 10-byte prefix of a "glyf" table glyph
// description: the contour count and bounding box. A negative
// NumberOfContours marks a composite glyph.
type GlyphHeader struct {
	NumberOfContours           int16
	XMin, YMin, XMax, YMax int16
}

// readGlyphHeader reads the glyph header at the given offset within the
// "glyf" table's raw bytes.
func (t *Tables) readGlyphHeader(glyfOffset int, rng uint32) (*GlyphHeader, error) {
	r := t.Reader()
	base := glyfOffset + int(rng)

	numberOfContours, e1 := r.I16(base)
	xMin, e2 := r.I16(base + 2)
	yMin, e3 := r.I16(base + 4)
	xMax, e4 := r.I16(base + 6)
	yMax, e5 := r.I16(base + 8)
	if e1 != nil || e2 != nil || e3 != nil || e4 != nil || e5 != nil {
		return nil, model.NewError(model.ErrBounds, "glyph header at glyf+%d", rng)
	}
	return &GlyphHeader{
		NumberOfContours: numberOfContours,
		XMin:             xMin, YMin: yMin, XMax: xMax, YMax: yMax,
	}, nil
}

// glyphBBox converts a GlyphHeader's font-unit bounding box to a
// 1000-unit model.Rect.
func glyphBBox(h *GlyphHeader, urk float64) model.Rect {
	round := func(v int16) int { return int(math.Round(float64(v) * urk)) }
	return model.Rect{
		LLx: round(h.XMin), LLy: round(h.YMin),
		URx: round(h.XMax), URy: round(h.YMax),
	}
}
