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

// computeWidths reads the "hmtx" advance widths and, for every character
// present in CharToGlyph, derives its width and glyph bounding box
// (phase 13).
func (f *Font) computeWidths(numHMetrics int) (cw map[int]int, cbbox map[int]model.Rect, missingWidth int, err error) {
	rec, ok := f.Tables.Records["hmtx"]
	if !ok {
		return nil, nil, 0, model.NewError(model.ErrBounds, "missing hmtx table")
	}
	r := f.Tables.Reader()
	base := int(rec.Offset)

	widths := make([]int, f.NumGlyphs)
	last := 0
	for i := 0; i < numHMetrics && i < f.NumGlyphs; i++ {
		w, err := r.UFWord(base + i*4)
		if err != nil {
			return nil, nil, 0, model.WrapError(model.ErrBounds, err, "hmtx entry %d", i)
		}
		scaled := int(math.Round(float64(w) * f.URK))
		widths[i] = scaled
		last = scaled
	}
	for i := numHMetrics; i < f.NumGlyphs; i++ {
		widths[i] = last
	}
	if len(widths) == 0 {
		widths = []int{0}
	}
	missingWidth = widths[0]

	glyfOffset, glyfErr := f.glyfOffset()

	cw = make(map[int]int, len(f.CharToGlyph))
	cbbox = make(map[int]model.Rect, len(f.CharToGlyph))
	for cid, glyph := range f.CharToGlyph {
		if cid < 0 || cid > 0xFFFF {
			continue
		}
		if glyph >= 0 && glyph < len(widths) {
			cw[cid] = widths[glyph]
		} else {
			cw[cid] = missingWidth
		}
		if glyfErr != nil {
			continue
		}
		start, _, ok := f.Loca.GlyphRange(glyph)
		if !ok {
			continue
		}
		h, err := f.Tables.readGlyphHeader(glyfOffset, start)
		if err != nil {
			continue
		}
		cbbox[cid] = glyphBBox(h, f.URK)
	}

	return cw, cbbox, missingWidth, nil
}
