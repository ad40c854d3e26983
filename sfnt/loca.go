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

import "github.com/inkfont/fontembed/model"

// Loca holds the glyph-data offsets decoded from the "loca" table.
// TotNumGlyphs counts entries read, which is numGlyphs+1: the table
// carries one trailing offset marking the end of the last glyph.
type Loca struct {
	Offsets      []uint32
	TotNumGlyphs int
}

// readLoca decodes the "loca" table. An offset equal to its predecessor
// means the predecessor glyph has no outline, so it is dropped from the
// returned glyph-presence map.
func (t *Tables) readLoca(short bool) (*Loca, map[int]bool, error) {
	rec, ok := t.Records["loca"]
	if !ok {
		return nil, nil, model.NewError(model.ErrBounds, "missing loca table")
	}
	r := t.Reader()
	base := int(rec.Offset)

	entrySize := 4
	if short {
		entrySize = 2
	}
	n := int(rec.Length) / entrySize

	offsets := make([]uint32, n)
	for i := 0; i < n; i++ {
		if short {
			v, err := r.U16(base + i*2)
			if err != nil {
				return nil, nil, model.WrapError(model.ErrBounds, err, "loca entry %d", i)
			}
			offsets[i] = uint32(v) * 2
		} else {
			v, err := r.U32(base + i*4)
			if err != nil {
				return nil, nil, model.WrapError(model.ErrBounds, err, "loca entry %d", i)
			}
			offsets[i] = v
		}
	}

	hasOutline := make(map[int]bool, n)
	for i := 0; i < n-1; i++ {
		if offsets[i] != offsets[i+1] {
			hasOutline[i] = true
		}
	}

	return &Loca{Offsets: offsets, TotNumGlyphs: n}, hasOutline, nil
}

// GlyphRange returns the byte range [start,end) of glyph g in the "glyf"
// table.
func (l *Loca) GlyphRange(g int) (start, end uint32, ok bool) {
	if g < 0 || g+1 >= len(l.Offsets) {
		return 0, 0, false
	}
	return l.Offsets[g], l.Offsets[g+1], l.Offsets[g] != l.Offsets[g+1]
}
