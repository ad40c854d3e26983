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

// cmapSubtable is one entry of the cmap directory: which (platformID,
// encodingID) pair a subtable offset serves.
type cmapSubtable struct {
	PlatformID, EncodingID uint16
	Offset                 int
}

// readCmapDirectory decodes the cmap table header and its subtable
// directory, without decoding any subtable body.
func (t *Tables) readCmapDirectory() ([]cmapSubtable, error) {
	rec, ok := t.Records["cmap"]
	if !ok {
		return nil, model.NewError(model.ErrBounds, "missing cmap table")
	}
	r := t.Reader()
	base := int(rec.Offset)

	numTables, err := r.U16(base + 2)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap numTables")
	}

	out := make([]cmapSubtable, 0, numTables)
	for i := 0; i < int(numTables); i++ {
		entryOff := base + 4 + i*8
		platformID, e1 := r.U16(entryOff)
		encodingID, e2 := r.U16(entryOff + 2)
		offset, e3 := r.U32(entryOff + 4)
		if e1 != nil || e2 != nil || e3 != nil {
			return nil, model.NewError(model.ErrBounds, "cmap directory entry %d", i)
		}
		out = append(out, cmapSubtable{
			PlatformID: platformID,
			EncodingID: encodingID,
			Offset:     base + int(offset),
		})
	}
	return out, nil
}

// findCmapSubtable returns the byte offset of the subtable matching the
// given (platformID, encodingID) pair, if the cmap directory carries one.
func findCmapSubtable(subtables []cmapSubtable, platformID, encodingID uint16) (int, bool) {
	for _, s := range subtables {
		if s.PlatformID == platformID && s.EncodingID == encodingID {
			return s.Offset, true
		}
	}
	return 0, false
}
