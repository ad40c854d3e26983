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

// readMaxp decodes numGlyphs from the "maxp" table.
func (t *Tables) readMaxp() (numGlyphs int, err error) {
	rec, ok := t.Records["maxp"]
	if !ok {
		return 0, model.NewError(model.ErrBounds, "missing maxp table")
	}
	v, err := t.Reader().U16(int(rec.Offset) + 4)
	if err != nil {
		return 0, model.WrapError(model.ErrBounds, err, "maxp numGlyphs")
	}
	return int(v), nil
}
