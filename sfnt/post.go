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

// Post holds the fields of the "post" table this engine needs.
type Post struct {
	ItalicAngle                           int
	UnderlinePosition, UnderlineThickness int
	IsFixedPitch                          bool
}

func (t *Tables) readPost(urk float64) (*Post, error) {
	rec, ok := t.Records["post"]
	if !ok {
		return nil, nil
	}
	r := t.Reader()
	base := int(rec.Offset)

	italicAngle, err := r.Fixed(base + 4)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "post italicAngle")
	}
	underlinePosition, err := r.FWord(base + 8)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "post underlinePosition")
	}
	underlineThickness, err := r.FWord(base + 10)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "post underlineThickness")
	}
	isFixedPitch, err := r.U32(base + 12)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "post isFixedPitch")
	}

	return &Post{
		ItalicAngle:         int(math.Round(italicAngle)),
		UnderlinePosition:   int(math.Round(float64(underlinePosition) * urk)),
		UnderlineThickness:  int(math.Round(float64(underlineThickness) * urk)),
		IsFixedPitch:        isFixedPitch != 0,
	}, nil
}
