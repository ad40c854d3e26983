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

// OS2 holds the fields of the "OS/2" table this engine needs.
type OS2 struct {
	AvgCharWidth int
	StemV, StemH int
	FSType       uint16
}

// readOS2 decodes the "OS/2" table. If fsType == 2 ("restricted license
// embedding"), the font is rejected outright.
func (t *Tables) readOS2(urk float64) (*OS2, error) {
	rec, ok := t.Records["OS/2"]
	if !ok {
		return nil, nil
	}
	r := t.Reader()
	base := int(rec.Offset)

	xAvgCharWidth, err := r.FWord(base + 2)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "OS/2 xAvgCharWidth")
	}
	usWeightClass, err := r.U16(base + 4)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "OS/2 usWeightClass")
	}
	fsType, err := r.U16(base + 8)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "OS/2 fsType")
	}
	if fsType == 2 {
		return nil, model.NewError(model.ErrLicenseRestricted, "OS/2.fsType == 2")
	}

	w := float64(usWeightClass)
	return &OS2{
		AvgCharWidth: int(math.Round(float64(xAvgCharWidth) * urk)),
		StemV:        int(math.Round(70 * w / 400)),
		StemH:        int(math.Round(30 * w / 400)),
		FSType:       fsType,
	}, nil
}
