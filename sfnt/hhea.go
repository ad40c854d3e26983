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

// Hhea holds the scaled fields of the "hhea" table.
type Hhea struct {
	Ascent, Descent, Leading, MaxWidth int
	NumHMetrics                        int
}

func (t *Tables) readHhea(urk float64) (*Hhea, error) {
	rec, ok := t.Records["hhea"]
	if !ok {
		return nil, model.NewError(model.ErrBounds, "missing hhea table")
	}
	r := t.Reader()
	base := int(rec.Offset)

	ascent, e1 := r.FWord(base + 4)
	descent, e2 := r.FWord(base + 6)
	leading, e3 := r.FWord(base + 8)
	maxWidth, e4 := r.UFWord(base + 10)
	// numberOfHMetrics sits at offset 34 in the canonical hhea layout,
	// after the four reserved int16 fields and metricDataFormat; offset
	// 32 lands on metricDataFormat instead. See DESIGN.md's Open
	// Question note for why this offset was chosen.
	numHMetrics, e5 := r.U16(base + 34)
	if e1 != nil || e2 != nil || e3 != nil || e4 != nil || e5 != nil {
		return nil, model.NewError(model.ErrBounds, "hhea fields")
	}

	round := func(v int16) int { return int(math.Round(float64(v) * urk)) }

	return &Hhea{
		Ascent:      round(ascent),
		Descent:     round(descent),
		Leading:     round(leading),
		MaxWidth:    int(math.Round(float64(maxWidth) * urk)),
		NumHMetrics: int(numHMetrics),
	}, nil
}
