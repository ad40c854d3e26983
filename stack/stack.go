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

// Package stack tracks the active font cursor: a LIFO stack of
// (font, size, spacing, stretching) frames, with a cache of the derived,
// size-scaled metrics each distinct frame tuple produces.
package stack

import (
	"fmt"
	"math"

	"github.com/inkfont/fontembed/model"
	"github.com/inkfont/fontembed/registry"
)

const (
	defaultSizePt     = 10.0
	defaultSpacing    = 0.0
	defaultStretching = 1.0
	kunit             = 1000.0
	softHyphen        = 173
)

// Frame is one pushed font selection.
type Frame struct {
	FontKey    string
	Style      string
	SizePt     float64
	Spacing    float64
	Stretching float64
}

// Derived is the size-scaled metrics cache entry for one Frame tuple.
type Derived struct {
	CW           map[int]int
	CBBox        map[int]model.Rect
	FBBox        model.Rect
	DW           int
	AvgWidth     int
	MaxWidth     int
	MissingWidth int
	Command      string // "BT /F<i> <size> Tf ET\r"
}

// Stack is the LIFO active-font cursor.
type Stack struct {
	reg    *registry.Registry
	frames []Frame
	cache  map[string]*Derived
}

// New returns an empty Stack backed by reg for font lookups.
func New(reg *registry.Registry) *Stack {
	return &Stack{reg: reg, cache: make(map[string]*Derived)}
}

// Push selects a font. family may be a comma-separated list of
// candidates; the first that resolves to a registered key wins. A zero
// size/spacing/stretching inherits from the top of stack, or the
// defaults (10pt / 0 / 1) if the stack is empty.
func (s *Stack) Push(family, style string, sizePt, spacing, stretching float64) (*Frame, error) {
	var top *Frame
	if len(s.frames) > 0 {
		top = &s.frames[len(s.frames)-1]
	}
	if sizePt == 0 {
		sizePt = inheritOrDefault(top, func(f *Frame) float64 { return f.SizePt }, defaultSizePt)
	}
	if spacing == 0 {
		spacing = inheritOrDefault(top, func(f *Frame) float64 { return f.Spacing }, defaultSpacing)
	}
	if stretching == 0 {
		stretching = inheritOrDefault(top, func(f *Frame) float64 { return f.Stretching }, defaultStretching)
	}

	var key string
	for _, candidate := range splitCandidates(family) {
		k, _, _, err := registry.Key(candidate, style)
		if err != nil {
			continue
		}
		if _, ok := s.reg.Lookup(k); ok {
			key = k
			break
		}
	}
	if key == "" {
		return nil, model.NewError(model.ErrRegMissingFont, "no candidate in %q resolved to a registered font", family)
	}

	frame := Frame{FontKey: key, Style: style, SizePt: sizePt, Spacing: spacing, Stretching: stretching}
	s.frames = append(s.frames, frame)
	return &s.frames[len(s.frames)-1], nil
}

// Pop removes the top frame. It is a no-op on an empty stack.
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Top returns the active frame, or nil if the stack is empty.
func (s *Stack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

func inheritOrDefault(top *Frame, field func(*Frame) float64, def float64) float64 {
	if top != nil {
		return field(top)
	}
	return def
}

func splitCandidates(family string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(family); i++ {
		if i == len(family) || family[i] == ',' {
			out = append(out, trimSpace(family[start:i]))
			start = i + 1
		}
	}
	return out
}

func trimSpace(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

// Derive returns the cached, size-scaled metrics for frame, computing
// and caching them on a miss.
func (s *Stack) Derive(frame Frame) (*Derived, error) {
	cacheKey := fmt.Sprintf("%s|%s|%g|%g|%g", frame.FontKey, frame.Style, frame.SizePt, frame.Spacing, frame.Stretching)
	if d, ok := s.cache[cacheKey]; ok {
		return d, nil
	}

	fe, ok := s.reg.Lookup(frame.FontKey)
	if !ok {
		return nil, model.NewError(model.ErrRegMissingFont, "frame references unregistered key %q", frame.FontKey)
	}

	cratio := frame.SizePt / kunit
	wratio := cratio * frame.Stretching

	d := &Derived{
		CW:           make(map[int]int, len(fe.CW)),
		CBBox:        make(map[int]model.Rect, len(fe.CBBox)),
		DW:           int(math.Round(float64(fe.DW) * wratio)),
		AvgWidth:     int(math.Round(float64(fe.Desc.AvgWidth) * wratio)),
		MaxWidth:     int(math.Round(float64(fe.Desc.MaxWidth) * wratio)),
		MissingWidth: int(math.Round(float64(fe.Desc.MissingWidth) * wratio)),
		FBBox: model.Rect{
			LLx: int(math.Round(float64(fe.Desc.FontBBox.LLx) * wratio)),
			LLy: int(math.Round(float64(fe.Desc.FontBBox.LLy) * cratio)),
			URx: int(math.Round(float64(fe.Desc.FontBBox.URx) * wratio)),
			URy: int(math.Round(float64(fe.Desc.FontBBox.URy) * cratio)),
		},
		Command: fmt.Sprintf("BT /F%d %g Tf ET\r", fe.I, frame.SizePt),
	}
	for c, w := range fe.CW {
		d.CW[c] = int(math.Round(float64(w) * wratio))
	}
	for c, bb := range fe.CBBox {
		d.CBBox[c] = model.Rect{
			LLx: int(math.Round(float64(bb.LLx) * wratio)),
			LLy: int(math.Round(float64(bb.LLy) * cratio)),
			URx: int(math.Round(float64(bb.URx) * wratio)),
			URy: int(math.Round(float64(bb.URy) * cratio)),
		}
	}

	s.cache[cacheKey] = d
	return d, nil
}

// MeasureWidth sums advance widths for a sequence of Unicode code
// points, using d.CW or d.DW per character (soft hyphen contributes 0),
// plus inter-character spacing scaled by stretching.
func MeasureWidth(d *Derived, chars []rune, spacing, stretching float64) int {
	total := 0
	for _, u := range chars {
		if int(u) == softHyphen {
			continue
		}
		if w, ok := d.CW[int(u)]; ok {
			total += w
		} else {
			total += d.DW
		}
	}
	if len(chars) > 1 {
		total += int(math.Round(spacing * stretching * float64(len(chars)-1)))
	}
	return total
}

// Substitute returns the first alternate code point in alts that is
// present in d.CW, for use when u itself is missing from the font.
func Substitute(d *Derived, u rune, alts []rune) (rune, bool) {
	if _, ok := d.CW[int(u)]; ok {
		return u, true
	}
	for _, alt := range alts {
		if _, ok := d.CW[int(alt)]; ok {
			return alt, true
		}
	}
	return 0, false
}
