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

// Package subset produces a standalone sfnt blob containing only the
// glyphs reachable from a set of used character codes: the transitive
// closure of composite-glyph references, a rewritten glyf/loca pair, and
// recomputed table and whole-file checksums.
package subset

import (
	"encoding/binary"
	"math/bits"

	"github.com/inkfont/fontembed/model"
	"github.com/inkfont/fontembed/sfnt"
)

var keptTables = []string{"head", "hhea", "hmtx", "maxp", "cvt ", "fpgm", "prep", "glyf", "loca"}

// Build assembles a subset sfnt file for a given set of used character
// codes, grounded on the same Tables/Loca data Parse decoded from the
// original file.
func Build(original []byte, tables *sfnt.Tables, charToGlyph map[int]int, loca *sfnt.Loca, used map[int]bool, short bool) ([]byte, error) {
	subglyphs := seedGlyphs(charToGlyph, used)
	if err := closeComposites(original, tables, loca, subglyphs); err != nil {
		return nil, err
	}

	glyf, newLoca, err := rewriteGlyfLoca(original, tables, loca, subglyphs, short)
	if err != nil {
		return nil, err
	}

	tableData := make(map[string][]byte, len(keptTables))
	for _, name := range keptTables {
		switch name {
		case "glyf":
			tableData[name] = glyf
		case "loca":
			tableData[name] = newLoca
		default:
			if tables.Has(name) {
				raw, err := tables.Bytes(name)
				if err != nil {
					return nil, err
				}
				tableData[name] = pad4(raw)
			}
		}
	}

	return assemble(tableData)
}

// seedGlyphs builds the initial subglyph set: {0} union the glyph each
// used character maps to.
func seedGlyphs(charToGlyph map[int]int, used map[int]bool) map[int]bool {
	out := map[int]bool{0: true}
	for c := range used {
		if g, ok := charToGlyph[c]; ok {
			out[g] = true
		}
	}
	return out
}

// closeComposites grows subglyphs to include every component glyph a
// composite glyph in the set transitively references.
func closeComposites(data []byte, tables *sfnt.Tables, loca *sfnt.Loca, subglyphs map[int]bool) error {
	rec, ok := tables.Records["glyf"]
	if !ok {
		return nil
	}
	glyfOffset := int(rec.Offset)

	for {
		added := false
		for g := range snapshotKeys(subglyphs) {
			start, end, hasOutline := loca.GlyphRange(g)
			if !hasOutline {
				continue
			}
			numberOfContours := int16(binary.BigEndian.Uint16(data[glyfOffset+int(start) : glyfOffset+int(start)+2]))
			if numberOfContours >= 0 {
				continue
			}
			components, err := readComponents(data, glyfOffset+int(start)+10, glyfOffset+int(end))
			if err != nil {
				return err
			}
			for _, comp := range components {
				if !subglyphs[comp] {
					subglyphs[comp] = true
					added = true
				}
			}
		}
		if !added {
			break
		}
	}
	return nil
}

func snapshotKeys(m map[int]bool) map[int]bool {
	out := make(map[int]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

// readComponents walks a composite glyph's component list, returning the
// referenced glyph ID of each component. Component records are 4 bytes
// of flags+glyphIndex, plus a variable-length argument field (4 bytes if
// ARG_1_AND_2_ARE_WORDS else 2) and an optional transform (2, 4 or 8
// bytes depending on the WE_HAVE_* flag bits), continuing while
// MORE_COMPONENTS (bit 5) is set.
func readComponents(data []byte, start, end int) ([]int, error) {
	const (
		argsAreWords   = 1 << 0
		haveScale      = 1 << 3
		moreComponents = 1 << 5
		have2x2        = 1 << 7
		haveXYScale    = 1 << 6
	)

	var out []int
	off := start
	for {
		if off+4 > end || off+4 > len(data) {
			return nil, model.NewError(model.ErrBounds, "composite glyph component header")
		}
		flags := binary.BigEndian.Uint16(data[off:])
		glyphIndex := binary.BigEndian.Uint16(data[off+2:])
		out = append(out, int(glyphIndex))
		off += 4

		if flags&argsAreWords != 0 {
			off += 4
		} else {
			off += 2
		}
		switch {
		case flags&have2x2 != 0:
			off += 8
		case flags&haveXYScale != 0:
			off += 4
		case flags&haveScale != 0:
			off += 2
		}

		if flags&moreComponents == 0 {
			break
		}
	}
	return out, nil
}

// rewriteGlyfLoca copies only the kept glyphs' data into a new glyf
// table and produces the matching loca offsets.
func rewriteGlyfLoca(data []byte, tables *sfnt.Tables, loca *sfnt.Loca, subglyphs map[int]bool, short bool) (glyf, locaOut []byte, err error) {
	rec, ok := tables.Records["glyf"]
	if !ok {
		return nil, nil, model.NewError(model.ErrBounds, "missing glyf table")
	}
	glyfOffset := int(rec.Offset)

	var newGlyf []byte
	offsets := make([]uint32, 0, loca.TotNumGlyphs)
	offsets = append(offsets, 0)

	for g := 0; g < loca.TotNumGlyphs-1; g++ {
		if subglyphs[g] {
			if start, end, ok := loca.GlyphRange(g); ok {
				newGlyf = append(newGlyf, data[glyfOffset+int(start):glyfOffset+int(end)]...)
			}
		}
		offsets = append(offsets, uint32(len(newGlyf)))
	}

	newGlyf = pad4(newGlyf)

	if short {
		buf := make([]byte, len(offsets)*2)
		for i, o := range offsets {
			binary.BigEndian.PutUint16(buf[i*2:], uint16(o/2))
		}
		locaOut = pad4(buf)
	} else {
		buf := make([]byte, len(offsets)*4)
		for i, o := range offsets {
			binary.BigEndian.PutUint32(buf[i*4:], o)
		}
		locaOut = pad4(buf)
	}
	return newGlyf, locaOut, nil
}

func pad4(b []byte) []byte {
	if rem := len(b) % 4; rem != 0 {
		b = append(b, make([]byte, 4-rem)...)
	}
	return b
}

// assemble writes the sfnt header, table directory and table bodies, and
// fixes up head.checkSumAdjustment over the whole resulting file.
func assemble(tableData map[string][]byte) ([]byte, error) {
	var names []string
	for _, n := range keptTables {
		if _, ok := tableData[n]; ok {
			names = append(names, n)
		}
	}
	n := len(names)

	entrySelector := 0
	if n > 0 {
		entrySelector = bits.Len(uint(n)) - 1
	}
	searchRange := (1 << entrySelector) * 16
	rangeShift := n*16 - searchRange

	headerLen := 12
	dirLen := n * 16
	offset := headerLen + dirLen

	type placement struct {
		name   string
		offset int
		data   []byte
	}
	placements := make([]placement, 0, n)
	for _, name := range names {
		d := tableData[name]
		placements = append(placements, placement{name, offset, d})
		offset += len(d)
	}

	out := make([]byte, offset)
	binary.BigEndian.PutUint32(out[0:], sfnt.ScalerTrueType)
	binary.BigEndian.PutUint16(out[4:], uint16(n))
	binary.BigEndian.PutUint16(out[6:], uint16(searchRange))
	binary.BigEndian.PutUint16(out[8:], uint16(entrySelector))
	binary.BigEndian.PutUint16(out[10:], uint16(rangeShift))

	var headOffset int
	for i, p := range placements {
		dirOff := headerLen + i*16
		copy(out[dirOff:dirOff+4], p.name)
		checksum := tableChecksum(p.data)
		binary.BigEndian.PutUint32(out[dirOff+4:], checksum)
		binary.BigEndian.PutUint32(out[dirOff+8:], uint32(p.offset))
		binary.BigEndian.PutUint32(out[dirOff+12:], uint32(len(p.data)))
		copy(out[p.offset:], p.data)
		if p.name == "head" {
			headOffset = p.offset
		}
	}

	if headOffset+12 <= len(out) {
		binary.BigEndian.PutUint32(out[headOffset+8:], 0)
	}
	fileChecksum := tableChecksum(out)
	adjustment := (0xB1B0AFBA - fileChecksum)
	if headOffset+12 <= len(out) {
		binary.BigEndian.PutUint32(out[headOffset+8:], adjustment)
	}

	return out, nil
}

// tableChecksum sums big-endian u32 words, wrapping to uint32, treating
// a trailing partial word as zero-padded.
func tableChecksum(data []byte) uint32 {
	var sum uint32
	n := len(data) / 4
	for i := 0; i < n; i++ {
		sum += binary.BigEndian.Uint32(data[i*4:])
	}
	if rem := len(data) % 4; rem != 0 {
		var last [4]byte
		copy(last[:], data[n*4:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}
