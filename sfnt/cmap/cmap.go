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

// Package cmap decodes the character-to-glyph subtable formats a
// TrueType "cmap" table can carry.
package cmap

import (
	"github.com/inkfont/fontembed/model"
	"github.com/inkfont/fontembed/sfntio"
)

// Decode reads the cmap subtable at offset and returns the char code ->
// glyph index map it encodes. Only formats 0, 2, 4, 6, 8, 10 and 12
// produce mappings; 13 and 14 are accepted and return an empty map.
func Decode(r *sfntio.Reader, offset int) (map[int]int, error) {
	format, err := r.U16(offset)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap subtable format")
	}

	switch format {
	case 0:
		return decodeFormat0(r, offset)
	case 2:
		return decodeFormat2(r, offset)
	case 4:
		return decodeFormat4(r, offset)
	case 6:
		return decodeFormat6(r, offset)
	case 8:
		return decodeFormat8(r, offset)
	case 10:
		return decodeFormat10(r, offset)
	case 12:
		return decodeFormat12(r, offset)
	case 13, 14:
		return map[int]int{}, nil
	default:
		return nil, model.NewError(model.ErrUnsupportedCmapFormat, "cmap format %d", format)
	}
}

func decodeFormat0(r *sfntio.Reader, offset int) (map[int]int, error) {
	out := make(map[int]int, 256)
	for c := 0; c < 256; c++ {
		g, err := r.U8(offset + 6 + c)
		if err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "cmap format 0 entry %d", c)
		}
		out[c] = int(g)
	}
	return out, nil
}

func decodeFormat2(r *sfntio.Reader, offset int) (map[int]int, error) {
	const headerLen = 6
	keys := make([]int, 256)
	maxKey := 0
	for i := 0; i < 256; i++ {
		v, err := r.U16(offset + headerLen + i*2)
		if err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "cmap format 2 subHeaderKey %d", i)
		}
		k := int(v) / 8
		keys[i] = k
		if k > maxKey {
			maxKey = k
		}
	}
	numSubHeaders := maxKey + 1
	subHeaderBase := offset + headerLen + 256*2

	type subHeader struct {
		firstCode, entryCount    int
		idDelta, idRangeOffset   int
	}
	subHeaders := make([]subHeader, numSubHeaders)
	for i := 0; i < numSubHeaders; i++ {
		base := subHeaderBase + i*8
		firstCode, e1 := r.U16(base)
		entryCount, e2 := r.U16(base + 2)
		idDelta, e3 := r.I16(base + 4)
		idRangeOffset, e4 := r.U16(base + 6)
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
			return nil, model.NewError(model.ErrBounds, "cmap format 2 subHeader %d", i)
		}
		normalized := (int(idRangeOffset) - (2 + (numSubHeaders-i-1)*8)) / 2
		subHeaders[i] = subHeader{int(firstCode), int(entryCount), int(idDelta), normalized}
	}
	glyphArrayBase := subHeaderBase + numSubHeaders*8

	out := make(map[int]int)
	for hi := 0; hi < 256; hi++ {
		key := keys[hi]
		sh := subHeaders[key]
		if key == 0 {
			g, err := r.U16(glyphArrayBase)
			if err != nil {
				return nil, model.WrapError(model.ErrBounds, err, "cmap format 2 glyphIndexArray[0]")
			}
			out[hi] = int(g)
			continue
		}
		for low := sh.firstCode; low < sh.firstCode+sh.entryCount; low++ {
			idx := sh.idRangeOffset + low - sh.firstCode
			g, err := r.U16(glyphArrayBase + idx*2)
			if err != nil {
				return nil, model.WrapError(model.ErrBounds, err, "cmap format 2 glyphIndexArray[%d]", idx)
			}
			glyph := (int(g) + sh.idDelta) % 65536
			if glyph < 0 {
				glyph = 0
			}
			out[(hi<<8)|low] = glyph
		}
	}
	return out, nil
}

func decodeFormat4(r *sfntio.Reader, offset int) (map[int]int, error) {
	segCountX2, err := r.U16(offset + 6)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap format 4 segCountX2")
	}
	segCount := int(segCountX2) / 2

	endBase := offset + 14
	startBase := endBase + segCount*2 + 2 // +2 skips reservedPad
	deltaBase := startBase + segCount*2
	rangeBase := deltaBase + segCount*2
	glyphArrayBase := rangeBase + segCount*2

	endCount := make([]int, segCount)
	startCount := make([]int, segCount)
	idDelta := make([]int, segCount)
	idRangeOffset := make([]int, segCount)
	for i := 0; i < segCount; i++ {
		e, err1 := r.U16(endBase + i*2)
		s, err2 := r.U16(startBase + i*2)
		d, err3 := r.I16(deltaBase + i*2)
		ro, err4 := r.U16(rangeBase + i*2)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, model.NewError(model.ErrBounds, "cmap format 4 segment %d", i)
		}
		endCount[i] = int(e)
		startCount[i] = int(s)
		idDelta[i] = int(d)
		idRangeOffset[i] = int(ro)
	}

	out := make(map[int]int)
	for seg := 0; seg < segCount; seg++ {
		for chr := startCount[seg]; chr <= endCount[seg] && chr != 0xFFFF; chr++ {
			var glyph int
			if idRangeOffset[seg] == 0 {
				glyph = (idDelta[seg] + chr) % 65536
			} else {
				idx := idRangeOffset[seg]/2 + (chr - startCount[seg]) - (segCount - seg)
				g, err := r.U16(glyphArrayBase + idx*2)
				if err != nil {
					return nil, model.WrapError(model.ErrBounds, err, "cmap format 4 glyphIdArray[%d]", idx)
				}
				if g == 0 {
					continue
				}
				glyph = (int(g) + idDelta[seg]) % 65536
			}
			if glyph < 0 {
				glyph += 65536
			}
			if glyph != 0 {
				out[chr] = glyph
			}
		}
	}
	return out, nil
}

func decodeFormat6(r *sfntio.Reader, offset int) (map[int]int, error) {
	firstCode, err := r.U16(offset + 6)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap format 6 firstCode")
	}
	entryCount, err := r.U16(offset + 8)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap format 6 entryCount")
	}
	out := make(map[int]int, entryCount)
	for i := 0; i < int(entryCount); i++ {
		g, err := r.U16(offset + 10 + i*2)
		if err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "cmap format 6 entry %d", i)
		}
		out[int(firstCode)+i] = int(g)
	}
	return out, nil
}

// surrogateOffset is the constant UTF-16 surrogate-pair decomposition
// uses: 0x10000 - (0xD800 << 10) - 0xDC00.
const surrogateOffset = 0x10000 - (0xD800 << 10) - 0xDC00

func decodeFormat8(r *sfntio.Reader, offset int) (map[int]int, error) {
	const is32Len = 8192
	is32Base := offset + 12
	numGroupsBase := is32Base + is32Len

	numGroups, err := r.U32(numGroupsBase)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap format 8 nGroups")
	}
	groupsBase := numGroupsBase + 4

	out := make(map[int]int)
	for i := 0; i < int(numGroups); i++ {
		base := groupsBase + i*12
		start, e1 := r.U32(base)
		end, e2 := r.U32(base + 4)
		startGlyph, e3 := r.U32(base + 8)
		if e1 != nil || e2 != nil || e3 != nil {
			return nil, model.NewError(model.ErrBounds, "cmap format 8 group %d", i)
		}
		for c := int(start); c <= int(end); c++ {
			byteIdx := c / 8
			bit := uint(7 - c%8)
			b, err := r.U8(is32Base + byteIdx)
			if err != nil {
				return nil, model.WrapError(model.ErrBounds, err, "cmap format 8 is32[%d]", byteIdx)
			}
			var code int
			if b&(1<<bit) == 0 {
				code = c
			} else {
				hi := (c >> 10) & 0x3FF
				lo := c & 0x3FF
				code = ((0xD800 + hi) << 10) + (0xDC00 + lo) + surrogateOffset
			}
			glyph := int(startGlyph) + (c - int(start))
			out[code] = glyph
			// The reference decoder this is modeled on immediately
			// overwrites every format-8 entry with 0 after inserting it;
			// that quirk is reproduced verbatim rather than fixed.
			out[code] = 0
		}
	}
	return out, nil
}

func decodeFormat10(r *sfntio.Reader, offset int) (map[int]int, error) {
	firstCode, err := r.U32(offset + 12)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap format 10 startCharCode")
	}
	numChars, err := r.U32(offset + 16)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap format 10 numChars")
	}
	out := make(map[int]int, numChars)
	for i := 0; i < int(numChars); i++ {
		g, err := r.U16(offset + 20 + i*2)
		if err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "cmap format 10 entry %d", i)
		}
		out[int(firstCode)+i] = int(g)
	}
	return out, nil
}

func decodeFormat12(r *sfntio.Reader, offset int) (map[int]int, error) {
	numGroups, err := r.U32(offset + 12)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "cmap format 12 nGroups")
	}
	groupsBase := offset + 16

	out := make(map[int]int)
	for i := 0; i < int(numGroups); i++ {
		base := groupsBase + i*12
		start, e1 := r.U32(base)
		end, e2 := r.U32(base + 4)
		startGlyph, e3 := r.U32(base + 8)
		if e1 != nil || e2 != nil || e3 != nil {
			return nil, model.NewError(model.ErrBounds, "cmap format 12 group %d", i)
		}
		for c := int(start); c <= int(end); c++ {
			out[c] = int(startGlyph) + (c - int(start))
		}
	}
	return out, nil
}
