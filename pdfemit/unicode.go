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

package pdfemit

import (
	"fmt"
	"sort"
	"strings"
)

// BuildCIDToGIDMap produces the raw byte stream of a /CIDToGIDMap: for
// CID i, bytes [2i:2i+2] hold the big-endian glyph index, up to the
// highest CID present in charToGlyph.
func BuildCIDToGIDMap(charToGlyph map[int]int) []byte {
	maxCID := 0
	for c := range charToGlyph {
		if c > maxCID {
			maxCID = c
		}
	}
	out := make([]byte, (maxCID+1)*2)
	for c, g := range charToGlyph {
		out[c*2] = byte(g >> 8)
		out[c*2+1] = byte(g)
	}
	return out
}

// BuildToUnicodeCMap produces a minimal ToUnicode CMap stream mapping
// each CID in cidToUnicode to its Unicode code point, using bfchar
// blocks of up to 100 entries as PDF recommends.
func BuildToUnicodeCMap(cidToUnicode map[int]rune) []byte {
	cids := make([]int, 0, len(cidToUnicode))
	for c := range cidToUnicode {
		cids = append(cids, c)
	}
	sort.Ints(cids)

	var sb strings.Builder
	sb.WriteString("/CIDInit /ProcSet findresource begin\n")
	sb.WriteString("12 dict begin\nbegincmap\n")
	sb.WriteString("/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n")
	sb.WriteString("/CMapName /Adobe-Identity-UCS def\n")
	sb.WriteString("1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")

	for i := 0; i < len(cids); i += 100 {
		end := i + 100
		if end > len(cids) {
			end = len(cids)
		}
		fmt.Fprintf(&sb, "%d beginbfchar\n", end-i)
		for _, c := range cids[i:end] {
			fmt.Fprintf(&sb, "<%04X> <%04X>\n", c, cidToUnicode[c])
		}
		sb.WriteString("endbfchar\n")
	}

	sb.WriteString("endcmap\nCMapName currentdict /CMap defineresource pop\nend\nend\n")
	return []byte(sb.String())
}
