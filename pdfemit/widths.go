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

// wSegment is one segment of a CID font's /W array: either an interval
// (first, last, width) or a range (first, list of widths).
type wSegment struct {
	first, last int
	width       int // used when interval
	widths      []int
	interval    bool
}

// CompactWidths builds the /W array body for the CIDs present in cw,
// skipping CIDs whose width equals dw (and, when subset is non-nil,
// CIDs outside it), per the interval/range segmentation and adjacency
// merge rules.
func CompactWidths(cw map[int]int, dw int, subset map[int]bool) string {
	cids := make([]int, 0, len(cw))
	for cid, w := range cw {
		if w == dw {
			continue
		}
		if subset != nil && !subset[cid] {
			continue
		}
		cids = append(cids, cid)
	}
	sort.Ints(cids)
	if len(cids) == 0 {
		return "/W []"
	}

	var segments []wSegment
	i := 0
	for i < len(cids) {
		start := i
		w0 := cw[cids[i]]
		j := i + 1
		isInterval := true
		for j < len(cids) && cids[j] == cids[j-1]+1 {
			if cw[cids[j]] != w0 {
				isInterval = false
			}
			j++
		}
		if isInterval {
			segments = append(segments, wSegment{first: cids[start], last: cids[j-1], width: w0, interval: true})
		} else {
			var widths []int
			for k := start; k < j; k++ {
				widths = append(widths, cw[cids[k]])
			}
			segments = append(segments, wSegment{first: cids[start], widths: widths})
		}
		i = j
	}

	segments = mergeAdjacent(segments)

	var sb strings.Builder
	sb.WriteString("/W [")
	for _, s := range segments {
		if s.interval {
			fmt.Fprintf(&sb, "%d %d %d ", s.first, s.last, s.width)
		} else {
			fmt.Fprintf(&sb, "%d [", s.first)
			for i, w := range s.widths {
				if i > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%d", w)
			}
			sb.WriteString("] ")
		}
	}
	out := strings.TrimRight(sb.String(), " ")
	return out + "]"
}

// mergeAdjacent folds a range segment into its immediately preceding
// range segment when the junction is adjacent, the previous segment was
// not an interval, and the current segment has no interval marker or
// fewer than four widths.
func mergeAdjacent(segments []wSegment) []wSegment {
	if len(segments) < 2 {
		return segments
	}
	out := []wSegment{segments[0]}
	for _, cur := range segments[1:] {
		prev := &out[len(out)-1]
		adjacent := cur.first == prev.first+len(prev.widths)
		count := len(cur.widths)
		if cur.interval {
			count = cur.last - cur.first + 1
		}
		if !prev.interval && adjacent && (!cur.interval || count < 4) {
			if cur.interval {
				for c := cur.first; c <= cur.last; c++ {
					prev.widths = append(prev.widths, cur.width)
				}
			} else {
				prev.widths = append(prev.widths, cur.widths...)
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}
