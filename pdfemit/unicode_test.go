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
	"strings"
	"testing"
)

func TestBuildCIDToGIDMapWritesBigEndianPairs(t *testing.T) {
	got := BuildCIDToGIDMap(map[int]int{0: 0, 3: 0x0102})
	if len(got) != 8 {
		t.Fatalf("len(got) = %d, want 8", len(got))
	}
	if got[6] != 0x01 || got[7] != 0x02 {
		t.Errorf("CID 3 bytes = %x %x, want 01 02", got[6], got[7])
	}
}

func TestBuildToUnicodeCMapContainsBfcharBlock(t *testing.T) {
	got := string(BuildToUnicodeCMap(map[int]rune{65: 'A', 66: 'B'}))
	if !strings.Contains(got, "2 beginbfchar") {
		t.Errorf("missing bfchar block header: %s", got)
	}
	if !strings.Contains(got, "<0041> <0041>") {
		t.Errorf("missing mapping for CID 65: %s", got)
	}
	if !strings.Contains(got, "begincodespacerange") {
		t.Errorf("missing codespace range: %s", got)
	}
}

func TestBuildToUnicodeCMapBlocksOfHundred(t *testing.T) {
	m := make(map[int]rune, 150)
	for i := 0; i < 150; i++ {
		m[i] = rune(i + 1)
	}
	got := string(BuildToUnicodeCMap(m))
	if strings.Count(got, "beginbfchar") != 2 {
		t.Errorf("expected 2 bfchar blocks for 150 entries, got %d", strings.Count(got, "beginbfchar"))
	}
	if !strings.Contains(got, "100 beginbfchar") || !strings.Contains(got, "50 beginbfchar") {
		t.Errorf("expected blocks of 100 and 50: %s", got)
	}
}
