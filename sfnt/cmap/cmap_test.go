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

package cmap

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inkfont/fontembed/model"
	"github.com/inkfont/fontembed/sfntio"
)

func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func TestDecodeFormat0(t *testing.T) {
	buf := append([]byte{}, be16(0)...)  // format
	buf = append(buf, be16(262)...)      // length
	buf = append(buf, be16(0)...)        // language
	glyphs := make([]byte, 256)
	glyphs[65] = 10
	glyphs[66] = 11
	buf = append(buf, glyphs...)

	got, err := Decode(sfntio.New(buf), 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[65] != 10 || got[66] != 11 {
		t.Errorf("got[65]=%d got[66]=%d, want 10 and 11", got[65], got[66])
	}
	if got[0] != 0 {
		t.Errorf("got[0] = %d, want 0", got[0])
	}
}

func TestDecodeFormat6(t *testing.T) {
	var buf []byte
	buf = append(buf, be16(6)...)   // format
	buf = append(buf, be16(0)...)   // length
	buf = append(buf, be16(0)...)   // language
	buf = append(buf, be16(65)...)  // firstCode
	buf = append(buf, be16(3)...)   // entryCount
	buf = append(buf, be16(100)...)
	buf = append(buf, be16(101)...)
	buf = append(buf, be16(102)...)

	got, err := Decode(sfntio.New(buf), 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := map[int]int{65: 100, 66: 101, 67: 102}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFormat4SimpleDeltaSegment(t *testing.T) {
	// A single segment [65,67] with idDelta chosen so glyph = char - 65 + 1.
	var buf []byte
	buf = append(buf, be16(4)...)  // format
	buf = append(buf, be16(0)...)  // length
	buf = append(buf, be16(0)...)  // language
	buf = append(buf, be16(4)...)  // segCountX2 (1 real segment + terminator)
	buf = append(buf, be16(0)...)  // searchRange
	buf = append(buf, be16(0)...)  // entrySelector
	buf = append(buf, be16(0)...)  // rangeShift
	// endCount[2]
	buf = append(buf, be16(67)...)
	buf = append(buf, be16(0xFFFF)...)
	buf = append(buf, be16(0)...) // reservedPad
	// startCount[2]
	buf = append(buf, be16(65)...)
	buf = append(buf, be16(0xFFFF)...)
	// idDelta[2]
	buf = append(buf, be16(uint16(int16(1-65)))...)
	buf = append(buf, be16(1)...)
	// idRangeOffset[2]
	buf = append(buf, be16(0)...)
	buf = append(buf, be16(0)...)

	got, err := Decode(sfntio.New(buf), 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := map[int]int{65: 1, 66: 2, 67: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFormat12SequentialRange(t *testing.T) {
	var buf []byte
	buf = append(buf, be16(12)...) // format
	buf = append(buf, be16(0)...)  // reserved
	buf = append(buf, be32(0)...)  // length
	buf = append(buf, be32(0)...)  // language
	buf = append(buf, be32(1)...)  // nGroups
	buf = append(buf, be32(0x1F600)...) // startCharCode
	buf = append(buf, be32(0x1F602)...) // endCharCode
	buf = append(buf, be32(500)...)     // startGlyphID

	got, err := Decode(sfntio.New(buf), 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := map[int]int{0x1F600: 500, 0x1F601: 501, 0x1F602: 502}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFormat8AlwaysZeroesEntries(t *testing.T) {
	var buf []byte
	buf = append(buf, be16(8)...) // format
	buf = append(buf, be16(0)...) // reserved
	buf = append(buf, be32(0)...) // length
	buf = append(buf, be32(0)...) // language
	is32 := make([]byte, 8192)
	buf = append(buf, is32...)
	buf = append(buf, be32(1)...) // nGroups
	buf = append(buf, be32(65)...)
	buf = append(buf, be32(66)...)
	buf = append(buf, be32(10)...)

	got, err := Decode(sfntio.New(buf), 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// Every format 8 entry is intentionally zeroed after insertion.
	if got[65] != 0 || got[66] != 0 {
		t.Errorf("got[65]=%d got[66]=%d, want both 0", got[65], got[66])
	}
	if len(got) != 2 {
		t.Errorf("len(got) = %d, want 2", len(got))
	}
}

func TestDecodeAcceptsFormat13AsEmpty(t *testing.T) {
	buf := be16(13)
	buf = append(buf, make([]byte, 10)...)
	got, err := Decode(sfntio.New(buf), 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("format 13 must decode to empty map, got %v", got)
	}
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	buf := be16(99)
	_, err := Decode(sfntio.New(buf), 0)
	if !model.IsKind(err, model.ErrUnsupportedCmapFormat) {
		t.Fatalf("Decode error = %v, want ErrUnsupportedCmapFormat", err)
	}
}
