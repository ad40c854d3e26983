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

// Package sfnt decodes the TrueType tables a PDF font embedder needs:
// head, hhea, hmtx, maxp, post, OS/2, name, loca, glyf and cmap.
// Decoding proceeds table-by-table in dependency order, since later
// tables read offsets and scale factors computed from earlier ones.
//
// Each table directory entry gets its own decoder, with struct fields
// read at explicit byte offsets rather than through an implicit cursor.
package sfnt

import (
	"github.com/inkfont/fontembed/model"
	"github.com/inkfont/fontembed/sfntio"
)

// ScalerTrueType is the only accepted sfnt version; OTTO (CFF) and other
// scaler types are rejected.
const ScalerTrueType = 0x00010000

// TableRecord is one entry of the sfnt table directory.
type TableRecord struct {
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// Tables is the decoded table directory: tag -> record, plus the original
// file bytes, from which Bytes slices a table on demand for the
// subsetter or a later phase that needs it verbatim.
type Tables struct {
	ScalerType uint32
	NumTables  int
	Records    map[string]TableRecord
	data       []byte
}

// ReadHeader decodes the sfnt header and table directory.
func ReadHeader(data []byte) (*Tables, error) {
	r := sfntio.New(data)

	scalerType, err := r.U32(0)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "sfnt header")
	}
	if scalerType != ScalerTrueType {
		return nil, model.NewError(model.ErrBadMagic, "unsupported scaler type 0x%08x", scalerType)
	}
	numTables, err := r.U16(4)
	if err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "numTables")
	}

	t := &Tables{
		ScalerType: scalerType,
		NumTables:  int(numTables),
		Records:    make(map[string]TableRecord, numTables),
		data:       data,
	}

	const dirEntry = 16
	base := 12
	for i := 0; i < int(numTables); i++ {
		off := base + i*dirEntry
		tag, err := r.Tag(off)
		if err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "table directory entry %d", i)
		}
		checksum, err := r.U32(off + 4)
		if err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "table directory entry %d", i)
		}
		offset, err := r.U32(off + 8)
		if err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "table directory entry %d", i)
		}
		length, err := r.U32(off + 12)
		if err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "table directory entry %d", i)
		}
		t.Records[tag] = TableRecord{Checksum: checksum, Offset: offset, Length: length}
	}

	return t, nil
}

// Has reports whether every named table is present.
func (t *Tables) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := t.Records[n]; !ok {
			return false
		}
	}
	return true
}

// Bytes returns the raw bytes of the named table.
func (t *Tables) Bytes(name string) ([]byte, error) {
	rec, ok := t.Records[name]
	if !ok {
		return nil, model.NewError(model.ErrBounds, "table %q not present", name)
	}
	return t.slice(int(rec.Offset), int(rec.Length))
}

func (t *Tables) slice(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(t.data) {
		return nil, model.NewError(model.ErrBounds, "table slice [%d:%d] exceeds file size %d", offset, offset+length, len(t.data))
	}
	return t.data[offset : offset+length], nil
}

// Reader returns a byte reader scoped to the whole file; table decoders
// add the table's own Offset before indexing into it.
func (t *Tables) Reader() *sfntio.Reader {
	return sfntio.New(t.data)
}
