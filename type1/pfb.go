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

// Package type1 splits a Printer Font Binary (PFB) file into its three
// segments: the clear-text PostScript header, the encrypted charstring
// body, and the fixed zero-fill trailer.
package type1

import (
	"bytes"
	"io"

	"github.com/inkfont/fontembed/model"
)

const (
	startMarker  = 0x80
	asciiMarker  = 0x01
	binaryMarker = 0x02
	eofMarker    = 0x03
)

// Segments holds the three byte ranges a PFB file is split into.
type Segments struct {
	ASCII     []byte
	Encrypted []byte
	Trailer   []byte
}

type stream struct {
	*bytes.Reader
}

func (s stream) readByte() int {
	b, err := s.Reader.ReadByte()
	if err != nil {
		return -1
	}
	return int(b)
}

// Open decodes a PFB byte stream into its ASCII, encrypted and trailer
// segments, following the 0x80-prefixed segment-marker framing: each
// segment is preceded by a start marker, a type marker (ASCII or
// binary), and a little-endian four-byte length.
func Open(pfb []byte) (*Segments, error) {
	in := stream{bytes.NewReader(pfb)}

	readSegment := func(want int) ([]byte, error) {
		if in.readByte() != startMarker {
			return nil, model.NewError(model.ErrBounds, "pfb segment start marker missing")
		}
		marker := in.readByte()
		if marker != want {
			return nil, model.NewError(model.ErrBounds, "pfb segment type mismatch: got %d, want %d", marker, want)
		}
		size := in.readByte()
		size += in.readByte() << 8
		size += in.readByte() << 16
		size += in.readByte() << 24
		if size < 0 {
			return nil, model.NewError(model.ErrBounds, "pfb segment size read failed")
		}
		buf := make([]byte, size)
		if _, err := io.ReadFull(in.Reader, buf); err != nil {
			return nil, model.WrapError(model.ErrBounds, err, "pfb segment body (%d bytes)", size)
		}
		return buf, nil
	}

	ascii, err := readSegment(asciiMarker)
	if err != nil {
		return nil, err
	}
	encrypted, err := readSegment(binaryMarker)
	if err != nil {
		return nil, err
	}
	trailer, err := readSegment(asciiMarker)
	if err != nil {
		return nil, err
	}

	return &Segments{ASCII: ascii, Encrypted: encrypted, Trailer: trailer}, nil
}

// Length1, Length2, Length3 are the PDF FontFile /Length1, /Length2,
// /Length3 values: the exact byte counts of the clear-text header, the
// encrypted body and the zero-fill trailer respectively, as the three
// segments sit concatenated (without PFB framing) inside the PDF stream.
func (s *Segments) Length1() int { return len(s.ASCII) }
func (s *Segments) Length2() int { return len(s.Encrypted) }
func (s *Segments) Length3() int { return len(s.Trailer) }

// Concat returns the three segments concatenated as they are embedded
// in a PDF FontFile stream (PFB framing stripped).
func (s *Segments) Concat() []byte {
	out := make([]byte, 0, len(s.ASCII)+len(s.Encrypted)+len(s.Trailer))
	out = append(out, s.ASCII...)
	out = append(out, s.Encrypted...)
	out = append(out, s.Trailer...)
	return out
}
