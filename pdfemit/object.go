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

// Package pdfemit serializes the registered fonts of an emission session
// into the raw byte sequence of PDF indirect objects: encoding
// differences, font files, font descriptors, width arrays, and the
// CIDToGIDMap / ToUnicode streams a Unicode font needs.
package pdfemit

import (
	"bytes"
	"fmt"

	"github.com/inkfont/fontembed/encrypt"
)

// objectWriter accumulates the concatenated object block for one
// emission session.
type objectWriter struct {
	buf bytes.Buffer
}

func (w *objectWriter) dict(n int, body string) {
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", n, body)
}

func (w *objectWriter) stream(n int, dictBody string, data []byte, enc encrypt.Stream) error {
	encrypted, err := enc.EncryptStream(data, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nstream\n", n, dictBody)
	w.buf.Write(encrypted)
	w.buf.WriteString("\nendstream\nendobj\n")
	return nil
}

func (w *objectWriter) Bytes() []byte { return w.buf.Bytes() }
