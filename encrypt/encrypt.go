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

// Package encrypt defines the stream-encryption collaborator the
// emitter delegates to. Implementing an actual cipher (RC4, AES-CBC,
// the PDF standard security handler) is the enclosing document writer's
// responsibility, not this engine's.
package encrypt

// Stream transforms a single object's stream bytes before they are
// written into the PDF. objectNumber lets implementations that need a
// per-object key (the PDF standard security handler does) derive it.
type Stream interface {
	EncryptStream(data []byte, objectNumber int) ([]byte, error)
}

// Identity is a Stream that returns data unchanged, for emission
// sessions with encryption disabled.
type Identity struct{}

func (Identity) EncryptStream(data []byte, objectNumber int) ([]byte, error) {
	return data, nil
}
