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
	"errors"
	"strings"
	"testing"

	"github.com/inkfont/fontembed/encrypt"
)

func TestDictFraming(t *testing.T) {
	w := &objectWriter{}
	w.dict(3, "<< /Type /Font >>")
	got := string(w.Bytes())
	want := "3 0 obj\n<< /Type /Font >>\nendobj\n"
	if got != want {
		t.Errorf("dict() = %q, want %q", got, want)
	}
}

func TestStreamFramingAndEncryption(t *testing.T) {
	w := &objectWriter{}
	if err := w.stream(5, "<< /Length 4 >>", []byte("abcd"), encrypt.Identity{}); err != nil {
		t.Fatalf("stream: %v", err)
	}
	got := string(w.Bytes())
	if !strings.HasPrefix(got, "5 0 obj\n<< /Length 4 >>\nstream\nabcd\nendstream\nendobj\n") {
		t.Errorf("stream() = %q", got)
	}
}

type failingEncrypt struct{}

func (failingEncrypt) EncryptStream(data []byte, objectNumber int) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestStreamPropagatesEncryptionError(t *testing.T) {
	w := &objectWriter{}
	err := w.stream(1, "<< >>", []byte("x"), failingEncrypt{})
	if err == nil {
		t.Fatal("stream: want error, got nil")
	}
}
