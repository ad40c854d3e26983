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

package registry

import (
	"testing"

	"github.com/inkfont/fontembed/model"
)

func TestKeyDerivation(t *testing.T) {
	cases := []struct {
		family, style, wantKey string
	}{
		{"Helvetica", "", "helvetica"},
		{"Helvetica", "B", "helveticaB"},
		{"Helvetica", "BI", "helveticaBI"},
		{"Helvetica", "IB", "helveticaBI"},
		{"HelveticaB", "", "helveticaB"},
		{"HelveticaI", "B", "helveticaBI"},
		{"Symbol", "B", "symbol"},
		{"ZapfDingbats", "I", "zapfdingbats"},
	}
	for _, c := range cases {
		key, _, _, err := Key(c.family, c.style)
		if err != nil {
			t.Errorf("Key(%q, %q) returned error: %v", c.family, c.style, err)
			continue
		}
		if key != c.wantKey {
			t.Errorf("Key(%q, %q) = %q, want %q", c.family, c.style, key, c.wantKey)
		}
	}
}

func TestKeyRejectsEmptyFamily(t *testing.T) {
	for _, family := range []string{"", "   "} {
		_, _, _, err := Key(family, "B")
		if !model.IsKind(err, model.ErrRegEmptyFamily) {
			t.Errorf("Key(%q, \"B\") error = %v, want ErrRegEmptyFamily", family, err)
		}
	}
}

func TestGetOrRegisterDeduplicates(t *testing.T) {
	r := New(10)
	fe1 := model.NewFontEntry()
	got1, created1 := r.GetOrRegister("helvetica", fe1)
	if !created1 {
		t.Fatal("expected first registration to create a new entry")
	}
	if got1.N != 11 {
		t.Errorf("N = %d, want 11", got1.N)
	}

	fe2 := model.NewFontEntry()
	got2, created2 := r.GetOrRegister("helvetica", fe2)
	if created2 {
		t.Fatal("expected second registration to return the existing entry")
	}
	if got2 != got1 {
		t.Error("expected the same FontEntry pointer back")
	}
}

func TestDiffNumberPools(t *testing.T) {
	r := New(0)
	if n := r.DiffNumber(""); n != 0 {
		t.Errorf("empty diff should not be pooled, got %d", n)
	}
	n1 := r.DiffNumber("1 /a /b")
	n2 := r.DiffNumber("1 /a /b")
	n3 := r.DiffNumber("2 /c")
	if n1 != n2 {
		t.Errorf("equal diffs should share a pool index: %d != %d", n1, n2)
	}
	if n1 == n3 {
		t.Errorf("distinct diffs should get distinct indices")
	}
	if n1 != 1 {
		t.Errorf("first pool index should be 1-based, got %d", n1)
	}
}

func TestRegisterFileSubsetIsANDOfAliases(t *testing.T) {
	r := New(0)
	g := r.RegisterFile("/fonts/arial.ttf", "/fonts", 1000, nil, "arial", true, map[int]bool{65: true})
	g = r.RegisterFile("/fonts/arial.ttf", "/fonts", 1000, nil, "arialB", false, map[int]bool{66: true})

	if g.Subset() {
		t.Error("Subset() should be false once any alias opts out")
	}
	if len(g.SubsetChars) != 2 {
		t.Errorf("SubsetChars should be the union across aliases, got %v", g.SubsetChars)
	}
	if len(g.Keys) != 2 {
		t.Errorf("expected 2 pooled aliases, got %d", len(g.Keys))
	}
}
