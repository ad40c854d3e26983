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

package fontdef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inkfont/fontembed/model"
)

func writeDef(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFallsBackToFamilyFile(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "helvetica.json", `{"type":"Core","cw":{"32":278,"72":722}}`)

	fe, err := Load([]string{dir}, "helveticab", "helvetica", "B", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !fe.Fakestyle {
		t.Error("expected Fakestyle = true when only family.json exists")
	}
	if fe.Name != "Helvetica-Bold" {
		t.Errorf("Name = %q, want Helvetica-Bold", fe.Name)
	}
}

func TestLoadPrefersKeyFile(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "helveticab.json", `{"type":"Core","cw":{"32":278}}`)
	writeDef(t, dir, "helvetica.json", `{"type":"Core","cw":{"32":278}}`)

	fe, err := Load([]string{dir}, "helveticab", "helvetica", "B", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fe.Fakestyle {
		t.Error("expected Fakestyle = false when key.json exists")
	}
}

func TestLoadRejectsCidFontUnderPDFA(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "mycid.json", `{"type":"cidfont0","cw":{"0":1000}}`)

	_, err := Load([]string{dir}, "mycid", "mycid", "", true)
	if !model.IsKind(err, model.ErrDefCidOnPDFA) {
		t.Fatalf("err = %v, want ErrDefCidOnPDFA", err)
	}
}

func TestDefaultWidthFallbackChain(t *testing.T) {
	explicit := 500
	if got := defaultWidth(&explicit, &model.Descriptor{}, nil); got != 500 {
		t.Errorf("explicit dw: got %d, want 500", got)
	}
	if got := defaultWidth(nil, &model.Descriptor{MissingWidth: 400}, nil); got != 400 {
		t.Errorf("MissingWidth fallback: got %d, want 400", got)
	}
	if got := defaultWidth(nil, &model.Descriptor{}, map[int]int{32: 278}); got != 278 {
		t.Errorf("cw[32] fallback: got %d, want 278", got)
	}
	if got := defaultWidth(nil, &model.Descriptor{}, nil); got != 600 {
		t.Errorf("final fallback: got %d, want 600", got)
	}
}

func TestApplyArtificialStylesBoldBeforeItalic(t *testing.T) {
	fe := model.NewFontEntry()
	fe.Fakestyle = true
	fe.Name = "Arial"
	fe.Mode = model.Mode{Bold: true, Italic: true}

	ApplyArtificialStyles(fe)

	if fe.Name != "ArialBoldItalic" {
		t.Errorf("Name = %q, want ArialBoldItalic (bold before italic)", fe.Name)
	}
	if fe.Desc.StemV != 123 {
		t.Errorf("StemV = %d, want 123 (default when absent)", fe.Desc.StemV)
	}
	if fe.Desc.ItalicAngle != -11 {
		t.Errorf("ItalicAngle = %d, want -11", fe.Desc.ItalicAngle)
	}
}
