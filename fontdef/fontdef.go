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

// Package fontdef loads a pre-computed JSON font definition from disk and
// applies the default-width and artificial-style rules that turn it into
// a ready-to-register model.FontEntry.
package fontdef

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkfont/fontembed/model"
)

// raw mirrors the persisted JSON shape of a font definition. DW is a
// pointer so that an absent "dw" can be told apart from an explicit zero;
// for every other field, absent and zero read the same.
type raw struct {
	Type    string           `json:"type"`
	CW      map[string]int   `json:"cw"`
	CBBox   map[string][4]int `json:"cbbox,omitempty"`
	DW      *int             `json:"dw,omitempty"`
	Desc    model.Descriptor `json:"desc,omitempty"`
	CIDInfo model.CIDInfo    `json:"cidinfo,omitempty"`
	Enc     string           `json:"enc,omitempty"`
	Diff    string           `json:"diff,omitempty"`
	File    string           `json:"file,omitempty"`
	UP      int              `json:"up,omitempty"`
	UT      int              `json:"ut,omitempty"`
}

// canonicalCoreNames maps the fourteen standard Core family+style
// combinations onto their canonical PostScript /BaseFont names.
var canonicalCoreNames = map[string]string{
	"courier":             "Courier",
	"courierb":            "Courier-Bold",
	"courieri":            "Courier-Oblique",
	"courierbi":           "Courier-BoldOblique",
	"helvetica":           "Helvetica",
	"helveticab":          "Helvetica-Bold",
	"helveticai":          "Helvetica-Oblique",
	"helveticabi":         "Helvetica-BoldOblique",
	"times":               "Times-Roman",
	"timesb":              "Times-Bold",
	"timesi":              "Times-Italic",
	"timesbi":             "Times-BoldItalic",
	"symbol":              "Symbol",
	"zapfdingbats":        "ZapfDingbats",
}

// Load locates key.json then family.json in each of dirs, parses it, and
// normalizes it into a FontEntry. fakestyle is set when only the
// family-level file (not the style-specific one) was found.
func Load(dirs []string, key, family, style string, pdfa bool) (*model.FontEntry, error) {
	path, fakestyle, err := locate(dirs, key, family)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapError(model.ErrIONotReadable, err, "read font definition %s", path)
	}

	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, model.WrapError(model.ErrDefBadFormat, err, "parse font definition %s", path)
	}
	if r.Type == "" || len(r.CW) == 0 {
		return nil, model.NewError(model.ErrDefBadFormat, "font definition %s missing type or cw", path)
	}

	typ, ok := model.ParseType(r.Type)
	if !ok {
		return nil, model.NewError(model.ErrDefUnknownType, "unknown font type %q in %s", r.Type, path)
	}
	if typ == model.CIDFontType0 && pdfa {
		return nil, model.NewError(model.ErrDefCidOnPDFA, "cidfont0 not allowed under pdfa in %s", path)
	}

	fe := model.NewFontEntry()
	fe.Key = key
	fe.Family = family
	fe.Style = style
	fe.Type = typ
	fe.PDFA = pdfa
	fe.Fakestyle = fakestyle
	fe.Desc = r.Desc
	fe.CIDInfo = r.CIDInfo
	fe.Enc = r.Enc
	fe.Diff = r.Diff
	fe.File = r.File
	fe.UP, fe.UT = r.UP, r.UT
	fe.Dir = filepath.Dir(path)

	for k, w := range r.CW {
		if cid, ok := parseCID(k); ok {
			fe.CW[cid] = w
		}
	}
	for k, bb := range r.CBBox {
		if cid, ok := parseCID(k); ok {
			fe.CBBox[cid] = model.Rect{LLx: bb[0], LLy: bb[1], URx: bb[2], URy: bb[3]}
		}
	}

	fe.DW = defaultWidth(r.DW, &fe.Desc, fe.CW)

	setName(fe)

	return fe, nil
}

func locate(dirs []string, key, family string) (path string, fakestyle bool, err error) {
	for _, dir := range dirs {
		p := filepath.Join(dir, key+".json")
		if fileExists(p) {
			return p, false, nil
		}
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, family+".json")
		if fileExists(p) {
			return p, true, nil
		}
	}
	return "", false, model.NewError(model.ErrIONotReadable, "no font definition for key %q or family %q", key, family)
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func parseCID(s string) (int, bool) {
	v := 0
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

// defaultWidth implements the dw fallback chain: explicit dw, else
// MissingWidth, else cw[32], else 600.
func defaultWidth(explicit *int, desc *model.Descriptor, cw map[int]int) int {
	if explicit != nil {
		return *explicit
	}
	if desc.MissingWidth > 0 {
		return desc.MissingWidth
	}
	if w, ok := cw[32]; ok && w > 0 {
		return w
	}
	return 600
}

// setName applies the Core canonical-name substitution, the
// TrueTypeUnicode Identity-H forcing, and the PDF/A "pdfa" name prefix.
func setName(fe *model.FontEntry) {
	name := fe.Family
	if fe.Type == model.Core {
		key := strings.ToLower(fe.Family) + strings.ToLower(fe.Style)
		if canonical, ok := canonicalCoreNames[key]; ok {
			name = canonical
		}
	}
	if fe.Type == model.TrueTypeUnicode {
		fe.Enc = "Identity-H"
	}
	if fe.PDFA && fe.Type == model.Core {
		name = "pdfa" + name
	}
	fe.Name = name
}

// ApplyArtificialStyles implements setArtificialStyles: when fe.Fakestyle
// is set, bold and italic are synthesized onto the name and descriptor
// rather than loaded from a style-specific file. Bold is always applied
// before italic, so a bold-italic fake carries "Bold" then "Italic" in
// the name and the StemV widening happens before the angle shift.
func ApplyArtificialStyles(fe *model.FontEntry) {
	if !fe.Fakestyle {
		return
	}
	if fe.Mode.Bold {
		fe.Name += "Bold"
		if fe.Desc.StemV == 0 {
			fe.Desc.StemV = 123
		} else {
			fe.Desc.StemV = int(math.Round(float64(fe.Desc.StemV) * 1.75))
		}
	}
	if fe.Mode.Italic {
		fe.Name += "Italic"
		if fe.Desc.ItalicAngle == 0 {
			fe.Desc.ItalicAngle = -11
		} else {
			fe.Desc.ItalicAngle -= 11
		}
		fe.Desc.Flags |= model.FlagItalic
	}
}
