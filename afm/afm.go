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

// Package afm parses Adobe Font Metrics text files, the format the
// fourteen standard Core fonts ship their metrics in.
package afm

import (
	"bufio"
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/inkfont/fontembed/model"
)

// Metrics is the normalized result of parsing an AFM file.
type Metrics struct {
	Name           string
	FullName       string
	FamilyName     string
	Weight         string
	CharacterSet   string
	Version        string
	EncodingScheme string

	IsFixedPitch bool
	FontBBox     model.Rect

	Desc model.Descriptor

	CWidths map[int]int
	CBBox   map[int]model.Rect
}

var nonPostScriptChar = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Parse decodes an AFM text buffer.
func Parse(data []byte) (*Metrics, error) {
	ints := map[string]int{}
	texts := map[string]string{}
	var fixedPitch bool
	var bbox model.Rect
	cwidths := map[int]int{}
	cbbox := map[int]model.Rect{}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "FontName", "FullName", "FamilyName", "Weight", "CharacterSet", "Version", "EncodingScheme":
			texts[fields[0]] = strings.Join(fields[1:], " ")
		case "ItalicAngle", "UnderlinePosition", "UnderlineThickness", "CapHeight", "XHeight",
			"Ascender", "Descender", "StdHW", "StdVW":
			if len(fields) >= 2 {
				if v, err := strconv.Atoi(fields[1]); err == nil {
					ints[fields[0]] = v
				} else if f, err := strconv.ParseFloat(fields[1], 64); err == nil {
					ints[fields[0]] = int(math.Round(f))
				}
			}
		case "IsFixedPitch":
			if len(fields) >= 2 {
				fixedPitch = fields[1] == "true"
			}
		case "FontBBox":
			if len(fields) >= 5 {
				bbox = model.Rect{
					LLx: atoi(fields[1]), LLy: atoi(fields[2]),
					URx: atoi(fields[3]), URy: atoi(fields[4]),
				}
			}
		case "C":
			parseCharMetricLine(line, cwidths, cbbox)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, model.WrapError(model.ErrBounds, err, "afm scan")
	}

	missingWidth := 600
	if w, ok := cwidths[32]; ok {
		missingWidth = w
	}
	cw := make(map[int]int, 256)
	maxWidth := missingWidth
	sum, count := 0, 0
	for cid := 0; cid <= 255; cid++ {
		if w, ok := cwidths[cid]; ok {
			cw[cid] = w
		} else {
			cw[cid] = missingWidth
		}
	}
	for _, w := range cwidths {
		if w > maxWidth {
			maxWidth = w
		}
		sum += w
		count++
	}
	avgWidth := 0
	if count > 0 {
		avgWidth = int(math.Round(float64(sum) / float64(count)))
	}

	fontName := texts["FontName"]
	descender, hasDescender := ints["Descender"]
	if !hasDescender {
		descender = bbox.LLy
	}
	ascender, hasAscender := ints["Ascender"]
	if !hasAscender {
		ascender = bbox.URy
	}
	capHeight, hasCapHeight := ints["CapHeight"]
	if !hasCapHeight {
		capHeight = ascender
	}

	flags := 0
	if fontName == "Symbol" || fontName == "ZapfDingbats" {
		flags |= model.FlagSymbolic
	} else {
		flags |= model.FlagNonsymbolic
	}
	if fixedPitch {
		flags |= model.FlagFixedPitch
	}
	if ints["ItalicAngle"] != 0 {
		flags |= model.FlagItalic
	}

	name := sanitizeName(texts["FullName"])
	if name == "" {
		return nil, model.NewError(model.ErrEncodingDecode, "afm FullName sanitizes to empty string")
	}

	return &Metrics{
		Name:           name,
		FullName:       texts["FullName"],
		FamilyName:     texts["FamilyName"],
		Weight:         texts["Weight"],
		CharacterSet:   texts["CharacterSet"],
		Version:        texts["Version"],
		EncodingScheme: texts["EncodingScheme"],
		IsFixedPitch:   fixedPitch,
		FontBBox:       bbox,
		Desc: model.Descriptor{
			Ascent:             ascender,
			Descent:            descender,
			CapHeight:          capHeight,
			XHeight:            ints["XHeight"],
			ItalicAngle:        ints["ItalicAngle"],
			Flags:              flags,
			FontBBox:           bbox,
			StemV:              ints["StdVW"],
			StemH:              ints["StdHW"],
			AvgWidth:           avgWidth,
			MaxWidth:           maxWidth,
			MissingWidth:       missingWidth,
		},
		CWidths: cw,
		CBBox:   cbbox,
	}, nil
}

// parseCharMetricLine decodes a "C cid ; WX w ; N name ; B x0 y0 x1 y1 ;"
// line. The presence check for the B clause uses the fourteenth
// whitespace-separated token of the line, reproducing a historical quirk
// of the parser this behavior is modeled on rather than scanning for a
// "B" token directly.
func parseCharMetricLine(line string, cwidths map[int]int, cbbox map[int]model.Rect) {
	parts := strings.Split(line, ";")
	var cid, wx int
	haveCid, haveWx := false, false
	for _, p := range parts {
		f := strings.Fields(p)
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "C":
			if len(f) >= 2 {
				cid = atoi(f[1])
				haveCid = true
			}
		case "WX":
			if len(f) >= 2 {
				wx = atoi(f[1])
				haveWx = true
			}
		}
	}
	if !haveCid || !haveWx || cid < 0 {
		return
	}
	cwidths[cid] = wx

	// The presence of a B (bbox) clause is detected by token count alone
	// — whether a fourteenth whitespace-separated token exists — rather
	// than by checking for the literal "B" marker.
	tokens := strings.Fields(line)
	if len(tokens) >= 14 {
		x0, y0, x1, y1 := atoi(tokens[10]), atoi(tokens[11]), atoi(tokens[12]), atoi(tokens[13])
		cbbox[cid] = model.Rect{LLx: x0, LLy: y0, URx: x1, URy: y1}
	}
}

func atoi(s string) int {
	s = strings.TrimSuffix(s, ";")
	v, _ := strconv.Atoi(s)
	return v
}

func sanitizeName(name string) string {
	return nonPostScriptChar.ReplaceAllString(strings.TrimSpace(name), "")
}
