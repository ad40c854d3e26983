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

package sfnt

import (
	"regexp"
	"strings"

	"github.com/inkfont/fontembed/internal/charset"
	"github.com/inkfont/fontembed/model"
)

// nameRecord is one entry of the "name" table's name record array.
type nameRecord struct {
	PlatformID, EncodingID, LanguageID, NameID uint16
	Length, Offset                             uint16
}

// readName decodes the "name" table and returns the PostScript name
// (nameID 6), preferring a Windows platform record over a Macintosh one
// since PostScript names are almost always ASCII-safe either way.
func (t *Tables) readName() (string, error) {
	rec, ok := t.Records["name"]
	if !ok {
		return "", model.NewError(model.ErrBounds, "missing name table")
	}
	r := t.Reader()
	base := int(rec.Offset)

	count, err := r.U16(base + 2)
	if err != nil {
		return "", model.WrapError(model.ErrBounds, err, "name count")
	}
	stringOffset, err := r.U16(base + 4)
	if err != nil {
		return "", model.WrapError(model.ErrBounds, err, "name stringOffset")
	}
	storage := base + int(stringOffset)

	var winName, macName string
	for i := 0; i < int(count); i++ {
		recOff := base + 6 + i*12
		platformID, e1 := r.U16(recOff)
		encodingID, e2 := r.U16(recOff + 2)
		_, e3 := r.U16(recOff + 4) // languageID, unused for selection
		nameID, e4 := r.U16(recOff + 6)
		length, e5 := r.U16(recOff + 8)
		offset, e6 := r.U16(recOff + 10)
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil || e5 != nil || e6 != nil {
			return "", model.NewError(model.ErrBounds, "name record %d", i)
		}
		if nameID != 6 {
			continue
		}
		raw, err := t.slice(storage+int(offset), int(length))
		if err != nil {
			return "", model.WrapError(model.ErrBounds, err, "name record %d string", i)
		}
		decoded, err := charset.Decode(platformID, encodingID, raw)
		if err != nil {
			continue
		}
		if platformID == 3 {
			winName = decoded
		} else if platformID == 1 {
			macName = decoded
		}
	}

	name := winName
	if name == "" {
		name = macName
	}
	if name == "" {
		return "", model.NewError(model.ErrEncodingDecode, "no PostScript name (nameID 6) record decoded")
	}
	return sanitizePostScriptName(name), nil
}

var nonPostScriptChar = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// sanitizePostScriptName strips characters a PDF /BaseFont name cannot
// safely carry.
func sanitizePostScriptName(name string) string {
	return nonPostScriptChar.ReplaceAllString(strings.TrimSpace(name), "")
}
