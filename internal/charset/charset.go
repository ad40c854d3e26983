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

// Package charset decodes the "name" table's platform/encoding-specific
// byte strings to UTF-8. golang.org/x/text is the ecosystem's standard
// home for the CJK and legacy code pages a sfnt name table can carry;
// there is no reason to hand-roll CP936/950/949 conversion tables when
// x/text already ships them.
package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/inkfont/fontembed/model"
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Decode converts raw name-table bytes for the given (platformID,
// encodingID) pair to a UTF-8 string.
func Decode(platformID, encodingID uint16, raw []byte) (string, error) {
	var enc encoding.Encoding
	switch {
	case platformID == 0:
		enc = utf16be
	case platformID == 1:
		return decodeMacRoman(raw)
	case platformID == 3 && encodingID == 3:
		enc = simplifiedchinese.GBK // CP936
	case platformID == 3 && encodingID == 4:
		enc = traditionalchinese.Big5 // CP950
	case platformID == 3 && encodingID == 5:
		enc = korean.EUCKR // CP949-compatible superset
	default:
		enc = utf16be
	}

	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", model.WrapError(model.ErrEncodingDecode, err, "decode name record (platform %d, encoding %d)", platformID, encodingID)
	}
	if len(out) == 0 {
		return "", model.NewError(model.ErrEncodingDecode, "empty decoded name record")
	}
	return string(out), nil
}

// decodeMacRoman decodes MacRoman (platform 1). If the MacRoman decoder
// reports an error, the whole record is decoded as Windows-1252 instead;
// both are single-byte code pages sharing the ASCII range.
func decodeMacRoman(raw []byte) (string, error) {
	out, err := macRoman.NewDecoder().Bytes(raw)
	if err != nil {
		out, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", model.WrapError(model.ErrEncodingDecode, err, "decode MacRoman name record")
		}
	}
	if len(out) == 0 {
		return "", model.NewError(model.ErrEncodingDecode, "empty decoded name record")
	}
	return string(out), nil
}

// macRoman is the classic Mac OS Roman script single-byte encoding.
var macRoman = charmap.Macintosh
