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
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/inkfont/fontembed/encrypt"
	"github.com/inkfont/fontembed/model"
	"github.com/inkfont/fontembed/registry"
	"github.com/inkfont/fontembed/sfnt"
	"github.com/inkfont/fontembed/sfnt/subset"
)

// Session holds the inputs one Emit call needs: the registered fonts,
// the pooled encoding differences and file groups, and the collaborator
// that wraps every stream before it is written.
type Session struct {
	Registry *registry.Registry
	Encrypt  encrypt.Stream
	Config   model.Config
}

// fontFileObject records the object number an embedded font file ended
// up at, so per-font dictionaries can reference it.
type fontFileObject struct {
	objectNumber int
	length1      int
}

// Emit produces the concatenated object block for every font registered
// in s.Registry and returns it along with the final object-number
// counter value.
func Emit(s *Session) ([]byte, int, error) {
	if s.Encrypt == nil {
		s.Encrypt = encrypt.Identity{}
	}
	if s.Config.PlatformID == 0 && s.Config.EncodingID == 0 {
		s.Config = model.DefaultConfig()
	}
	w := &objectWriter{}

	fonts := s.Registry.All()
	sort.Slice(fonts, func(i, j int) bool { return fonts[i].N < fonts[j].N })

	// Phase 1: encoding-diff objects, in pool order.
	diffObjNum := map[int]int{}
	for i, diff := range s.Registry.Diffs() {
		poolIndex := i + 1
		n := s.Registry.NextObjectNumber()
		diffObjNum[poolIndex] = n
		w.dict(n, fmt.Sprintf("<< /Type /Encoding /BaseEncoding /WinAnsiEncoding /Differences [%s] >>", diff))
	}

	// Phase 2: font file objects, one per distinct file path.
	fileObjects := map[string]*fontFileObject{}
	seenPaths := map[string]bool{}
	for _, fe := range fonts {
		if fe.File == "" || seenPaths[fe.File] {
			continue
		}
		seenPaths[fe.File] = true

		obj, err := emitFontFile(w, s, fe)
		if err != nil {
			return nil, 0, err
		}
		fileObjects[fe.File] = obj
	}

	// Phase 3: font dictionaries, dispatched by type.
	for _, fe := range fonts {
		ff := fileObjects[fe.File]
		if err := emitFontDict(w, s, fe, ff, diffObjNum); err != nil {
			return nil, 0, err
		}
	}

	return w.Bytes(), s.Registry.ObjectNumber(), nil
}

func emitFontFile(w *objectWriter, s *Session, fe *model.FontEntry) (*fontFileObject, error) {
	raw, err := os.ReadFile(fe.File)
	if err != nil {
		return nil, model.WrapError(model.ErrIONotReadable, err, "read font file %s", fe.File)
	}

	var payload []byte
	length1 := fe.Length1
	var length2 *int

	switch fe.Type {
	case model.TrueType, model.TrueTypeUnicode:
		body := raw
		if fe.Subset {
			deflated, err := inflateIfCompressed(raw)
			if err != nil {
				return nil, err
			}
			tables, err := sfnt.ReadHeader(deflated)
			if err != nil {
				return nil, err
			}
			font, _, err := sfnt.Parse(deflated, fe.Type, sfnt.ParseOptions{PlatformID: s.Config.PlatformID, EncodingID: s.Config.EncodingID})
			if err != nil {
				return nil, err
			}
			short := font.IndexToLocFormat == 0
			sub, err := subset.Build(deflated, tables, font.CharToGlyph, font.Loca, fe.SubsetChars, short)
			if err != nil {
				return nil, err
			}
			body = sub
		}
		length1 = len(body)
		payload = deflate(body)
	case model.Type1:
		payload = raw
		length2 = fe.Length2
	default:
		payload = raw
	}

	n := s.Registry.NextObjectNumber()
	dictBody := fmt.Sprintf("<< /Filter /FlateDecode /Length %d /Length1 %d", len(payload), length1)
	if length2 != nil {
		dictBody += fmt.Sprintf(" /Length2 %d /Length3 0", *length2)
	}
	dictBody += " >>"

	if err := w.stream(n, dictBody, payload, s.Encrypt); err != nil {
		return nil, err
	}
	return &fontFileObject{objectNumber: n, length1: length1}, nil
}

func deflate(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}

func inflateIfCompressed(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data, nil
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return data, nil
	}
	return out, nil
}

// emitFontDict dispatches to the type-specific dictionary writer. Every
// defined model.Type has exactly one emitter; a value outside that set
// yields an ErrEmitUnsupportedType error.
func emitFontDict(w *objectWriter, s *Session, fe *model.FontEntry, ff *fontFileObject, diffObjNum map[int]int) error {
	switch fe.Type {
	case model.Core:
		return emitCore(w, s, fe, diffObjNum)
	case model.Type1, model.TrueType:
		return emitSimple(w, s, fe, ff, diffObjNum)
	case model.TrueTypeUnicode:
		return emitTrueTypeUnicode(w, s, fe, ff)
	case model.CIDFontType0:
		return emitCIDFontType0(w, s, fe)
	}
	return model.NewError(model.ErrEmitUnsupportedType, "font %q has unrecognized type %v", fe.Key, fe.Type)
}

func emitCore(w *objectWriter, s *Session, fe *model.FontEntry, diffObjNum map[int]int) error {
	n := fe.N
	body := fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /FirstChar 0 /LastChar 255 %s",
		fe.Name, widthsArrayLiteral(fe))
	if fe.Diff != "" && !model.IsSymbolic(fe.Family) {
		body += fmt.Sprintf(" /Encoding %d 0 R", diffObjNum[fe.DiffN])
	}
	body += " >>"
	w.dict(n, body)
	return nil
}

func emitSimple(w *objectWriter, s *Session, fe *model.FontEntry, ff *fontFileObject, diffObjNum map[int]int) error {
	descN := s.Registry.NextObjectNumber()
	fontFileKey := "FontFile"
	if fe.Type == model.TrueType {
		fontFileKey = "FontFile2"
	}
	descBody := fmt.Sprintf("<< /Type /FontDescriptor /FontName /%s %s", fe.Name, descriptorFields(fe))
	if ff != nil {
		descBody += fmt.Sprintf(" /%s %d 0 R", fontFileKey, ff.objectNumber)
	}
	descBody += " >>"
	w.dict(descN, descBody)

	body := fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /FirstChar 0 /LastChar 255 %s /FontDescriptor %d 0 R",
		fe.Name, widthsArrayLiteral(fe), descN)
	if fe.Diff != "" && !model.IsSymbolic(fe.Family) {
		body += fmt.Sprintf(" /Encoding %d 0 R", diffObjNum[fe.DiffN])
	}
	body += " >>"
	w.dict(fe.N, body)
	return nil
}

func emitTrueTypeUnicode(w *objectWriter, s *Session, fe *model.FontEntry, ff *fontFileObject) error {
	descN := s.Registry.NextObjectNumber()
	descBody := fmt.Sprintf("<< /Type /FontDescriptor /FontName /%s %s", fe.Name, descriptorFields(fe))
	if ff != nil {
		descBody += fmt.Sprintf(" /FontFile2 %d 0 R", ff.objectNumber)
	}
	descBody += " >>"
	w.dict(descN, descBody)

	cidToGidN := s.Registry.NextObjectNumber()
	cidToGid := BuildCIDToGIDMap(cidToGidMapFromCW(fe))
	if err := w.stream(cidToGidN, fmt.Sprintf("<< /Length %d >>", len(cidToGid)), cidToGid, s.Encrypt); err != nil {
		return err
	}

	descendantN := s.Registry.NextObjectNumber()
	descendantBody := fmt.Sprintf(
		"<< /Type /Font /Subtype /CIDFontType2 /BaseFont /%s /CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> /FontDescriptor %d 0 R /DW %d %s /CIDToGIDMap %d 0 R >>",
		fe.Name, descN, fe.DW, CompactWidths(fe.CW, fe.DW, fe.SubsetChars), cidToGidN)
	w.dict(descendantN, descendantBody)

	toUnicodeN := s.Registry.NextObjectNumber()
	toUnicode := BuildToUnicodeCMap(unicodeMapFromCW(fe))
	if err := w.stream(toUnicodeN, fmt.Sprintf("<< /Length %d >>", len(toUnicode)), toUnicode, s.Encrypt); err != nil {
		return err
	}

	body := fmt.Sprintf("<< /Type /Font /Subtype /Type0 /BaseFont /%s /Encoding /%s /DescendantFonts [%d 0 R] /ToUnicode %d 0 R >>",
		fe.Name, fe.Enc, descendantN, toUnicodeN)
	w.dict(fe.N, body)
	return nil
}

func emitCIDFontType0(w *objectWriter, s *Session, fe *model.FontEntry) error {
	descN := s.Registry.NextObjectNumber()
	w.dict(descN, fmt.Sprintf("<< /Type /FontDescriptor /FontName /%s %s >>", fe.Name, descriptorFields(fe)))

	descendantN := s.Registry.NextObjectNumber()
	descendantBody := fmt.Sprintf(
		"<< /Type /Font /Subtype /CIDFontType0 /BaseFont /%s /CIDSystemInfo << /Registry (%s) /Ordering (%s) /Supplement %d >> /FontDescriptor %d 0 R /DW %d %s >>",
		fe.Name, fe.CIDInfo.Registry, fe.CIDInfo.Ordering, fe.CIDInfo.Supplement, descN, fe.DW, CompactWidths(fe.CW, fe.DW, fe.SubsetChars))
	w.dict(descendantN, descendantBody)

	body := fmt.Sprintf("<< /Type /Font /Subtype /Type0 /BaseFont /%s /Encoding /%s /DescendantFonts [%d 0 R]",
		fe.Name, fe.Enc, descendantN)
	if len(fe.CIDInfo.Uni2CID) > 0 {
		toUnicodeN := s.Registry.NextObjectNumber()
		toUnicode := BuildToUnicodeCMap(unicodeMapFromUni2CID(fe))
		if err := w.stream(toUnicodeN, fmt.Sprintf("<< /Length %d >>", len(toUnicode)), toUnicode, s.Encrypt); err != nil {
			return err
		}
		body += fmt.Sprintf(" /ToUnicode %d 0 R", toUnicodeN)
	}
	body += " >>"
	w.dict(fe.N, body)
	return nil
}

func widthsArrayLiteral(fe *model.FontEntry) string {
	var sb bytes.Buffer
	sb.WriteString("/Widths [")
	for c := 0; c <= 255; c++ {
		if c > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", fe.CW[c])
	}
	sb.WriteString("]")
	return sb.String()
}

func descriptorFields(fe *model.FontEntry) string {
	d := fe.Desc
	return fmt.Sprintf(
		"/Flags %d /FontBBox [%d %d %d %d] /ItalicAngle %d /Ascent %d /Descent %d /CapHeight %d /StemV %d /AvgWidth %d /MaxWidth %d /MissingWidth %d",
		d.Flags, d.FontBBox.LLx, d.FontBBox.LLy, d.FontBBox.URx, d.FontBBox.URy,
		d.ItalicAngle, d.Ascent, d.Descent, d.CapHeight, d.StemV, d.AvgWidth, d.MaxWidth, d.MissingWidth)
}

func cidToGidMapFromCW(fe *model.FontEntry) map[int]int {
	out := make(map[int]int, len(fe.CW))
	for c := range fe.CW {
		out[c] = c
	}
	return out
}

func unicodeMapFromCW(fe *model.FontEntry) map[int]rune {
	out := make(map[int]rune, len(fe.CW))
	for c := range fe.CW {
		out[c] = rune(c)
	}
	return out
}

// unicodeMapFromUni2CID inverts a CID font's Unicode-to-CID table into the
// CID-to-Unicode direction ToUnicode needs, keeping only the CIDs this
// instance actually emits glyphs for.
func unicodeMapFromUni2CID(fe *model.FontEntry) map[int]rune {
	out := make(map[int]rune, len(fe.CIDInfo.Uni2CID))
	for u, cid := range fe.CIDInfo.Uni2CID {
		if _, used := fe.CW[cid]; used {
			out[cid] = u
		}
	}
	return out
}
