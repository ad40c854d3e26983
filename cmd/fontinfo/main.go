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

// Command fontinfo loads one font file from disk and prints the
// metrics this module would embed for it. For a TrueType file: the
// PostScript name, resolved type, ascent, descent, cap height, x-height
// and glyph count. For a PFB file: the three segment lengths. For an AFM
// file: the name, ascent, descent, cap height and missing-character width.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inkfont/fontembed/afm"
	"github.com/inkfont/fontembed/model"
	"github.com/inkfont/fontembed/sfnt"
	"github.com/inkfont/fontembed/type1"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <font-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fontinfo:", err)
		os.Exit(1)
	}

	if err := describe(path, data); err != nil {
		fmt.Fprintln(os.Stderr, "fontinfo:", err)
		os.Exit(1)
	}
}

func describe(path string, data []byte) error {
	switch {
	case looksLikeSfnt(data):
		font, resolved, err := sfnt.Parse(data, model.TrueTypeUnicode, sfnt.ParseOptions{PlatformID: 3, EncodingID: 1})
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s (%s)\n", path, font.PostScriptName, resolved)
		fmt.Printf("  ascent=%d descent=%d capHeight=%d xHeight=%d glyphs=%d\n",
			font.Desc.Ascent, font.Desc.Descent, font.Desc.CapHeight, font.Desc.XHeight, font.NumGlyphs)
		return nil
	case len(data) > 0 && data[0] == 0x80:
		segs, err := type1.Open(data)
		if err != nil {
			return err
		}
		fmt.Printf("%s: Type 1 font, %d+%d+%d bytes\n", path, segs.Length1(), segs.Length2(), segs.Length3())
		return nil
	default:
		m, err := afm.Parse(data)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", path, m.Name)
		fmt.Printf("  ascent=%d descent=%d capHeight=%d missingWidth=%d\n",
			m.Desc.Ascent, m.Desc.Descent, m.Desc.CapHeight, m.Desc.MissingWidth)
		return nil
	}
}

func looksLikeSfnt(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	magic := string(data[:4])
	return magic == "\x00\x01\x00\x00" || magic == "true"
}
