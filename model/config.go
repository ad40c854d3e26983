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

package model

// Config is the caller-supplied configuration a font-embedding session
// runs under, passed by value the way sfnt.ExportOptions is passed into
// Font.Export: no flag parsing happens inside this module, that is the
// caller's job.
type Config struct {
	Subset, Unicode, PDFA, Compress, Linked bool
	PlatformID, EncodingID                  uint16
	OutputPath                              string
	SearchDirs                              []string
}

// DefaultConfig returns the configuration a caller gets without
// overriding anything: Unicode TrueType fonts read through the Windows
// Unicode BMP cmap (platform 3, encoding 1), with output compression on.
func DefaultConfig() Config {
	return Config{
		Unicode:    true,
		Compress:   true,
		PlatformID: 3,
		EncodingID: 1,
	}
}
