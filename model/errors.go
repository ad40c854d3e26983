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

import "fmt"

// Kind enumerates the ways a font-embedding operation can fail. Every
// fallible operation in this module returns one of these, wrapped with
// context, in the plain error style of the rest of this codebase: no
// panics, no exception-style control flow.
type Kind int

const (
	ErrBounds Kind = iota
	ErrBadMagic
	ErrUnsupportedCmapFormat
	ErrLicenseRestricted
	ErrEncodingDecode
	ErrDefBadFormat
	ErrDefUnknownType
	ErrDefCidOnPDFA
	ErrRegMissingFont
	ErrRegEmptyFamily
	ErrIONotReadable
	ErrEmitUnsupportedType
	ErrSubsetCompress
)

func (k Kind) String() string {
	switch k {
	case ErrBounds:
		return "ParseError::Bounds"
	case ErrBadMagic:
		return "ParseError::BadMagic"
	case ErrUnsupportedCmapFormat:
		return "ParseError::UnsupportedCmapFormat"
	case ErrLicenseRestricted:
		return "ParseError::LicenseRestricted"
	case ErrEncodingDecode:
		return "ParseError::EncodingDecode"
	case ErrDefBadFormat:
		return "Def::BadFormat"
	case ErrDefUnknownType:
		return "Def::UnknownType"
	case ErrDefCidOnPDFA:
		return "Def::CidOnPdfa"
	case ErrRegMissingFont:
		return "Reg::MissingFont"
	case ErrRegEmptyFamily:
		return "Reg::EmptyFamily"
	case ErrIONotReadable:
		return "IO::NotReadable"
	case ErrEmitUnsupportedType:
		return "Emit::UnsupportedType"
	case ErrSubsetCompress:
		return "Subset::Compress"
	default:
		return "Unknown"
	}
}

// Error is a typed, fatal failure of a single operation. It carries no
// partial result: callers that receive one get no PDF object block, no
// partially-loaded font.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// NewError builds an *Error of the given kind.
func NewError(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an *Error of the given kind, wrapping a lower-level cause.
func WrapError(k Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...), Wrapped: cause}
}

// IsKind reports whether err is a *Error of the given kind, unwrapping as
// needed.
func IsKind(err error, k Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == k
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
