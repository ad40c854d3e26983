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

// Package registry keeps the pools an emission session needs to avoid
// duplicate work: one FontEntry per registry key, one object per
// distinct encoding-differences string, and one embedded stream per
// distinct font file, shared across all of that file's style aliases.
package registry

import (
	"strings"

	"github.com/inkfont/fontembed/model"
)

// Registry owns the object-number counter and the three pools threaded
// through a single emission session. It carries no process-wide state:
// every field is owned by the caller that constructs it.
type Registry struct {
	fonts        map[string]*model.FontEntry
	diffs        []string
	diffIndex    map[string]int
	files        map[string]*FileGroup
	objectNumber int
}

// FileGroup tracks one embedded-font-file's aliases: every registry key
// that shares the file, and whether every alias agrees the file should
// be subset-embedded.
type FileGroup struct {
	Keys         []string
	Dir          string
	Length1      int
	Length2      *int
	subsetAll    bool
	initialized  bool
	SubsetChars  map[int]bool
}

// New returns an empty Registry, with the object-number counter starting
// at startObjectNumber (the caller's running total before this session).
func New(startObjectNumber int) *Registry {
	return &Registry{
		fonts:        make(map[string]*model.FontEntry),
		diffIndex:    make(map[string]int),
		files:        make(map[string]*FileGroup),
		objectNumber: startObjectNumber,
	}
}

// ObjectNumber returns the counter's current value: the initial value
// plus the number of objects allocated so far in this session.
func (r *Registry) ObjectNumber() int { return r.objectNumber }

// NextObjectNumber increments and returns the shared object-number
// counter.
func (r *Registry) NextObjectNumber() int {
	r.objectNumber++
	return r.objectNumber
}

// Key derives the registry key for a family and incoming style: the
// lowercased family concatenated with its style suffix, B before I. A
// family ending in "b" or "i" has that trailing letter stripped and
// folded into the style. The two symbolic Core families always key with
// an empty style suffix, since Symbol and ZapfDingbats have no bold or
// italic variant. Key rejects an empty (or all-whitespace) family with
// ErrRegEmptyFamily: there is no sensible key to derive from it.
func Key(family, style string) (key, resolvedFamily, resolvedStyle string, err error) {
	if strings.TrimSpace(family) == "" {
		return "", "", "", model.NewError(model.ErrRegEmptyFamily, "font family must not be empty")
	}

	family = strings.ToLower(family)
	style = strings.ToUpper(style)

	if model.IsSymbolic(family) {
		return family, family, "", nil
	}

	hasB := strings.Contains(style, "B")
	hasI := strings.Contains(style, "I")

	if strings.HasSuffix(family, "b") && len(family) > 1 {
		family = strings.TrimSuffix(family, "b")
		hasB = true
	}
	if strings.HasSuffix(family, "i") && len(family) > 1 {
		family = strings.TrimSuffix(family, "i")
		hasI = true
	}

	suffix := ""
	if hasB {
		suffix += "B"
	}
	if hasI {
		suffix += "I"
	}
	return family + suffix, family, suffix, nil
}

// GetOrRegister returns the FontEntry already registered under key, or
// registers fe (assigning it the next object number) if key is new.
func (r *Registry) GetOrRegister(key string, fe *model.FontEntry) (*model.FontEntry, bool) {
	if existing, ok := r.fonts[key]; ok {
		return existing, false
	}
	fe.N = r.NextObjectNumber()
	r.fonts[key] = fe
	return fe, true
}

// Lookup returns the FontEntry registered under key, if any.
func (r *Registry) Lookup(key string) (*model.FontEntry, bool) {
	fe, ok := r.fonts[key]
	return fe, ok
}

// All returns every registered FontEntry. The order is unspecified;
// callers that need deterministic emission order should sort by N.
func (r *Registry) All() []*model.FontEntry {
	out := make([]*model.FontEntry, 0, len(r.fonts))
	for _, fe := range r.fonts {
		out = append(out, fe)
	}
	return out
}

// DiffNumber pools diff by equality and returns its 1-based index in the
// pool, assigning a new index the first time a given string is seen.
func (r *Registry) DiffNumber(diff string) int {
	if diff == "" {
		return 0
	}
	if n, ok := r.diffIndex[diff]; ok {
		return n
	}
	r.diffs = append(r.diffs, diff)
	n := len(r.diffs)
	r.diffIndex[diff] = n
	return n
}

// Diffs returns the pooled diff strings in emission order (index i
// corresponds to DiffNumber result i+1).
func (r *Registry) Diffs() []string { return r.diffs }

// RegisterFile records that key uses path, pooling it with any other
// alias that already shares the path. subset and chars contribute to the
// group's subset-AND and used-character-union accumulators.
func (r *Registry) RegisterFile(path, dir string, length1 int, length2 *int, key string, subset bool, chars map[int]bool) *FileGroup {
	g, ok := r.files[path]
	if !ok {
		g = &FileGroup{Dir: dir, Length1: length1, Length2: length2, SubsetChars: make(map[int]bool)}
		r.files[path] = g
	}
	g.Keys = append(g.Keys, key)
	if !g.initialized {
		g.subsetAll = subset
		g.initialized = true
	} else {
		g.subsetAll = g.subsetAll && subset
	}
	for c := range chars {
		g.SubsetChars[c] = true
	}
	return g
}

// Subset reports whether path's FileGroup should be subset-embedded:
// true only if every alias that registered against it requested subset.
func (g *FileGroup) Subset() bool { return g.subsetAll }
