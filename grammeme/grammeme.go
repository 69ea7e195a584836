// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package grammeme implements grammeme interning.
//
// Every distinct grammeme in a dictionary is stored once in a Table and
// entries refer to grammemes by their 16-bit index in the table. The table is
// sorted by the byte order of the grammemes' UTF-8 encoding so that identical
// input always results in identical indexes.
package grammeme

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ianlewis/go-lemmas/dict"
)

const (
	// MaxTableSize is the maximum number of grammemes in a Table.
	MaxTableSize = math.MaxUint16

	// MaxEntryGrammemes is the maximum number of grammemes referenced by a
	// single entry.
	MaxEntryGrammemes = math.MaxUint8
)

// ErrTableOverflow indicates that the grammeme table or an entry's grammeme
// list is too large to be represented.
var ErrTableOverflow = errors.New("table overflow")

// Table is a sorted, deduplicated grammeme table.
type Table struct {
	grammemes []string
	index     map[string]uint16
}

// NewTable returns a new Table containing the given grammemes. Empty and
// duplicate grammemes are discarded and the rest are sorted.
func NewTable(grammemes []string) (*Table, error) {
	seen := make(map[string]struct{}, len(grammemes))
	sorted := make([]string, 0, len(grammemes))
	for _, g := range grammemes {
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		sorted = append(sorted, g)
	}
	if len(sorted) > MaxTableSize {
		return nil, fmt.Errorf("%w: %d distinct grammemes exceeds %d", ErrTableOverflow, len(sorted), MaxTableSize)
	}
	// NOTE: Go string comparison is by byte, which for UTF-8 matches code
	// point order.
	slices.Sort(sorted)

	t := &Table{
		grammemes: sorted,
		index:     make(map[string]uint16, len(sorted)),
	}
	for i, g := range sorted {
		//nolint:gosec // i is bounds checked against MaxTableSize above.
		t.index[g] = uint16(i)
	}
	return t, nil
}

// Len returns the number of grammemes in the table.
func (t *Table) Len() int {
	return len(t.grammemes)
}

// Grammemes returns the table's grammemes in index order.
func (t *Table) Grammemes() []string {
	grammemes := make([]string, len(t.grammemes))
	copy(grammemes, t.grammemes)
	return grammemes
}

// Index returns the index of the given grammeme.
func (t *Table) Index(g string) (uint16, bool) {
	i, ok := t.index[g]
	return i, ok
}

// At returns the grammeme at index i.
func (t *Table) At(i uint16) (string, bool) {
	if int(i) >= len(t.grammemes) {
		return "", false
	}
	return t.grammemes[i], true
}

// Indexes converts the grammemes to table indexes preserving their order.
// Empty grammemes are skipped.
func (t *Table) Indexes(grammemes []string) ([]uint16, error) {
	var indexes []uint16
	for _, g := range grammemes {
		if g == "" {
			continue
		}
		i, ok := t.index[g]
		if !ok {
			return nil, fmt.Errorf("grammeme %q not in table", g)
		}
		indexes = append(indexes, i)
	}
	if len(indexes) > MaxEntryGrammemes {
		return nil, fmt.Errorf("%w: %d grammemes exceeds %d", ErrTableOverflow, len(indexes), MaxEntryGrammemes)
	}
	return indexes, nil
}

// Intern builds the grammeme table for the dictionary and returns it along
// with each entry's grammeme indexes. The index lists are in the dictionary's
// insertion order and each list preserves the order of the entry's
// grammemes.
func Intern(d *dict.Dictionary) (*Table, [][]uint16, error) {
	seen := map[string]struct{}{}
	var distinct []string
	for _, e := range d.All() {
		for _, g := range e.Grammemes {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				distinct = append(distinct, g)
			}
		}
	}

	t, err := NewTable(distinct)
	if err != nil {
		return nil, nil, err
	}

	indexes := make([][]uint16, 0, d.Len())
	for w, e := range d.All() {
		idx, err := t.Indexes(e.Grammemes)
		if err != nil {
			return nil, nil, fmt.Errorf("word %q: %w", w, err)
		}
		indexes = append(indexes, idx)
	}

	return t, indexes, nil
}
