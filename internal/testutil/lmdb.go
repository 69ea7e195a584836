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

package testutil

import (
	"encoding/binary"
	"math"
	"testing"
)

// RawEntry is an entry in a hand built lmdb stream.
type RawEntry struct {
	Word    string
	Lemma   string
	Indexes []uint16
}

// RawOptions are options for MakeRaw. They allow building invalid streams.
type RawOptions struct {
	// Magic overrides the magic bytes.
	Magic string

	// Version overrides the version byte. Zero means version 1.
	Version byte

	// EntryCount overrides the entry count when non-nil.
	EntryCount *uint32

	// GrammemeCount overrides the grammeme count when non-nil.
	GrammemeCount *uint16
}

func (o *RawOptions) getMagic() string {
	if o != nil && o.Magic != "" {
		return o.Magic
	}
	return "LMDB"
}

func (o *RawOptions) getVersion() byte {
	if o != nil && o.Version != 0 {
		return o.Version
	}
	return 1
}

// MakeRaw creates an uncompressed lmdb stream field by field.
func MakeRaw(t *testing.T, grammemes []string, entries []RawEntry, opts *RawOptions) []byte {
	t.Helper()

	b := []byte(opts.getMagic())
	b = append(b, opts.getVersion())

	if len(entries) > math.MaxUint32 {
		t.Fatalf("too many entries: %d", len(entries))
	}
	//nolint:gosec // bounds checked above.
	entryCount := uint32(len(entries))
	if opts != nil && opts.EntryCount != nil {
		entryCount = *opts.EntryCount
	}
	b = binary.LittleEndian.AppendUint32(b, entryCount)

	if len(grammemes) > math.MaxUint16 {
		t.Fatalf("too many grammemes: %d", len(grammemes))
	}
	//nolint:gosec // bounds checked above.
	grammemeCount := uint16(len(grammemes))
	if opts != nil && opts.GrammemeCount != nil {
		grammemeCount = *opts.GrammemeCount
	}
	b = binary.LittleEndian.AppendUint16(b, grammemeCount)

	for _, g := range grammemes {
		if len(g) > math.MaxUint8 {
			t.Fatalf("grammeme too long: %d", len(g))
		}
		b = append(b, byte(len(g)))
		b = append(b, g...)
	}

	for _, e := range entries {
		b = appendString16(t, b, e.Word)
		b = appendString16(t, b, e.Lemma)
		if len(e.Indexes) > math.MaxUint8 {
			t.Fatalf("too many indexes: %d", len(e.Indexes))
		}
		b = append(b, byte(len(e.Indexes)))
		for _, i := range e.Indexes {
			b = binary.LittleEndian.AppendUint16(b, i)
		}
	}

	return b
}

func appendString16(t *testing.T, b []byte, s string) []byte {
	t.Helper()

	if len(s) > math.MaxUint16 {
		t.Fatalf("string too long: %d", len(s))
	}
	//nolint:gosec // bounds checked above.
	b = binary.LittleEndian.AppendUint16(b, uint16(len(s)))
	return append(b, s...)
}
