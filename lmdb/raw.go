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

package lmdb

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/ianlewis/go-lemmas/dict"
	"github.com/ianlewis/go-lemmas/grammeme"
)

const (
	// Magic is the magic data at the start of the uncompressed stream.
	Magic = "LMDB"

	// Version is the format version written by this package.
	Version = 1
)

const (
	maxFieldLen    = math.MaxUint16
	maxGrammemeLen = math.MaxUint8

	// minEntrySize is the size of an entry with an empty word, empty lemma,
	// and no grammemes.
	minEntrySize = 2 + 2 + 1

	// maxValueLen is the maximum length of values included in errors.
	maxValueLen = 64
)

// Result is a decoded dictionary.
type Result struct {
	// Dictionary is the decoded dictionary in file order.
	Dictionary *dict.Dictionary

	// Grammemes is the grammeme table in index order.
	Grammemes []string
}

// AppendRaw appends the uncompressed encoding of d to b and returns the
// extended buffer. Nothing is appended if an error is returned.
func AppendRaw(b []byte, d *dict.Dictionary) ([]byte, error) {
	if uint64(d.Len()) > math.MaxUint32 {
		return b, &FormatError{
			Kind:   ErrTooManyEntries,
			Field:  "entry_count",
			Value:  strconv.Itoa(d.Len()),
			Offset: -1,
		}
	}

	t, indexes, err := grammeme.Intern(d)
	if err != nil {
		if errors.Is(err, grammeme.ErrTableOverflow) {
			return b, &FormatError{
				Kind:   ErrTableOverflow,
				Offset: -1,
				Err:    err,
			}
		}
		return b, err
	}

	start := len(b)
	out := append(b, Magic...)
	out = append(out, Version)
	//nolint:gosec // entry count is bounds checked above.
	out = binary.LittleEndian.AppendUint32(out, uint32(d.Len()))
	//nolint:gosec // table size is bounds checked by the interner.
	out = binary.LittleEndian.AppendUint16(out, uint16(t.Len()))

	for _, g := range t.Grammemes() {
		if len(g) > maxGrammemeLen {
			return b, formatErr(ErrGrammemeTooLong, "grammeme", abbrev(g), len(out)-start)
		}
		out = append(out, byte(len(g)))
		out = append(out, g...)
	}

	i := 0
	for w, e := range d.All() {
		if len(w) > maxFieldLen {
			return b, formatErr(ErrFieldTooLong, "word", abbrev(w), len(out)-start)
		}
		if len(e.Lemma) > maxFieldLen {
			return b, formatErr(ErrFieldTooLong, "lemma", abbrev(w), len(out)-start)
		}

		out = binary.LittleEndian.AppendUint16(out, uint16(len(w)))
		out = append(out, w...)
		out = binary.LittleEndian.AppendUint16(out, uint16(len(e.Lemma)))
		out = append(out, e.Lemma...)

		idx := indexes[i]
		out = append(out, byte(len(idx)))
		for _, x := range idx {
			out = binary.LittleEndian.AppendUint16(out, x)
		}
		i++
	}

	return out, nil
}

// DecodeRaw decodes an uncompressed stream. No partial result is returned on
// error.
func DecodeRaw(b []byte) (*Result, error) {
	dec := &decoder{b: b}

	magic, err := dec.next(len(Magic), "magic")
	if err != nil {
		return nil, err
	}
	if string(magic) != Magic {
		return nil, formatErr(ErrBadMagic, "magic", string(magic), 0)
	}

	version, err := dec.uint8("version")
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, formatErr(ErrUnsupportedVersion, "version", strconv.Itoa(int(version)), dec.off-1)
	}

	entryCount, err := dec.uint32("entry_count")
	if err != nil {
		return nil, err
	}
	grammemeCount, err := dec.uint16("grammeme_count")
	if err != nil {
		return nil, err
	}

	grammemes := make([]string, 0, grammemeCount)
	for range grammemeCount {
		n, err := dec.uint8("grammeme length")
		if err != nil {
			return nil, err
		}
		g, err := dec.next(int(n), "grammeme")
		if err != nil {
			return nil, err
		}
		grammemes = append(grammemes, string(g))
	}

	// Each entry is at least minEntrySize bytes so a count larger than the
	// remaining data allows is truncated.
	if remaining := uint64(len(b) - dec.off); uint64(entryCount)*minEntrySize > remaining {
		return nil, formatErr(ErrTruncated, "entries", strconv.FormatUint(uint64(entryCount), 10), dec.off)
	}

	d := dict.New()
	for range entryCount {
		entryOff := dec.off

		word, err := dec.string16("word")
		if err != nil {
			return nil, err
		}
		lemma, err := dec.string16("lemma")
		if err != nil {
			return nil, withValue(err, word)
		}
		n, err := dec.uint8("grammeme count")
		if err != nil {
			return nil, withValue(err, word)
		}

		var gs []string
		if n > 0 {
			gs = make([]string, 0, n)
		}
		for range n {
			idxOff := dec.off
			idx, err := dec.uint16("grammeme index")
			if err != nil {
				return nil, withValue(err, word)
			}
			if int(idx) >= len(grammemes) {
				return nil, formatErr(ErrIndexOutOfRange, "grammeme index "+strconv.Itoa(int(idx)), abbrev(word), idxOff)
			}
			gs = append(gs, grammemes[idx])
		}

		if !d.Add(&dict.Entry{
			Word:      word,
			Lemma:     lemma,
			Grammemes: gs,
		}) {
			return nil, formatErr(ErrDuplicateWord, "word", abbrev(word), entryOff)
		}
	}

	if dec.off != len(b) {
		return nil, formatErr(ErrTrailingData, "entries", "", dec.off)
	}

	return &Result{
		Dictionary: d,
		Grammemes:  grammemes,
	}, nil
}

// decoder reads fixed width fields from an uncompressed stream.
type decoder struct {
	b   []byte
	off int
}

func (d *decoder) next(n int, field string) ([]byte, error) {
	if len(d.b)-d.off < n {
		return nil, formatErr(ErrTruncated, field, "", d.off)
	}
	p := d.b[d.off : d.off+n]
	d.off += n
	return p, nil
}

func (d *decoder) uint8(field string) (uint8, error) {
	p, err := d.next(1, field)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (d *decoder) uint16(field string) (uint16, error) {
	p, err := d.next(2, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

func (d *decoder) uint32(field string) (uint32, error) {
	p, err := d.next(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

// string16 reads a string prefixed by its 16-bit length.
func (d *decoder) string16(field string) (string, error) {
	n, err := d.uint16(field + " length")
	if err != nil {
		return "", err
	}
	p, err := d.next(int(n), field)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// withValue adds the word being decoded to a format error.
func withValue(err error, value string) error {
	var fErr *FormatError
	if errors.As(err, &fErr) && fErr.Value == "" {
		fErr.Value = abbrev(value)
	}
	return err
}

// abbrev shortens long values for use in error messages.
func abbrev(s string) string {
	if len(s) <= maxValueLen {
		return s
	}
	i := maxValueLen
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i] + "..."
}
