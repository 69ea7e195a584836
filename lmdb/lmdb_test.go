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

package lmdb_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-lemmas/dict"
	"github.com/ianlewis/go-lemmas/grammeme"
	"github.com/ianlewis/go-lemmas/internal/testutil"
	"github.com/ianlewis/go-lemmas/lmdb"
)

func newDict(entries ...*dict.Entry) *dict.Dictionary {
	d := dict.New()
	for _, e := range entries {
		d.Add(e)
	}
	return d
}

func runDict() *dict.Dictionary {
	return newDict(
		&dict.Entry{Word: "running", Lemma: "run", Grammemes: []string{"VERB", "GER"}},
		&dict.Entry{Word: "run", Lemma: "run", Grammemes: []string{"VERB", "INF"}},
	)
}

// TestAppendRaw tests the byte layout written by AppendRaw.
func TestAppendRaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dict *dict.Dictionary

		grammemes []string
		entries   []testutil.RawEntry
	}{
		{
			name:      "empty",
			dict:      dict.New(),
			grammemes: nil,
			entries:   nil,
		},
		{
			name:      "run",
			dict:      runDict(),
			grammemes: []string{"GER", "INF", "VERB"},
			entries: []testutil.RawEntry{
				{Word: "running", Lemma: "run", Indexes: []uint16{2, 0}},
				{Word: "run", Lemma: "run", Indexes: []uint16{2, 1}},
			},
		},
		{
			name: "empty lemma and grammeme",
			dict: newDict(
				&dict.Entry{Word: "и", Grammemes: []string{""}},
				&dict.Entry{Word: "кошки", Lemma: "кошка", Grammemes: []string{"NOUN", "plur", "nomn"}},
			),
			grammemes: []string{"NOUN", "nomn", "plur"},
			entries: []testutil.RawEntry{
				{Word: "и"},
				{Word: "кошки", Lemma: "кошка", Indexes: []uint16{0, 2, 1}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := lmdb.AppendRaw(nil, test.dict)
			if err != nil {
				t.Fatalf("AppendRaw: %v", err)
			}

			want := testutil.MakeRaw(t, test.grammemes, test.entries, nil)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("AppendRaw (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestAppendRaw_prefix tests that AppendRaw appends to the given buffer.
func TestAppendRaw_prefix(t *testing.T) {
	t.Parallel()

	prefix := []byte("prefix")
	got, err := lmdb.AppendRaw(prefix, runDict())
	if err != nil {
		t.Fatalf("AppendRaw: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("prefixLMDB\x01")) {
		t.Fatalf("AppendRaw: unexpected prefix %q", got[:11])
	}
}

// TestRoundTrip tests that Unmarshal reverses Marshal.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dict *dict.Dictionary

		grammemes []string
	}{
		{
			name:      "empty",
			dict:      dict.New(),
			grammemes: []string{},
		},
		{
			name:      "run",
			dict:      runDict(),
			grammemes: []string{"GER", "INF", "VERB"},
		},
		{
			name: "unicode",
			dict: newDict(
				&dict.Entry{Word: "ёжики", Lemma: "ёжик", Grammemes: []string{"NOUN", "anim", "masc", "nomn", "plur"}},
				&dict.Entry{Word: "食べた", Lemma: "食べる", Grammemes: []string{"動詞", "過去"}},
				&dict.Entry{Word: "and"},
			),
			grammemes: []string{"NOUN", "anim", "masc", "nomn", "plur", "動詞", "過去"},
		},
		{
			name: "grammeme order preserved",
			dict: newDict(
				&dict.Entry{Word: "x", Grammemes: []string{"c", "a", "b"}},
				&dict.Entry{Word: "y", Grammemes: []string{"b", "c", "a"}},
			),
			grammemes: []string{"a", "b", "c"},
		},
		{
			name: "maximum sizes",
			dict: newDict(
				&dict.Entry{
					Word:      strings.Repeat("w", 65535),
					Lemma:     strings.Repeat("l", 65535),
					Grammemes: []string{strings.Repeat("g", 255)},
				},
			),
			grammemes: []string{strings.Repeat("g", 255)},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b, err := lmdb.Marshal(test.dict, nil)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}

			res, err := lmdb.Unmarshal(b)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}

			if diff := cmp.Diff(test.grammemes, res.Grammemes); diff != "" {
				t.Errorf("Grammemes (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.dict.Entries(), res.Dictionary.Entries(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Entries (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestRoundTrip_emptyGrammeme tests that empty grammemes are dropped.
func TestRoundTrip_emptyGrammeme(t *testing.T) {
	t.Parallel()

	b, err := lmdb.Marshal(newDict(&dict.Entry{Word: "foo", Lemma: "foo", Grammemes: []string{""}}), nil)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	res, err := lmdb.Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	e, ok := res.Dictionary.Get("foo")
	if !ok {
		t.Fatal("Get: foo not found")
	}
	if len(e.Grammemes) != 0 {
		t.Fatalf("Grammemes: want none, got %q", e.Grammemes)
	}
	if len(res.Grammemes) != 0 {
		t.Fatalf("grammeme table: want empty, got %q", res.Grammemes)
	}
}

// TestMarshal_deterministic tests that encoding is deterministic.
func TestMarshal_deterministic(t *testing.T) {
	t.Parallel()

	d := dict.New()
	for i := range 1000 {
		d.Add(&dict.Entry{
			Word:      fmt.Sprintf("word%d", i),
			Lemma:     fmt.Sprintf("lemma%d", i/10),
			Grammemes: []string{fmt.Sprintf("G%d", i%7), fmt.Sprintf("H%d", i%3)},
		})
	}

	for _, level := range []int{1, 6, 9} {
		opts := &lmdb.Options{Level: level}
		b1, err := lmdb.Marshal(d, opts)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		b2, err := lmdb.Marshal(d, opts)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(b1, b2) {
			t.Fatalf("Marshal level %d: output differs", level)
		}
	}
}

// TestMarshal_errors tests encoding size limits.
func TestMarshal_errors(t *testing.T) {
	t.Parallel()

	var manyGrammemes []string
	for i := range 256 {
		manyGrammemes = append(manyGrammemes, fmt.Sprintf("g%d", i))
	}

	hugeTable := dict.New()
	var grammemes []string
	for i := range 65536 {
		grammemes = append(grammemes, fmt.Sprintf("g%05d", i))
		if len(grammemes) == 250 {
			hugeTable.Add(&dict.Entry{Word: fmt.Sprintf("w%d", i), Grammemes: grammemes})
			grammemes = nil
		}
	}
	hugeTable.Add(&dict.Entry{Word: "last", Grammemes: grammemes})

	tests := []struct {
		name string
		dict *dict.Dictionary

		err   error
		field string
	}{
		{
			name:  "word too long",
			dict:  newDict(&dict.Entry{Word: strings.Repeat("a", 65536)}),
			err:   lmdb.ErrFieldTooLong,
			field: "word",
		},
		{
			name:  "multibyte word too long",
			dict:  newDict(&dict.Entry{Word: strings.Repeat("я", 32768)}),
			err:   lmdb.ErrFieldTooLong,
			field: "word",
		},
		{
			name:  "lemma too long",
			dict:  newDict(&dict.Entry{Word: "a", Lemma: strings.Repeat("a", 65536)}),
			err:   lmdb.ErrFieldTooLong,
			field: "lemma",
		},
		{
			name:  "grammeme too long",
			dict:  newDict(&dict.Entry{Word: "a", Grammemes: []string{strings.Repeat("g", 256)}}),
			err:   lmdb.ErrGrammemeTooLong,
			field: "grammeme",
		},
		{
			name: "too many entry grammemes",
			dict: newDict(&dict.Entry{Word: "a", Grammemes: manyGrammemes}),
			err:  lmdb.ErrTableOverflow,
		},
		{
			name: "grammeme table too large",
			dict: hugeTable,
			err:  lmdb.ErrTableOverflow,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := lmdb.Encode(&buf, test.dict, nil)
			if !errors.Is(err, test.err) {
				t.Fatalf("Encode: want %v, got %v", test.err, err)
			}
			if !errors.Is(err, lmdb.ErrFormat) {
				t.Fatalf("Encode: want %v, got %v", lmdb.ErrFormat, err)
			}

			var fErr *lmdb.FormatError
			if !errors.As(err, &fErr) {
				t.Fatalf("Encode: want *FormatError, got %T", err)
			}
			if want, got := test.field, fErr.Field; want != got {
				t.Errorf("Field; want: %q, got: %q", want, got)
			}
			if buf.Len() != 0 {
				t.Errorf("Encode: wrote %d bytes on failure", buf.Len())
			}
		})
	}
}

// TestMarshal_tableOverflowIsGrammemeError tests that table overflows match
// the interner's error.
func TestMarshal_tableOverflowIsGrammemeError(t *testing.T) {
	t.Parallel()

	var gs []string
	for i := range 256 {
		gs = append(gs, fmt.Sprintf("g%d", i))
	}
	_, err := lmdb.Marshal(newDict(&dict.Entry{Word: "a", Grammemes: gs}), nil)
	if !errors.Is(err, grammeme.ErrTableOverflow) {
		t.Fatalf("Marshal: want %v, got %v", grammeme.ErrTableOverflow, err)
	}
}

// TestMarshal_invalidLevel tests invalid compression levels.
func TestMarshal_invalidLevel(t *testing.T) {
	t.Parallel()

	_, err := lmdb.Marshal(runDict(), &lmdb.Options{Level: 42})
	if !errors.Is(err, lmdb.ErrInvalidLevel) {
		t.Fatalf("Marshal: want %v, got %v", lmdb.ErrInvalidLevel, err)
	}
}

func uint32p(i uint32) *uint32 { return &i }

func uint16p(i uint16) *uint16 { return &i }

// TestDecodeRaw_errors tests decoding malformed streams.
func TestDecodeRaw_errors(t *testing.T) {
	t.Parallel()

	entries := []testutil.RawEntry{
		{Word: "running", Lemma: "run", Indexes: []uint16{2, 0}},
	}
	grammemes := []string{"GER", "INF", "VERB"}

	tests := []struct {
		name string
		raw  func(t *testing.T) []byte

		err error
	}{
		{
			name: "bad magic",
			raw: func(t *testing.T) []byte {
				t.Helper()
				return testutil.MakeRaw(t, grammemes, entries, &testutil.RawOptions{Magic: "LMDX"})
			},
			err: lmdb.ErrBadMagic,
		},
		{
			name: "unsupported version",
			raw: func(t *testing.T) []byte {
				t.Helper()
				return testutil.MakeRaw(t, grammemes, entries, &testutil.RawOptions{Version: 2})
			},
			err: lmdb.ErrUnsupportedVersion,
		},
		{
			name: "index out of range",
			raw: func(t *testing.T) []byte {
				t.Helper()
				return testutil.MakeRaw(t, grammemes, []testutil.RawEntry{
					{Word: "running", Lemma: "run", Indexes: []uint16{3}},
				}, nil)
			},
			err: lmdb.ErrIndexOutOfRange,
		},
		{
			name: "entry count too large",
			raw: func(t *testing.T) []byte {
				t.Helper()
				return testutil.MakeRaw(t, grammemes, entries, &testutil.RawOptions{EntryCount: uint32p(2)})
			},
			err: lmdb.ErrTruncated,
		},
		{
			name: "huge entry count",
			raw: func(t *testing.T) []byte {
				t.Helper()
				return testutil.MakeRaw(t, grammemes, entries, &testutil.RawOptions{EntryCount: uint32p(0xFFFFFFFF)})
			},
			err: lmdb.ErrTruncated,
		},
		{
			name: "grammeme count too large",
			raw: func(t *testing.T) []byte {
				t.Helper()
				return testutil.MakeRaw(t, grammemes, nil, &testutil.RawOptions{GrammemeCount: uint16p(4)})
			},
			err: lmdb.ErrTruncated,
		},
		{
			name: "trailing data",
			raw: func(t *testing.T) []byte {
				t.Helper()
				return append(testutil.MakeRaw(t, grammemes, entries, nil), 0)
			},
			err: lmdb.ErrTrailingData,
		},
		{
			name: "duplicate word",
			raw: func(t *testing.T) []byte {
				t.Helper()
				return testutil.MakeRaw(t, grammemes, append(entries, entries...), nil)
			},
			err: lmdb.ErrDuplicateWord,
		},
		{
			name: "empty",
			raw: func(_ *testing.T) []byte {
				return nil
			},
			err: lmdb.ErrTruncated,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			res, err := lmdb.DecodeRaw(test.raw(t))
			if !errors.Is(err, test.err) {
				t.Fatalf("DecodeRaw: want %v, got %v", test.err, err)
			}
			if res != nil {
				t.Fatalf("DecodeRaw: unexpected result %v", res)
			}
		})
	}
}

// TestDecodeRaw_truncated tests that every strict prefix of a valid stream is
// rejected as truncated.
func TestDecodeRaw_truncated(t *testing.T) {
	t.Parallel()

	raw, err := lmdb.AppendRaw(nil, runDict())
	if err != nil {
		t.Fatalf("AppendRaw: %v", err)
	}

	for i := range raw {
		res, err := lmdb.DecodeRaw(raw[:i])
		if !errors.Is(err, lmdb.ErrTruncated) {
			t.Fatalf("DecodeRaw(raw[:%d]): want %v, got %v", i, lmdb.ErrTruncated, err)
		}
		if res != nil {
			t.Fatalf("DecodeRaw(raw[:%d]): unexpected result", i)
		}
	}
}

// TestDecode_errors tests decoding malformed compressed streams.
func TestDecode_errors(t *testing.T) {
	t.Parallel()

	valid, err := lmdb.Marshal(runDict(), nil)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	tests := []struct {
		name string
		data []byte

		err error
	}{
		{
			name: "empty",
			data: nil,
			err:  lmdb.ErrTruncated,
		},
		{
			name: "not compressed",
			data: testutil.MakeRaw(t, nil, nil, nil),
			err:  lmdb.ErrCorrupt,
		},
		{
			name: "truncated",
			data: valid[:len(valid)/2],
			err:  lmdb.ErrFormat,
		},
		{
			name: "truncated trailer",
			data: valid[:len(valid)-4],
			err:  lmdb.ErrFormat,
		},
		{
			name: "bad magic",
			data: testutil.Gzip(t, testutil.MakeRaw(t, nil, nil, &testutil.RawOptions{Magic: "GZIP"})),
			err:  lmdb.ErrBadMagic,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			res, err := lmdb.Unmarshal(test.data)
			if !errors.Is(err, test.err) {
				t.Fatalf("Unmarshal: want %v, got %v", test.err, err)
			}
			var fErr *lmdb.FormatError
			if !errors.As(err, &fErr) {
				t.Fatalf("Unmarshal: want *FormatError, got %T", err)
			}
			if res != nil {
				t.Fatalf("Unmarshal: unexpected result %v", res)
			}
		})
	}
}

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}

type errReader struct{}

func (errReader) Read(_ []byte) (int, error) {
	return 0, errors.New("permission denied")
}

// TestIOError tests that reader and writer failures are IOErrors.
func TestIOError(t *testing.T) {
	t.Parallel()

	var ioErr *lmdb.IOError

	err := lmdb.Encode(errWriter{}, runDict(), nil)
	if !errors.As(err, &ioErr) {
		t.Fatalf("Encode: want *IOError, got %v", err)
	}
	if errors.Is(err, lmdb.ErrFormat) {
		t.Fatalf("Encode: unexpected format error %v", err)
	}

	_, err = lmdb.Decode(errReader{})
	if !errors.As(err, &ioErr) {
		t.Fatalf("Decode: want *IOError, got %v", err)
	}
}

// TestDecode_dictzip tests decoding files written with dictzip.
func TestDecode_dictzip(t *testing.T) {
	t.Parallel()

	raw, err := lmdb.AppendRaw(nil, runDict())
	if err != nil {
		t.Fatalf("AppendRaw: %v", err)
	}
	path := testutil.MakeTempFile(t, raw, &testutil.MakeFileOptions{DictZip: true})

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	res, err := lmdb.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(runDict().Entries(), res.Dictionary.Entries()); diff != "" {
		t.Fatalf("Entries (-want, +got):\n%s", diff)
	}
}

// TestFormatError_Error tests FormatError messages.
func TestFormatError_Error(t *testing.T) {
	t.Parallel()

	_, err := lmdb.Marshal(newDict(&dict.Entry{Word: strings.Repeat("x", 70000)}), nil)
	if err == nil {
		t.Fatal("Marshal: expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "lmdb: field too long: word \"xxx") {
		t.Errorf("Error: unexpected message %q", msg)
	}
	if len(msg) > 200 {
		t.Errorf("Error: message too long (%d bytes)", len(msg))
	}
}
