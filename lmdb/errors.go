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
	"errors"
	"fmt"

	"github.com/ianlewis/go-lemmas/grammeme"
)

// ErrFormat is the parent error for all format errors.
var ErrFormat = errors.New("lmdb")

var (
	// ErrFieldTooLong indicates that a word or lemma is too long.
	ErrFieldTooLong = fmt.Errorf("%w: field too long", ErrFormat)

	// ErrGrammemeTooLong indicates that a grammeme is too long.
	ErrGrammemeTooLong = fmt.Errorf("%w: grammeme too long", ErrFormat)

	// ErrTableOverflow indicates that the grammeme table or an entry's
	// grammeme list is too large. It also matches
	// [grammeme.ErrTableOverflow].
	ErrTableOverflow = fmt.Errorf("%w: %w", ErrFormat, grammeme.ErrTableOverflow)

	// ErrTooManyEntries indicates that the dictionary has more entries than
	// fit in the entry count.
	ErrTooManyEntries = fmt.Errorf("%w: too many entries", ErrFormat)

	// ErrBadMagic indicates that the stream does not start with Magic.
	ErrBadMagic = fmt.Errorf("%w: bad magic", ErrFormat)

	// ErrUnsupportedVersion indicates an unknown format version.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrFormat)

	// ErrIndexOutOfRange indicates that an entry references a grammeme
	// outside of the grammeme table.
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrFormat)

	// ErrTruncated indicates that the stream ended before a declared field.
	ErrTruncated = fmt.Errorf("%w: truncated stream", ErrFormat)

	// ErrCorrupt indicates that the compressed container is damaged.
	ErrCorrupt = fmt.Errorf("%w: corrupt stream", ErrFormat)

	// ErrTrailingData indicates that data follows the last entry.
	ErrTrailingData = fmt.Errorf("%w: trailing data", ErrFormat)

	// ErrDuplicateWord indicates that the stream contains the same word
	// twice.
	ErrDuplicateWord = fmt.Errorf("%w: duplicate word", ErrFormat)
)

// FormatError is an error encoding or decoding the dictionary format.
type FormatError struct {
	// Kind is one of the Err* values in this package.
	Kind error

	// Field is the name of the offending field.
	Field string

	// Value is the offending word or grammeme, if known.
	Value string

	// Offset is the offset into the uncompressed stream, or -1 when the error
	// did not occur at a known position.
	Offset int

	// Err is an optional underlying error.
	Err error
}

func (e *FormatError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the error kind and the underlying error.
func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// IOError is an error reading from or writing to the underlying stream.
type IOError struct {
	// Op is the operation that failed, e.g. "read" or "write".
	Op string

	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func formatErr(kind error, field, value string, offset int) *FormatError {
	return &FormatError{
		Kind:   kind,
		Field:  field,
		Value:  value,
		Offset: offset,
	}
}
