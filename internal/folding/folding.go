// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package folding implements text folding for source fields and lookup keys.
package folding

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// WhitespaceFolder trims leading and trailing whitespace and collapses each
// internal whitespace span into a single ASCII space. Invalid utf-8 is
// replaced with [utf8.RuneError].
type WhitespaceFolder struct {
	// started is true once a non-space rune has been emitted.
	started bool

	// pending is true when whitespace was seen after the last emitted rune.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (f *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(r) {
			f.pending = f.started
			nSrc += size
			continue
		}

		// NOTE: r may be utf8.RuneError with a size of 1 so the output
		// length is calculated from the rune.
		n := utf8.RuneLen(r)
		if f.pending {
			n++
		}
		if nDst+n > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if f.pending {
			dst[nDst] = ' '
			nDst++
			f.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		f.started = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *WhitespaceFolder) Reset() {
	*f = WhitespaceFolder{}
}

// NewKeyFolder returns a transformer that folds dictionary lookup keys. Keys
// are whitespace folded and lower cased.
func NewKeyFolder() transform.Transformer {
	return transform.Chain(&WhitespaceFolder{}, cases.Lower(language.Und))
}

// NewFieldFolder returns a transformer that folds source fields.
func NewFieldFolder() transform.Transformer {
	return &WhitespaceFolder{}
}

// String applies the transformer to s.
func String(t transform.Transformer, s string) (string, error) {
	folded, _, err := transform.String(t, s)
	if err != nil {
		return "", fmt.Errorf("folding %q: %w", s, err)
	}
	return folded, nil
}
