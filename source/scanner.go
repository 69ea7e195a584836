// Copyright 2021 Google LLC
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

package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/k3a/html2text"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-lemmas/internal/folding"
)

// ErrMalformedLine indicates that a line could not be parsed as a triple.
var ErrMalformedLine = errors.New("malformed line")

// maxLineSize is the maximum size of a line. It allows for a word and a lemma
// of the maximum encodable size plus grammemes.
const maxLineSize = 1 << 20

// ScannerOptions are options for scanning triples.
type ScannerOptions struct {
	// StripMarkup indicates that fields may contain HTML markup or entities
	// which should be converted to plain text.
	StripMarkup bool

	// Folder returns a [transform.Transformer] that folds each field. The
	// default folds whitespace.
	Folder func() transform.Transformer
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{
	Folder: folding.NewFieldFolder,
}

// Scanner scans tab separated triples from start to end.
type Scanner struct {
	r      io.ReadCloser
	s      *bufio.Scanner
	opts   ScannerOptions
	line   int
	triple *Triple
	err    error
}

// NewScanner returns a new Scanner that reads triples from r. The Scanner
// assumes ownership of the reader and should be closed with the Close method.
func NewScanner(r io.ReadCloser, options *ScannerOptions) *Scanner {
	opts := *DefaultScannerOptions
	if options != nil {
		opts.StripMarkup = options.StripMarkup
		if options.Folder != nil {
			opts.Folder = options.Folder
		}
	}

	s := &Scanner{
		r:    r,
		s:    bufio.NewScanner(bufio.NewReader(r)),
		opts: opts,
	}
	s.s.Buffer(nil, maxLineSize)
	return s
}

// Open opens the triples file at path. Files with a .gz extension are
// decompressed.
func Open(path string, options *ScannerOptions) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening triples file: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) != ".gz" {
		return NewScanner(f, options), nil
	}

	z, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return NewScanner(&gzipReadCloser{Reader: z, f: f}, options), nil
}

// Scan advances the scanner to the next triple. It returns false if the scan
// stops either by reaching the end of the input or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		s.line++
		line := strings.TrimSuffix(s.s.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		t, err := s.parse(line)
		if err != nil {
			s.err = fmt.Errorf("line %d: %w", s.line, err)
			s.triple = nil
			return false
		}
		s.triple = t
		return true
	}
	s.triple = nil
	return false
}

// Triple returns the current triple.
func (s *Scanner) Triple() *Triple {
	return s.triple
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	if err := s.s.Err(); err != nil {
		return fmt.Errorf("line %d: reading triples: %w", s.line+1, err)
	}
	return nil
}

// Close closes the underlying reader.
func (s *Scanner) Close() error {
	if err := s.r.Close(); err != nil {
		return fmt.Errorf("closing triples file: %w", err)
	}
	return nil
}

func (s *Scanner) parse(line string) (*Triple, error) {
	fields := strings.Split(line, "\t")
	if len(fields) > 3 {
		return nil, fmt.Errorf("%w: expected at most 3 fields, got %d", ErrMalformedLine, len(fields))
	}

	var t Triple
	var err error
	t.Word, err = s.field(fields[0])
	if err != nil {
		return nil, err
	}
	if t.Word == "" {
		return nil, fmt.Errorf("%w: empty word", ErrMalformedLine)
	}

	if len(fields) > 1 {
		t.Lemma, err = s.field(fields[1])
		if err != nil {
			return nil, err
		}
	}

	if len(fields) > 2 {
		tag := strings.TrimSpace(fields[2])
		if tag != "" && tag != "-" {
			var set TagSet
			for _, g := range strings.Split(tag, ",") {
				g, err = s.field(g)
				if err != nil {
					return nil, err
				}
				set = append(set, g)
			}
			t.Tag = set
		}
	}

	return &t, nil
}

// field converts a raw field to its final form.
func (s *Scanner) field(f string) (string, error) {
	if s.opts.StripMarkup {
		f = html2text.HTML2Text(f)
	}
	//nolint:wrapcheck // error is already wrapped by folding.
	return folding.String(s.opts.Folder(), f)
}

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (r *gzipReadCloser) Close() error {
	return errors.Join(r.Reader.Close(), r.f.Close())
}
