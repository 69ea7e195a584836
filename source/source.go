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

package source

import (
	"fmt"
	"slices"

	"github.com/ianlewis/go-lemmas/dict"
)

// Tag is a morphological tag. A nil Tag means the analyzer produced no tag.
type Tag interface {
	// Grammemes returns the tag's grammemes.
	Grammemes() []string
}

// TagSet is a Tag holding a list of grammemes.
type TagSet []string

// Grammemes implements [Tag.Grammemes].
func (t TagSet) Grammemes() []string {
	return t
}

// Triple is a single analyzer result.
type Triple struct {
	Word  string
	Lemma string
	Tag   Tag
}

// Source is a stream of triples.
type Source interface {
	// Scan advances to the next triple. It returns false at the end of the
	// stream or on error.
	Scan() bool

	// Triple returns the current triple.
	Triple() *Triple

	// Err returns the first error encountered.
	Err() error
}

// SortedGrammemes returns the tag's non-empty grammemes sorted by byte order.
// It returns nil if tag is nil.
func SortedGrammemes(tag Tag) []string {
	if tag == nil {
		return nil
	}
	var grammemes []string
	for _, g := range tag.Grammemes() {
		if g != "" {
			grammemes = append(grammemes, g)
		}
	}
	slices.Sort(grammemes)
	return grammemes
}

// BuildOptions are options for Build.
type BuildOptions struct {
	// ProgressInterval is the number of triples between calls to Progress.
	ProgressInterval int

	// Progress is called periodically with the number of triples read and
	// the number of unique words so far.
	Progress func(read, unique int)
}

// DefaultBuildOptions is the default options for Build.
var DefaultBuildOptions = &BuildOptions{
	ProgressInterval: 100_000,
}

// Build reads all triples from s and returns the resulting dictionary. The
// first triple for each word wins and later triples for the same word are
// ignored. Each entry's grammemes are sorted.
func Build(s Source, opts *BuildOptions) (*dict.Dictionary, error) {
	if opts == nil {
		opts = DefaultBuildOptions
	}

	d := dict.New()
	read := 0
	for s.Scan() {
		t := s.Triple()
		read++
		d.Add(&dict.Entry{
			Word:      t.Word,
			Lemma:     t.Lemma,
			Grammemes: SortedGrammemes(t.Tag),
		})

		if opts.Progress != nil && opts.ProgressInterval > 0 && read%opts.ProgressInterval == 0 {
			opts.Progress(read, d.Len())
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}
	if opts.Progress != nil {
		opts.Progress(read, d.Len())
	}

	return d, nil
}

// sliceSource is a Source over in-memory triples.
type sliceSource struct {
	triples []*Triple
	i       int
}

// FromSlice returns a Source that yields the given triples.
func FromSlice(triples []*Triple) Source {
	return &sliceSource{triples: triples, i: -1}
}

func (s *sliceSource) Scan() bool {
	if s.i+1 >= len(s.triples) {
		s.i = len(s.triples)
		return false
	}
	s.i++
	return true
}

func (s *sliceSource) Triple() *Triple {
	if s.i < 0 || s.i >= len(s.triples) {
		return nil
	}
	return s.triples[s.i]
}

func (*sliceSource) Err() error {
	return nil
}
