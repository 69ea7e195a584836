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

package lemmas

import (
	"fmt"
	"os"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-lemmas/dict"
	"github.com/ianlewis/go-lemmas/internal/folding"
	"github.com/ianlewis/go-lemmas/internal/index"
	"github.com/ianlewis/go-lemmas/lmdb"
)

// Options are options for reading a dictionary.
type Options struct {
	// Folder returns a [transform.Transformer] that folds words for lookup
	// (e.g. case folding, whitespace folding, etc.).
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for a Lemmas. Lookups are case
// insensitive and ignore surrounding whitespace.
var DefaultOptions = &Options{
	Folder: folding.NewKeyFolder,
}

type foldedEntry struct {
	folded string
	entry  *dict.Entry
}

// Lemmas is a lemma dictionary loaded for lookups.
type Lemmas struct {
	dict      *dict.Dictionary
	grammemes []string

	// index is sorted by the folded word value.
	index *index.Index[*foldedEntry]

	// folder performs folding on lookup keys.
	folder func() transform.Transformer
}

// Open reads the dictionary file at path.
func Open(path string, options *Options) (*Lemmas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	res, err := lmdb.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	return New(res, options)
}

// New returns a new Lemmas for the decoded dictionary.
func New(res *lmdb.Result, options *Options) (*Lemmas, error) {
	if options == nil {
		options = DefaultOptions
	}

	l := &Lemmas{
		dict:      res.Dictionary,
		grammemes: res.Grammemes,
		folder:    DefaultOptions.Folder,
	}
	if options.Folder != nil {
		l.folder = options.Folder
	}

	entries := make([]*foldedEntry, 0, res.Dictionary.Len())
	for w, e := range res.Dictionary.All() {
		folded, err := folding.String(l.folder(), w)
		if err != nil {
			return nil, fmt.Errorf("indexing word: %w", err)
		}
		entries = append(entries, &foldedEntry{
			folded: folded,
			entry:  e,
		})
	}
	l.index = index.New(entries, func(e *foldedEntry) string {
		return e.folded
	})

	return l, nil
}

// Lookup returns the entries whose folded word matches the folded query.
// Entries are returned in dictionary order.
func (l *Lemmas) Lookup(word string) ([]*dict.Entry, error) {
	folded, err := folding.String(l.folder(), word)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	return entries(l.index.Search(folded)), nil
}

// Prefix returns the entries whose folded word starts with the folded prefix.
func (l *Lemmas) Prefix(prefix string) ([]*dict.Entry, error) {
	folded, err := folding.String(l.folder(), prefix)
	if err != nil {
		return nil, fmt.Errorf("prefix lookup: %w", err)
	}
	return entries(l.index.Prefix(folded)), nil
}

// Dictionary returns the underlying dictionary.
func (l *Lemmas) Dictionary() *dict.Dictionary {
	return l.dict
}

// Grammemes returns the dictionary's grammeme table.
func (l *Lemmas) Grammemes() []string {
	grammemes := make([]string, len(l.grammemes))
	copy(grammemes, l.grammemes)
	return grammemes
}

// Len returns the number of entries in the dictionary.
func (l *Lemmas) Len() int {
	return l.dict.Len()
}

func entries(folded []*foldedEntry) []*dict.Entry {
	var result []*dict.Entry
	for _, f := range folded {
		result = append(result, f.entry)
	}
	return result
}
