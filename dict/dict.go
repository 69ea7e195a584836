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

// Package dict implements the in-memory lemma dictionary.
//
// A Dictionary maps word forms to entries holding the word's lemma and its
// grammemes. Words are unique keys and the dictionary remembers the order in
// which words were added so that serialized output is deterministic.
package dict

import (
	"iter"
	"strings"
)

// Entry is the lemma and morphology metadata of a single word form.
type Entry struct {
	// Word is the word form. It is the unique key within a Dictionary.
	Word string

	// Lemma is the base form of the word. It may be empty when the word is
	// its own lemma or the lemma is unknown.
	Lemma string

	// Grammemes are the morphological tags of the word (e.g. part of speech,
	// case, number). Their order is preserved as given.
	Grammemes []string
}

// String returns a string representation of the Entry.
func (e *Entry) String() string {
	str := e.Word
	if e.Lemma != "" {
		str += " (" + e.Lemma + ")"
	}
	if len(e.Grammemes) > 0 {
		str += " " + strings.Join(e.Grammemes, ",")
	}
	return str
}

// Dictionary is an insertion ordered mapping of words to entries.
type Dictionary struct {
	words   []string
	entries map[string]*Entry
}

// New returns a new empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		entries: map[string]*Entry{},
	}
}

// Add adds the entry to the dictionary. If an entry for the same word already
// exists the first entry is kept, e is ignored, and Add returns false.
func (d *Dictionary) Add(e *Entry) bool {
	if _, ok := d.entries[e.Word]; ok {
		return false
	}
	d.words = append(d.words, e.Word)
	d.entries[e.Word] = e
	return true
}

// Get returns the entry for the given word.
func (d *Dictionary) Get(word string) (*Entry, bool) {
	e, ok := d.entries[word]
	return e, ok
}

// Len returns the number of entries in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words returns the dictionary's words in insertion order.
func (d *Dictionary) Words() []string {
	words := make([]string, len(d.words))
	copy(words, d.words)
	return words
}

// Entries returns the dictionary's entries in insertion order.
func (d *Dictionary) Entries() []*Entry {
	entries := make([]*Entry, 0, len(d.words))
	for _, w := range d.words {
		entries = append(entries, d.entries[w])
	}
	return entries
}

// All iterates over the dictionary's words and entries in insertion order.
func (d *Dictionary) All() iter.Seq2[string, *Entry] {
	return func(yield func(string, *Entry) bool) {
		for _, w := range d.words {
			if !yield(w, d.entries[w]) {
				return
			}
		}
	}
}
