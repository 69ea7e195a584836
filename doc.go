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

// Package lemmas implements a library for writing and reading compact lemma
// dictionaries in pure Go.
//
// A lemma dictionary maps word forms to their lemma and grammemes. The
// dictionary is stored as a single compressed file:
//  1. The dictionary is built from (word, lemma, tag) triples produced by a
//     morphological analyzer. See the source package.
//  2. Grammemes are interned into a sorted table so that entries can refer
//     to them by index. See the grammeme package.
//  3. The header, grammeme table, and entries are serialized and compressed.
//     See the lmdb package for the file format.
//
// WriteFile writes a dictionary file atomically and Open reads it back for
// lookups.
package lemmas
