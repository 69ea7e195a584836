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

// Package source implements reading (word, lemma, tag) triples produced by a
// morphological analyzer and building dictionaries from them.
//
// Triples can be read from tab separated text files where each line holds
// three fields:
//  1. The word form.
//  2. The lemma. The lemma may be empty.
//  3. A comma separated list of grammemes. An empty field or a single '-'
//     indicates that the analyzer produced no tag for the word.
//
// Empty lines and lines starting with '#' are ignored.
package source
