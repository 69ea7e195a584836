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

// Package lmdb implements encoding and decoding of compressed lemma
// dictionary files.
//
// An lmdb file is a gzip compressed stream with the following layout. All
// integers are little-endian.
//
//  1. The magic bytes "LMDB".
//  2. The format version as a single byte. The current version is 1.
//  3. The number of entries as a 32-bit integer.
//  4. The number of grammemes in the grammeme table as a 16-bit integer.
//  5. The grammeme table. Each grammeme is stored as an 8-bit byte length
//     followed by the grammeme's utf-8 bytes.
//  6. The entries. Each entry is stored as:
//     a. the word's 16-bit byte length and utf-8 bytes.
//     b. the lemma's 16-bit byte length and utf-8 bytes. The lemma may be
//     empty.
//     c. an 8-bit count of grammemes followed by that many 16-bit indexes
//     into the grammeme table.
package lmdb
