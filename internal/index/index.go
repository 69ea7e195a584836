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

package index

import (
	"cmp"
	"slices"
	"strings"
)

type item[V any] struct {
	key   string
	value V
}

// Index is a generic sorted array index of values by string key. Values with
// equal keys keep the order they were given in.
type Index[V any] struct {
	items []item[V]
}

// New creates an index of the given values using key to compute each value's
// key.
func New[V any](values []V, key func(V) string) *Index[V] {
	items := make([]item[V], 0, len(values))
	for _, v := range values {
		items = append(items, item[V]{
			key:   key(v),
			value: v,
		})
	}
	slices.SortStableFunc(items, func(a, b item[V]) int {
		return cmp.Compare(a.key, b.key)
	})

	return &Index[V]{
		items: items,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.items)
}

// Search returns the values whose key equals query.
func (idx *Index[V]) Search(query string) []V {
	i := idx.lowerBound(query)
	j := i
	for j < len(idx.items) && idx.items[j].key == query {
		j++
	}
	return idx.values(i, j)
}

// Prefix returns the values whose key starts with prefix in key order.
func (idx *Index[V]) Prefix(prefix string) []V {
	i := idx.lowerBound(prefix)
	j := i
	for j < len(idx.items) && strings.HasPrefix(idx.items[j].key, prefix) {
		j++
	}
	return idx.values(i, j)
}

// lowerBound returns the index of the first item with a key >= key.
func (idx *Index[V]) lowerBound(key string) int {
	i, _ := slices.BinarySearchFunc(idx.items, key, func(it item[V], k string) int {
		return cmp.Compare(it.key, k)
	})
	return i
}

func (idx *Index[V]) values(i, j int) []V {
	if i == j {
		return nil
	}
	values := make([]V, 0, j-i)
	for _, it := range idx.items[i:j] {
		values = append(values, it.value)
	}
	return values
}
