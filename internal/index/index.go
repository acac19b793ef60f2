package index

import (
	"iter"
	"slices"
)

// Index is an append-only multimap from name to entries. Keys keep their
// first insertion order; entries under a key keep theirs.
type Index[E any] struct {
	keys    []string
	entries map[string][]E
	n       int
}

func newIndex[E any]() *Index[E] {
	return &Index[E]{entries: make(map[string][]E)}
}

// seed registers key with no entries.
func (ix *Index[E]) seed(key string) {
	if _, ok := ix.entries[key]; ok {
		return
	}
	ix.keys = append(ix.keys, key)
	ix.entries[key] = nil
}

func (ix *Index[E]) add(key string, e E) {
	if _, ok := ix.entries[key]; !ok {
		ix.keys = append(ix.keys, key)
	}
	ix.entries[key] = append(ix.entries[key], e)
	ix.n++
}

// Keys returns the keys in insertion order.
func (ix *Index[E]) Keys() []string {
	return slices.Clone(ix.keys)
}

// SortedKeys returns the keys in lexical order.
func (ix *Index[E]) SortedKeys() []string {
	keys := slices.Clone(ix.keys)
	slices.Sort(keys)
	return keys
}

// Get returns the entries under key. The result must not be modified.
func (ix *Index[E]) Get(key string) []E {
	return ix.entries[key]
}

func (ix *Index[E]) Has(key string) bool {
	_, ok := ix.entries[key]
	return ok
}

// Len is the number of entries across all keys.
func (ix *Index[E]) Len() int {
	return ix.n
}

func (ix *Index[E]) KeyCount() int {
	return len(ix.keys)
}

// Entries yields (key, entry) pairs in key insertion order.
func (ix *Index[E]) Entries() iter.Seq2[string, E] {
	return func(yield func(string, E) bool) {
		for _, k := range ix.keys {
			for _, e := range ix.entries[k] {
				if !yield(k, e) {
					return
				}
			}
		}
	}
}
