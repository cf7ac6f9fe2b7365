// Package sortedview provides the sorted containers the ordered index engine materialises for its
// head, tail and range views.
package sortedview

import (
	"cmp"
	"iter"

	"github.com/gostonefire/mapindex/engine"
	"github.com/zhangyunhao116/skipmap"
)

// View - A sorted snapshot of part of an ordered index. It does not follow later changes to the index.
type View[K cmp.Ordered, V any] struct {
	entries *skipmap.FuncMap[K, V]
}

// New - Returns a pointer to a new empty View
func New[K cmp.Ordered, V any]() *View[K, V] {
	return &View[K, V]{
		entries: skipmap.NewFunc[K, V](func(a, b K) bool {
			return cmp.Less(a, b)
		}),
	}
}

// Put - Adds (or replaces) the entry for key
func (S *View[K, V]) Put(key K, value V) {
	S.entries.Store(key, value)
}

// Get - Returns the value stored for key and whether it was found
func (S *View[K, V]) Get(key K) (value V, found bool) {
	return S.entries.Load(key)
}

// Contains - Returns true if key is part of the view
func (S *View[K, V]) Contains(key K) bool {
	_, found := S.entries.Load(key)
	return found
}

// Size - Returns the number of entries in the view
func (S *View[K, V]) Size() int {
	return S.entries.Len()
}

// Entries - Returns the entries in ascending key order
func (S *View[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		S.entries.Range(func(key K, value V) bool {
			return yield(key, value)
		})
	}
}

// Keys - Returns the keys in ascending order
func (S *View[K, V]) Keys() (keys []K) {
	keys = make([]K, 0, S.entries.Len())
	for k := range S.Entries() {
		keys = append(keys, k)
	}

	return
}

// FirstKey - Returns the smallest key, or an engine.EmptyIndex error if the view is empty
func (S *View[K, V]) FirstKey() (key K, err error) {
	for k := range S.Entries() {
		return k, nil
	}

	err = engine.EmptyIndex{}
	return
}

// LastKey - Returns the largest key, or an engine.EmptyIndex error if the view is empty
func (S *View[K, V]) LastKey() (key K, err error) {
	if S.entries.Len() == 0 {
		err = engine.EmptyIndex{}
		return
	}

	for k := range S.Entries() {
		key = k
	}

	return
}
