// Package divec provides the generic pool, dynamic-vector and sparse-array
// primitives the DWARF loader treats as black boxes: a per-unit arena that
// is allocated fresh for one compilation unit and discarded as a whole once
// that unit has been fully translated.
package divec

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Pool is an arena of values of a single type, released all at once. It
// mirrors the lifecycle spec.md describes for per-unit parser state: the
// DWARF loader allocates a unit's DIE nodes from one Pool per compilation
// unit and throws them away together at the unit boundary.
type Pool[T any] struct {
	items []*T
}

// NewPool creates an empty pool with room for n items before its backing
// slice grows.
func NewPool[T any](n int) *Pool[T] {
	return &Pool[T]{items: make([]*T, 0, n)}
}

// Alloc returns a pointer to a newly zeroed T owned by the pool.
func (p *Pool[T]) Alloc() *T {
	v := new(T)
	p.items = append(p.items, v)
	return v
}

// Destroy drops the pool's references, letting the GC reclaim everything
// allocated from it. Safe to call more than once.
func (p *Pool[T]) Destroy() {
	p.items = nil
}

// Len reports how many values have been allocated from the pool.
func (p *Pool[T]) Len() int { return len(p.items) }

// Vector is a minimal append-only dynamic array with an explicit iteration
// cursor, matching the vector_init/add/iter_up/at collaborator surface
// spec.md names in §6.
type Vector[T any] struct {
	data []T
}

// NewVector creates an empty vector with room for n elements.
func NewVector[T any](n int) *Vector[T] {
	return &Vector[T]{data: make([]T, 0, n)}
}

// Add appends v to the vector.
func (v *Vector[T]) Add(item T) { v.data = append(v.data, item) }

// Len returns the number of elements currently stored.
func (v *Vector[T]) Len() int { return len(v.data) }

// At returns the element at index i.
func (v *Vector[T]) At(i int) T { return v.data[i] }

// IterUp calls fn for every element in insertion order, stopping early if
// fn returns false.
func (v *Vector[T]) IterUp(fn func(int, T) bool) {
	for i, item := range v.data {
		if !fn(i, item) {
			return
		}
	}
}

// Slice returns the underlying backing slice read-only; callers must not
// retain it past the pool's lifetime.
func (v *Vector[T]) Slice() []T { return v.data }

// SparseArray is a sparse-key lookup table keyed by an ordered integer key
// (DWARF entry codes and byte offsets both fit this shape). Backed by a map
// rather than a literal sparse array since DWARF byte offsets span the
// whole section and a dense array would waste most of its span.
type SparseArray[K constraints.Integer, V any] struct {
	m map[K]V
}

// NewSparseArray creates an empty sparse array.
func NewSparseArray[K constraints.Integer, V any]() *SparseArray[K, V] {
	return &SparseArray[K, V]{m: make(map[K]V)}
}

// Add inserts or overwrites the value stored at key.
func (s *SparseArray[K, V]) Add(key K, value V) { s.m[key] = value }

// Find returns the value at key and whether it was present.
func (s *SparseArray[K, V]) Find(key K) (V, bool) {
	v, ok := s.m[key]
	return v, ok
}

// Length reports how many keys are populated.
func (s *SparseArray[K, V]) Length() int { return len(s.m) }

// Keys returns the populated keys in unspecified order; callers that need a
// deterministic order should sort the result themselves.
func (s *SparseArray[K, V]) Keys() []K {
	return maps.Keys(s.m)
}

// SortedKeys returns the populated keys in ascending order, for diagnostics
// and logging that must not vary between runs (abbrev entry codes, DIE
// offsets).
func (s *SparseArray[K, V]) SortedKeys() []K {
	keys := s.Keys()
	slices.Sort(keys)
	return keys
}
