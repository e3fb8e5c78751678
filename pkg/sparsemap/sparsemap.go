// Package sparsemap provides an ordered map from non-negative row indices to
// values, the storage underneath every sparse column.
//
// Entries live in a google/btree B-tree keyed by row, so key iteration is
// always ascending and range queries cost O(log n + k).
package sparsemap

import (
	"slices"

	"github.com/google/btree"
)

// degree of the underlying B-tree. 32 keeps nodes around a cache line of
// pointers for the small entry type used here.
const degree = 32

type entry[T any] struct {
	row   int
	value T
}

func lessEntry[T any](a, b entry[T]) bool { return a.row < b.row }

// Map is an ordered row -> value map. The zero value is not usable; call New.
type Map[T any] struct {
	tree *btree.BTreeG[entry[T]]
}

// New creates an empty map.
func New[T any]() *Map[T] {
	return &Map[T]{tree: btree.NewG[entry[T]](degree, lessEntry[T])}
}

func searchKey[T any](row int) entry[T] { return entry[T]{row: row} }

// Get returns the value stored at row. An absent row yields the zero T and
// false.
func (m *Map[T]) Get(row int) (T, bool) {
	e, ok := m.tree.Get(searchKey[T](row))
	return e.value, ok
}

// Put stores v at row, replacing any previous value.
func (m *Map[T]) Put(row int, v T) {
	m.tree.ReplaceOrInsert(entry[T]{row: row, value: v})
}

// Remove deletes row and returns the value it held.
func (m *Map[T]) Remove(row int) (T, bool) {
	e, ok := m.tree.Delete(searchKey[T](row))
	return e.value, ok
}

// ContainsKey reports whether row holds a value.
func (m *Map[T]) ContainsKey(row int) bool {
	return m.tree.Has(searchKey[T](row))
}

// Len returns the number of stored entries.
func (m *Map[T]) Len() int { return m.tree.Len() }

// MaxKey returns the largest stored row, or -1 for an empty map.
func (m *Map[T]) MaxKey() int {
	e, ok := m.tree.Max()
	if !ok {
		return -1
	}
	return e.row
}

// Keys returns every stored row in ascending order.
func (m *Map[T]) Keys() []int {
	keys := make([]int, 0, m.tree.Len())
	m.tree.Ascend(func(e entry[T]) bool {
		keys = append(keys, e.row)
		return true
	})
	return keys
}

// KeysInRange returns the stored rows in [begin, end], ascending. The result
// is empty when end < begin.
func (m *Map[T]) KeysInRange(begin, end int) []int {
	keys := []int{}
	m.ascendInclusive(begin, end, func(e entry[T]) bool {
		keys = append(keys, e.row)
		return true
	})
	return keys
}

// ValuesInRange returns the values whose rows lie in [begin, end], sorted
// ascending by cmp. The result is a zero-length slice when end < begin.
func (m *Map[T]) ValuesInRange(begin, end int, cmp func(a, b T) int) []T {
	values := []T{}
	m.ascendInclusive(begin, end, func(e entry[T]) bool {
		values = append(values, e.value)
		return true
	})
	slices.SortStableFunc(values, cmp)
	return values
}

// ascendInclusive walks [begin, end] without overflowing end+1.
func (m *Map[T]) ascendInclusive(begin, end int, fn func(entry[T]) bool) {
	if end < begin {
		return
	}
	m.tree.AscendGreaterOrEqual(searchKey[T](begin), func(e entry[T]) bool {
		if e.row > end {
			return false
		}
		return fn(e)
	})
}

// Subset returns the entries with rows in [pos, pos+length), re-keyed so that
// row pos becomes row 0.
func (m *Map[T]) Subset(pos, length int) *Map[T] {
	out := New[T]()
	if length <= 0 {
		return out
	}
	m.ascendInclusive(pos, pos+length-1, func(e entry[T]) bool {
		out.tree.ReplaceOrInsert(entry[T]{row: e.row - pos, value: e.value})
		return true
	})
	return out
}

// Reorder builds a new map from order, which maps destination row to source
// row: each destination receives the source's value when the source is
// present. Stored rows that are not a source in order keep their value at
// their own row.
func (m *Map[T]) Reorder(order map[int]int) *Map[T] {
	out := New[T]()
	sources := make(map[int]struct{}, len(order))
	for dst, src := range order {
		sources[src] = struct{}{}
		if v, ok := m.Get(src); ok {
			out.Put(dst, v)
		}
	}
	m.tree.Ascend(func(e entry[T]) bool {
		if _, moved := sources[e.row]; !moved {
			out.tree.ReplaceOrInsert(e)
		}
		return true
	})
	return out
}

// Copy returns an independent map holding the same values. Reference values
// (slices, pointers) are shared; use CopyFunc to clone them.
func (m *Map[T]) Copy() *Map[T] {
	return &Map[T]{tree: m.tree.Clone()}
}

// CopyFunc returns an independent map whose values are clone(v).
func (m *Map[T]) CopyFunc(clone func(T) T) *Map[T] {
	out := New[T]()
	m.tree.Ascend(func(e entry[T]) bool {
		out.tree.ReplaceOrInsert(entry[T]{row: e.row, value: clone(e.value)})
		return true
	})
	return out
}

// Ascend calls fn for each entry in row order until fn returns false.
// The map must not be modified during iteration.
func (m *Map[T]) Ascend(fn func(row int, v T) bool) {
	m.tree.Ascend(func(e entry[T]) bool {
		return fn(e.row, e.value)
	})
}
