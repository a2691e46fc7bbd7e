package trie

import "iter"

// Iterator is a bidirectional cursor over an Index, modeled on spec.md
// §4.4's "Iterator" type: it holds the item currently pointed at plus the
// direction of the move that produced it (Next and Prev do not consult
// it). The zero value is not meaningful; obtain one from Index.Begin,
// End, RBegin, REnd, or Insert.
type Iterator[K Unsigned] struct {
	idx     *Index[K]
	cur     *Item[K]
	forward bool
}

// Valid reports whether the iterator points at an item rather than sitting
// at the end (or rend) position.
func (it Iterator[K]) Valid() bool { return it.cur != nil }

// Item returns the item the iterator currently points at. Precondition:
// Valid() is true (spec.md §7 kind 3, dereferencing end is a contract
// violation).
func (it Iterator[K]) Item() *Item[K] {
	if it.cur == nil {
		panic(errContractViolation("Item called on an invalid (end) iterator"))
	}
	return it.cur
}

// Next advances the iterator to the next item in ascending order. Calling
// Next on the end iterator is a no-op producing another end iterator.
func (it Iterator[K]) Next() Iterator[K] {
	if it.cur == nil {
		return Iterator[K]{idx: it.idx, forward: true}
	}
	return Iterator[K]{idx: it.idx, cur: it.idx.Next(it.cur), forward: true}
}

// Prev moves the iterator to the previous item in ascending order.
// Calling Prev on the rend position is a no-op producing another rend.
func (it Iterator[K]) Prev() Iterator[K] {
	if it.cur == nil {
		return Iterator[K]{idx: it.idx, forward: false}
	}
	return Iterator[K]{idx: it.idx, cur: it.idx.Prev(it.cur), forward: false}
}

// Begin returns an iterator at the smallest-keyed item, or the end
// iterator if the index is empty.
func (idx *Index[K]) Begin() Iterator[K] {
	return Iterator[K]{idx: idx, cur: idx.Min(), forward: true}
}

// End returns the sentinel "one past the last item" iterator.
func (idx *Index[K]) End() Iterator[K] {
	return Iterator[K]{idx: idx, forward: true}
}

// RBegin returns an iterator at the largest-keyed item, for reverse
// traversal, or the rend iterator if the index is empty.
func (idx *Index[K]) RBegin() Iterator[K] {
	return Iterator[K]{idx: idx, cur: idx.Max(), forward: false}
}

// REnd returns the sentinel "one before the first item" iterator.
func (idx *Index[K]) REnd() Iterator[K] {
	return Iterator[K]{idx: idx, forward: false}
}

// All returns a range-func view of the index in ascending key order,
// for use in a for...range statement (Go 1.23+). Mutating the index while
// ranging is a contract violation, the same as for Next/Prev.
func (idx *Index[K]) All() iter.Seq[*Item[K]] {
	return func(yield func(*Item[K]) bool) {
		for it := idx.Begin(); it.Valid(); it = it.Next() {
			if !yield(it.Item()) {
				return
			}
		}
	}
}

// Backward returns a range-func view of the index in descending key
// order.
func (idx *Index[K]) Backward() iter.Seq[*Item[K]] {
	return func(yield func(*Item[K]) bool) {
		for it := idx.RBegin(); it.Valid(); it = it.Prev() {
			if !yield(it.Item()) {
				return
			}
		}
	}
}
