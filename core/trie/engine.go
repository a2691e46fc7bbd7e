// Package trie implements the intrusive, never-allocating bitwise
// Fredkin trie index: Head anchors W root slots, Item carries the five
// index-private link fields, and Index (this file) is the engine tying
// them together — insert, erase, find, close-find, nearest-find,
// min/max/next/prev, and iteration.
//
// Index[K] is parameterized purely through Go generics (spec.md §9's
// "compile-time generic parameter" option): it binds directly to the
// concrete *Item[K]/*Head[K] types rather than through an accessor
// interface, since nothing in this package or its tests swaps in an
// alternate backing representation — an interface with one caller and
// one implementer is indirection without a second party to justify it.
package trie

import (
	"github.com/nethermindeth/fredkin/core/bitutil"
	"go.uber.org/zap"
)

// Index is the trie engine itself. It owns no items and no heap memory
// beyond the Head's root-slot slice and occupancy bitmap; every Item it
// touches is supplied and owned by the caller.
type Index[K Unsigned] struct {
	head  *Head[K]
	log   *zap.Logger
	debug bool
}

// New constructs an empty Index with width root slots (the key width W),
// the given removal nobble direction, and a capacity ceiling maxSize
// (spec.md §4.3's "max_size must equal the numerical maximum of the size
// type" — pass that maximum directly).
func New[K Unsigned](width uint, nobble NobbleDirection, maxSize uint64) *Index[K] {
	return &Index[K]{head: NewHead[K](width, nobble, maxSize)}
}

// NewDebug is like New but additionally validates the invariants of
// spec.md §3 after every completed mutation, logging (and panicking on)
// any violation through log. Pass a nil log to get New's behavior.
// Matches spec.md §7: "Debug builds may validate the invariants... and
// abort on violation; release builds omit validation."
func NewDebug[K Unsigned](width uint, nobble NobbleDirection, maxSize uint64, log *zap.Logger) *Index[K] {
	idx := New[K](width, nobble, maxSize)
	if log != nil {
		idx.log = log
		idx.debug = true
	}
	return idx
}

// Head gives direct access to the backing head, for callers that need
// the lower-level Head surface (e.g. installing a BranchLocker).
func (idx *Index[K]) Head() *Head[K] { return idx.head }

// Clear empties the index; outstanding items are left untouched.
func (idx *Index[K]) Clear() { idx.head.Clear() }

// Empty reports whether the index holds no items.
func (idx *Index[K]) Empty() bool { return idx.head.Size() == 0 }

// Size returns the number of indexed items (primaries and secondaries).
func (idx *Index[K]) Size() uint64 { return idx.head.Size() }

// MaxSize returns the capacity ceiling.
func (idx *Index[K]) MaxSize() uint64 { return idx.head.MaxSize() }

// Swap exchanges the entire backing state of idx and other. This is the
// only whole-structure transfer operation the index exposes — see
// DESIGN.md for why a Clone/copy method is deliberately absent.
func (idx *Index[K]) Swap(other *Index[K]) {
	idx.head, other.head = other.head, idx.head
}

// bitAt returns the trie-descent bit for key k at depth below root slot
// i. depth 0 is the root item itself; each further depth consumes the
// next bit down from i-1. At i==0 there is no bit left below the root
// (both key 0 and the single key whose natural MSB is bit 0, i.e. key 1,
// land in slot 0 per spec.md §3 — "key 0... lives exclusively in root
// slot 0"): the shift would be negative, so this returns 0 unconditionally,
// giving the only other occupant of slot 0 a single deterministic child
// position. See DESIGN.md Open Question #6.
func bitAt[K Unsigned](k K, i, depth uint) int {
	shift := int(i) - int(depth) - 1
	if shift < 0 {
		return 0
	}
	return int((k >> uint(shift)) & 1)
}

// ---- Insert ----------------------------------------------------------

// Insert links item r into the index. r must not already be indexed.
// Returns the end iterator on capacity exhaustion (spec.md §7 kind 1);
// otherwise an iterator positioned at r (or, if r's key already existed,
// at r in its new role as a secondary sibling).
func (idx *Index[K]) Insert(r *Item[K]) Iterator[K] {
	h := idx.head
	if h.Size() >= h.MaxSize() {
		return idx.End()
	}

	r.reset()
	k := r.key
	i := bitutil.HighestSetBit(k)

	token := h.lockBranch(k, true, i)
	defer h.unlockBranch(token, true)

	if h.child(i) == nil {
		r.setParentRootSlot(i)
		h.setChild(i, r)
		h.incrSize()
		idx.validate()
		return Iterator[K]{idx: idx, cur: r, forward: true}
	}

	node := h.child(i)
	depth := uint(0)
	for {
		if node.key == k {
			spliceSecondary(node, r)
			break
		}
		bit := bitAt(k, i, depth)
		if node.child(bit) == nil {
			r.setParentItem(node)
			node.setChild(bit, r)
			break
		}
		node = node.child(bit)
		depth++
	}
	h.incrSize()
	idx.validate()
	return Iterator[K]{idx: idx, cur: r, forward: true}
}

// spliceSecondary inserts r into node's sibling ring immediately after
// node, as a secondary (spec.md §4.4 insert step 5, node.key == k case).
func spliceSecondary[K Unsigned](node, r *Item[K]) {
	nxt := node.sibling(right)
	node.setSibling(right, r)
	r.setSibling(left, node)
	r.setSibling(right, nxt)
	nxt.setSibling(left, r)
	r.setSecondary()
}

// ---- Erase ------------------------------------------------------------

// setParent rewires r's former position (root slot or parent's child
// slot) to point at to, or clears it if to is nil, and marks to primary
// if non-nil. Shared by every branch of erase's step 2.
func (idx *Index[K]) setParent(r, to *Item[K]) {
	h := idx.head
	if r.parentIsRootSlot() {
		bit := r.parent.slot
		h.setChild(bit, to)
		if to != nil {
			to.setParentRootSlot(bit)
		}
		return
	}
	p := r.parentItemPtr()
	side := left
	if p.child(right) == r {
		side = right
	}
	p.setChild(side, to)
	if to != nil {
		to.setParentItem(p)
	}
}

// Erase unlinks item r, wherever it sits (primary or secondary). The
// caller retains ownership of r and of whatever item(s) its removal
// displaced; this only mutates link fields.
func (idx *Index[K]) Erase(r *Item[K]) {
	h := idx.head

	if r.IsSecondary() {
		unlinkSibling(r)
		h.decrSize()
		idx.validate()
		return
	}

	k := r.key
	i := bitutil.HighestSetBit(k)
	token := h.lockBranch(k, true, i)
	defer h.unlockBranch(token, true)

	// step 3: a waiting secondary takes over r's tree position.
	if r.sibling(right) != r {
		s := r.sibling(right)
		unlinkSibling(r)
		idx.setParent(r, s)
		for side := 0; side < 2; side++ {
			c := r.child(side)
			s.setChild(side, c)
			if c != nil {
				c.setParentItem(s)
			}
		}
		h.decrSize()
		idx.validate()
		return
	}

	// step 4: leaf in the trie, no siblings — just clear the slot.
	if r.child(left) == nil && r.child(right) == nil {
		idx.setParent(r, nil)
		h.decrSize()
		idx.validate()
		return
	}

	// step 5: replace r with a no-descendant grandchild.
	p := idx.promoteReplacement(h, r)
	idx.setParent(r, p)
	for side := 0; side < 2; side++ {
		c := r.child(side)
		if c == p {
			continue
		}
		p.setChild(side, c)
		if c != nil {
			c.setParentItem(p)
		}
	}
	h.decrSize()
	idx.validate()
}

// promoteReplacement implements spec.md §4.4 remove step 5's descent:
// pick the preferred child of r (falling back to the other side), then
// keep descending with the same preference until a childless node is
// reached, detaching it from its own parent along the way.
func (idx *Index[K]) promoteReplacement(h *Head[K], r *Item[K]) *Item[K] {
	dir := h.preferredSide()
	other := 1 - dir

	pick := func(n *Item[K]) (*Item[K], int) {
		if c := n.child(dir); c != nil {
			return c, dir
		}
		return n.child(other), other
	}

	p, pSide := pick(r)
	parent := r
	for {
		next, nextSide := pick(p)
		if next == nil {
			break
		}
		parent, pSide = p, nextSide
		p = next
	}

	if parent != r {
		parent.setChild(pSide, nil)
	}
	return p
}

// unlinkSibling removes r from whatever sibling ring it sits in,
// restoring doubly-consistent links on its neighbors. r's own sibling
// pointers are left stale (the caller is done with r).
func unlinkSibling[K Unsigned](r *Item[K]) {
	prev, next := r.sibling(left), r.sibling(right)
	prev.setSibling(right, next)
	next.setSibling(left, prev)
}

// EraseKey removes the primary item for key k (if duplicates exist,
// Erase immediately promotes the next same-key sibling into its place,
// per spec.md §4.4 remove step 3). Returns the removed item, or nil if
// k was not present (spec.md §7 kind 2, non-fatal).
func (idx *Index[K]) EraseKey(k K) *Item[K] {
	it := idx.Find(k)
	if it == nil {
		return nil
	}
	idx.Erase(it)
	return it
}

// ---- Find / Contains / Count ------------------------------------------

// Find returns the item with key k, or nil.
func (idx *Index[K]) Find(k K) *Item[K] {
	h := idx.head
	i := bitutil.HighestSetBit(k)

	token := h.lockBranch(k, false, i)
	defer h.unlockBranch(token, false)

	node := h.child(i)
	depth := uint(0)
	for node != nil {
		if node.key == k {
			return node
		}
		node = node.child(bitAt(k, i, depth))
		depth++
	}
	return nil
}

// At returns the item with key k, the same as Find, but panics via a
// contract violation if k is absent — spec.md §6's `operator[](key)`
// and §7 kind 3's "indexing with [] on an absent key", which Go has no
// operator-overload equivalent for.
func (idx *Index[K]) At(k K) *Item[K] {
	it := idx.Find(k)
	if it == nil {
		panic(errContractViolation("At called with a key that is not indexed"))
	}
	return it
}

// Contains reports whether k is indexed.
func (idx *Index[K]) Contains(k K) bool { return idx.Find(k) != nil }

// Count returns the number of items with key k (1 + secondaries), or 0.
func (idx *Index[K]) Count(k K) uint64 {
	primary := idx.Find(k)
	if primary == nil {
		return 0
	}
	n := uint64(1)
	for s := primary.sibling(right); s != primary; s = s.sibling(right) {
		n++
	}
	return n
}

// ---- Min / Max ----------------------------------------------------------

// Min returns the smallest-keyed item, or nil if the index is empty.
func (idx *Index[K]) Min() *Item[K] {
	h := idx.head
	i, ok := h.firstOccupiedFrom(0)
	if !ok {
		return nil
	}
	return subtreeMin(h.child(i))
}

// Max returns the largest-keyed item, or nil if the index is empty.
func (idx *Index[K]) Max() *Item[K] {
	h := idx.head
	i, ok := h.lastOccupiedUpTo(h.Width() - 1)
	if !ok {
		return nil
	}
	node := subtreeMax(h.child(i))
	if node.sibling(left) != node {
		return node.sibling(left) // ring tail is the maximum of its class
	}
	return node
}

// ---- Next / Prev --------------------------------------------------------

// primaryOf returns the primary item of x's equivalence class: x itself
// if it is primary, else the item its ring eventually reaches that is.
func primaryOf[K Unsigned](x *Item[K]) *Item[K] {
	if x.IsPrimary() {
		return x
	}
	// Secondaries ring back to the primary via sibling[right]; walking
	// right always reaches it since the ring is circular and exactly one
	// member is primary (spec.md §3 invariant 6).
	for s := x.sibling(right); ; s = s.sibling(right) {
		if s.IsPrimary() {
			return s
		}
	}
}

// Next returns the item immediately after x in approximately-sorted
// order, or nil if x is the last item.
func (idx *Index[K]) Next(x *Item[K]) *Item[K] {
	if x.IsPrimary() && x.sibling(right) != x {
		return x.sibling(right)
	}

	node := primaryOf(x)
	if c := node.child(left); c != nil {
		return subtreeMin(c)
	}

	for {
		if node.parentIsRootSlot() {
			i := node.RootSlotBitIndex()
			h := idx.head
			if nxt, ok := h.firstOccupiedFrom(i + 1); ok {
				return subtreeMin(h.child(nxt))
			}
			return nil
		}
		p := node.parentItemPtr()
		if p.child(left) == node && p.child(right) != nil {
			return subtreeMin(p.child(right))
		}
		node = p
	}
}

// Prev returns the item immediately before x, or nil if x is the first.
func (idx *Index[K]) Prev(x *Item[K]) *Item[K] {
	if x.IsPrimary() && x.sibling(left) != x {
		return x.sibling(left)
	}

	node := primaryOf(x)
	if c := node.child(right); c != nil {
		n := subtreeMax(c)
		if n.sibling(left) != n {
			return n.sibling(left)
		}
		return n
	}

	for {
		if node.parentIsRootSlot() {
			i := node.RootSlotBitIndex()
			if i == 0 {
				return nil
			}
			h := idx.head
			if prv, ok := h.lastOccupiedUpTo(i - 1); ok {
				n := subtreeMax(h.child(prv))
				if n.sibling(left) != n {
					return n.sibling(left)
				}
				return n
			}
			return nil
		}
		p := node.parentItemPtr()
		if p.child(right) == node && p.child(left) != nil {
			n := subtreeMax(p.child(left))
			if n.sibling(left) != n {
				return n.sibling(left)
			}
			return n
		}
		node = p
	}
}

// ---- CloseFind / NearestFind --------------------------------------------

// CloseFind performs a bounded-cost approximate find: up to `rounds`
// refinement steps down the trie from the branch of k (or the next
// higher non-empty branch, if k's own is empty), picking the child that
// matches k's remaining bits and taking the other child when that one is
// absent. It returns some item with key >= k, not necessarily the
// smallest such, or nil if the index holds no key >= k; when the descent
// stops on a key below k, the result comes from NearestFind instead.
// rounds == ^uint64(0) degenerates to NearestFind.
func (idx *Index[K]) CloseFind(k K, rounds uint64) *Item[K] {
	if rounds == ^uint64(0) {
		return idx.NearestFind(k)
	}

	h := idx.head
	i := bitutil.HighestSetBit(k)
	startSlot, ok := h.firstOccupiedFrom(i)
	if !ok {
		return nil
	}
	if startSlot != i {
		// landed in a strictly higher branch: every key there is already
		// >= k (spec.md §3 invariant 2), so the branch's own minimum
		// satisfies the contract without spending any rounds.
		return idx.minOfSlot(startSlot)
	}

	node := h.child(startSlot)
	depth := uint(0)
	best := node
	for r := uint64(0); r < rounds; r++ {
		bit := bitAt(k, startSlot, depth)
		c := node.child(bit)
		if c == nil {
			c = node.child(1 - bit)
			if c == nil {
				break
			}
		}
		node = c
		best = node
		depth++
	}
	if best.key < k {
		// the descent stopped on a key below k; the branch minimum may be
		// below k as well, so fall back to the exact search.
		return idx.NearestFind(k)
	}
	return best
}

// minOfSlot returns the minimum-keyed item within root slot i's branch.
func (idx *Index[K]) minOfSlot(i uint) *Item[K] {
	node := idx.head.child(i)
	if node == nil {
		return nil
	}
	return subtreeMin(node)
}

// subtreeMin returns the minimum-keyed item of node's subtree. Every key
// under child[0] is below every key under child[1], but a node's own key
// is not ordered against its children, so this descends child[0] (or
// child[1] when child[0] is nil) and keeps the smallest key it passes.
func subtreeMin[K Unsigned](node *Item[K]) *Item[K] {
	best := node
	for {
		c := node.child(left)
		if c == nil {
			c = node.child(right)
		}
		if c == nil {
			return best
		}
		node = c
		if node.key < best.key {
			best = node
		}
	}
}

// subtreeMax mirrors subtreeMin for the maximum: it descends child[1] (or
// child[0] when child[1] is nil) and keeps the largest key it passes.
func subtreeMax[K Unsigned](node *Item[K]) *Item[K] {
	best := node
	for {
		c := node.child(right)
		if c == nil {
			c = node.child(left)
		}
		if c == nil {
			return best
		}
		node = c
		if node.key > best.key {
			best = node
		}
	}
}

// NearestFind returns the item with the smallest key >= k, or nil.
// Worst case O(log N): when the preferred descent path runs into a dead
// end it backtracks and tries the adjacent subtree, and failing that,
// the next higher root slot.
func (idx *Index[K]) NearestFind(k K) *Item[K] {
	h := idx.head
	i := bitutil.HighestSetBit(k)

	start, ok := h.firstOccupiedFrom(i)
	if !ok {
		return nil
	}
	if start != i {
		return idx.minOfSlot(start)
	}

	if best := idx.nearestWithin(h.child(i), i, 0, k); best != nil {
		return best
	}
	if nxt, ok := h.firstOccupiedFrom(i + 1); ok {
		return idx.minOfSlot(nxt)
	}
	return nil
}

// nearestWithin searches node's subtree (rooted at depth below slot i,
// which by construction shares k's bit-prefix down to this depth) for
// the smallest key >= k, returning nil if every key in the subtree is <
// k. A node's own key and its two children are not globally ordered the
// way a sorted tree's are — only the child matching the node's own next
// bit is ambiguous relative to the node, the other child is strictly
// ordered against it (spec.md's "approximately sorted" non-goal is a
// direct consequence) — so this compares candidates explicitly rather
// than assuming a binary-search-tree shape.
func (idx *Index[K]) nearestWithin(node *Item[K], i, depth uint, k K) *Item[K] {
	if node == nil {
		return nil
	}
	nodeBit := bitAt(node.key, i, depth)
	kBit := bitAt(k, i, depth)

	if nodeBit != kBit {
		if nodeBit == right {
			// kBit == left: node.key > k (first differing bit favors node).
			best := node
			if c := node.child(left); c != nil {
				if better := idx.nearestWithin(c, i, depth+1, k); better != nil && better.key < best.key {
					best = better
				}
			}
			if c := node.child(right); c != nil {
				if m := subtreeMin(c); m.key < best.key {
					best = m
				}
			}
			return best
		}
		// nodeBit == left, kBit == right: node.key < k, and child(left) is
		// entirely < k too (shares node's bit, strictly less than kBit's side).
		return idx.nearestWithin(node.child(right), i, depth+1, k)
	}

	// nodeBit == kBit: node and k still agree at this level: node.key's
	// order relative to k is undetermined until deeper bits are examined.
	var best *Item[K]
	if node.key >= k {
		best = node
	}
	if c := node.child(nodeBit); c != nil {
		if better := idx.nearestWithin(c, i, depth+1, k); better != nil && (best == nil || better.key < best.key) {
			best = better
		}
	}
	if nodeBit == left {
		// child(right) diverges from node/k at this level with the higher
		// bit value, so it's entirely > k: every member qualifies, we
		// just want its minimum.
		if c := node.child(right); c != nil {
			if m := subtreeMin(c); best == nil || m.key < best.key {
				best = m
			}
		}
	}
	return best
}

// ---- Invariant validation (debug only) -----------------------------------

// validate walks the whole index checking spec.md §3's invariants when
// idx.debug is set; it is a no-op (and thus O(1)) in release configuration.
func (idx *Index[K]) validate() {
	if !idx.debug {
		return
	}
	if err := idx.ValidateInvariants(); err != nil {
		idx.log.Error("invariant violated", zap.Error(err))
		panic(errContractViolation(err.Error()))
	}
}
