package trie

// ItemSnapshot is a read-only, caller-facing projection of a single
// item's link state, suitable for serializing the item layout spec.md
// §6 describes as "the on-disk format" when a caller chooses to persist
// the containing structures directly. Child/sibling/parent references
// are expressed as keys rather than pointers, since a deserializer on
// the reading side owns a different set of Item addresses.
type ItemSnapshot[K Unsigned] struct {
	Key K

	HasLeftChild, HasRightChild   bool
	LeftChildKey, RightChildKey   K
	IsPrimary                     bool
	NextSiblingKey, PrevSiblingKey K

	ParentIsRootSlot bool
	RootSlotBitIndex uint
	ParentKey        K
	HasParentKey     bool
}

// HeadSnapshot is a read-only projection of a Head's width, counters and
// nobble direction; it carries none of the root-slot contents.
type HeadSnapshot struct {
	Width   uint
	Size    uint64
	MaxSize uint64
	Nobble  NobbleDirection
}

// SnapshotReader produces read-only projections of an index's structure
// without exposing live Item pointers, for a caller that wants to
// persist or transmit the trie's layout (spec.md §6). AggregateRange
// mirrors the teacher's AggregateDiff: a caller that only wants items
// touching a span of root slots (e.g. to shard a snapshot by key width)
// can request [start, end) by root-slot bit index rather than walking
// the whole index.
type SnapshotReader[K Unsigned] interface {
	HeadSnapshot() HeadSnapshot
	Snapshot() []ItemSnapshot[K]
	AggregateRange(start, end uint) ([]ItemSnapshot[K], error)
}

// SnapshotWriter rebuilds an index's structure from snapshots, for a
// caller restoring persisted state. The destination Index's items must
// already exist (the index never allocates); PutSnapshot only relinks
// an already-populated Head/Item set to mirror what Snapshot produced.
type SnapshotWriter[K Unsigned] interface {
	PutSnapshot(head HeadSnapshot, items []ItemSnapshot[K]) error
}

// HeadSnapshot returns a read-only projection of the backing head.
func (idx *Index[K]) HeadSnapshot() HeadSnapshot {
	h := idx.head
	return HeadSnapshot{Width: h.Width(), Size: h.Size(), MaxSize: h.MaxSize(), Nobble: h.nobble}
}

// Snapshot returns an ItemSnapshot for every indexed item, in ascending
// key order. It never allocates Items, only the projection slice.
func (idx *Index[K]) Snapshot() []ItemSnapshot[K] {
	out := make([]ItemSnapshot[K], 0, idx.Size())
	for it := idx.Begin(); it.Valid(); it = it.Next() {
		out = append(out, snapshotOf(it.Item()))
	}
	return out
}

// AggregateRange returns ItemSnapshots for every item whose root-slot
// bit index lies in [start, end), mirroring the teacher's
// AggregateDiff(start, end) shape for a bounded span rather than the
// whole structure.
func (idx *Index[K]) AggregateRange(start, end uint) ([]ItemSnapshot[K], error) {
	if start > end || end > idx.head.Width() {
		return nil, errContractViolation("AggregateRange: invalid [start, end) bounds")
	}
	var out []ItemSnapshot[K]
	for i := start; i < end; i++ {
		node := idx.head.child(i)
		if node == nil {
			continue
		}
		out = appendSubtreeSnapshots(out, node)
	}
	return out, nil
}

func appendSubtreeSnapshots[K Unsigned](out []ItemSnapshot[K], node *Item[K]) []ItemSnapshot[K] {
	out = append(out, snapshotOf(node))
	for s := node.sibling(right); s != node; s = s.sibling(right) {
		out = append(out, snapshotOf(s))
	}
	for side := 0; side < 2; side++ {
		if c := node.child(side); c != nil {
			out = appendSubtreeSnapshots(out, c)
		}
	}
	return out
}

func snapshotOf[K Unsigned](it *Item[K]) ItemSnapshot[K] {
	s := ItemSnapshot[K]{
		Key:            it.Key(),
		IsPrimary:      it.IsPrimary(),
		NextSiblingKey: it.sibling(right).Key(),
		PrevSiblingKey: it.sibling(left).Key(),
	}
	if c := it.child(left); c != nil {
		s.HasLeftChild, s.LeftChildKey = true, c.Key()
	}
	if c := it.child(right); c != nil {
		s.HasRightChild, s.RightChildKey = true, c.Key()
	}
	if it.ParentIsRootSlot() {
		s.ParentIsRootSlot = true
		s.RootSlotBitIndex = it.RootSlotBitIndex()
	} else if p := it.parentItemPtr(); p != nil {
		s.HasParentKey, s.ParentKey = true, p.Key()
	}
	return s
}
