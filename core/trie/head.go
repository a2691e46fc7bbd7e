package trie

import "github.com/bits-and-blooms/bitset"

// Head is the externally owned record anchoring an Index: one root slot
// per bit position, an item counter, and (in NobbleEqual mode) the
// alternation flag the remove algorithm flips. Zero value is not ready
// for use — construct with NewHead; Clear (which Index.Clear calls)
// resets a Head to that same empty state (spec.md §3 "The index head is zero-initialized by clear,
// which is called implicitly on construction").
type Head[K Unsigned] struct {
	width    uint
	children []*Item[K]

	// occupied tracks which root slots are non-nil. Repurposes the
	// teacher's own bits-and-blooms/bitset (there used for trie path
	// bitsets) as an O(1)-scan occupancy map instead of a linear walk
	// over children for Min/Next-past-branch/close_find's "next higher
	// non-empty root slot" step.
	occupied *bitset.BitSet

	count   uint64
	maxSize uint64

	nobble     NobbleDirection
	nobbleFlip bool

	locker BranchLocker[K]
}

// NewHead constructs a zero-initialized Head with width root slots
// (W in spec.md, typically 32 or 64) and the given nobble direction.
// maxSize bounds count; pass the numeric maximum of whatever counter
// width the caller cares about (spec.md §4.3 "max_size... must equal
// the numerical maximum of the size type").
func NewHead[K Unsigned](width uint, nobble NobbleDirection, maxSize uint64) *Head[K] {
	h := &Head[K]{
		width:    width,
		children: make([]*Item[K], width),
		occupied: bitset.New(width),
		maxSize:  maxSize,
		nobble:   nobble,
		locker:   noopLocker[K]{},
	}
	return h
}

// Clear resets the head to empty, matching spec.md §3's "zero-initialized
// by clear". Outstanding items are left exactly as they were; the caller
// is responsible for not touching a cleared-out item as though it were
// still indexed.
func (h *Head[K]) Clear() {
	for i := range h.children {
		h.children[i] = nil
	}
	h.occupied.ClearAll()
	h.count = 0
	h.nobbleFlip = false
}

// Width returns W, the number of root slots.
func (h *Head[K]) Width() uint { return h.width }

// Size returns the number of items currently indexed.
func (h *Head[K]) Size() uint64 { return h.count }

// MaxSize returns the capacity ceiling; reaching it means Insert fails.
func (h *Head[K]) MaxSize() uint64 { return h.maxSize }

func (h *Head[K]) incrSize() { h.count++ }
func (h *Head[K]) decrSize() { h.count-- }

func (h *Head[K]) child(i uint) *Item[K] { return h.children[i] }

func (h *Head[K]) setChild(i uint, it *Item[K]) {
	h.children[i] = it
	if it == nil {
		h.occupied.Clear(i)
	} else {
		h.occupied.Set(i)
	}
}

// firstOccupiedFrom returns the lowest occupied slot index >= from, and
// ok=false if none exists.
func (h *Head[K]) firstOccupiedFrom(from uint) (uint, bool) {
	return h.occupied.NextSet(from)
}

// lastOccupiedUpTo returns the highest occupied slot index <= upto, and
// ok=false if none exists. bitset v1.4.0 (the version the teacher pins)
// exposes no reverse scan, so this walks Test() backward directly; width
// is small (32/64 typically) so this stays cheap.
func (h *Head[K]) lastOccupiedUpTo(upto uint) (uint, bool) {
	for i := upto + 1; i > 0; i-- {
		if h.occupied.Test(i - 1) {
			return i - 1, true
		}
	}
	return 0, false
}

// SetBranchLocker installs a BranchLocker implementing spec.md §5's
// protocol in place of the default no-op. Must be called before
// concurrent use begins; swapping lockers under contention is undefined.
func (h *Head[K]) SetBranchLocker(l BranchLocker[K]) { h.locker = l }

func (h *Head[K]) lockBranch(key K, exclusive bool, bitIndexHint uint) BranchToken {
	return h.locker.LockBranch(key, exclusive, bitIndexHint)
}

func (h *Head[K]) unlockBranch(token BranchToken, exclusive bool) {
	h.locker.UnlockBranch(token, exclusive)
}
