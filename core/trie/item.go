package trie

import "github.com/nethermindeth/fredkin/core/bitutil"

// Unsigned is the key domain the trie is built over.
type Unsigned = bitutil.Unsigned

// side indexes the two branches of a node, and the two directions of a
// sibling ring. left/prev is 0, right/next is 1.
const (
	left  = 0
	right = 1
)

// parentKind distinguishes the three states an item's parent link can be
// in. spec.md encodes this in the low bits of a pointer on platforms with
// spare alignment bits; Go pointers offer no such bits, so this is an
// explicit tagged variant instead, per spec.md §9's own recommendation.
type parentKind uint8

const (
	// parentNone means the item is a secondary sibling: it is not linked
	// into the trie itself, only into the ring of its primary.
	parentNone parentKind = iota
	// parentItem means the item's parent is another item in the trie.
	parentItem
	// parentRootSlot means the item is the primary child of a root slot.
	parentRootSlot
)

type parentLink[K Unsigned] struct {
	kind parentKind
	item *Item[K]
	slot uint
}

// Item is an externally owned record the index threads its bookkeeping
// through. The caller allocates and owns every Item; the index only
// mutates the five link fields below plus reads Key.
type Item[K Unsigned] struct {
	parent   parentLink[K]
	children [2]*Item[K]
	siblings [2]*Item[K]

	key K
}

// NewItem returns a fresh item for key k, ready for Insert. It is not
// yet linked into any index.
func NewItem[K Unsigned](k K) *Item[K] {
	it := &Item[K]{key: k}
	it.siblings[left] = it
	it.siblings[right] = it
	return it
}

// Key returns the item's key. The key must not be mutated while the item
// is indexed (spec.md §7, caller contract violation otherwise).
func (it *Item[K]) Key() K { return it.key }

func (it *Item[K]) parentIsRootSlot() bool { return it.parent.kind == parentRootSlot }

// ParentIsRootSlot reports whether this item is a direct child of a root
// slot rather than of another item.
func (it *Item[K]) ParentIsRootSlot() bool { return it.parentIsRootSlot() }

// RootSlotBitIndex returns the root slot bit index this item sits under.
// Precondition: ParentIsRootSlot() is true.
func (it *Item[K]) RootSlotBitIndex() uint {
	if it.parent.kind != parentRootSlot {
		panic(errContractViolation("RootSlotBitIndex called on an item that is not a root-slot child"))
	}
	return it.parent.slot
}

func (it *Item[K]) setParentRootSlot(bitIndex uint) {
	it.parent = parentLink[K]{kind: parentRootSlot, slot: bitIndex}
}

func (it *Item[K]) setParentItem(p *Item[K]) {
	it.parent = parentLink[K]{kind: parentItem, item: p}
}

// parentItemPtr returns the item's tree parent, or nil if it has none (it
// is a root-slot child or a secondary sibling).
func (it *Item[K]) parentItemPtr() *Item[K] {
	if it.parent.kind != parentItem {
		return nil
	}
	return it.parent.item
}

// IsPrimary reports whether this item is linked into the trie itself
// (root-slot child or a branch node), as opposed to sitting only in a
// sibling ring.
func (it *Item[K]) IsPrimary() bool { return it.parent.kind != parentNone }

// IsSecondary reports whether this item is a secondary sibling: present
// only in the ring of its primary, not in the trie structure.
func (it *Item[K]) IsSecondary() bool { return it.parent.kind == parentNone }

func (it *Item[K]) setSecondary() { it.parent = parentLink[K]{kind: parentNone} }

func (it *Item[K]) child(side int) *Item[K]         { return it.children[side] }
func (it *Item[K]) setChild(side int, c *Item[K])   { it.children[side] = c }
func (it *Item[K]) sibling(side int) *Item[K]       { return it.siblings[side] }
func (it *Item[K]) setSibling(side int, s *Item[K]) { it.siblings[side] = s }

// reset puts a never-inserted item into its initial state: no parent yet
// (caller fills that in immediately), no children, a solitary sibling
// ring pointing at itself.
func (it *Item[K]) reset() {
	it.parent = parentLink[K]{}
	it.children[left], it.children[right] = nil, nil
	it.siblings[left], it.siblings[right] = it, it
}
