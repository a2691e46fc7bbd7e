package trie

import (
	"github.com/nethermindeth/fredkin/core/bitutil"
	"github.com/pkg/errors"
)

// ValidateInvariants walks the whole index and checks spec.md §3's
// structural invariants: every root slot's occupant sits under the slot
// its own highest-set-bit names, every present child pointer rewires
// back through a consistent parent link, every sibling ring is a
// doubly-consistent circle with exactly one primary, and the item count
// matches what forward iteration actually finds. It is O(N) and meant
// for NewDebug configurations or tests, not hot paths.
func (idx *Index[K]) ValidateInvariants() error {
	h := idx.head
	var visited uint64

	for i := uint(0); i < h.Width(); i++ {
		root := h.child(i)
		if root == nil {
			continue
		}
		if !root.ParentIsRootSlot() {
			return errors.Errorf("root slot %d occupant does not report ParentIsRootSlot", i)
		}
		if root.RootSlotBitIndex() != i {
			return errors.Errorf("root slot %d occupant reports RootSlotBitIndex %d", i, root.RootSlotBitIndex())
		}
		if bitutil.HighestSetBit(root.Key()) != i {
			return errors.Errorf("root slot %d occupant has key %v whose highest set bit names another slot", i, root.Key())
		}
		n, err := idx.validateSubtree(root)

		if err != nil {
			return err
		}
		visited += n
	}

	if visited != h.Size() {
		return errors.Errorf("head reports size %d, tree walk found %d", h.Size(), visited)
	}

	fwd, err := idx.countDirection(true)
	if err != nil {
		return err
	}
	if fwd != h.Size() {
		return errors.Errorf("head reports size %d, forward iteration found %d", h.Size(), fwd)
	}
	bwd, err := idx.countDirection(false)
	if err != nil {
		return err
	}
	if bwd != h.Size() {
		return errors.Errorf("head reports size %d, backward iteration found %d", h.Size(), bwd)
	}
	return nil
}

// validateSubtree checks node and its descendants, returning the total
// item count in this branch (primaries plus their ring secondaries).
func (idx *Index[K]) validateSubtree(node *Item[K]) (uint64, error) {
	n, err := idx.validateRing(node)
	if err != nil {
		return 0, err
	}

	for side := 0; side < 2; side++ {
		c := node.child(side)
		if c == nil {
			continue
		}
		if !c.IsPrimary() || c.ParentIsRootSlot() {
			return 0, errors.Errorf("child[%d] of key %v is not a primary branch item", side, node.Key())
		}
		if c.parentItemPtr() != node {
			return 0, errors.Errorf("child[%d] of key %v does not point back to its parent", side, node.Key())
		}
		m, err := idx.validateSubtree(c)
		if err != nil {
			return 0, err
		}
		n += m
	}
	return n, nil
}

// validateRing checks node's sibling ring is a consistent doubly-linked
// circle with node as its sole primary, returning the ring's size
// (node plus its secondaries).
func (idx *Index[K]) validateRing(node *Item[K]) (uint64, error) {
	if !node.IsPrimary() {
		return 0, errors.Errorf("ring head for key %v is not primary", node.Key())
	}
	n := uint64(1)
	for s := node.sibling(right); s != node; s = s.sibling(right) {
		if s.Key() != node.Key() {
			return 0, errors.Errorf("sibling ring for key %v contains mismatched key %v", node.Key(), s.Key())
		}
		if s.IsPrimary() {
			return 0, errors.Errorf("sibling ring for key %v has a second primary", node.Key())
		}
		if s.sibling(right).sibling(left) != s {
			return 0, errors.Errorf("sibling ring for key %v is not doubly consistent", node.Key())
		}
		n++
	}
	return n, nil
}

// countDirection walks the index via Next (forward) or Prev (backward)
// starting from Min/Max and counts the items visited, detecting cycles
// by capping the walk at Size()+1 steps.
func (idx *Index[K]) countDirection(forward bool) (uint64, error) {
	limit := idx.Size() + 1
	var n uint64
	var cur *Item[K]
	if forward {
		cur = idx.Min()
	} else {
		cur = idx.Max()
	}
	for cur != nil {
		n++
		if n > limit {
			return 0, errors.New("iteration did not terminate, ring or tree link cycle suspected")
		}
		if forward {
			cur = idx.Next(cur)
		} else {
			cur = idx.Prev(cur)
		}
	}
	return n, nil
}
