package trie

// NobbleDirection selects which side of the tree the remove algorithm
// prefers when descending to find a no-descendant replacement node
// (spec.md §4.4 remove step 5, §9 "nobble direction as compile-time
// value"). Skewing removal toward one side keeps the tree from growing
// lopsided when keys lack entropy in their low bits.
type NobbleDirection uint8

const (
	// NobbleZeros always prefers the left (0) child when descending for
	// a replacement.
	NobbleZeros NobbleDirection = iota
	// NobbleOnes always prefers the right (1) child.
	NobbleOnes
	// NobbleEqual alternates the preferred side on every removal that
	// needs to choose one, tracked by Head.nobbleFlip.
	NobbleEqual
)

// preferredSide returns the side the remove algorithm should prefer for
// this removal, flipping Head's alternation state when in NobbleEqual
// mode (spec.md §4.4: "dir = flip_nobbledir() (equal mode), or constant
// 0/1 otherwise").
func (h *Head[K]) preferredSide() int {
	switch h.nobble {
	case NobbleZeros:
		return left
	case NobbleOnes:
		return right
	default: // NobbleEqual
		h.nobbleFlip = !h.nobbleFlip
		if h.nobbleFlip {
			return right
		}
		return left
	}
}
