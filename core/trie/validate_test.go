package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateInvariantsPassesOnHealthyIndex(t *testing.T) {
	idx := newTestIndex()
	for _, k := range []uint64{5, 3, 8, 1, 4, 7, 9} {
		idx.Insert(NewItem(k))
	}
	assert.NoError(t, idx.ValidateInvariants())
}

func TestValidateInvariantsCatchesBrokenParentLink(t *testing.T) {
	idx := newTestIndex()
	a := NewItem[uint64](5)
	idx.Insert(a)
	b := NewItem[uint64](4)
	idx.Insert(b)

	// corrupt the link directly: detach b from its parent's perspective
	// without updating b's own parent pointer.
	a.setChild(left, nil)

	err := idx.ValidateInvariants()
	require.Error(t, err)
}

func TestNewDebugValidatesOnEveryMutation(t *testing.T) {
	idx := NewDebug[uint64](64, NobbleZeros, ^uint64(0), zap.NewNop())
	a := NewItem[uint64](5)
	idx.Insert(a)
	b := NewItem[uint64](4)
	idx.Insert(b)

	// corrupt the tree behind the engine's back, then trigger the next
	// mutation's automatic post-mutation validate() and confirm it
	// panics rather than silently letting the corruption stand.
	a.setChild(left, nil)

	c := NewItem[uint64](6)
	assert.True(t, IsContractViolation(recoverPanic(func() { idx.Insert(c) })))
}

func TestNewDebugWithNilLoggerBehavesLikeNew(t *testing.T) {
	idx := NewDebug[uint64](64, NobbleZeros, ^uint64(0), nil)
	a := NewItem[uint64](5)
	idx.Insert(a)
	b := NewItem[uint64](4)
	idx.Insert(b)

	// with debug disabled, the same corruption must NOT panic: validate()
	// is a no-op, matching "release builds omit validation" (spec.md §7).
	a.setChild(left, nil)
	c := NewItem[uint64](6)
	assert.Nil(t, recoverPanic(func() { idx.Insert(c) }))
}
