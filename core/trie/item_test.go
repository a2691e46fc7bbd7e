package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemIsSecondaryWithSelfRing(t *testing.T) {
	it := NewItem[uint64](42)
	assert.Equal(t, uint64(42), it.Key())
	assert.True(t, it.IsSecondary())
	assert.False(t, it.IsPrimary())
	assert.Same(t, it, it.sibling(left))
	assert.Same(t, it, it.sibling(right))
	assert.Nil(t, it.child(left))
	assert.Nil(t, it.child(right))
}

func TestRootSlotBitIndexPanicsWhenNotRootChild(t *testing.T) {
	it := NewItem[uint64](7)
	other := NewItem[uint64](8)
	it.setParentItem(other)
	assert.True(t, IsContractViolation(recoverPanic(func() { it.RootSlotBitIndex() })))
}

func TestSetParentRootSlotMakesItemPrimary(t *testing.T) {
	it := NewItem[uint64](7)
	it.setParentRootSlot(3)
	assert.True(t, it.IsPrimary())
	assert.True(t, it.ParentIsRootSlot())
	assert.Equal(t, uint(3), it.RootSlotBitIndex())
}

func recoverPanic(f func()) (v any) {
	defer func() { v = recover() }()
	f()
	return nil
}
