package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHeadIsEmpty(t *testing.T) {
	h := NewHead[uint64](64, NobbleZeros, ^uint64(0))
	assert.Equal(t, uint(64), h.Width())
	assert.Equal(t, uint64(0), h.Size())
	_, ok := h.firstOccupiedFrom(0)
	assert.False(t, ok)
}

func TestHeadSetChildTracksOccupancy(t *testing.T) {
	h := NewHead[uint64](8, NobbleZeros, ^uint64(0))
	it := NewItem[uint64](5)
	h.setChild(3, it)

	first, ok := h.firstOccupiedFrom(0)
	assert.True(t, ok)
	assert.Equal(t, uint(3), first)

	last, ok := h.lastOccupiedUpTo(7)
	assert.True(t, ok)
	assert.Equal(t, uint(3), last)

	h.setChild(3, nil)
	_, ok = h.firstOccupiedFrom(0)
	assert.False(t, ok)
}

func TestHeadLastOccupiedUpToPicksHighestBelowBound(t *testing.T) {
	h := NewHead[uint64](8, NobbleZeros, ^uint64(0))
	h.setChild(1, NewItem[uint64](1))
	h.setChild(5, NewItem[uint64](5))

	last, ok := h.lastOccupiedUpTo(5)
	assert.True(t, ok)
	assert.Equal(t, uint(5), last)

	last, ok = h.lastOccupiedUpTo(4)
	assert.True(t, ok)
	assert.Equal(t, uint(1), last)

	_, ok = h.lastOccupiedUpTo(0)
	assert.False(t, ok)
}

func TestHeadClearResetsEverything(t *testing.T) {
	h := NewHead[uint64](8, NobbleEqual, ^uint64(0))
	h.setChild(2, NewItem[uint64](2))
	h.incrSize()
	h.preferredSide()

	h.Clear()
	assert.Equal(t, uint64(0), h.Size())
	_, ok := h.firstOccupiedFrom(0)
	assert.False(t, ok)
	assert.False(t, h.nobbleFlip)
}

func TestNobbleEqualAlternates(t *testing.T) {
	h := NewHead[uint64](8, NobbleEqual, ^uint64(0))
	first := h.preferredSide()
	second := h.preferredSide()
	assert.NotEqual(t, first, second)
	third := h.preferredSide()
	assert.Equal(t, first, third)
}

func TestNobbleZerosAndOnesAreConstant(t *testing.T) {
	hz := NewHead[uint64](8, NobbleZeros, ^uint64(0))
	assert.Equal(t, left, hz.preferredSide())
	assert.Equal(t, left, hz.preferredSide())

	ho := NewHead[uint64](8, NobbleOnes, ^uint64(0))
	assert.Equal(t, right, ho.preferredSide())
	assert.Equal(t, right, ho.preferredSide())
}
