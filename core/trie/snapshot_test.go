package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCoversEveryItemInAscendingKeyOrder(t *testing.T) {
	idx := newTestIndex()
	keys := []uint64{40, 10, 70, 10, 55}
	for _, k := range keys {
		idx.Insert(NewItem(k))
	}

	snaps := idx.Snapshot()
	require.Len(t, snaps, len(keys))

	var got []uint64
	for _, s := range snaps {
		got = append(got, s.Key)
	}
	assert.Equal(t, []uint64{10, 10, 40, 55, 70}, got)
}

func TestHeadSnapshotReportsCounters(t *testing.T) {
	idx := New[uint64](32, NobbleOnes, 10)
	idx.Insert(NewItem[uint64](1))

	snap := idx.HeadSnapshot()
	assert.Equal(t, uint(32), snap.Width)
	assert.Equal(t, uint64(1), snap.Size)
	assert.Equal(t, uint64(10), snap.MaxSize)
	assert.Equal(t, NobbleOnes, snap.Nobble)
}

func TestAggregateRangeOnlyCoversRequestedSlots(t *testing.T) {
	idx := newTestIndex()
	idx.Insert(NewItem[uint64](1))  // HighestSetBit=0
	idx.Insert(NewItem[uint64](8))  // HighestSetBit=3
	idx.Insert(NewItem[uint64](64)) // HighestSetBit=6

	snaps, err := idx.AggregateRange(0, 4)
	require.NoError(t, err)

	var keys []uint64
	for _, s := range snaps {
		keys = append(keys, s.Key)
	}
	assert.ElementsMatch(t, []uint64{1, 8}, keys)
}

func TestAggregateRangeRejectsInvalidBounds(t *testing.T) {
	idx := newTestIndex()
	_, err := idx.AggregateRange(5, 2)
	assert.Error(t, err)
	_, err = idx.AggregateRange(0, idx.Head().Width()+1)
	assert.Error(t, err)
}
