package trie

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopLockerIsSafeDefault(t *testing.T) {
	idx := newTestIndex()
	idx.Insert(NewItem[uint64](1))
	assert.True(t, idx.Contains(1))
}

func TestRWMutexLockerSeparatesBranches(t *testing.T) {
	l := NewRWMutexLocker[uint64](8)
	tokA := l.LockBranch(1, true, 1)
	tokB := l.LockBranch(2, true, 2)
	l.UnlockBranch(tokA, true)
	l.UnlockBranch(tokB, true)
}

func TestRWMutexLockerConcurrentSharedReaders(t *testing.T) {
	l := NewRWMutexLocker[uint64](4)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok := l.LockBranch(1, false, 0)
			l.UnlockBranch(tok, false)
		}()
	}
	wg.Wait()
}

func TestHeadWithInstalledLocker(t *testing.T) {
	idx := New[uint64](8, NobbleZeros, ^uint64(0))
	idx.Head().SetBranchLocker(NewRWMutexLocker[uint64](8))
	idx.Insert(NewItem[uint64](3))
	assert.True(t, idx.Contains(3))
	idx.EraseKey(3)
	assert.False(t, idx.Contains(3))
}
