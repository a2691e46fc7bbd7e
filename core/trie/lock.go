package trie

import "sync"

// BranchToken is returned by a BranchLocker's LockBranch and threaded
// back into UnlockBranch. Its meaning is private to the locker
// implementation; the engine only ever passes it straight through.
type BranchToken any

// BranchLocker implements the branch-granular locking protocol of
// spec.md §5: an exclusive lock for a key excludes any shared or
// exclusive lock whose key shares the same highest-set-bit branch; a
// shared lock excludes only exclusive locks on that branch. Different
// branches never contend. The default Head uses noopLocker, matching
// spec.md's "single-threaded cooperative" default configuration; callers
// that need concurrent access supply a RWMutexLocker or their own.
type BranchLocker[K Unsigned] interface {
	LockBranch(key K, exclusive bool, bitIndexHint uint) BranchToken
	UnlockBranch(token BranchToken, exclusive bool)
}

type noopLocker[K Unsigned] struct{}

func (noopLocker[K]) LockBranch(K, bool, uint) BranchToken { return nil }
func (noopLocker[K]) UnlockBranch(BranchToken, bool)       {}

// RWMutexLocker is a stdlib sync.RWMutex per root slot. spec.md §5
// describes only the protocol, not a mandated implementation — a
// mutex-per-branch is the direct reading of "different root-slot
// branches are independent: concurrent modify is lock-free across
// branches whose keys' top-set-bit differs," so stdlib sync is the
// correct tool here rather than reaching for a third-party lock
// library the pack never uses for this purpose.
type RWMutexLocker[K Unsigned] struct {
	mu []sync.RWMutex
}

// NewRWMutexLocker returns a locker with one mutex per root slot, width
// must match the Head's width it will be attached to.
func NewRWMutexLocker[K Unsigned](width uint) *RWMutexLocker[K] {
	return &RWMutexLocker[K]{mu: make([]sync.RWMutex, width)}
}

func (l *RWMutexLocker[K]) LockBranch(_ K, exclusive bool, bitIndexHint uint) BranchToken {
	m := &l.mu[bitIndexHint]
	if exclusive {
		m.Lock()
	} else {
		m.RLock()
	}
	return bitIndexHint
}

func (l *RWMutexLocker[K]) UnlockBranch(token BranchToken, exclusive bool) {
	m := &l.mu[token.(uint)]
	if exclusive {
		m.Unlock()
	} else {
		m.RUnlock()
	}
}
