package trie

import "github.com/pkg/errors"

// Error is the index's typed-error catalog, in the shape of the
// teacher's own internal/rpc/starknet error codes: a stable code plus a
// human message, adapted from StarkNet RPC error reporting to the three
// error kinds spec.md §7 names.
type Error struct {
	Code    int
	Message string
}

func (e Error) Error() string { return e.Message }

var (
	// ErrCapacityExhausted is the kind for an Insert attempted at count ==
	// MaxSize (spec.md §7 kind 1). Insert itself signals it only by
	// returning the end iterator and never returns this value; it is
	// exposed for callers that want a concrete error value to report.
	ErrCapacityExhausted = Error{Code: 1, Message: "index at capacity, insert refused"}

	// ErrKeyNotFound is the "not found" kind (spec.md §7 kind 2). It is
	// never returned directly by core/trie — Find/EraseKey/Contains/Count
	// signal it via nil, false, or zero — but
	// it is exposed for callers (e.g. the CLI) that want a concrete error
	// value to report rather than an end iterator.
	ErrKeyNotFound = Error{Code: 2, Message: "key not found"}
)

// contractViolation marks spec.md §7 kind 3: a programmer error such as
// dereferencing the end iterator or indexing with an absent key. These
// are not recoverable; the engine panics rather than threading an error
// return through every total operation, matching spec.md's
// "implementation may abort the process... not recovered." Erasing an
// item that isn't indexed is not detected by Erase and raises no panic.
type contractViolation struct {
	err error
}

func (c contractViolation) Error() string { return c.err.Error() }

func errContractViolation(msg string) error {
	return contractViolation{err: errors.New(msg)}
}

// IsContractViolation reports whether v (or an error it wraps) is a
// caller-contract violation panic value, for callers that choose to
// recover() at a boundary (e.g. a request handler) instead of crashing.
func IsContractViolation(v any) bool {
	err, ok := v.(error)
	var cv contractViolation
	return ok && errors.As(err, &cv)
}
