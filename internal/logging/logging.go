// Package logging constructs the zap logger used by the index's
// debug-mode invariant validator and by cmd/fredkin.
package logging

import "go.uber.org/zap"

// New returns a production-configured logger, or a development-configured
// one (human-readable, debug level, stack traces on warn+) when debug is
// true. Callers that never enable debug invariant checking can ignore
// this package entirely — core/trie.New never touches a logger.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Must is New but panics on construction failure, for callers (like
// cmd/fredkin's newSession) that have no sensible fallback.
func Must(debug bool) *zap.Logger {
	log, err := New(debug)
	if err != nil {
		panic(err)
	}
	return log
}
