package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrInvariant signals a violated structural invariant, reported by Check.
	ErrInvariant = errors.New("btree: invariant violated")
)
