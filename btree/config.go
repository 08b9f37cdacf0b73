package btree

import (
	"cmp"
	"fmt"
)

const (
	// DefaultDegree is the minimum degree used when Config.Degree is left at 0.
	DefaultDegree = 3
	// MinDegree is the smallest legal minimum degree.
	MinDegree = 2
)

// KeyFunc extracts the ordering key from a record.
type KeyFunc[K, R any] func(R) K

// CompareFunc defines a total order on keys. It returns a negative number
// for a < b, zero for a == b and a positive number for a > b.
type CompareFunc[K any] func(a, b K) int

// Config configures a B-tree.
//
// The key extraction is fixed for the lifetime of a tree, so one tree never
// mixes key kinds (e.g., titles and numeric IDs).
type Config[K, R any] struct {
	// Degree is the minimum degree t. Every non-root node holds between t-1
	// and 2t-1 records. 0 selects DefaultDegree.
	Degree int
	// Key extracts the ordering key of a record.
	Key KeyFunc[K, R]
	// Compare orders keys.
	Compare CompareFunc[K]
}

// Ordered returns a configuration for keys with a natural order.
func Ordered[K cmp.Ordered, R any](degree int, key KeyFunc[K, R]) Config[K, R] {
	return Config[K, R]{
		Degree:  degree,
		Key:     key,
		Compare: cmp.Compare[K],
	}
}

func (cfg Config[K, R]) normalized() Config[K, R] {
	if cfg.Degree == 0 {
		cfg.Degree = DefaultDegree
	}
	return cfg
}

func (cfg Config[K, R]) validate() error {
	cfg = cfg.normalized()
	if cfg.Degree < MinDegree {
		return fmt.Errorf("%w: minimum degree must be >= %d, is %d", ErrInvalidConfig, MinDegree, cfg.Degree)
	}
	if cfg.Key == nil {
		return fmt.Errorf("%w: key function is required", ErrInvalidConfig)
	}
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	return nil
}
