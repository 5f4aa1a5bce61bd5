package kmeans2d

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when the number of seeds is zero.
	ErrInvalidK = errors.New("k must be positive")

	// ErrTooManyClusters is returned when k exceeds the number of points.
	ErrTooManyClusters = errors.New("k exceeds number of points")

	// ErrNoPoints is returned for an empty point set.
	ErrNoPoints = errors.New("no points")

	// ErrSeedCount is returned when the seed count does not match the
	// configured k.
	ErrSeedCount = errors.New("seed count mismatch")

	// ErrInvalidConfig is returned for out-of-range options or non-finite input.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrAllocation is returned when run storage cannot be reserved.
	ErrAllocation = errors.New("allocation failed")
)

// ErrClusterCount reports k > n.
type ErrClusterCount struct {
	K int
	N int
}

func (e *ErrClusterCount) Error() string {
	return fmt.Sprintf("k exceeds number of points: k=%d, n=%d", e.K, e.N)
}

func (e *ErrClusterCount) Unwrap() error { return ErrTooManyClusters }

// ErrSeedMismatch reports a seed count that differs from the requested k.
type ErrSeedMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrSeedMismatch) Error() string {
	return fmt.Sprintf("seed count mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrSeedMismatch) Unwrap() error { return ErrSeedCount }

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
