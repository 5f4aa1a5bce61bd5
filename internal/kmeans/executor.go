package kmeans

import (
	"context"

	"github.com/hupe1980/kmeans2d/core"
)

// State is the mutable working set of a run. Points are read-only for the
// life of the run; Centroids, Assignment and Acc are recomputed in full
// every iteration.
type State struct {
	Points     []core.Point
	Centroids  []core.Point
	Assignment []int
	Acc        *Accumulator
}

// NewState creates a State over points, seeded with a copy of seeds.
func NewState(points, seeds []core.Point) *State {
	centroids := make([]core.Point, len(seeds))
	copy(centroids, seeds)
	return &State{
		Points:     points,
		Centroids:  centroids,
		Assignment: make([]int, len(points)),
		Acc:        NewAccumulator(len(seeds)),
	}
}

// StateBytes is the memory a State needs beyond the point store itself.
func StateBytes(n, k int) int64 {
	return int64(k)*core.PointBytes + int64(n)*8 + AccumulatorBytes(k)
}

// Executor runs the assignment and reduction phases of an iteration.
type Executor interface {
	// Name returns a stable identifier for logging and metrics.
	Name() string

	// Assign writes a complete assignment for st.Centroids. Every index of
	// st.Assignment is written before Assign returns.
	Assign(ctx context.Context, st *State) error

	// Reduce resets st.Acc and fills it with the per-cluster sums and
	// counts of the current assignment. All partial results are merged
	// before Reduce returns.
	Reduce(ctx context.Context, st *State) error
}

// Binder is implemented by executors that keep their own copy of the
// state, such as a device. Bind is called once before the first
// iteration, Unbind once after the last.
type Binder interface {
	Bind(ctx context.Context, st *State) error
	Unbind(st *State) error
}
