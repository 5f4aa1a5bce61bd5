package kmeans

import (
	"context"

	"github.com/hupe1980/kmeans2d/core"
)

// Sequential runs both phases on the calling goroutine.
type Sequential struct{}

// Name implements Executor.
func (Sequential) Name() string { return "sequential" }

// Assign implements Executor.
func (Sequential) Assign(_ context.Context, st *State) error {
	AssignRange(st.Points, st.Centroids, st.Assignment, core.Range{Lo: 0, Hi: len(st.Points)})
	return nil
}

// Reduce implements Executor.
func (Sequential) Reduce(_ context.Context, st *State) error {
	st.Acc.Reset()
	st.Acc.AddRange(st.Points, st.Assignment, core.Range{Lo: 0, Hi: len(st.Points)})
	return nil
}
