package kmeans

import (
	"context"

	"github.com/hupe1980/kmeans2d/core"
	"golang.org/x/sync/errgroup"
)

// Threaded runs each phase on a fixed number of workers, one contiguous
// chunk of points per worker. Workers are spawned per phase; joining them
// is the barrier between assignment and reduction, and between reduction
// and finalization.
type Threaded struct {
	workers  int
	tree     bool
	ranges   []core.Range
	partials []*Accumulator
}

// NewThreaded creates a Threaded executor with the given number of
// workers. If tree is true, partial sums are merged by tree reduction
// instead of under a mutex.
func NewThreaded(workers int, tree bool) *Threaded {
	if workers <= 0 {
		workers = 1
	}
	return &Threaded{workers: workers, tree: tree}
}

// Name implements Executor.
func (t *Threaded) Name() string { return "threaded" }

// Workers returns the pool size.
func (t *Threaded) Workers() int { return t.workers }

func (t *Threaded) prepare(st *State) {
	if len(t.ranges) == 0 || t.ranges[len(t.ranges)-1].Hi != len(st.Points) {
		t.ranges = Partition(len(st.Points), t.workers)
	}
	k := st.Acc.K()
	if len(t.partials) != t.workers || t.partials[0].K() != k {
		t.partials = make([]*Accumulator, t.workers)
		for w := range t.partials {
			t.partials[w] = NewAccumulator(k)
		}
	}
}

// Assign implements Executor.
func (t *Threaded) Assign(ctx context.Context, st *State) error {
	t.prepare(st)

	g, _ := errgroup.WithContext(ctx)
	for _, r := range t.ranges {
		g.Go(func() error {
			AssignRange(st.Points, st.Centroids, st.Assignment, r)
			return nil
		})
	}
	return g.Wait()
}

// Reduce implements Executor.
func (t *Threaded) Reduce(ctx context.Context, st *State) error {
	t.prepare(st)
	st.Acc.Reset()

	var combiner Combiner
	if t.tree {
		combiner = NewTreeCombiner(st.Acc)
	} else {
		combiner = NewMutexCombiner(st.Acc)
	}

	g, _ := errgroup.WithContext(ctx)
	for w, r := range t.ranges {
		g.Go(func() error {
			local := t.partials[w]
			local.Reset()
			local.AddRange(st.Points, st.Assignment, r)
			combiner.Combine(local)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	combiner.Flush()
	return nil
}
