package kmeans

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/kmeans2d/core"
	"github.com/hupe1980/kmeans2d/internal/device"
	"github.com/hupe1980/kmeans2d/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executors() map[string]func() Executor {
	return map[string]func() Executor{
		"Sequential": func() Executor { return Sequential{} },
		"Threaded":   func() Executor { return NewThreaded(3, false) },
		"ThreadedTree": func() Executor {
			return NewThreaded(5, true)
		},
		"DataParallelAtomic": func() Executor {
			return NewDataParallel(device.New(func(o *device.Options) { o.Atomics = device.AtomicsOn }), 2)
		},
		"DataParallelFallback": func() Executor {
			return NewDataParallel(device.New(func(o *device.Options) { o.Atomics = device.AtomicsOff }), 2)
		},
	}
}

func TestRun_TwoClusterScenario(t *testing.T) {
	points := []core.Point{core.Pt(0, 0), core.Pt(0, 1), core.Pt(10, 10), core.Pt(10, 11)}
	seeds := []core.Point{core.Pt(0, 0), core.Pt(10, 10)}

	for name, newExec := range executors() {
		t.Run(name, func(t *testing.T) {
			var shifts []float64
			cfg := DefaultConfig()
			cfg.OnIteration = func(s IterationStats) { shifts = append(shifts, s.Shift) }

			st := NewState(points, seeds)
			rep, err := Run(context.Background(), newExec(), st, cfg)
			require.NoError(t, err)

			assert.Equal(t, PhaseConverged, rep.Phase)
			assert.Equal(t, 2, rep.Iterations)
			assert.Equal(t, []int{0, 0, 1, 1}, st.Assignment)
			assert.InDelta(t, 0.0, st.Centroids[0].X, 1e-12)
			assert.InDelta(t, 0.5, st.Centroids[0].Y, 1e-12)
			assert.InDelta(t, 10.0, st.Centroids[1].X, 1e-12)
			assert.InDelta(t, 10.5, st.Centroids[1].Y, 1e-12)

			require.Len(t, shifts, 2)
			assert.InDelta(t, 0.5, shifts[0], 1e-12)
			assert.InDelta(t, 0.0, shifts[1], 1e-12)
		})
	}
}

func TestRun_SeedsUntouched(t *testing.T) {
	points := []core.Point{core.Pt(0, 0), core.Pt(0, 1)}
	seeds := []core.Point{core.Pt(5, 5)}

	st := NewState(points, seeds)
	_, err := Run(context.Background(), Sequential{}, st, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, core.Pt(5, 5), seeds[0])
	assert.Equal(t, core.Pt(0, 0.5), st.Centroids[0])
}

func TestRun_MaxIterations(t *testing.T) {
	points := []core.Point{core.Pt(0, 0), core.Pt(0, 1), core.Pt(10, 10), core.Pt(10, 11)}
	seeds := []core.Point{core.Pt(0, 0), core.Pt(10, 10)}

	cfg := DefaultConfig()
	cfg.MaxIterations = 1

	st := NewState(points, seeds)
	rep, err := Run(context.Background(), Sequential{}, st, cfg)
	require.NoError(t, err)
	assert.Equal(t, PhaseMaxIterations, rep.Phase)
	assert.True(t, rep.Phase.Terminal())
	assert.Equal(t, 1, rep.Iterations)
	assert.Equal(t, core.Pt(0, 0.5), st.Centroids[0], "last centroids are still usable")
}

func TestRun_UnreachableCentroidKeepsPosition(t *testing.T) {
	rng := testutil.NewRNG(7)
	points := rng.UniformPoints(300, 0, 1)
	far := core.Pt(1000, -1000)
	seeds := []core.Point{core.Pt(0.2, 0.2), far, core.Pt(0.8, 0.8)}

	for name, newExec := range executors() {
		t.Run(name, func(t *testing.T) {
			st := NewState(points, seeds)
			rep, err := Run(context.Background(), newExec(), st, DefaultConfig())
			require.NoError(t, err)

			assert.Equal(t, far, st.Centroids[1])
			assert.Equal(t, 1, rep.EmptyClusters)
			assert.NotContains(t, st.Assignment, 1)
			for _, c := range st.Centroids {
				assert.True(t, c.IsFinite())
			}
		})
	}
}

func TestRun_ExecutorsAgree(t *testing.T) {
	rng := testutil.NewRNG(4711)
	points, centers := rng.Blobs(6, 400, 3)
	seeds := rng.Jitter(centers, 20)

	want := NewState(points, seeds)
	wantRep, err := Run(context.Background(), Sequential{}, want, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, PhaseConverged, wantRep.Phase)

	for name, newExec := range executors() {
		t.Run(name, func(t *testing.T) {
			st := NewState(points, seeds)
			rep, err := Run(context.Background(), newExec(), st, DefaultConfig())
			require.NoError(t, err)

			assert.Equal(t, wantRep.Phase, rep.Phase)
			assert.Equal(t, wantRep.Iterations, rep.Iterations)
			assert.Equal(t, want.Assignment, st.Assignment)
			for c := range want.Centroids {
				assert.InDelta(t, want.Centroids[c].X, st.Centroids[c].X, 1e-9)
				assert.InDelta(t, want.Centroids[c].Y, st.Centroids[c].Y, 1e-9)
			}
		})
	}
}

func TestRun_ConvergedIsFixedPoint(t *testing.T) {
	rng := testutil.NewRNG(1234)
	points, centers := rng.Blobs(5, 300, 8)
	seeds := rng.Jitter(centers, 30)

	for name, newExec := range executors() {
		t.Run(name, func(t *testing.T) {
			exec := newExec()
			st := NewState(points, seeds)
			rep, err := Run(context.Background(), exec, st, DefaultConfig())
			require.NoError(t, err)
			require.Equal(t, PhaseConverged, rep.Phase)

			again := NewState(points, st.Centroids)
			cfg := DefaultConfig()
			cfg.MaxIterations = 1
			_, err = Run(context.Background(), newExec(), again, cfg)
			require.NoError(t, err)

			assert.True(t, Converged(st.Centroids, again.Centroids, DefaultTolerance, ConvergenceEuclidean))
		})
	}
}

func TestRun_RandomWorkerCounts(t *testing.T) {
	rng := testutil.NewRNG(55)
	points := rng.UniformPoints(777, -5, 5)
	seeds := rng.UniformPoints(4, -5, 5)

	want := NewState(points, seeds)
	wantRep, err := Run(context.Background(), Sequential{}, want, DefaultConfig())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		workers := 1 + rng.Intn(64)
		st := NewState(points, seeds)
		rep, err := Run(context.Background(), NewThreaded(workers, i%2 == 0), st, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, wantRep.Iterations, rep.Iterations, "workers=%d", workers)
		assert.Equal(t, want.Assignment, st.Assignment, "workers=%d", workers)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := NewState([]core.Point{core.Pt(0, 0)}, []core.Point{core.Pt(1, 1)})
	rep, err := Run(ctx, Sequential{}, st, DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rep.Iterations)
}

func TestRun_NoCentroids(t *testing.T) {
	st := NewState([]core.Point{core.Pt(0, 0)}, nil)
	_, err := Run(context.Background(), Sequential{}, st, DefaultConfig())
	assert.Error(t, err)
}

type failingExecutor struct{ Sequential }

var errBoom = errors.New("boom")

func (failingExecutor) Reduce(context.Context, *State) error { return errBoom }

func TestRun_ExecutorError(t *testing.T) {
	st := NewState([]core.Point{core.Pt(0, 0)}, []core.Point{core.Pt(1, 1)})
	_, err := Run(context.Background(), failingExecutor{}, st, DefaultConfig())
	assert.ErrorIs(t, err, errBoom)
}

func TestDataParallel_NotBound(t *testing.T) {
	dp := NewDataParallel(device.New(), 0)
	st := NewState([]core.Point{core.Pt(0, 0)}, []core.Point{core.Pt(1, 1)})

	assert.ErrorIs(t, dp.Assign(context.Background(), st), ErrNotBound)
	assert.ErrorIs(t, dp.Reduce(context.Background(), st), ErrNotBound)
	assert.ErrorIs(t, dp.Unbind(st), ErrNotBound)
}

func TestDataParallel_FreesDeviceMemory(t *testing.T) {
	dev := device.New()
	st := NewState([]core.Point{core.Pt(0, 0), core.Pt(2, 2)}, []core.Point{core.Pt(1, 1)})

	_, err := Run(context.Background(), NewDataParallel(dev, 1), st, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(0), dev.Allocated())
	assert.Greater(t, dev.Launches(), int64(0))
}

func TestDataParallel_BindFailureFreesDeviceMemory(t *testing.T) {
	dev := device.New()
	st := NewState([]core.Point{core.Pt(0, 0), core.Pt(2, 2)}, []core.Point{core.Pt(1, 1)})
	st.Assignment = st.Assignment[:1]

	_, err := Run(context.Background(), NewDataParallel(dev, 1), st, DefaultConfig())
	assert.ErrorIs(t, err, device.ErrSizeMismatch)
	assert.Equal(t, int64(0), dev.Allocated())
	assert.Equal(t, int64(0), dev.Launches())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "converged", PhaseConverged.String())
	assert.Equal(t, "max-iterations", PhaseMaxIterations.String())
	assert.False(t, PhaseIterating.Terminal())
}
