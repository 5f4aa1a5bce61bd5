package kmeans2d

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeans2d/core"
	"github.com/hupe1980/kmeans2d/internal/conv"
	"github.com/hupe1980/kmeans2d/internal/device"
	"github.com/hupe1980/kmeans2d/internal/kmeans"
)

// Strategy selects how assignment and reduction are executed.
type Strategy int

const (
	// StrategySequential runs both phases on the calling goroutine.
	StrategySequential Strategy = iota
	// StrategyThreaded runs both phases on a fixed worker pool with
	// per-worker partial sums merged after each phase.
	StrategyThreaded
	// StrategyDataParallel runs one lane per point on an emulated device
	// with atomic accumulation.
	StrategyDataParallel
)

// String returns the stable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyThreaded:
		return "threaded"
	case StrategyDataParallel:
		return "data-parallel"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses a strategy name as returned by Strategy.String.
// "gpu" and "device" are accepted as aliases for data-parallel.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq":
		return StrategySequential, nil
	case "threaded", "threads":
		return StrategyThreaded, nil
	case "data-parallel", "dataparallel", "gpu", "device":
		return StrategyDataParallel, nil
	default:
		return 0, invalidConfig("unknown strategy %q", s)
	}
}

// Outcome is the terminal state of a successful run.
type Outcome int

const (
	// OutcomeConverged means every centroid moved at most the tolerance.
	OutcomeConverged Outcome = iota
	// OutcomeMaxIterations means the iteration budget ran out first.
	OutcomeMaxIterations
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeConverged:
		return "converged"
	case OutcomeMaxIterations:
		return "max-iterations"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ConvergenceMode selects how centroid shift is measured.
type ConvergenceMode = kmeans.ConvergenceMode

const (
	// ConvergenceEuclidean compares the Euclidean shift of each centroid.
	ConvergenceEuclidean = kmeans.ConvergenceEuclidean
	// ConvergencePerCoordinate compares |dx| and |dy| separately.
	ConvergencePerCoordinate = kmeans.ConvergencePerCoordinate
)

// Result is the output of a run.
type Result struct {
	Strategy Strategy
	Outcome  Outcome

	// Centroids are the final centroid positions, indexed by cluster.
	Centroids []core.Point

	// Assignment maps each point index to the cluster it was last assigned to.
	Assignment []int

	// Iterations is the number of completed assignment+reduction passes.
	Iterations int

	// Shift is the largest centroid movement of the final iteration.
	Shift float64

	// EmptyClusters is the number of clusters that received no point in
	// the final iteration. Their centroids kept their previous position.
	EmptyClusters int

	// Elapsed is the wall time of the iteration loop.
	Elapsed time.Duration

	members []*roaring.Bitmap
}

// Converged reports whether the run reached the tolerance.
func (r *Result) Converged() bool {
	return r.Outcome == OutcomeConverged
}

// K returns the number of clusters.
func (r *Result) K() int {
	return len(r.Centroids)
}

// Members returns the indices of the points assigned to cluster c.
// The bitmap is shared; clone it before mutating.
func (r *Result) Members(c int) *roaring.Bitmap {
	r.buildMembers()
	if c < 0 || c >= len(r.members) {
		return roaring.New()
	}
	return r.members[c]
}

// Sizes returns the number of points per cluster.
func (r *Result) Sizes() []uint64 {
	r.buildMembers()
	sizes := make([]uint64, len(r.members))
	for i, m := range r.members {
		sizes[i] = m.GetCardinality()
	}
	return sizes
}

func (r *Result) buildMembers() {
	if r.members != nil {
		return
	}
	members := make([]*roaring.Bitmap, len(r.Centroids))
	for i := range members {
		members[i] = roaring.New()
	}
	// Run rejects point sets whose indices overflow uint32.
	for i, c := range r.Assignment {
		members[c].Add(uint32(i))
	}
	for _, m := range members {
		m.RunOptimize()
	}
	r.members = members
}

// Clusterer runs k-means over 2-D points with a fixed configuration.
// It is safe for concurrent use; every Run gets its own working state.
type Clusterer struct {
	opts options
}

// New creates a Clusterer.
func New(optFns ...Option) (*Clusterer, error) {
	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Clusterer{opts: o}, nil
}

// Run clusters points starting from seeds, one seed per cluster.
// points and seeds are not modified.
func Run(ctx context.Context, points, seeds []core.Point, optFns ...Option) (*Result, error) {
	c, err := New(optFns...)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, points, seeds)
}

// Strategy returns the configured strategy.
func (c *Clusterer) Strategy() Strategy {
	return c.opts.strategy
}

// Run clusters points starting from seeds, one seed per cluster.
//
// Reaching the iteration budget is not an error; inspect Result.Outcome.
// The context is checked between iterations.
func (c *Clusterer) Run(ctx context.Context, points, seeds []core.Point) (res *Result, err error) {
	o := c.opts
	start := time.Now()
	log := o.logger.WithStrategy(o.strategy).WithK(len(seeds)).WithCount(len(points))

	iterations := 0
	defer func() {
		outcome := OutcomeMaxIterations
		if res != nil {
			outcome = res.Outcome
		}
		o.metricsCollector.RecordRun(o.strategy, iterations, outcome, time.Since(start), err)
		log.LogRunDone(ctx, outcome, iterations, time.Since(start), err)
	}()

	if err := validateInput(points, seeds); err != nil {
		return nil, err
	}

	if err := o.rc.AcquireRun(ctx); err != nil {
		return nil, err
	}
	defer o.rc.ReleaseRun()

	resv, err := o.rc.Reserve(c.runBytes(len(points), len(seeds)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	defer resv.Release()

	exec := c.newExecutor()
	st := kmeans.NewState(points, seeds)

	cfg := kmeans.Config{
		MaxIterations: o.maxIterations,
		Tolerance:     o.tolerance,
		Convergence:   o.convergence,
		OnIteration: func(s kmeans.IterationStats) {
			iterations = s.Iteration
			o.metricsCollector.RecordIteration(o.strategy, s.Duration, s.Converged)
			log.LogIteration(ctx, s.Iteration, s.Shift, s.EmptyClusters, s.Converged)
		},
	}

	log.LogRunStart(ctx, o.maxIterations, o.tolerance)

	loopStart := time.Now()
	rep, err := kmeans.Run(ctx, exec, st, cfg)
	elapsed := time.Since(loopStart)
	iterations = rep.Iterations
	if err != nil {
		return nil, err
	}

	res = &Result{
		Strategy:      o.strategy,
		Outcome:       OutcomeMaxIterations,
		Centroids:     st.Centroids,
		Assignment:    st.Assignment,
		Iterations:    rep.Iterations,
		Shift:         rep.Shift,
		EmptyClusters: rep.EmptyClusters,
		Elapsed:       elapsed,
	}
	if rep.Phase == kmeans.PhaseConverged {
		res.Outcome = OutcomeConverged
	}
	return res, nil
}

func (c *Clusterer) newExecutor() kmeans.Executor {
	o := c.opts
	switch o.strategy {
	case StrategyThreaded:
		return kmeans.NewThreaded(o.workers, o.treeMerge)
	case StrategyDataParallel:
		dev := device.New(func(do *device.Options) {
			do.Atomics = o.atomics
		})
		return kmeans.NewDataParallel(dev, o.blockSize)
	default:
		return kmeans.Sequential{}
	}
}

// runBytes is the storage a run allocates beyond the caller's points.
func (c *Clusterer) runBytes(n, k int) int64 {
	b := kmeans.StateBytes(n, k)
	switch c.opts.strategy {
	case StrategyThreaded:
		b += int64(c.opts.workers) * kmeans.AccumulatorBytes(k)
	case StrategyDataParallel:
		// Device copies of points, centroids, assignment and accumulators.
		b += int64(n)*core.PointBytes + kmeans.StateBytes(n, k)
	}
	return b
}

func validateInput(points, seeds []core.Point) error {
	if len(seeds) == 0 {
		return ErrInvalidK
	}
	if len(points) == 0 {
		return ErrNoPoints
	}
	if len(seeds) > len(points) {
		return &ErrClusterCount{K: len(seeds), N: len(points)}
	}
	if _, err := conv.IntToUint32(len(points) - 1); err != nil {
		return invalidConfig("too many points: %v", err)
	}
	for i, s := range seeds {
		if !s.IsFinite() {
			return invalidConfig("seed %d is not finite: %v", i, s)
		}
	}
	for i, p := range points {
		if !p.IsFinite() {
			return invalidConfig("point %d is not finite: %v", i, p)
		}
	}
	return nil
}

// ValidateSeeds checks that exactly k seeds were supplied.
func ValidateSeeds(k int, seeds []core.Point) error {
	if k < 1 {
		return ErrInvalidK
	}
	if len(seeds) != k {
		return &ErrSeedMismatch{Expected: k, Actual: len(seeds)}
	}
	return nil
}

// IsPreconditionError reports whether err rejects the run's input rather
// than describing a failure during it.
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrInvalidK) || errors.Is(err, ErrTooManyClusters) ||
		errors.Is(err, ErrNoPoints) || errors.Is(err, ErrSeedCount) ||
		errors.Is(err, ErrInvalidConfig)
}
