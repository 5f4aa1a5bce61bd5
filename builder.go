// This file implements strategy-specific fluent builder APIs for creating
// Clusterers. Builders are immutable - each method returns a new builder
// with the updated configuration.

package kmeans2d

import "github.com/hupe1980/kmeans2d/resource"

// common holds the settings shared by every strategy builder.
type common struct {
	maxIterations int
	tolerance     float64
	convergence   ConvergenceMode
	rc            *resource.Controller
	logger        *Logger
	metrics       MetricsCollector
}

func newCommon() common {
	return common{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
		convergence:   ConvergenceEuclidean,
	}
}

func (c common) options(s Strategy) []Option {
	opts := []Option{
		WithStrategy(s),
		WithMaxIterations(c.maxIterations),
		WithTolerance(c.tolerance),
		WithConvergence(c.convergence),
	}
	if c.rc != nil {
		opts = append(opts, WithResourceController(c.rc))
	}
	if c.logger != nil {
		opts = append(opts, WithLogger(c.logger))
	}
	if c.metrics != nil {
		opts = append(opts, WithMetricsCollector(c.metrics))
	}
	return opts
}

func mustBuild(c *Clusterer, err error) *Clusterer {
	if err != nil {
		panic(err)
	}
	return c
}

// =============================================================================
// Sequential Builder (Immutable)
// =============================================================================

// Sequential creates a builder for single-goroutine clustering.
//
// Example:
//
//	c, err := kmeans2d.Sequential().
//	    MaxIterations(50).
//	    Tolerance(1e-6).
//	    Build()
func Sequential() SequentialBuilder {
	return SequentialBuilder{common: newCommon()}
}

// SequentialBuilder is an immutable fluent builder for sequential Clusterers.
type SequentialBuilder struct {
	common
}

// MaxIterations sets the iteration budget. Default: 100.
func (b SequentialBuilder) MaxIterations(n int) SequentialBuilder {
	b.maxIterations = n
	return b
}

// Tolerance sets the convergence tolerance. Default: 1e-4.
func (b SequentialBuilder) Tolerance(tol float64) SequentialBuilder {
	b.tolerance = tol
	return b
}

// PerCoordinate measures convergence per axis instead of by Euclidean shift.
func (b SequentialBuilder) PerCoordinate() SequentialBuilder {
	b.convergence = ConvergencePerCoordinate
	return b
}

// ResourceController bounds run memory and concurrency.
func (b SequentialBuilder) ResourceController(rc *resource.Controller) SequentialBuilder {
	b.rc = rc
	return b
}

// Logger sets the structured logger.
func (b SequentialBuilder) Logger(l *Logger) SequentialBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b SequentialBuilder) Metrics(mc MetricsCollector) SequentialBuilder {
	b.metrics = mc
	return b
}

// Build creates the Clusterer.
func (b SequentialBuilder) Build() (*Clusterer, error) {
	return New(b.options(StrategySequential)...)
}

// MustBuild creates the Clusterer, panicking on error.
func (b SequentialBuilder) MustBuild() *Clusterer {
	return mustBuild(b.Build())
}

// =============================================================================
// Threaded Builder (Immutable)
// =============================================================================

// Threaded creates a builder for worker-pool clustering with the given
// number of workers.
//
// Example:
//
//	c, err := kmeans2d.Threaded(8).
//	    TreeMerge(true).
//	    Build()
func Threaded(workers int) ThreadedBuilder {
	return ThreadedBuilder{common: newCommon(), workers: workers}
}

// ThreadedBuilder is an immutable fluent builder for threaded Clusterers.
type ThreadedBuilder struct {
	common
	workers   int
	treeMerge bool
}

// Workers sets the worker pool size.
func (b ThreadedBuilder) Workers(n int) ThreadedBuilder {
	b.workers = n
	return b
}

// TreeMerge merges partial sums pairwise instead of under a shared lock.
func (b ThreadedBuilder) TreeMerge(enabled bool) ThreadedBuilder {
	b.treeMerge = enabled
	return b
}

// MaxIterations sets the iteration budget. Default: 100.
func (b ThreadedBuilder) MaxIterations(n int) ThreadedBuilder {
	b.maxIterations = n
	return b
}

// Tolerance sets the convergence tolerance. Default: 1e-4.
func (b ThreadedBuilder) Tolerance(tol float64) ThreadedBuilder {
	b.tolerance = tol
	return b
}

// PerCoordinate measures convergence per axis instead of by Euclidean shift.
func (b ThreadedBuilder) PerCoordinate() ThreadedBuilder {
	b.convergence = ConvergencePerCoordinate
	return b
}

// ResourceController bounds run memory and concurrency.
func (b ThreadedBuilder) ResourceController(rc *resource.Controller) ThreadedBuilder {
	b.rc = rc
	return b
}

// Logger sets the structured logger.
func (b ThreadedBuilder) Logger(l *Logger) ThreadedBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b ThreadedBuilder) Metrics(mc MetricsCollector) ThreadedBuilder {
	b.metrics = mc
	return b
}

// Build creates the Clusterer.
func (b ThreadedBuilder) Build() (*Clusterer, error) {
	opts := append(b.options(StrategyThreaded),
		WithWorkers(b.workers),
		WithTreeMerge(b.treeMerge),
	)
	return New(opts...)
}

// MustBuild creates the Clusterer, panicking on error.
func (b ThreadedBuilder) MustBuild() *Clusterer {
	return mustBuild(b.Build())
}

// =============================================================================
// DataParallel Builder (Immutable)
// =============================================================================

// DataParallel creates a builder for clustering on the emulated
// data-parallel device.
//
// Example:
//
//	c, err := kmeans2d.DataParallel().
//	    BlockSize(256).
//	    Build()
func DataParallel() DataParallelBuilder {
	return DataParallelBuilder{common: newCommon(), blockSize: DefaultBlockSize}
}

// DataParallelBuilder is an immutable fluent builder for data-parallel Clusterers.
type DataParallelBuilder struct {
	common
	blockSize int
	atomics   *bool
}

// BlockSize sets the lanes per block. Default: 512.
func (b DataParallelBuilder) BlockSize(n int) DataParallelBuilder {
	b.blockSize = n
	return b
}

// ForceAtomics overrides atomic capability detection.
func (b DataParallelBuilder) ForceAtomics(enabled bool) DataParallelBuilder {
	b.atomics = &enabled
	return b
}

// MaxIterations sets the iteration budget. Default: 100.
func (b DataParallelBuilder) MaxIterations(n int) DataParallelBuilder {
	b.maxIterations = n
	return b
}

// Tolerance sets the convergence tolerance. Default: 1e-4.
func (b DataParallelBuilder) Tolerance(tol float64) DataParallelBuilder {
	b.tolerance = tol
	return b
}

// PerCoordinate measures convergence per axis instead of by Euclidean shift.
func (b DataParallelBuilder) PerCoordinate() DataParallelBuilder {
	b.convergence = ConvergencePerCoordinate
	return b
}

// ResourceController bounds run memory and concurrency.
func (b DataParallelBuilder) ResourceController(rc *resource.Controller) DataParallelBuilder {
	b.rc = rc
	return b
}

// Logger sets the structured logger.
func (b DataParallelBuilder) Logger(l *Logger) DataParallelBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b DataParallelBuilder) Metrics(mc MetricsCollector) DataParallelBuilder {
	b.metrics = mc
	return b
}

// Build creates the Clusterer.
func (b DataParallelBuilder) Build() (*Clusterer, error) {
	opts := append(b.options(StrategyDataParallel), WithBlockSize(b.blockSize))
	if b.atomics != nil {
		opts = append(opts, WithForceAtomics(*b.atomics))
	}
	return New(opts...)
}

// MustBuild creates the Clusterer, panicking on error.
func (b DataParallelBuilder) MustBuild() *Clusterer {
	return mustBuild(b.Build())
}
