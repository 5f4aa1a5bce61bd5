package kmeans2d

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/kmeans2d/internal/device"
	"github.com/hupe1980/kmeans2d/internal/kmeans"
	"github.com/hupe1980/kmeans2d/resource"
)

const (
	// DefaultMaxIterations is the iteration budget of a run.
	DefaultMaxIterations = kmeans.DefaultMaxIterations

	// DefaultTolerance is the largest centroid shift still considered converged.
	DefaultTolerance = kmeans.DefaultTolerance

	// DefaultBlockSize is the number of lanes per block for StrategyDataParallel.
	DefaultBlockSize = device.DefaultBlockSize
)

type options struct {
	strategy         Strategy
	workers          int
	treeMerge        bool
	blockSize        int
	atomics          device.AtomicsMode
	maxIterations    int
	tolerance        float64
	convergence      ConvergenceMode
	rc               *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Clusterer.
type Option func(*options)

// WithStrategy selects the execution strategy. Default: StrategySequential.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithWorkers sets the worker pool size for StrategyThreaded.
// Default: runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTreeMerge merges threaded partial sums pairwise instead of under a
// shared lock. Results are identical up to floating-point summation order.
func WithTreeMerge(enabled bool) Option {
	return func(o *options) {
		o.treeMerge = enabled
	}
}

// WithBlockSize sets the lanes per block for StrategyDataParallel.
func WithBlockSize(n int) Option {
	return func(o *options) {
		o.blockSize = n
	}
}

// WithMaxIterations sets the iteration budget. Default: 100.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance sets the convergence tolerance. Default: 1e-4.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithConvergence selects how centroid shift is measured.
// Default: ConvergenceEuclidean.
func WithConvergence(mode ConvergenceMode) Option {
	return func(o *options) {
		o.convergence = mode
	}
}

// WithResourceController bounds run memory and concurrent runs.
// Pass nil to run unbounded.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithForceAtomics overrides atomic capability detection for
// StrategyDataParallel. false selects the per-block partial fallback.
func WithForceAtomics(enabled bool) Option {
	return func(o *options) {
		if enabled {
			o.atomics = device.AtomicsOn
		} else {
			o.atomics = device.AtomicsOff
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeans2d.BasicMetricsCollector{}
//	c, _ := kmeans2d.New(kmeans2d.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg iteration: %dns\n", stats.RunCount, stats.IterationAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeans2d.NewJSONLogger(slog.LevelInfo)
//	c, _ := kmeans2d.New(kmeans2d.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		strategy:         StrategySequential,
		workers:          runtime.GOMAXPROCS(0),
		blockSize:        DefaultBlockSize,
		atomics:          device.AtomicsAuto,
		maxIterations:    DefaultMaxIterations,
		tolerance:        DefaultTolerance,
		convergence:      ConvergenceEuclidean,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

func (o options) validate() error {
	switch o.strategy {
	case StrategySequential, StrategyThreaded, StrategyDataParallel:
	default:
		return invalidConfig("unknown strategy %d", int(o.strategy))
	}
	if o.workers <= 0 {
		return invalidConfig("workers must be positive, got %d", o.workers)
	}
	if o.blockSize <= 0 {
		return invalidConfig("block size must be positive, got %d", o.blockSize)
	}
	if o.maxIterations <= 0 {
		return invalidConfig("max iterations must be positive, got %d", o.maxIterations)
	}
	if !(o.tolerance >= 0) {
		return invalidConfig("tolerance must be non-negative, got %g", o.tolerance)
	}
	switch o.convergence {
	case ConvergenceEuclidean, ConvergencePerCoordinate:
	default:
		return invalidConfig("unknown convergence mode %d", int(o.convergence))
	}
	return nil
}
