package kmeans2d

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    iterations *prometheus.CounterVec
//	    runs       *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordIteration(strategy Strategy, d time.Duration, converged bool) {
//	    p.iterations.WithLabelValues(strategy.String()).Inc()
//	}
type MetricsCollector interface {
	// RecordIteration is called after each assignment+reduction pass.
	RecordIteration(strategy Strategy, duration time.Duration, converged bool)

	// RecordRun is called once per Run, including failed ones.
	// outcome is meaningful only when err is nil.
	RecordRun(strategy Strategy, iterations int, outcome Outcome, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(Strategy, time.Duration, bool)          {}
func (NoopMetricsCollector) RecordRun(Strategy, int, Outcome, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	RunTotalNanos       atomic.Int64
	ConvergedRuns       atomic.Int64
	MaxIterationRuns    atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_ Strategy, duration time.Duration, _ bool) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ Strategy, _ int, outcome Outcome, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	switch outcome {
	case OutcomeConverged:
		b.ConvergedRuns.Add(1)
	case OutcomeMaxIterations:
		b.MaxIterationRuns.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		RunCount:          b.RunCount.Load(),
		RunErrors:         b.RunErrors.Load(),
		RunAvgNanos:       avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		ConvergedRuns:     b.ConvergedRuns.Load(),
		MaxIterationRuns:  b.MaxIterationRuns.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IterationCount    int64
	IterationAvgNanos int64
	RunCount          int64
	RunErrors         int64
	RunAvgNanos       int64
	ConvergedRuns     int64
	MaxIterationRuns  int64
}
