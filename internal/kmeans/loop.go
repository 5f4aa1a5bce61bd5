package kmeans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/kmeans2d/core"
)

// DefaultMaxIterations is the default iteration budget.
const DefaultMaxIterations = 100

// Phase is a state of the iteration state machine.
type Phase int

const (
	// PhaseInit is the state before the first iteration.
	PhaseInit Phase = iota
	// PhaseIterating is the state while iterations are running.
	PhaseIterating
	// PhaseConverged is terminal: every centroid moved at most the tolerance.
	PhaseConverged
	// PhaseMaxIterations is terminal: the iteration budget ran out first.
	PhaseMaxIterations
)

// String returns the string representation of a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseIterating:
		return "iterating"
	case PhaseConverged:
		return "converged"
	case PhaseMaxIterations:
		return "max-iterations"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Terminal reports whether p ends the run.
func (p Phase) Terminal() bool {
	return p == PhaseConverged || p == PhaseMaxIterations
}

// Config controls the iteration loop.
type Config struct {
	MaxIterations int
	Tolerance     float64
	Convergence   ConvergenceMode

	// OnIteration, if set, is called after every iteration.
	OnIteration func(IterationStats)
}

// DefaultConfig returns the default loop configuration.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Convergence:   ConvergenceEuclidean,
	}
}

// IterationStats describes one completed iteration.
type IterationStats struct {
	Iteration     int
	Shift         float64
	EmptyClusters int
	Converged     bool
	Duration      time.Duration
}

// Report summarizes a finished run.
type Report struct {
	Phase         Phase
	Iterations    int
	Shift         float64
	EmptyClusters int
}

// Run iterates exec over st until the centroids converge or the iteration
// budget is spent. Both outcomes are successful; they are told apart by
// Report.Phase. Cancellation is observed between iterations only.
func Run(ctx context.Context, exec Executor, st *State, cfg Config) (rep Report, err error) {
	if len(st.Centroids) == 0 {
		return Report{Phase: PhaseInit}, errors.New("kmeans: no centroids")
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}

	if b, ok := exec.(Binder); ok {
		if err := b.Bind(ctx, st); err != nil {
			return Report{Phase: PhaseInit}, err
		}
		defer func() {
			if uerr := b.Unbind(st); uerr != nil && err == nil {
				err = uerr
			}
		}()
	}

	old := make([]core.Point, len(st.Centroids))
	rep.Phase = PhaseIterating

	for rep.Iterations < cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		start := time.Now()
		copy(old, st.Centroids)

		if err := exec.Assign(ctx, st); err != nil {
			return rep, fmt.Errorf("assign: %w", err)
		}
		if err := exec.Reduce(ctx, st); err != nil {
			return rep, fmt.Errorf("reduce: %w", err)
		}

		rep.EmptyClusters = st.Acc.Finalize(st.Centroids)
		rep.Iterations++
		rep.Shift = MaxShift(old, st.Centroids, cfg.Convergence)
		converged := Converged(old, st.Centroids, cfg.Tolerance, cfg.Convergence)

		if cfg.OnIteration != nil {
			cfg.OnIteration(IterationStats{
				Iteration:     rep.Iterations,
				Shift:         rep.Shift,
				EmptyClusters: rep.EmptyClusters,
				Converged:     converged,
				Duration:      time.Since(start),
			})
		}

		if converged {
			rep.Phase = PhaseConverged
			return rep, nil
		}
	}

	rep.Phase = PhaseMaxIterations
	return rep, nil
}
