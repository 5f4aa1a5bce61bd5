package kmeans

import (
	"fmt"

	"github.com/hupe1980/kmeans2d/core"
	"github.com/hupe1980/kmeans2d/distance"
)

// DefaultTolerance is the default centroid movement threshold.
const DefaultTolerance = 1e-4

// ConvergenceMode selects how centroid movement is measured.
type ConvergenceMode int

const (
	// ConvergenceEuclidean measures the Euclidean distance moved.
	ConvergenceEuclidean ConvergenceMode = iota
	// ConvergencePerCoordinate measures the largest per-coordinate change.
	ConvergencePerCoordinate
)

// String returns the string representation of a ConvergenceMode.
func (m ConvergenceMode) String() string {
	switch m {
	case ConvergenceEuclidean:
		return "euclidean"
	case ConvergencePerCoordinate:
		return "per-coordinate"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

func (m ConvergenceMode) measure() distance.Func {
	if m == ConvergencePerCoordinate {
		return distance.MaxAbsDelta
	}
	return distance.Euclidean
}

// Converged reports whether every centroid moved by at most tol.
// It stops at the first centroid that moved further.
func Converged(old, cur []core.Point, tol float64, mode ConvergenceMode) bool {
	measure := mode.measure()
	for c := range cur {
		if measure(old[c], cur[c]) > tol {
			return false
		}
	}
	return true
}

// MaxShift returns the largest movement of any centroid.
func MaxShift(old, cur []core.Point, mode ConvergenceMode) float64 {
	measure := mode.measure()
	shift := 0.0
	for c := range cur {
		shift = max(shift, measure(old[c], cur[c]))
	}
	return shift
}
