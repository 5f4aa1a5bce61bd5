package distance

import (
	"math"

	"github.com/hupe1980/kmeans2d/core"
)

// SquaredEuclidean calculates the squared Euclidean distance between two points.
// Squaring uses direct multiplication rather than math.Pow.
func SquaredEuclidean(a, b core.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Euclidean calculates the Euclidean distance between two points.
func Euclidean(a, b core.Point) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// MaxAbsDelta returns the largest absolute per-coordinate difference
// between two points.
func MaxAbsDelta(a, b core.Point) float64 {
	return math.Max(math.Abs(a.X-b.X), math.Abs(a.Y-b.Y))
}

// Func is a function type for point distance calculation.
type Func func(a, b core.Point) float64
