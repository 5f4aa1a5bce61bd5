package kmeans

import (
	"github.com/hupe1980/kmeans2d/core"
	"github.com/hupe1980/kmeans2d/distance"
)

// Nearest returns the index of the centroid closest to p.
// Ties go to the lowest index: centroid 0 is the initial minimum and is
// only replaced on a strictly smaller distance.
func Nearest(p core.Point, centroids []core.Point) int {
	best := 0
	minDist := distance.Euclidean(p, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := distance.Euclidean(p, centroids[j]); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}

// AssignRange writes the nearest-centroid index of every point in r into
// assignment. Callers running AssignRange concurrently must pass disjoint
// ranges; no other synchronization is needed.
func AssignRange(points, centroids []core.Point, assignment []int, r core.Range) {
	for i := r.Lo; i < r.Hi; i++ {
		assignment[i] = Nearest(points[i], centroids)
	}
}
