package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/kmeans2d/core"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints returns num points with both coordinates in [lo, hi).
func (r *RNG) UniformPoints(num int, lo, hi float64) []core.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]core.Point, num)
	for i := range pts {
		pts[i] = core.Point{
			X: lo + r.rand.Float64()*(hi-lo),
			Y: lo + r.rand.Float64()*(hi-lo),
		}
	}
	return pts
}

// Blobs generates clusters*perCluster points in well separated gaussian
// blobs. Centers are placed on a grid with spacing 100, so blobs with a
// spread well below that never overlap. Points are returned grouped by
// blob, along with the blob centers.
func (r *RNG) Blobs(clusters, perCluster int, spread float64) ([]core.Point, []core.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([]core.Point, clusters)
	for c := range centers {
		centers[c] = core.Point{X: float64(c%4) * 100, Y: float64(c/4) * 100}
	}

	pts := make([]core.Point, 0, clusters*perCluster)
	for _, center := range centers {
		for i := 0; i < perCluster; i++ {
			pts = append(pts, core.Point{
				X: center.X + r.rand.NormFloat64()*spread,
				Y: center.Y + r.rand.NormFloat64()*spread,
			})
		}
	}
	return pts, centers
}

// Jitter returns a copy of pts with each coordinate shifted by up to
// ±amount.
func (r *RNG) Jitter(pts []core.Point, amount float64) []core.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]core.Point, len(pts))
	for i, p := range pts {
		out[i] = core.Point{
			X: p.X + (r.rand.Float64()*2-1)*amount,
			Y: p.Y + (r.rand.Float64()*2-1)*amount,
		}
	}
	return out
}

// Partition splits [0, n) into parts contiguous ranges with random,
// possibly empty, sizes.
func (r *RNG) Partition(n, parts int) []core.Range {
	r.mu.Lock()
	defer r.mu.Unlock()

	cuts := make([]int, parts-1)
	for i := range cuts {
		cuts[i] = r.rand.Intn(n + 1)
	}
	sort.Ints(cuts)

	ranges := make([]core.Range, parts)
	lo := 0
	for i := range ranges {
		hi := n
		if i < len(cuts) {
			hi = cuts[i]
		}
		ranges[i] = core.Range{Lo: lo, Hi: hi}
		lo = hi
	}
	return ranges
}
