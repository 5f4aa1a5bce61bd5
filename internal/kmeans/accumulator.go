package kmeans

import (
	"github.com/hupe1980/kmeans2d/core"
)

// Accumulator holds per-cluster coordinate sums and point counts.
type Accumulator struct {
	SumX  []float64
	SumY  []float64
	Count []int64
}

// NewAccumulator creates a zeroed accumulator for k clusters.
func NewAccumulator(k int) *Accumulator {
	return &Accumulator{
		SumX:  make([]float64, k),
		SumY:  make([]float64, k),
		Count: make([]int64, k),
	}
}

// AccumulatorBytes is the memory needed by an accumulator for k clusters.
func AccumulatorBytes(k int) int64 {
	return int64(k) * 24
}

// K returns the number of clusters.
func (a *Accumulator) K() int {
	return len(a.Count)
}

// Reset zeroes every sum and count.
func (a *Accumulator) Reset() {
	clear(a.SumX)
	clear(a.SumY)
	clear(a.Count)
}

// Add accumulates p into cluster c.
func (a *Accumulator) Add(c int, p core.Point) {
	a.SumX[c] += p.X
	a.SumY[c] += p.Y
	a.Count[c]++
}

// AddRange accumulates every point in r into its assigned cluster.
func (a *Accumulator) AddRange(points []core.Point, assignment []int, r core.Range) {
	for i := r.Lo; i < r.Hi; i++ {
		a.Add(assignment[i], points[i])
	}
}

// Merge adds every sum and count of o into a.
func (a *Accumulator) Merge(o *Accumulator) {
	for c := range a.Count {
		a.SumX[c] += o.SumX[c]
		a.SumY[c] += o.SumY[c]
		a.Count[c] += o.Count[c]
	}
}

// Total returns the number of points accumulated over all clusters.
func (a *Accumulator) Total() int64 {
	var n int64
	for _, c := range a.Count {
		n += c
	}
	return n
}

// Finalize writes the mean of every non-empty cluster into centroids.
// Clusters with no points keep their previous centroid. It returns the
// number of empty clusters.
func (a *Accumulator) Finalize(centroids []core.Point) int {
	empty := 0
	for c, n := range a.Count {
		if n == 0 {
			empty++
			continue
		}
		centroids[c] = core.Point{
			X: a.SumX[c] / float64(n),
			Y: a.SumY[c] / float64(n),
		}
	}
	return empty
}
