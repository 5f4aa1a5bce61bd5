// Package distance provides the planar distance functions used by the
// assignment and convergence steps.
//
// # Supported Measures
//
//   - Euclidean: straight-line distance, used for nearest-centroid search
//   - SquaredEuclidean: Euclidean without the square root
//   - MaxAbsDelta: largest per-coordinate absolute difference (Chebyshev)
//
// # Usage
//
//	d := distance.Euclidean(core.Pt(0, 0), core.Pt(3, 4)) // 5
//	shift := distance.MaxAbsDelta(old, cur)
package distance
