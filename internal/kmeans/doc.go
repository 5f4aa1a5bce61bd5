// Package kmeans implements Lloyd's k-means iteration over 2-D points.
//
// An iteration has three phases: nearest-centroid assignment, per-cluster
// reduction into an Accumulator, and a convergence test against the
// previous centroids. The assignment and reduction phases are delegated to
// an Executor; three are provided:
//
//   - Sequential: one pass on the calling goroutine
//   - Threaded: a fixed pool of workers over contiguous chunks, merging
//     worker-local partial sums under a mutex (or a tree reduction)
//   - DataParallel: one lane per point on an emulated device, adding into
//     shared accumulators with atomic adds
//
// All executors produce the same centroids up to floating-point summation
// order, and the same number of iterations.
package kmeans
