// Package kmeans2d clusters 2-D points with Lloyd's k-means algorithm.
//
// A run starts from k caller-supplied seed centroids and alternates two
// phases until every centroid moves by at most the tolerance or the
// iteration budget is spent:
//
//   - Assignment: each point goes to its nearest centroid (ties to the
//     lowest cluster index).
//   - Reduction: per-cluster coordinate sums and counts are accumulated and
//     each centroid is replaced by the mean of its points. A cluster that
//     received no point keeps its previous centroid.
//
// # Quick Start
//
//	points, _ := pointio.ReadFile(ctx, "points.txt")
//	seeds := []core.Point{core.Pt(0, 0), core.Pt(10, 10)}
//
//	res, err := kmeans2d.Run(ctx, points, seeds)
//	if err != nil { ... }
//	if res.Converged() {
//	    fmt.Printf("Converged after %d iterations.\n", res.Iterations)
//	}
//
// # Strategies
//
// Three interchangeable strategies produce the same centroids up to
// floating-point summation order:
//
//	// Single goroutine.
//	c := kmeans2d.Sequential().MustBuild()
//
//	// Fixed worker pool; each worker sums its contiguous chunk locally and
//	// the partials are merged once per iteration.
//	c := kmeans2d.Threaded(8).MustBuild()
//
//	// One lane per point on an emulated device with atomic accumulation,
//	// falling back to per-block partials where atomics are unavailable.
//	c := kmeans2d.DataParallel().BlockSize(512).MustBuild()
//
// # Outcomes and Errors
//
// Hitting the iteration budget is a normal outcome (OutcomeMaxIterations),
// not an error. Errors are reserved for rejected input (ErrInvalidK,
// ErrTooManyClusters, ErrNoPoints, ErrInvalidConfig), storage that cannot
// be reserved (ErrAllocation) and context cancellation, which is observed
// between iterations.
//
// # Results
//
// Result carries the final centroids, the point-to-cluster assignment and
// per-cluster membership as roaring bitmaps:
//
//	for c := range res.K() {
//	    fmt.Println(res.Centroids[c], res.Members(c).GetCardinality())
//	}
package kmeans2d
