// Package testutil provides testing utilities for kmeans2d.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and helpers for generating point
// sets with known cluster structure.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(1000, -10, 10)
//	blobs, centers := rng.Blobs(4, 250, 0.5)
//
// # Partitions
//
//	cuts := rng.Partition(len(pts), 7) // random contiguous chunks
package testutil
