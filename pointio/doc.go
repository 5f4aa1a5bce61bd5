// Package pointio reads and writes 2-D point files.
//
// A point file holds one point per line as two whitespace separated numbers:
//
//	0 0
//	0 1
//	10.5 10
//
// Blank lines are skipped. Files whose name ends in .zst, .gz or .lz4 are
// decompressed transparently.
//
//	points, err := pointio.ReadFile(ctx, "data/points.txt.zst")
//	points, err := pointio.ReadBlob(ctx, store, "points.txt", pointio.WithLimit(1000))
//
// By default the whole input is scanned. WithLimit reads exactly n points and
// fails with ErrShortInput when fewer are present.
package pointio
