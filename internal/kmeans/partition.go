package kmeans

import "github.com/hupe1980/kmeans2d/core"

// Partition splits [0, n) into units contiguous, non-overlapping chunks of
// n/units indices each; the last chunk also takes the remainder. When
// units > n the leading chunks are empty.
func Partition(n, units int) []core.Range {
	if units <= 0 {
		units = 1
	}
	chunk := n / units
	ranges := make([]core.Range, units)
	for u := range ranges {
		lo := u * chunk
		hi := lo + chunk
		if u == units-1 {
			hi = n
		}
		ranges[u] = core.Range{Lo: lo, Hi: hi}
	}
	return ranges
}
