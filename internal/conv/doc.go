// Package conv provides bounds-checked integer conversions.
//
// Point indices are stored as uint32 in cluster membership bitmaps, so
// point counts are checked once with IntToUint32 before a run starts.
// Conversions that are provably safe afterwards use direct casts.
package conv
