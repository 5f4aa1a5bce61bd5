// Package core defines the value types shared by every layer of kmeans2d.
package core

import (
	"fmt"
	"math"
)

// Point is a 2-D coordinate. Points are values and are never mutated once
// they have been loaded into a point store.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// PointBytes is the in-memory footprint of a single Point.
const PointBytes = 16

// Range is a half-open index interval [Lo, Hi) over a point store.
type Range struct {
	Lo int
	Hi int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	if r.Hi <= r.Lo {
		return 0
	}
	return r.Hi - r.Lo
}

// Empty reports whether the range covers no indices.
func (r Range) Empty() bool {
	return r.Len() == 0
}
