package kmeans

import (
	"testing"

	"github.com/hupe1980/kmeans2d/core"
	"github.com/stretchr/testify/assert"
)

func TestConverged(t *testing.T) {
	old := []core.Point{core.Pt(0, 0), core.Pt(10, 10)}

	tests := []struct {
		name string
		cur  []core.Point
		mode ConvergenceMode
		want bool
	}{
		{"Unchanged", []core.Point{core.Pt(0, 0), core.Pt(10, 10)}, ConvergenceEuclidean, true},
		{"WithinTolerance", []core.Point{core.Pt(5e-5, 0), core.Pt(10, 10)}, ConvergenceEuclidean, true},
		{"ExactlyTolerance", []core.Point{core.Pt(0, 1e-4), core.Pt(10, 10)}, ConvergencePerCoordinate, true},
		{"Moved", []core.Point{core.Pt(0, 0.5), core.Pt(10, 10)}, ConvergenceEuclidean, false},
		// Diagonal move of 8e-5 per axis: euclidean ~1.13e-4, per-coordinate 8e-5.
		{"DiagonalEuclidean", []core.Point{core.Pt(8e-5, 8e-5), core.Pt(10, 10)}, ConvergenceEuclidean, false},
		{"DiagonalPerCoordinate", []core.Point{core.Pt(8e-5, 8e-5), core.Pt(10, 10)}, ConvergencePerCoordinate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Converged(old, tt.cur, DefaultTolerance, tt.mode))
		})
	}
}

func TestMaxShift(t *testing.T) {
	old := []core.Point{core.Pt(0, 0), core.Pt(10, 10)}
	cur := []core.Point{core.Pt(0, 0.5), core.Pt(13, 14)}

	assert.InDelta(t, 5.0, MaxShift(old, cur, ConvergenceEuclidean), 1e-12)
	assert.InDelta(t, 4.0, MaxShift(old, cur, ConvergencePerCoordinate), 1e-12)
}

func TestConvergenceMode_String(t *testing.T) {
	assert.Equal(t, "euclidean", ConvergenceEuclidean.String())
	assert.Equal(t, "per-coordinate", ConvergencePerCoordinate.String())
	assert.Equal(t, "Unknown(9)", ConvergenceMode(9).String())
}
