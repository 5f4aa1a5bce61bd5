package distance

import (
	"testing"

	"github.com/hupe1980/kmeans2d/core"
	"github.com/stretchr/testify/assert"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     core.Point
		expected float64
	}{
		{"Identical", core.Pt(1, 1), core.Pt(1, 1), 0},
		{"Pythagorean", core.Pt(0, 0), core.Pt(3, 4), 5},
		{"Negative", core.Pt(-1, -1), core.Pt(2, 3), 5},
		{"Vertical", core.Pt(0, 0), core.Pt(0, 0.5), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Euclidean(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.expected*tt.expected, SquaredEuclidean(tt.a, tt.b), 1e-12)
		})
	}
}

func TestEuclidean_Symmetric(t *testing.T) {
	a, b := core.Pt(1.5, -7), core.Pt(-3, 2.25)
	assert.Equal(t, Euclidean(a, b), Euclidean(b, a))
}

func TestMaxAbsDelta(t *testing.T) {
	assert.Equal(t, 4.0, MaxAbsDelta(core.Pt(0, 0), core.Pt(3, -4)))
	assert.Equal(t, 0.0, MaxAbsDelta(core.Pt(2, 2), core.Pt(2, 2)))
	assert.InDelta(t, 0.5, MaxAbsDelta(core.Pt(0, 0), core.Pt(0.1, 0.5)), 1e-12)
}
