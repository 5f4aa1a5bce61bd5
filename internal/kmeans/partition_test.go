package kmeans

import (
	"testing"

	"github.com/hupe1980/kmeans2d/core"
	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		units int
		want  []core.Range
	}{
		{"Even", 10, 2, []core.Range{{Lo: 0, Hi: 5}, {Lo: 5, Hi: 10}}},
		{"RemainderToLast", 10, 3, []core.Range{{Lo: 0, Hi: 3}, {Lo: 3, Hi: 6}, {Lo: 6, Hi: 10}}},
		{"MoreUnitsThanPoints", 2, 3, []core.Range{{Lo: 0, Hi: 0}, {Lo: 0, Hi: 0}, {Lo: 0, Hi: 2}}},
		{"Single", 7, 1, []core.Range{{Lo: 0, Hi: 7}}},
		{"NonPositiveUnits", 4, 0, []core.Range{{Lo: 0, Hi: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Partition(tt.n, tt.units))
		})
	}
}
