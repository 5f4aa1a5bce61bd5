package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_IsFinite(t *testing.T) {
	assert.True(t, Pt(1, -2).IsFinite())
	assert.False(t, Pt(math.NaN(), 0).IsFinite())
	assert.False(t, Pt(0, math.Inf(-1)).IsFinite())
}

func TestRange_Len(t *testing.T) {
	assert.Equal(t, 3, Range{Lo: 2, Hi: 5}.Len())
	assert.Equal(t, 0, Range{Lo: 5, Hi: 5}.Len())
	assert.Equal(t, 0, Range{Lo: 6, Hi: 5}.Len())
	assert.True(t, Range{Lo: 4, Hi: 4}.Empty())
}
