package pointio

import (
	"bytes"
	"testing"

	"github.com/hupe1980/kmeans2d/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []core.Point{{X: 0, Y: 0.5}, {X: -10, Y: 1e21}, {X: 0.1, Y: 3}})
	require.NoError(t, err)
	assert.Equal(t, "0 0.5\n-10 1e+21\n0.1 3\n", buf.String())
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Empty(t, buf.String())
}
