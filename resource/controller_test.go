package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Reserve(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	r1, err := c.Reserve(50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	r2, err := c.Reserve(40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	_, err = c.Reserve(20)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	r1.Release()
	r1.Release()
	assert.Equal(t, int64(40), c.MemoryUsage())

	r3, err := c.Reserve(20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())

	r2.Release()
	r3.Release()
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})

	r, err := c.Reserve(1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())

	r.Release()
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	r, err := c.Reserve(1 << 40)
	require.NoError(t, err)
	r.Release()
	assert.NoError(t, c.AcquireRun(context.Background()))
	assert.True(t, c.TryAcquireRun())
	c.ReleaseRun()
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<20))
}

func TestController_Runs(t *testing.T) {
	c := NewController(Config{MaxConcurrentRuns: 2})

	require.NoError(t, c.AcquireRun(context.Background()))
	require.NoError(t, c.AcquireRun(context.Background()))
	assert.False(t, c.TryAcquireRun())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireRun(ctx), context.DeadlineExceeded)

	c.ReleaseRun()
	assert.True(t, c.TryAcquireRun())
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	src := strings.Repeat("0 1\n", 1000)

	r := NewRateLimitedReader(context.Background(), strings.NewReader(src), c)
	var buf bytes.Buffer
	_, err := io.Copy(&buf, r)
	require.NoError(t, err)
	assert.Equal(t, src, buf.String())
}

func TestRateLimitedReader_Cancelled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRateLimitedReader(ctx, strings.NewReader("0 0\n"), c)
	_, err := r.Read(make([]byte, 1))
	assert.Error(t, err)
}
