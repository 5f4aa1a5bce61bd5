package kmeans

import (
	"context"
	"errors"

	"github.com/hupe1980/kmeans2d/core"
	"github.com/hupe1980/kmeans2d/distance"
	"github.com/hupe1980/kmeans2d/internal/device"
)

// ErrNotBound is returned when a DataParallel executor is used before Bind.
var ErrNotBound = errors.New("kmeans: data-parallel executor is not bound")

// DataParallel runs one lane per point on an emulated device. Points are
// copied to the device once; centroids are copied in before every
// assignment launch and the sums and counts are copied out after every
// reduction launch. The assignment stays on the device until Unbind.
//
// When the device does not support atomics, the reduction launch falls
// back to one partial accumulator per block, merged under a mutex.
type DataParallel struct {
	dev       *device.Device
	blockSize int

	n, k      int
	grid      device.Grid
	points    *device.Buffer[core.Point]
	centroids *device.Buffer[core.Point]
	clusters  *device.Buffer[int]
	sumX      *device.Float64Accumulator
	sumY      *device.Float64Accumulator
	counts    *device.Int64Accumulator
}

// NewDataParallel creates a DataParallel executor on dev with blockSize
// lanes per block.
func NewDataParallel(dev *device.Device, blockSize int) *DataParallel {
	if blockSize <= 0 {
		blockSize = device.DefaultBlockSize
	}
	return &DataParallel{dev: dev, blockSize: blockSize}
}

// Name implements Executor.
func (d *DataParallel) Name() string { return "data-parallel" }

// Device returns the underlying device.
func (d *DataParallel) Device() *device.Device { return d.dev }

// Bind implements Binder. It allocates device storage and copies the
// point store and initial assignment to the device. On error all device
// storage is released again.
func (d *DataParallel) Bind(_ context.Context, st *State) (err error) {
	d.n, d.k = len(st.Points), len(st.Centroids)
	d.grid = device.GridFor(d.n, d.blockSize)

	d.points = device.Alloc[core.Point](d.dev, d.n)
	d.centroids = device.Alloc[core.Point](d.dev, d.k)
	d.clusters = device.Alloc[int](d.dev, d.n)
	d.sumX = device.AllocFloat64Accumulator(d.dev, d.k)
	d.sumY = device.AllocFloat64Accumulator(d.dev, d.k)
	d.counts = device.AllocInt64Accumulator(d.dev, d.k)

	defer func() {
		if err != nil {
			d.free()
		}
	}()

	if err = d.points.CopyFromHost(st.Points); err != nil {
		return err
	}
	return d.clusters.CopyFromHost(st.Assignment)
}

// Unbind implements Binder. It copies the final assignment back to the
// host and frees device storage.
func (d *DataParallel) Unbind(st *State) error {
	if d.points == nil {
		return ErrNotBound
	}
	err := d.clusters.CopyToHost(st.Assignment)
	d.free()
	return err
}

func (d *DataParallel) free() {
	d.points.Free()
	d.centroids.Free()
	d.clusters.Free()
	d.sumX.Free()
	d.sumY.Free()
	d.counts.Free()
	d.points = nil
}

// Assign implements Executor.
func (d *DataParallel) Assign(ctx context.Context, st *State) error {
	if d.points == nil {
		return ErrNotBound
	}
	if err := d.centroids.CopyFromHost(st.Centroids); err != nil {
		return err
	}

	return d.dev.Launch(ctx, d.grid, d.n, func(l device.Lane) {
		idx := l.Index()
		p := d.points.At(idx)

		best := 0
		minDist := distance.Euclidean(p, d.centroids.At(0))
		for j := 1; j < d.k; j++ {
			if dist := distance.Euclidean(p, d.centroids.At(j)); dist < minDist {
				minDist = dist
				best = j
			}
		}
		d.clusters.Set(idx, best)
	})
}

// Reduce implements Executor.
func (d *DataParallel) Reduce(ctx context.Context, st *State) error {
	if d.points == nil {
		return ErrNotBound
	}

	d.sumX.Memset()
	d.sumY.Memset()
	d.counts.Memset()

	var err error
	if d.dev.SupportsAtomics() {
		err = d.reduceAtomic(ctx)
	} else {
		err = d.reducePartial(ctx)
	}
	if err != nil {
		return err
	}

	st.Acc.Reset()
	if err := d.sumX.CopyToHost(st.Acc.SumX); err != nil {
		return err
	}
	if err := d.sumY.CopyToHost(st.Acc.SumY); err != nil {
		return err
	}
	return d.counts.CopyToHost(st.Acc.Count)
}

func (d *DataParallel) reduceAtomic(ctx context.Context) error {
	return d.dev.Launch(ctx, d.grid, d.n, func(l device.Lane) {
		idx := l.Index()
		c := d.clusters.At(idx)
		p := d.points.At(idx)
		d.sumX.AtomicAdd(c, p.X)
		d.sumY.AtomicAdd(c, p.Y)
		d.counts.AtomicAdd(c, 1)
	})
}

// reducePartial gives every block a private accumulator and merges it into
// the device accumulators once the block is done.
func (d *DataParallel) reducePartial(ctx context.Context) error {
	global := NewAccumulator(d.k)
	combiner := NewMutexCombiner(global)

	err := d.dev.LaunchBlocks(ctx, d.grid, d.n, func(_ int, span core.Range) {
		local := NewAccumulator(d.k)
		for i := span.Lo; i < span.Hi; i++ {
			local.Add(d.clusters.At(i), d.points.At(i))
		}
		combiner.Combine(local)
	})
	if err != nil {
		return err
	}

	for c := 0; c < d.k; c++ {
		d.sumX.AtomicAdd(c, global.SumX[c])
		d.sumY.AtomicAdd(c, global.SumY[c])
		d.counts.AtomicAdd(c, global.Count[c])
	}
	return nil
}
