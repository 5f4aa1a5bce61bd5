package device

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/hupe1980/kmeans2d/core"
	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the default number of lanes per block.
const DefaultBlockSize = 512

// AtomicsMode selects how a Device decides whether lanes may use atomic adds.
type AtomicsMode int

const (
	// AtomicsAuto uses the detected host capability.
	AtomicsAuto AtomicsMode = iota
	// AtomicsOn forces atomic accumulation.
	AtomicsOn
	// AtomicsOff forces the per-block partial fallback.
	AtomicsOff
)

// Options configures a Device.
type Options struct {
	// Concurrency is the number of blocks that may execute at once.
	// If <= 0, defaults to runtime.GOMAXPROCS(0).
	Concurrency int

	// Atomics overrides capability detection.
	Atomics AtomicsMode
}

// Device is an emulated data-parallel accelerator.
// It is safe for concurrent use, but launches are not reentrant:
// a kernel must not launch another kernel.
type Device struct {
	concurrency int
	atomics     bool

	launches  atomic.Int64
	allocated atomic.Int64
}

// New creates a new Device.
func New(optFns ...func(o *Options)) *Device {
	opts := Options{Atomics: AtomicsAuto}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	d := &Device{concurrency: opts.Concurrency}
	switch opts.Atomics {
	case AtomicsOn:
		d.atomics = true
	case AtomicsOff:
		d.atomics = false
	default:
		d.atomics = AtomicsEnabled()
	}
	return d
}

// SupportsAtomics reports whether kernels on this device may use atomic adds.
func (d *Device) SupportsAtomics() bool {
	return d.atomics
}

// Launches returns the number of kernel launches performed so far.
func (d *Device) Launches() int64 {
	return d.launches.Load()
}

// Allocated returns the number of device bytes currently allocated.
func (d *Device) Allocated() int64 {
	return d.allocated.Load()
}

// Grid describes a flat launch configuration.
type Grid struct {
	Blocks    int
	BlockSize int
}

// GridFor returns the smallest grid covering n lanes.
// If blockSize <= 0, DefaultBlockSize is used.
func GridFor(n, blockSize int) Grid {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if n <= 0 {
		return Grid{Blocks: 0, BlockSize: blockSize}
	}
	return Grid{
		Blocks:    (n + blockSize - 1) / blockSize,
		BlockSize: blockSize,
	}
}

// Lanes returns the total number of lanes in the grid.
func (g Grid) Lanes() int {
	return g.Blocks * g.BlockSize
}

// Span returns the global lane indices of block b that fall below n.
// Lanes at or past n are idle.
func (g Grid) Span(b, n int) core.Range {
	lo := b * g.BlockSize
	hi := min(lo+g.BlockSize, n)
	if hi < lo {
		hi = lo
	}
	return core.Range{Lo: lo, Hi: hi}
}

// Lane identifies a single execution lane within a launch.
type Lane struct {
	Block     int
	Thread    int
	BlockSize int
}

// Index returns the global lane index.
func (l Lane) Index() int {
	return l.Block*l.BlockSize + l.Thread
}

// Kernel is executed once per active lane.
type Kernel func(l Lane)

// BlockKernel is executed once per block with the block's active lane span.
type BlockKernel func(block int, span core.Range)

// Launch runs k on every active lane of g and waits for all of them.
// Only lanes whose global index is below n are active.
func (d *Device) Launch(ctx context.Context, g Grid, n int, k Kernel) error {
	return d.LaunchBlocks(ctx, g, n, func(block int, span core.Range) {
		for i := span.Lo; i < span.Hi; i++ {
			k(Lane{Block: block, Thread: i - span.Lo, BlockSize: g.BlockSize})
		}
	})
}

// LaunchBlocks runs bk once per block of g and waits for all of them.
// Cancellation is observed between blocks; a cancelled launch returns
// ctx.Err() after the blocks already started have finished.
func (d *Device) LaunchBlocks(ctx context.Context, g Grid, n int, bk BlockKernel) error {
	d.launches.Add(1)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(d.concurrency)

	for b := 0; b < g.Blocks; b++ {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			bk(b, g.Span(b, n))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
