// Package device emulates a data-parallel accelerator on the host CPU.
//
// Work is launched as a flat grid of blocks, each block holding a fixed
// number of lanes. Every launch is a device-wide barrier: Launch returns
// only after every lane has run. Device-resident storage is explicit, so
// host/device transfer points are visible in the calling code.
//
// # Atomics
//
// Accumulators support lane-level atomic adds for float64 and int64.
// Whether the host executes these natively is detected at init time:
//
//   - amd64: always (LOCK CMPXCHG is baseline)
//   - arm64: when the LSE atomics extension is present
//   - other: never
//
// Set KMEANS2D_DEVICE_ATOMICS=off (or on) to override detection. Callers
// that find atomics unsupported fall back to per-block partial sums.
package device
