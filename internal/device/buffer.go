package device

import (
	"errors"
	"math"
	"sync/atomic"
	"unsafe"
)

// ErrSizeMismatch is returned when a host/device copy has mismatched lengths.
var ErrSizeMismatch = errors.New("device: host and device sizes differ")

// Buffer is device-resident storage for values of type T.
// Kernels read and write it through At and Set; the host only sees its
// contents through CopyToHost.
type Buffer[T any] struct {
	dev   *Device
	data  []T
	bytes int64
}

// Alloc allocates a zeroed buffer of n elements on d.
func Alloc[T any](d *Device, n int) *Buffer[T] {
	var zero T
	bytes := int64(n) * int64(unsafe.Sizeof(zero))
	d.allocated.Add(bytes)
	return &Buffer[T]{dev: d, data: make([]T, n), bytes: bytes}
}

// Len returns the number of elements in the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// At returns element i.
func (b *Buffer[T]) At(i int) T {
	return b.data[i]
}

// Set stores v at element i. Concurrent lanes must write disjoint indices.
func (b *Buffer[T]) Set(i int, v T) {
	b.data[i] = v
}

// CopyFromHost copies src into the buffer.
func (b *Buffer[T]) CopyFromHost(src []T) error {
	if len(src) != len(b.data) {
		return ErrSizeMismatch
	}
	copy(b.data, src)
	return nil
}

// CopyToHost copies the buffer into dst.
func (b *Buffer[T]) CopyToHost(dst []T) error {
	if len(dst) != len(b.data) {
		return ErrSizeMismatch
	}
	copy(dst, b.data)
	return nil
}

// Memset zeroes the buffer.
func (b *Buffer[T]) Memset() {
	clear(b.data)
}

// Free releases the buffer. It is idempotent.
func (b *Buffer[T]) Free() {
	if b.data == nil {
		return
	}
	b.dev.allocated.Add(-b.bytes)
	b.data = nil
}

// Float64Accumulator is a device-resident float64 array supporting
// lane-level atomic adds. Values are stored as IEEE-754 bits.
type Float64Accumulator struct {
	dev  *Device
	bits []uint64
}

// AllocFloat64Accumulator allocates a zeroed accumulator of n elements on d.
func AllocFloat64Accumulator(d *Device, n int) *Float64Accumulator {
	d.allocated.Add(int64(n) * 8)
	return &Float64Accumulator{dev: d, bits: make([]uint64, n)}
}

// Len returns the number of elements.
func (a *Float64Accumulator) Len() int {
	return len(a.bits)
}

// AtomicAdd adds delta to element i.
func (a *Float64Accumulator) AtomicAdd(i int, delta float64) {
	addr := &a.bits[i]
	for {
		old := atomic.LoadUint64(addr)
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(addr, old, next) {
			return
		}
	}
}

// Load returns element i.
func (a *Float64Accumulator) Load(i int) float64 {
	return math.Float64frombits(atomic.LoadUint64(&a.bits[i]))
}

// Memset zeroes the accumulator. It must not race with a launch.
func (a *Float64Accumulator) Memset() {
	clear(a.bits)
}

// CopyToHost copies the accumulator into dst.
func (a *Float64Accumulator) CopyToHost(dst []float64) error {
	if len(dst) != len(a.bits) {
		return ErrSizeMismatch
	}
	for i := range a.bits {
		dst[i] = math.Float64frombits(a.bits[i])
	}
	return nil
}

// Free releases the accumulator. It is idempotent.
func (a *Float64Accumulator) Free() {
	if a.bits == nil {
		return
	}
	a.dev.allocated.Add(-int64(len(a.bits)) * 8)
	a.bits = nil
}

// Int64Accumulator is a device-resident int64 array supporting
// lane-level atomic adds.
type Int64Accumulator struct {
	dev  *Device
	vals []int64
}

// AllocInt64Accumulator allocates a zeroed accumulator of n elements on d.
func AllocInt64Accumulator(d *Device, n int) *Int64Accumulator {
	d.allocated.Add(int64(n) * 8)
	return &Int64Accumulator{dev: d, vals: make([]int64, n)}
}

// Len returns the number of elements.
func (a *Int64Accumulator) Len() int {
	return len(a.vals)
}

// AtomicAdd adds delta to element i.
func (a *Int64Accumulator) AtomicAdd(i int, delta int64) {
	atomic.AddInt64(&a.vals[i], delta)
}

// Load returns element i.
func (a *Int64Accumulator) Load(i int) int64 {
	return atomic.LoadInt64(&a.vals[i])
}

// Memset zeroes the accumulator. It must not race with a launch.
func (a *Int64Accumulator) Memset() {
	clear(a.vals)
}

// CopyToHost copies the accumulator into dst.
func (a *Int64Accumulator) CopyToHost(dst []int64) error {
	if len(dst) != len(a.vals) {
		return ErrSizeMismatch
	}
	copy(dst, a.vals)
	return nil
}

// Free releases the accumulator. It is idempotent.
func (a *Int64Accumulator) Free() {
	if a.vals == nil {
		return
	}
	a.dev.allocated.Add(-int64(len(a.vals)) * 8)
	a.vals = nil
}
