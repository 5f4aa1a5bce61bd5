package mmap

import "errors"

// AccessPattern is a hint about how mapped data will be read.
type AccessPattern int

const (
	// AccessDefault requests no specific behaviour.
	AccessDefault AccessPattern = iota
	// AccessSequential is used for point files parsed front to back.
	AccessSequential
	// AccessWillNeed asks the kernel to prefetch the mapping.
	AccessWillNeed
	// AccessDontNeed releases cached pages early.
	AccessDontNeed
)

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size is negative.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned for negative read offsets.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
