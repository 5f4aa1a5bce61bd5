// Package mmap maps point files read-only into memory.
//
//	m, err := mmap.Open("points.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows uses CreateFileMapping and
// MapViewOfFile; Advise is a no-op there.
//
// Close is idempotent. Slices returned by Bytes must not be used after Close.
package mmap
