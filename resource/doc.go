// Package resource bounds the memory and IO a clustering run may use.
//
// A Controller may be shared by several runs. Memory reservations are
// non-blocking: a reservation that would exceed the budget fails with
// ErrMemoryLimitExceeded instead of waiting, so allocation failures surface
// before any iteration starts. IO is throttled with a token bucket.
package resource
