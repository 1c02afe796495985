// Package atomic provides a small lock-free flag used to coordinate a
// one-shot shutdown signal without taking a mutex on the hot path.
package atomic

import "sync/atomic"

// Bool is an atomically accessed boolean flag. The zero value is false.
type Bool struct {
	v atomic.Value
}

// Set atomically stores value.
func (b *Bool) Set(value bool) {
	b.v.Store(value)
}

// Get atomically loads the current value.
func (b *Bool) Get() bool {
	value, _ := b.v.Load().(bool)

	return value
}
