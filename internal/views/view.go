// Package views implements the observable state exposed to UI consumers.
// A View holds one value and notifies subscribers on every mutation;
// concurrent writers interleave arbitrarily and the last write wins.
package views

import "sync"

// View is a mutex-guarded observable value.
type View[T any] struct {
	mu    sync.RWMutex
	value T

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(T)
}

func New[T any](initial T) *View[T] {
	return &View[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (v *View[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set replaces the value and notifies subscribers.
func (v *View[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	v.mu.Unlock()
	v.publish(value)
}

// Update applies fn to the current value under the write lock and notifies
// subscribers with the result.
func (v *View[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	v.value = fn(v.value)
	value := v.value
	v.mu.Unlock()
	v.publish(value)
	return value
}

// Subscribe registers fn to run on every mutation and returns a cancel
// function. Callbacks run synchronously on the mutating goroutine and
// must not mutate the view themselves.
func (v *View[T]) Subscribe(fn func(T)) (cancel func()) {
	v.subMu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.subMu.Unlock()

	return func() {
		v.subMu.Lock()
		delete(v.subs, id)
		v.subMu.Unlock()
	}
}

func (v *View[T]) publish(value T) {
	v.subMu.Lock()
	fns := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		fns = append(fns, fn)
	}
	v.subMu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}
