// Package observe provides the small publish-subscribe primitive the stores
// expose their state through: an observable value with a synchronous
// current-value read plus change notifications. Views (or the CLI) subscribe
// instead of polling; unsubscribing is explicit and deterministic.
package observe

import "sync"

// Value holds a current value of type T and a set of subscribers.
// Safe for concurrent use.
type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs map[int]func(T)
	next int
}

// NewValue returns a Value seeded with initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set replaces the current value and notifies all subscribers with it.
// Callbacks run synchronously on the caller's goroutine, outside the
// internal lock, so a callback may call Get (but a Set from inside a
// callback will re-notify, including the originating subscriber).
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	v.cur = x
	fns := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(x)
	}
}

// Subscribe registers fn for change notifications and immediately invokes it
// with the current value, so new subscribers never observe a gap. The
// returned cancel function removes the subscription; calling it more than
// once is harmless.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = fn
	cur := v.cur
	v.mu.Unlock()

	fn(cur)

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}
