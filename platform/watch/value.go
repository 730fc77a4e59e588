// Package watch provides a small observable value holder: a synchronous
// snapshot read plus push subscriptions that replay the current value.
package watch

import (
	"sync"
)

// Value holds a single value of type T and notifies subscribers on writes.
// Subscribers always receive the current value first. Delivery conflates:
// a slow consumer sees the latest value, not every intermediate one.
type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs map[int]chan T
	next int
}

// Sub is one subscription to a Value. Receive from C until it is closed
// or until the subscription is cancelled.
type Sub[T any] struct {
	C      <-chan T
	cancel func()
	once   sync.Once
}

// Cancel detaches the subscription and closes C. Safe to call more than once.
func (s *Sub[T]) Cancel() {
	s.once.Do(s.cancel)
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		cur:  initial,
		subs: make(map[int]chan T),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set stores t and notifies every subscriber.
func (v *Value[T]) Set(t T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = t
	for _, ch := range v.subs {
		offer(ch, t)
	}
}

// Subscribe registers a new subscription. The current value is delivered
// immediately.
func (v *Value[T]) Subscribe() *Sub[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.next
	v.next++
	ch := make(chan T, 1)
	ch <- v.cur
	v.subs[id] = ch

	return &Sub[T]{
		C: ch,
		cancel: func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if _, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(ch)
			}
		},
	}
}

// offer replaces whatever is buffered with t, so the receiver always
// observes the latest value.
func offer[T any](ch chan T, t T) {
	for {
		select {
		case ch <- t:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
