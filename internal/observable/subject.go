// Package observable provides a last-value subject with replay for new subscribers.
package observable

import (
	"slices"
	"sync"
)

// delivery is one value bound for the subscribers registered when it was
// published.
type delivery[T any] struct {
	value T
	ids   []int
}

// Subject holds a current value and notifies subscribers on every Next.
// New subscribers receive the current value first.
//
// Deliveries are queued and drained by whichever caller finds the queue
// idle, outside every lock, so callbacks may call Next, Update, Subscribe or
// cancel on the same subject. A value published from inside a callback is
// delivered after the current one reaches every subscriber. Subscribers
// always see values in publish order.
type Subject[T any] struct {
	mu       sync.Mutex
	value    T
	nextID   int
	subs     map[int]func(T)
	queue    []delivery[T]
	draining bool
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Value returns the latest published value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Next publishes v to every subscriber.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	s.value = v
	s.enqueue(v, s.ids())
}

// Update applies fn to the current value and publishes the result. fn runs
// under the subject's lock and must not touch the subject.
func (s *Subject[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	s.enqueue(v, s.ids())
	return v
}

// Subscribe registers fn and replays the current value to it. The replay
// runs before Subscribe returns unless a delivery is already in progress, in
// which case it is queued behind that delivery. The returned func removes
// the subscription and is safe to call more than once.
func (s *Subject[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.enqueue(s.value, []int{id})

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// enqueue is called with s.mu held and releases it. If no other caller is
// draining, the current caller drains until the queue is empty.
func (s *Subject[T]) enqueue(v T, ids []int) {
	s.queue = append(s.queue, delivery[T]{value: v, ids: ids})
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	// A panicking subscriber must not leave the subject stuck in draining.
	done := false
	defer func() {
		if !done {
			s.mu.Lock()
			s.queue = nil
			s.draining = false
			s.mu.Unlock()
		}
	}()

	for len(s.queue) > 0 {
		d := s.queue[0]
		s.queue = s.queue[1:]
		for _, id := range d.ids {
			fn, ok := s.subs[id]
			if !ok {
				continue
			}
			s.mu.Unlock()
			fn(d.value)
			s.mu.Lock()
		}
	}
	s.queue = nil
	s.draining = false
	done = true
	s.mu.Unlock()
}

func (s *Subject[T]) ids() []int {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
