package observable

import (
	"sync"
	"testing"
	"time"
)

// within fails the test if fn does not return before the deadline.
func within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("call did not return")
	}
}

func TestSubscribeReplaysLatest(t *testing.T) {
	s := NewSubject(1)
	s.Next(2)

	var got []int
	cancel := s.Subscribe(func(v int) { got = append(got, v) })
	defer cancel()

	s.Next(3)

	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("expected [2 3], got %v", got)
	}
	if s.Value() != 3 {
		t.Errorf("expected value 3, got %d", s.Value())
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	s := NewSubject("a")
	calls := 0
	cancel := s.Subscribe(func(string) { calls++ })
	cancel()
	cancel()

	s.Next("b")
	if calls != 1 {
		t.Fatalf("expected only the replay call, got %d", calls)
	}
}

func TestSubscribersCalledInRegistrationOrder(t *testing.T) {
	s := NewSubject(0)
	var order []string
	s.Subscribe(func(v int) {
		if v == 1 {
			order = append(order, "first")
		}
	})
	s.Subscribe(func(v int) {
		if v == 1 {
			order = append(order, "second")
		}
	})

	s.Next(1)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestUpdate(t *testing.T) {
	s := NewSubject(10)
	got := s.Update(func(v int) int { return v + 5 })
	if got != 15 || s.Value() != 15 {
		t.Fatalf("expected 15, got %d / %d", got, s.Value())
	}
}

func TestConcurrentNext(t *testing.T) {
	s := NewSubject(0)
	var mu sync.Mutex
	seen := 0
	s.Subscribe(func(int) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Next(v)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if seen != 51 {
		t.Fatalf("expected 51 deliveries, got %d", seen)
	}
}

func TestNextFromInsideCallback(t *testing.T) {
	s := NewSubject(0)
	var first, second []int
	s.Subscribe(func(v int) {
		first = append(first, v)
		if v == 1 {
			s.Next(2)
		}
	})
	s.Subscribe(func(v int) { second = append(second, v) })

	within(t, time.Second, func() { s.Next(1) })

	// The nested value waits until 1 has reached every subscriber.
	if len(second) != 3 || second[0] != 0 || second[1] != 1 || second[2] != 2 {
		t.Fatalf("second subscriber saw %v, want [0 1 2]", second)
	}
	if len(first) != 3 || first[2] != 2 {
		t.Fatalf("first subscriber saw %v, want [0 1 2]", first)
	}
	if s.Value() != 2 {
		t.Errorf("expected value 2, got %d", s.Value())
	}
}

func TestSubscribeAndCancelFromInsideCallback(t *testing.T) {
	s := NewSubject("a")
	var nested []string
	var cancelOuter func()
	cancelOuter = s.Subscribe(func(v string) {
		if v != "b" {
			return
		}
		s.Subscribe(func(v string) { nested = append(nested, v) })
		cancelOuter()
	})

	within(t, time.Second, func() {
		s.Next("b")
		s.Next("c")
	})

	if len(nested) != 2 || nested[0] != "b" || nested[1] != "c" {
		t.Fatalf("nested subscriber saw %v, want [b c]", nested)
	}
}

func TestPanickingSubscriberDoesNotWedgeSubject(t *testing.T) {
	s := NewSubject(0)
	cancel := s.Subscribe(func(v int) {
		if v == 1 {
			panic("boom")
		}
	})

	func() {
		defer func() { _ = recover() }()
		s.Next(1)
	}()
	cancel()

	var got []int
	s.Subscribe(func(v int) { got = append(got, v) })
	within(t, time.Second, func() { s.Next(2) })
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected [1 2] after panic, got %v", got)
	}
}
