package lifecycle

import (
	"sync"

	"github.com/nextcore/tether/pkg/errors"
	"github.com/nextcore/tether/pkg/stream"
)

// Scope is a registry of cancellable units of work released together on a
// lifecycle trigger. Unlike a one-shot disposer list, a Scope is reusable:
// handles acquired after a Clear are tracked toward the next Clear.
type Scope struct {
	mu      sync.Mutex
	gen     uint64
	handles []func()
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Acquire registers a cancellation handle with the scope. It returns an
// unregister function that removes the handle without running it.
func (s *Scope) Acquire(cancel func()) (release func()) {
	if cancel == nil {
		return func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.gen
	index := len(s.handles)
	s.handles = append(s.handles, cancel)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A Clear since acquisition already forgot this handle.
		if s.gen == gen && index < len(s.handles) {
			s.handles[index] = nil
		}
	}
}

// AcquireSubscription registers a stream subscription for cancellation.
func (s *Scope) AcquireSubscription(sub *stream.Subscription) (release func()) {
	return s.Acquire(sub.Cancel)
}

// Clear cancels and forgets every registered handle, most recent first.
// Each handle runs at most once. Clearing an empty scope is a no-op, and
// repeated clears are safe. A panicking handle is recovered and reported
// so the remaining handles still run.
func (s *Scope) Clear() {
	s.mu.Lock()
	handles := s.handles
	s.handles = nil
	s.gen++
	s.mu.Unlock()

	for i := len(handles) - 1; i >= 0; i-- {
		if handles[i] == nil {
			continue
		}
		runHandle(handles[i])
	}
}

// Len returns the number of handles pending the next Clear.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.handles {
		if h != nil {
			n++
		}
	}
	return n
}

func runHandle(h func()) {
	defer errors.Recover("lifecycle.Scope.Clear")
	h()
}
