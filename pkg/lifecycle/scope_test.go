package lifecycle

import (
	"testing"

	"github.com/nextcore/tether/pkg/errors"
	"github.com/nextcore/tether/pkg/stream"
)

// TestScopeClearRunsHandles verifies every registered handle runs on Clear.
func TestScopeClearRunsHandles(t *testing.T) {
	s := NewScope()

	ran := make(map[string]int)
	s.Acquire(func() { ran["a"]++ })
	s.Acquire(func() { ran["b"]++ })

	s.Clear()

	if ran["a"] != 1 || ran["b"] != 1 {
		t.Errorf("handles ran %v, want each exactly once", ran)
	}
}

// TestScopeClearIsIdempotent verifies a second Clear releases nothing twice.
func TestScopeClearIsIdempotent(t *testing.T) {
	s := NewScope()

	count := 0
	s.Acquire(func() { count++ })

	s.Clear()
	s.Clear()

	if count != 1 {
		t.Errorf("handle ran %d times, want 1", count)
	}
}

// TestScopeClearEmpty verifies clearing with zero registrations is safe.
func TestScopeClearEmpty(t *testing.T) {
	s := NewScope()
	s.Clear()
}

// TestScopeReusableAfterClear verifies acquire-after-clear is tracked
// toward the next clear, since Bound/Unbound may cycle.
func TestScopeReusableAfterClear(t *testing.T) {
	s := NewScope()

	first, second := 0, 0
	s.Acquire(func() { first++ })
	s.Clear()

	s.Acquire(func() { second++ })
	if s.Len() != 1 {
		t.Errorf("Len() = %d after re-acquire, want 1", s.Len())
	}
	s.Clear()

	if first != 1 || second != 1 {
		t.Errorf("first ran %d, second ran %d, want 1 and 1", first, second)
	}
}

// TestScopeClearOrder verifies handles run most recent first.
func TestScopeClearOrder(t *testing.T) {
	s := NewScope()

	var order []int
	s.Acquire(func() { order = append(order, 1) })
	s.Acquire(func() { order = append(order, 2) })
	s.Acquire(func() { order = append(order, 3) })

	s.Clear()

	want := []int{3, 2, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("clear order = %v, want %v", order, want)
		}
	}
}

// TestScopeRelease verifies an unregistered handle is not run.
func TestScopeRelease(t *testing.T) {
	s := NewScope()

	count := 0
	release := s.Acquire(func() { count++ })
	release()
	s.Clear()

	if count != 0 {
		t.Errorf("released handle ran %d times, want 0", count)
	}
}

// TestScopeReleaseAfterClear verifies a stale release does not disturb
// handles acquired after the clear.
func TestScopeReleaseAfterClear(t *testing.T) {
	s := NewScope()

	release := s.Acquire(func() {})
	s.Clear()

	count := 0
	s.Acquire(func() { count++ })
	release() // stale; must not touch the new registration
	s.Clear()

	if count != 1 {
		t.Errorf("new handle ran %d times, want 1", count)
	}
}

// TestScopeAcquireNil verifies a nil handle is rejected cheaply.
func TestScopeAcquireNil(t *testing.T) {
	s := NewScope()
	release := s.Acquire(nil)
	release()
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

// TestScopeAcquireSubscription verifies subscriptions are canceled on Clear.
func TestScopeAcquireSubscription(t *testing.T) {
	s := NewScope()
	src := stream.NewSource[int]()

	var got []int
	sub := src.Stream().Values(func(v int) { got = append(got, v) })
	s.AcquireSubscription(sub)

	src.Emit(1)
	s.Clear()
	src.Emit(2)

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("got %v, want [1]", got)
	}
	if !sub.IsCanceled() {
		t.Error("subscription should be canceled by Clear")
	}
}

// TestScopePanickingHandle verifies a panic in one handle is reported and
// the remaining handles still run.
func TestScopePanickingHandle(t *testing.T) {
	var reported *errors.PanicError
	old := errors.DefaultHandler
	errors.SetHandler(&panicCapture{onPanic: func(e *errors.PanicError) { reported = e }})
	defer errors.SetHandler(old)

	s := NewScope()
	survivorRan := false
	s.Acquire(func() { survivorRan = true })
	s.Acquire(func() { panic("handle exploded") })

	s.Clear()

	if !survivorRan {
		t.Error("handle after the panicking one should still run")
	}
	if reported == nil {
		t.Fatal("expected the panic to be reported")
	}
	if reported.Value != "handle exploded" {
		t.Errorf("reported value = %v, want %q", reported.Value, "handle exploded")
	}
}

type panicCapture struct {
	onPanic func(*errors.PanicError)
}

func (h *panicCapture) HandleError(*errors.TetherError) {}
func (h *panicCapture) HandlePanic(e *errors.PanicError) {
	if h.onPanic != nil {
		h.onPanic(e)
	}
}
