package stream

import (
	"errors"
	"sync"
	"testing"
)

// TestSourceMulticast verifies that every subscriber receives every value.
func TestSourceMulticast(t *testing.T) {
	src := NewSource[int]()

	var a, b []int
	src.Stream().Values(func(v int) { a = append(a, v) })
	src.Stream().Values(func(v int) { b = append(b, v) })

	src.Emit(1)
	src.Emit(2)

	want := []int{1, 2}
	if !equalInts(a, want) {
		t.Errorf("subscriber a got %v, want %v", a, want)
	}
	if !equalInts(b, want) {
		t.Errorf("subscriber b got %v, want %v", b, want)
	}
}

// TestSourceNoReplay verifies that a plain source never replays old values.
func TestSourceNoReplay(t *testing.T) {
	src := NewSource[int]()
	src.Emit(1)

	var got []int
	src.Stream().Values(func(v int) { got = append(got, v) })

	if len(got) != 0 {
		t.Errorf("late subscriber got %v, want nothing", got)
	}

	src.Emit(2)
	if !equalInts(got, []int{2}) {
		t.Errorf("got %v, want [2]", got)
	}
}

// TestReplaySourceDeliversLatest verifies replay-latest on subscription.
func TestReplaySourceDeliversLatest(t *testing.T) {
	src := NewReplaySource[string]()
	src.Emit("old")
	src.Emit("current")

	var got []string
	src.Stream().Values(func(v string) { got = append(got, v) })

	if len(got) != 1 || got[0] != "current" {
		t.Errorf("got %v, want [current]", got)
	}

	src.Emit("next")
	if len(got) != 2 || got[1] != "next" {
		t.Errorf("got %v, want [current next]", got)
	}
}

// TestSeededSourceHasValueImmediately verifies the seed is cached before any emit.
func TestSeededSourceHasValueImmediately(t *testing.T) {
	src := NewSeededSource(42)

	if v, ok := src.Stream().Latest(); !ok || v != 42 {
		t.Errorf("Latest() = %v, %v; want 42, true", v, ok)
	}

	var got []int
	src.Stream().Values(func(v int) { got = append(got, v) })
	if !equalInts(got, []int{42}) {
		t.Errorf("got %v, want [42]", got)
	}
}

// TestLatestOnPlainSource verifies Latest reports nothing for non-replay sources.
func TestLatestOnPlainSource(t *testing.T) {
	src := NewSource[int]()
	src.Emit(7)
	if _, ok := src.Stream().Latest(); ok {
		t.Error("Latest() should report no value for a non-replay source")
	}
}

// TestSubscriptionCancel verifies delivery stops after Cancel.
func TestSubscriptionCancel(t *testing.T) {
	src := NewSource[int]()

	var got []int
	sub := src.Stream().Values(func(v int) { got = append(got, v) })

	src.Emit(1)
	sub.Cancel()
	src.Emit(2)

	if !equalInts(got, []int{1}) {
		t.Errorf("got %v, want [1]", got)
	}
	if !sub.IsCanceled() {
		t.Error("subscription should report canceled")
	}

	// Second cancel is a no-op.
	sub.Cancel()
}

// TestSourceDone verifies completion reaches subscribers exactly once and
// silences later emissions.
func TestSourceDone(t *testing.T) {
	src := NewSource[int]()

	doneCount := 0
	var got []int
	src.Stream().Listen(Handler[int]{
		OnValue: func(v int) { got = append(got, v) },
		OnDone:  func() { doneCount++ },
	})

	src.Emit(1)
	src.Done()
	src.Done()
	src.Emit(2)

	if !equalInts(got, []int{1}) {
		t.Errorf("got %v, want [1]", got)
	}
	if doneCount != 1 {
		t.Errorf("OnDone ran %d times, want 1", doneCount)
	}
	if !src.Stream().IsDone() {
		t.Error("stream should report done")
	}
}

// TestSourceFail verifies the error channel terminates the stream.
func TestSourceFail(t *testing.T) {
	src := NewSource[int]()
	boom := errors.New("boom")

	var gotErr error
	doneCalled := false
	src.Stream().Listen(Handler[int]{
		OnError: func(err error) { gotErr = err },
		OnDone:  func() { doneCalled = true },
	})

	src.Fail(boom)

	if gotErr != boom {
		t.Errorf("OnError got %v, want %v", gotErr, boom)
	}
	if doneCalled {
		t.Error("OnDone should not run on failure")
	}
}

// TestListenAfterTermination verifies late subscribers get the terminal
// callback immediately, plus the cached value for replay sources.
func TestListenAfterTermination(t *testing.T) {
	src := NewReplaySource[int]()
	src.Emit(5)
	src.Done()

	var got []int
	doneCalled := false
	sub := src.Stream().Listen(Handler[int]{
		OnValue: func(v int) { got = append(got, v) },
		OnDone:  func() { doneCalled = true },
	})

	if !equalInts(got, []int{5}) {
		t.Errorf("got %v, want [5]", got)
	}
	if !doneCalled {
		t.Error("expected immediate OnDone for terminated stream")
	}
	if !sub.IsCanceled() {
		t.Error("subscription to terminated stream should be canceled")
	}
}

// TestConcurrentEmitTotalOrder verifies concurrent producers never
// interleave and both subscribers observe the same order.
func TestConcurrentEmitTotalOrder(t *testing.T) {
	src := NewSource[int]()

	var mu sync.Mutex
	var a, b []int
	src.Stream().Values(func(v int) {
		mu.Lock()
		a = append(a, v)
		mu.Unlock()
	})
	src.Stream().Values(func(v int) {
		mu.Lock()
		b = append(b, v)
		mu.Unlock()
	})

	const producers = 8
	const perProducer = 100
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				src.Emit(base + i)
			}
		}(p * perProducer)
	}
	wg.Wait()

	if len(a) != producers*perProducer {
		t.Fatalf("subscriber a got %d values, want %d", len(a), producers*perProducer)
	}
	if !equalInts(a, b) {
		t.Error("subscribers observed different orders")
	}
}

// TestCancelDuringEmit verifies a subscriber canceled mid-dispatch is
// skipped for subsequent values.
func TestCancelDuringEmit(t *testing.T) {
	src := NewSource[int]()

	var got []int
	var sub *Subscription
	sub = src.Stream().Values(func(v int) {
		got = append(got, v)
		sub.Cancel()
	})

	src.Emit(1)
	src.Emit(2)

	if !equalInts(got, []int{1}) {
		t.Errorf("got %v, want [1]", got)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
