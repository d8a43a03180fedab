package stream

import "sync"

// Unbounded disables the capacity limit of BufferWhen.
const Unbounded = -1

// CancelFunc tears down a combinator's upstream subscriptions.
type CancelFunc func()

// BufferWhen merges values into a single multicast output stream whose
// delivery adapts to an idle signal:
//
//   - While the most recently observed idle value is false, values are
//     forwarded live, unchanged.
//   - While idle is true, values are collected. When idle transitions back
//     to false, the collected values are flushed as one ordered batch.
//
// capacity bounds the collection: Unbounded retains everything, 0 drops
// values outright while idle, and N > 0 retains the last N (oldest dropped
// first). Flushed values are never reordered or duplicated.
//
// BufferWhen subscribes to both upstreams exactly once, at the point of
// the call, regardless of how many subscribers the output has; upstream
// side effects happen once per item. The output has no replay: late
// subscribers miss earlier deliveries. Until the idle stream reports a
// value, values are collected as if idle were true.
//
// A value arriving concurrently with an idle edge races against the edge:
// it lands on whichever side observes its lock first. Callers that need a
// strict ordering must serialize their producer with the idle source.
//
// The returned CancelFunc cancels both upstream subscriptions and
// completes the output stream; it is safe to call more than once.
func BufferWhen[T any](values *Stream[T], idle *Stream[bool], capacity int) (*Stream[T], CancelFunc) {
	out := NewSource[T]()
	b := &bufferState[T]{
		out:      out,
		capacity: capacity,
		idle:     true,
	}

	idleSub := idle.Listen(Handler[bool]{
		OnValue: b.onIdle,
	})
	valueSub := values.Listen(Handler[T]{
		OnValue: b.onValue,
		OnError: out.Fail,
		OnDone:  out.Done,
	})

	cancel := func() {
		idleSub.Cancel()
		valueSub.Cancel()
		out.Done()
	}
	return out.Stream(), cancel
}

type bufferState[T any] struct {
	mu       sync.Mutex
	out      *Source[T]
	capacity int
	idle     bool
	buffered []T
}

func (b *bufferState[T]) onIdle(idle bool) {
	b.mu.Lock()
	if idle == b.idle {
		b.mu.Unlock()
		return
	}
	b.idle = idle
	if idle {
		b.mu.Unlock()
		return
	}
	batch := b.buffered
	b.buffered = nil
	b.mu.Unlock()

	for _, v := range batch {
		b.out.Emit(v)
	}
}

func (b *bufferState[T]) onValue(value T) {
	b.mu.Lock()
	if !b.idle {
		b.mu.Unlock()
		b.out.Emit(value)
		return
	}
	if b.capacity == 0 {
		b.mu.Unlock()
		return
	}
	b.buffered = append(b.buffered, value)
	if b.capacity > 0 && len(b.buffered) > b.capacity {
		b.buffered = b.buffered[1:]
	}
	b.mu.Unlock()
}
