package modeltest

import (
	"sync"

	"github.com/nextcore/tether/pkg/stream"
)

// Recorder subscribes to a stream and records everything it delivers:
// values in order, the terminating error if any, and completion.
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
	err    error
	done   bool
	sub    *stream.Subscription
}

// Record attaches a new recorder to st.
func Record[T any](st *stream.Stream[T]) *Recorder[T] {
	r := &Recorder[T]{}
	r.sub = st.Listen(stream.Handler[T]{
		OnValue: func(v T) {
			r.mu.Lock()
			r.values = append(r.values, v)
			r.mu.Unlock()
		},
		OnError: func(err error) {
			r.mu.Lock()
			r.err = err
			r.done = true
			r.mu.Unlock()
		},
		OnDone: func() {
			r.mu.Lock()
			r.done = true
			r.mu.Unlock()
		},
	})
	return r
}

// Values returns a copy of everything recorded so far.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of recorded values.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Err returns the stream's terminating error, if it failed.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// IsDone reports whether the stream terminated.
func (r *Recorder[T]) IsDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Reset forgets recorded values, keeping the subscription alive.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = nil
}

// Stop cancels the underlying subscription.
func (r *Recorder[T]) Stop() {
	r.sub.Cancel()
}
