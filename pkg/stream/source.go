package stream

import "sync"

// Handler receives values from a Stream.
type Handler[T any] struct {
	OnValue func(T)
	OnError func(err error)
	OnDone  func()
}

// Source is a dual-role stream primitive: a writable send half paired with
// a broadcastable subscribe half sharing one dispatcher. Producers write
// through Emit/Fail/Done; consumers subscribe through Stream().
//
// Delivery is serialized: concurrent producers never interleave, and every
// subscriber observes the same total order of values. Handlers run
// synchronously on the producer's goroutine. A handler must not write back
// into the source it is being delivered from.
type Source[T any] struct {
	// emitMu serializes whole emissions, including handler calls.
	emitMu sync.Mutex
	// mu guards the subscriber list, cache, and terminal state.
	mu sync.Mutex

	entries []*entry[T]
	replay  bool
	hasLast bool
	last    T
	done    bool
	failure error

	stream Stream[T]
}

type entry[T any] struct {
	handler Handler[T]
	sub     *Subscription
}

// NewSource creates a multicast source with no replay: a subscriber only
// sees values emitted strictly after it subscribes.
func NewSource[T any]() *Source[T] {
	s := &Source[T]{}
	s.stream.src = s
	return s
}

// NewReplaySource creates a source with replay-latest semantics: a new
// subscriber immediately receives the most recent value, if any, then
// every subsequent emission.
func NewReplaySource[T any]() *Source[T] {
	s := NewSource[T]()
	s.replay = true
	return s
}

// NewSeededSource creates a replay-latest source whose cache starts
// populated with seed.
func NewSeededSource[T any](seed T) *Source[T] {
	s := NewReplaySource[T]()
	s.hasLast = true
	s.last = seed
	return s
}

// Stream returns the subscribe half of this source.
func (s *Source[T]) Stream() *Stream[T] {
	return &s.stream
}

// Emit broadcasts value to all current subscribers, in subscription order.
// Emissions after Done or Fail are ignored.
func (s *Source[T]) Emit(value T) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	if s.replay {
		s.last = value
		s.hasLast = true
	}
	targets := make([]*entry[T], len(s.entries))
	copy(targets, s.entries)
	s.mu.Unlock()

	for _, e := range targets {
		if e.sub.IsCanceled() {
			continue
		}
		if e.handler.OnValue != nil {
			e.handler.OnValue(value)
		}
	}
}

// Fail terminates the source with err. All current subscribers receive
// OnError exactly once; later subscribers receive it on subscription.
func (s *Source[T]) Fail(err error) {
	s.terminate(err)
}

// Done terminates the source normally. All current subscribers receive
// OnDone exactly once; later subscribers receive it on subscription.
func (s *Source[T]) Done() {
	s.terminate(nil)
}

func (s *Source[T]) terminate(err error) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.failure = err
	targets := s.entries
	s.entries = nil
	s.mu.Unlock()

	for _, e := range targets {
		if e.sub.IsCanceled() {
			continue
		}
		e.deliverTerminal(err)
	}
}

func (e *entry[T]) deliverTerminal(err error) {
	if err != nil {
		if e.handler.OnError != nil {
			e.handler.OnError(err)
		}
	} else {
		if e.handler.OnDone != nil {
			e.handler.OnDone()
		}
	}
}

// remove drops a subscription's entry from the dispatch list.
func (s *Source[T]) remove(target *entry[T]) {
	s.mu.Lock()
	for i, e := range s.entries {
		if e == target {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
}

// Stream is the subscribe half of a Source.
type Stream[T any] struct {
	src *Source[T]
}

// Listen subscribes handler to this stream and returns the subscription.
// For a replay source, the cached value (if any) is delivered before
// Listen returns. Subscribing to a terminated stream delivers the cached
// value (replay sources only) and the terminal callback immediately, and
// returns an already-canceled subscription.
func (st *Stream[T]) Listen(handler Handler[T]) *Subscription {
	s := st.src

	s.mu.Lock()
	if s.done {
		replayValue, replayOK := s.last, s.replay && s.hasLast
		failure := s.failure
		s.mu.Unlock()

		e := &entry[T]{handler: handler, sub: doneSubscription()}
		if replayOK && handler.OnValue != nil {
			handler.OnValue(replayValue)
		}
		e.deliverTerminal(failure)
		return e.sub
	}

	e := &entry[T]{handler: handler}
	e.sub = &Subscription{remove: func() { s.remove(e) }}
	s.entries = append(s.entries, e)
	replayValue, replayOK := s.last, s.replay && s.hasLast
	s.mu.Unlock()

	if replayOK && handler.OnValue != nil {
		handler.OnValue(replayValue)
	}
	return e.sub
}

// Values subscribes just a value callback, ignoring errors and completion.
func (st *Stream[T]) Values(fn func(T)) *Subscription {
	return st.Listen(Handler[T]{OnValue: fn})
}

// Latest returns the cached latest value of a replay stream. The second
// return is false for non-replay streams and for replay streams that have
// not yet emitted.
func (st *Stream[T]) Latest() (T, bool) {
	s := st.src
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replay && s.hasLast {
		return s.last, true
	}
	var zero T
	return zero, false
}

// IsDone returns true once the stream has terminated via Done or Fail.
func (st *Stream[T]) IsDone() bool {
	s := st.src
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
