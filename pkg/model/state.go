package model

import (
	stderrors "errors"

	"github.com/nextcore/tether/pkg/stream"
)

// ErrUninitialized is returned by State.Value before the first write of
// an unseeded state.
var ErrUninitialized = stderrors.New("model: state value not initialized")

// State is a cached reactive value with replay-latest semantics: every
// new subscriber immediately receives the current value (if any), then
// every subsequent write, in emission order.
//
// The owning model's presentation logic writes through Set; the host
// observes through Observe. The stream completes when the owner is
// destroyed.
type State[T any] struct {
	owner *Model
	src   *stream.Source[T]
}

// NewState creates an unseeded state owned by mb. HasValue is false until
// the first Set.
func NewState[T any](mb Bindable) *State[T] {
	return newState(mb, stream.NewReplaySource[T]())
}

// NewSeededState creates a state whose cache starts populated with seed,
// so HasValue is true from construction with no subscription required.
func NewSeededState[T any](mb Bindable, seed T) *State[T] {
	return newState(mb, stream.NewSeededSource(seed))
}

func newState[T any](mb Bindable, src *stream.Source[T]) *State[T] {
	m := ensure(mb)
	m.ctrl.UntilDestroy().Acquire(src.Done)
	return &State[T]{owner: m, src: src}
}

// Set writes a new value, updating the cache and notifying subscribers.
// Safe for arbitrary concurrent producers.
func (s *State[T]) Set(value T) {
	s.src.Emit(value)
}

// Fail propagates a producer failure to subscribers, terminating the
// stream. Convert failures you want to survive into values instead.
func (s *State[T]) Fail(err error) {
	s.src.Fail(err)
}

// Value returns the cached value, or ErrUninitialized if nothing has been
// written and no seed was given.
func (s *State[T]) Value() (T, error) {
	if v, ok := s.src.Stream().Latest(); ok {
		return v, nil
	}
	var zero T
	return zero, ErrUninitialized
}

// ValueOr returns the cached value, or fallback if uninitialized.
func (s *State[T]) ValueOr(fallback T) T {
	if v, ok := s.src.Stream().Latest(); ok {
		return v
	}
	return fallback
}

// HasValue reports whether a cached value exists. Once true it stays true
// for the life of the state.
func (s *State[T]) HasValue() bool {
	_, ok := s.src.Stream().Latest()
	return ok
}

// Observe returns the replay-latest stream of values.
func (s *State[T]) Observe() *stream.Stream[T] {
	return s.src.Stream()
}
