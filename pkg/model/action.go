package model

import "github.com/nextcore/tether/pkg/stream"

// Action is an ephemeral inbound event: no cache, no replay, no
// buffering. A subscriber only ever sees values emitted strictly after it
// subscribed, which is the correct shape for transient user interactions
// where duplicate-on-resubscribe delivery would misbehave.
type Action[T any] struct {
	owner *Model
	src   *stream.Source[T]
}

// NewAction creates an action owned by mb.
func NewAction[T any](mb Bindable) *Action[T] {
	m := ensure(mb)
	src := stream.NewSource[T]()
	m.ctrl.UntilDestroy().Acquire(src.Done)
	return &Action[T]{owner: m, src: src}
}

// Emit delivers value to the subscribers present right now. Values
// emitted with no subscriber attached are gone.
func (a *Action[T]) Emit(value T) {
	a.src.Emit(value)
}

// Fail propagates a producer failure to subscribers, terminating the
// stream.
func (a *Action[T]) Fail(err error) {
	a.src.Fail(err)
}

// Observe returns the action's event stream.
func (a *Action[T]) Observe() *stream.Stream[T] {
	return a.src.Stream()
}
